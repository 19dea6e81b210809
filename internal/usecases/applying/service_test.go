package applying

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-hub-api/infrastructure/repository"
	"github.com/vfg2006/campaign-hub-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/workflow"
	"go.uber.org/mock/gomock"
)

var (
	advertiser = domain.Actor{ID: "ADV001", Role: domain.RoleAdvertiser}
	influencer = domain.Actor{ID: "INF001", Role: domain.RoleInfluencer}
	admin      = domain.Actor{ID: "ADM001", Role: domain.RoleAdmin}
)

func openCampaign() *domain.Campaign {
	return &domain.Campaign{
		ID:           "CAM001",
		AdvertiserID: "ADV001",
		Status:       domain.CampaignStatusOpen,
	}
}

func TestService_Apply(t *testing.T) {
	t.Run("Candidatura registrada em campanha aberta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockApplicationRepo := mocks.NewMockApplicationRepository(ctrl)
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		service := NewService(mockApplicationRepo, mockCampaignRepo)

		mockCampaignRepo.EXPECT().GetByID(gomock.Any(), "CAM001").Return(openCampaign(), nil)
		mockApplicationRepo.EXPECT().GetByInfluencer(gomock.Any(), "CAM001", "INF001").Return(nil, nil)
		mockApplicationRepo.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, application *domain.Application, event *domain.Event) error {
				assert.Equal(t, domain.ApplicationStatusApplied, application.Status)
				assert.Equal(t, "INF001", application.InfluencerID)
				assert.Equal(t, domain.EventApplicationSubmitted, event.Type)
				assert.Equal(t, application.ID, event.Payload["application_id"])
				return nil
			})

		application, err := service.Apply(context.Background(), influencer, "CAM001", nil)

		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusApplied, application.Status)
	})

	t.Run("Mensagem tem telefone e handle removidos antes de persistir", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockApplicationRepo := mocks.NewMockApplicationRepository(ctrl)
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		service := NewService(mockApplicationRepo, mockCampaignRepo)

		mockCampaignRepo.EXPECT().GetByID(gomock.Any(), "CAM001").Return(openCampaign(), nil)
		mockApplicationRepo.EXPECT().GetByInfluencer(gomock.Any(), "CAM001", "INF001").Return(nil, nil)
		mockApplicationRepo.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, application *domain.Application, _ *domain.Event) error {
				require.NotNil(t, application.Message)
				assert.Equal(t, "Me chama no [contato removido] ou [contato removido], insta [contato removido]", *application.Message)
				return nil
			})

		message := "Me chama no 010-1234-5678 ou 010-9999-8888, insta @maria_oficial"
		_, err := service.Apply(context.Background(), influencer, "CAM001", &message)
		require.NoError(t, err)
	})

	t.Run("Apenas influenciadores se candidatam", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewService(mocks.NewMockApplicationRepository(ctrl), mocks.NewMockCampaignRepository(ctrl))

		_, err := service.Apply(context.Background(), advertiser, "CAM001", nil)
		assert.ErrorIs(t, err, workflow.ErrForbidden)
	})

	t.Run("Campanha em matching ainda aceita candidaturas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockApplicationRepo := mocks.NewMockApplicationRepository(ctrl)
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		service := NewService(mockApplicationRepo, mockCampaignRepo)

		campaign := openCampaign()
		campaign.Status = domain.CampaignStatusMatching
		mockCampaignRepo.EXPECT().GetByID(gomock.Any(), "CAM001").Return(campaign, nil)
		mockApplicationRepo.EXPECT().GetByInfluencer(gomock.Any(), "CAM001", "INF001").Return(nil, nil)
		mockApplicationRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := service.Apply(context.Background(), influencer, "CAM001", nil)
		require.NoError(t, err)
	})

	t.Run("Campanha que não aceita mais candidaturas rejeita o pedido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockApplicationRepo := mocks.NewMockApplicationRepository(ctrl)
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		service := NewService(mockApplicationRepo, mockCampaignRepo)

		campaign := openCampaign()
		campaign.Status = domain.CampaignStatusRunning
		mockCampaignRepo.EXPECT().GetByID(gomock.Any(), "CAM001").Return(campaign, nil)

		_, err := service.Apply(context.Background(), influencer, "CAM001", nil)
		assert.ErrorIs(t, err, workflow.ErrValidation)
	})

	t.Run("Candidatura duplicada é rejeitada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockApplicationRepo := mocks.NewMockApplicationRepository(ctrl)
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		service := NewService(mockApplicationRepo, mockCampaignRepo)

		mockCampaignRepo.EXPECT().GetByID(gomock.Any(), "CAM001").Return(openCampaign(), nil)
		mockApplicationRepo.EXPECT().
			GetByInfluencer(gomock.Any(), "CAM001", "INF001").
			Return(&domain.Application{ID: "APP001", Status: domain.ApplicationStatusApplied}, nil)

		_, err := service.Apply(context.Background(), influencer, "CAM001", nil)
		assert.ErrorIs(t, err, workflow.ErrInvalidState)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Run("Influenciador cancela a própria candidatura pendente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockApplicationRepo := mocks.NewMockApplicationRepository(ctrl)
		service := NewService(mockApplicationRepo, mocks.NewMockCampaignRepository(ctrl))

		mockApplicationRepo.EXPECT().
			GetByID(gomock.Any(), "CAM001", "APP001").
			Return(&domain.Application{ID: "APP001", CampaignID: "CAM001", InfluencerID: "INF001", Status: domain.ApplicationStatusApplied}, nil)
		mockApplicationRepo.EXPECT().
			Delete(gomock.Any(), "CAM001", "APP001", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, event *domain.Event) error {
				assert.Equal(t, domain.EventApplicationCancelled, event.Type)
				return nil
			})

		err := service.Cancel(context.Background(), influencer, "CAM001", "APP001")
		assert.NoError(t, err)
	})

	t.Run("Candidatura de outro influenciador não pode ser cancelada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockApplicationRepo := mocks.NewMockApplicationRepository(ctrl)
		service := NewService(mockApplicationRepo, mocks.NewMockCampaignRepository(ctrl))

		mockApplicationRepo.EXPECT().
			GetByID(gomock.Any(), "CAM001", "APP001").
			Return(&domain.Application{ID: "APP001", InfluencerID: "INF999", Status: domain.ApplicationStatusApplied}, nil)

		err := service.Cancel(context.Background(), influencer, "CAM001", "APP001")
		assert.ErrorIs(t, err, workflow.ErrForbidden)
	})

	t.Run("Candidatura selecionada não pode ser cancelada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockApplicationRepo := mocks.NewMockApplicationRepository(ctrl)
		service := NewService(mockApplicationRepo, mocks.NewMockCampaignRepository(ctrl))

		mockApplicationRepo.EXPECT().
			GetByID(gomock.Any(), "CAM001", "APP001").
			Return(&domain.Application{ID: "APP001", InfluencerID: "INF001", Status: domain.ApplicationStatusSelected}, nil)

		err := service.Cancel(context.Background(), influencer, "CAM001", "APP001")
		assert.ErrorIs(t, err, workflow.ErrInvalidState)
	})

	t.Run("Seleção concorrente vence a corrida com o cancelamento", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockApplicationRepo := mocks.NewMockApplicationRepository(ctrl)
		service := NewService(mockApplicationRepo, mocks.NewMockCampaignRepository(ctrl))

		mockApplicationRepo.EXPECT().
			GetByID(gomock.Any(), "CAM001", "APP001").
			Return(&domain.Application{ID: "APP001", InfluencerID: "INF001", Status: domain.ApplicationStatusApplied}, nil)
		mockApplicationRepo.EXPECT().
			Delete(gomock.Any(), "CAM001", "APP001", gomock.Any()).
			Return(repository.ErrStaleStatus)

		err := service.Cancel(context.Background(), influencer, "CAM001", "APP001")
		assert.ErrorIs(t, err, workflow.ErrInvalidState)
	})
}

func TestService_Decide(t *testing.T) {
	pendingApplication := func() *domain.Application {
		return &domain.Application{
			ID:           "APP001",
			CampaignID:   "CAM001",
			InfluencerID: "INF001",
			Status:       domain.ApplicationStatusApplied,
		}
	}

	t.Run("Seleção marca a candidatura e registra o evento", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockApplicationRepo := mocks.NewMockApplicationRepository(ctrl)
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		service := NewService(mockApplicationRepo, mockCampaignRepo)

		mockCampaignRepo.EXPECT().GetByID(gomock.Any(), "CAM001").Return(openCampaign(), nil)
		mockApplicationRepo.EXPECT().GetByID(gomock.Any(), "CAM001", "APP001").Return(pendingApplication(), nil)
		mockApplicationRepo.EXPECT().
			UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params repository.UpdateApplicationStatusParams, event *domain.Event) error {
				assert.Equal(t, domain.ApplicationStatusApplied, params.From)
				assert.Equal(t, domain.ApplicationStatusSelected, params.To)
				assert.NotNil(t, params.SelectedAt)
				assert.Equal(t, domain.EventInfluencerSelected, event.Type)
				assert.Equal(t, "INF001", event.Payload["influencer_id"])
				return nil
			})

		application, err := service.Decide(context.Background(), advertiser, "CAM001", "APP001", DecisionSelect)

		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusSelected, application.Status)
		assert.NotNil(t, application.SelectedAt)
	})

	t.Run("Rejeição não carimba data de seleção", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockApplicationRepo := mocks.NewMockApplicationRepository(ctrl)
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		service := NewService(mockApplicationRepo, mockCampaignRepo)

		mockCampaignRepo.EXPECT().GetByID(gomock.Any(), "CAM001").Return(openCampaign(), nil)
		mockApplicationRepo.EXPECT().GetByID(gomock.Any(), "CAM001", "APP001").Return(pendingApplication(), nil)
		mockApplicationRepo.EXPECT().
			UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params repository.UpdateApplicationStatusParams, event *domain.Event) error {
				assert.Equal(t, domain.ApplicationStatusRejected, params.To)
				assert.Nil(t, params.SelectedAt)
				assert.Equal(t, domain.EventApplicationRejected, event.Type)
				return nil
			})

		application, err := service.Decide(context.Background(), advertiser, "CAM001", "APP001", DecisionReject)

		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusRejected, application.Status)
		assert.Nil(t, application.SelectedAt)
	})

	t.Run("Anunciante de outra campanha não decide", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockApplicationRepo := mocks.NewMockApplicationRepository(ctrl)
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		service := NewService(mockApplicationRepo, mockCampaignRepo)

		campaign := openCampaign()
		campaign.AdvertiserID = "ADV999"
		mockCampaignRepo.EXPECT().GetByID(gomock.Any(), "CAM001").Return(campaign, nil)

		_, err := service.Decide(context.Background(), advertiser, "CAM001", "APP001", DecisionSelect)
		assert.ErrorIs(t, err, workflow.ErrForbidden)
	})

	t.Run("Candidatura já decidida não volta atrás", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockApplicationRepo := mocks.NewMockApplicationRepository(ctrl)
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		service := NewService(mockApplicationRepo, mockCampaignRepo)

		mockCampaignRepo.EXPECT().GetByID(gomock.Any(), "CAM001").Return(openCampaign(), nil)
		decided := pendingApplication()
		decided.Status = domain.ApplicationStatusRejected
		mockApplicationRepo.EXPECT().GetByID(gomock.Any(), "CAM001", "APP001").Return(decided, nil)

		_, err := service.Decide(context.Background(), advertiser, "CAM001", "APP001", DecisionSelect)
		assert.ErrorIs(t, err, workflow.ErrInvalidState)
	})

	t.Run("Decisões concorrentes: exatamente uma vence", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockApplicationRepo := mocks.NewMockApplicationRepository(ctrl)
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		service := NewService(mockApplicationRepo, mockCampaignRepo)

		mockCampaignRepo.EXPECT().GetByID(gomock.Any(), "CAM001").Return(openCampaign(), nil)
		mockApplicationRepo.EXPECT().GetByID(gomock.Any(), "CAM001", "APP001").Return(pendingApplication(), nil)
		mockApplicationRepo.EXPECT().
			UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(repository.ErrStaleStatus)

		_, err := service.Decide(context.Background(), advertiser, "CAM001", "APP001", DecisionReject)
		assert.ErrorIs(t, err, workflow.ErrConflict)
	})
}

func TestService_ListForInfluencer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockApplicationRepo := mocks.NewMockApplicationRepository(ctrl)
	service := NewService(mockApplicationRepo, mocks.NewMockCampaignRepository(ctrl))

	t.Run("Campanha removida aparece com resumo nulo", func(t *testing.T) {
		mockApplicationRepo.EXPECT().
			ListByInfluencer(gomock.Any(), "INF001").
			Return([]*domain.ApplicationWithCampaign{
				{
					Application: domain.Application{ID: "APP001", CampaignID: "CAM001", InfluencerID: "INF001"},
					Campaign:    &domain.CampaignSnapshot{ID: "CAM001", Title: "Campanha viva"},
				},
				{
					Application: domain.Application{ID: "APP002", CampaignID: "CAM002", InfluencerID: "INF001"},
					Campaign:    nil,
				},
			}, nil)

		applications, err := service.ListForInfluencer(context.Background(), influencer)

		require.NoError(t, err)
		require.Len(t, applications, 2)
		assert.NotNil(t, applications[0].Campaign)
		assert.Nil(t, applications[1].Campaign)
	})

	t.Run("Listagem restrita a influenciadores", func(t *testing.T) {
		_, err := service.ListForInfluencer(context.Background(), admin)
		assert.ErrorIs(t, err, workflow.ErrForbidden)
	})
}
