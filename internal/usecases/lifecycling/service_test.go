package lifecycling

import (
	"context"
	"testing"
	"time"

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
	sysActor   = domain.Actor{ID: "scheduler", Role: domain.RoleSystem}
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := NewService(mockCampaignRepo)

	t.Run("Campanha criada no estado inicial em nome do anunciante", func(t *testing.T) {
		mockCampaignRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, campaign *domain.Campaign) error {
				assert.Equal(t, domain.CampaignStatusGenerated, campaign.Status)
				assert.Equal(t, "ADV001", campaign.AdvertiserID)
				assert.NotEmpty(t, campaign.ID)
				return nil
			})

		deadline := time.Now().Add(30 * 24 * time.Hour)
		campaign, err := service.Create(context.Background(), advertiser, &domain.CreateCampaignRequest{
			Title:        "Lançamento de verão",
			DeadlineDate: &deadline,
		})

		require.NoError(t, err)
		assert.Equal(t, "Lançamento de verão", campaign.Title)
		assert.Equal(t, domain.CampaignStatusGenerated, campaign.Status)
	})

	t.Run("Título é obrigatório", func(t *testing.T) {
		_, err := service.Create(context.Background(), advertiser, &domain.CreateCampaignRequest{})

		assert.ErrorIs(t, err, workflow.ErrValidation)
	})

	t.Run("Prazo no passado é rejeitado", func(t *testing.T) {
		deadline := time.Now().Add(-24 * time.Hour)
		_, err := service.Create(context.Background(), advertiser, &domain.CreateCampaignRequest{
			Title:        "Campanha atrasada",
			DeadlineDate: &deadline,
		})

		assert.ErrorIs(t, err, workflow.ErrValidation)
	})
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := NewService(mockCampaignRepo)

	t.Run("Influenciador não enxerga campanha ainda não publicada", func(t *testing.T) {
		mockCampaignRepo.EXPECT().
			GetByID(gomock.Any(), "CAM001").
			Return(&domain.Campaign{
				ID:           "CAM001",
				AdvertiserID: "ADV001",
				Status:       domain.CampaignStatusGenerated,
			}, nil)

		_, err := service.Get(context.Background(), influencer, "CAM001")

		assert.ErrorIs(t, err, workflow.ErrNotFound)
	})

	t.Run("Anunciante não acessa campanha de outro anunciante", func(t *testing.T) {
		mockCampaignRepo.EXPECT().
			GetByID(gomock.Any(), "CAM001").
			Return(&domain.Campaign{
				ID:           "CAM001",
				AdvertiserID: "ADV999",
				Status:       domain.CampaignStatusOpen,
			}, nil)

		_, err := service.Get(context.Background(), advertiser, "CAM001")

		assert.ErrorIs(t, err, workflow.ErrForbidden)
	})

	t.Run("Campanha inexistente retorna não encontrado", func(t *testing.T) {
		mockCampaignRepo.EXPECT().
			GetByID(gomock.Any(), "CAM404").
			Return(nil, nil)

		_, err := service.Get(context.Background(), admin, "CAM404")

		assert.ErrorIs(t, err, workflow.ErrNotFound)
	})
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := NewService(mockCampaignRepo)

	t.Run("Anunciante lista apenas as próprias campanhas", func(t *testing.T) {
		mockCampaignRepo.EXPECT().
			List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter repository.CampaignFilter) ([]*domain.Campaign, error) {
				assert.Equal(t, "ADV001", filter.AdvertiserID)
				assert.Equal(t, uint64(20), filter.Limit)
				return nil, nil
			})

		_, err := service.List(context.Background(), advertiser, nil, "", 0)
		assert.NoError(t, err)
	})

	t.Run("Administrador lista sem escopo de anunciante", func(t *testing.T) {
		mockCampaignRepo.EXPECT().
			List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter repository.CampaignFilter) ([]*domain.Campaign, error) {
				assert.Empty(t, filter.AdvertiserID)
				return nil, nil
			})

		_, err := service.List(context.Background(), admin, nil, "", 10)
		assert.NoError(t, err)
	})

	t.Run("Limite acima do máximo é reduzido", func(t *testing.T) {
		mockCampaignRepo.EXPECT().
			ListOpen(gomock.Any(), "", uint64(100)).
			Return(nil, nil)

		_, err := service.ListOpen(context.Background(), "", 500)
		assert.NoError(t, err)
	})
}

func TestService_Transition(t *testing.T) {
	futureDeadline := timePtr(time.Now().Add(7 * 24 * time.Hour))
	pastDeadline := timePtr(time.Now().Add(-24 * time.Hour))

	tests := []struct {
		name        string
		actor       domain.Actor
		campaign    *domain.Campaign
		to          domain.CampaignStatus
		repoErr     error
		expectWrite bool
		wantErr     error
		wantEvent   string
	}{
		{
			name:        "Anunciante avança campanha gerada para revisada",
			actor:       advertiser,
			campaign:    &domain.Campaign{ID: "CAM001", AdvertiserID: "ADV001", Status: domain.CampaignStatusGenerated},
			to:          domain.CampaignStatusReviewed,
			expectWrite: true,
			wantEvent:   domain.EventStatusChanged,
		},
		{
			name:     "Pular etapa do fluxo é rejeitado",
			actor:    advertiser,
			campaign: &domain.Campaign{ID: "CAM001", AdvertiserID: "ADV001", Status: domain.CampaignStatusGenerated},
			to:       domain.CampaignStatusOpen,
			wantErr:  workflow.ErrInvalidTransition,
		},
		{
			name:     "Influenciador não transiciona campanhas",
			actor:    influencer,
			campaign: &domain.Campaign{ID: "CAM001", AdvertiserID: "ADV001", Status: domain.CampaignStatusReviewed},
			to:       domain.CampaignStatusOpen,
			wantErr:  workflow.ErrForbidden,
		},
		{
			name:     "Anunciante não transiciona campanha alheia",
			actor:    advertiser,
			campaign: &domain.Campaign{ID: "CAM001", AdvertiserID: "ADV999", Status: domain.CampaignStatusReviewed},
			to:       domain.CampaignStatusOpen,
			wantErr:  workflow.ErrForbidden,
		},
		{
			name:     "Estado terminal não admite transições",
			actor:    admin,
			campaign: &domain.Campaign{ID: "CAM001", AdvertiserID: "ADV001", Status: domain.CampaignStatusCompleted},
			to:       domain.CampaignStatusCancelled,
			wantErr:  workflow.ErrInvalidTransition,
		},
		{
			name:        "Administrador cancela campanha em qualquer estado não terminal",
			actor:       admin,
			campaign:    &domain.Campaign{ID: "CAM001", AdvertiserID: "ADV001", Status: domain.CampaignStatusMatching},
			to:          domain.CampaignStatusCancelled,
			expectWrite: true,
			wantEvent:   domain.EventStatusChanged,
		},
		{
			name:     "Anunciante não cancela a própria campanha",
			actor:    advertiser,
			campaign: &domain.Campaign{ID: "CAM001", AdvertiserID: "ADV001", Status: domain.CampaignStatusOpen},
			to:       domain.CampaignStatusCancelled,
			wantErr:  workflow.ErrForbidden,
		},
		{
			name:     "Campanha sem prazo não entra em execução",
			actor:    advertiser,
			campaign: &domain.Campaign{ID: "CAM001", AdvertiserID: "ADV001", Status: domain.CampaignStatusMatching},
			to:       domain.CampaignStatusRunning,
			wantErr:  workflow.ErrInvalidState,
		},
		{
			name:        "Campanha com prazo entra em execução",
			actor:       advertiser,
			campaign:    &domain.Campaign{ID: "CAM001", AdvertiserID: "ADV001", Status: domain.CampaignStatusMatching, DeadlineDate: futureDeadline},
			to:          domain.CampaignStatusRunning,
			expectWrite: true,
			wantEvent:   domain.EventStatusChanged,
		},
		{
			name:        "Conclusão registra evento próprio",
			actor:       advertiser,
			campaign:    &domain.Campaign{ID: "CAM001", AdvertiserID: "ADV001", Status: domain.CampaignStatusRunning, DeadlineDate: futureDeadline},
			to:          domain.CampaignStatusCompleted,
			expectWrite: true,
			wantEvent:   domain.EventCampaignCompleted,
		},
		{
			name:     "Falha exige prazo vencido",
			actor:    admin,
			campaign: &domain.Campaign{ID: "CAM001", AdvertiserID: "ADV001", Status: domain.CampaignStatusRunning, DeadlineDate: futureDeadline},
			to:       domain.CampaignStatusFailed,
			wantErr:  workflow.ErrInvalidState,
		},
		{
			name:        "Administrador marca campanha vencida como falha",
			actor:       admin,
			campaign:    &domain.Campaign{ID: "CAM001", AdvertiserID: "ADV001", Status: domain.CampaignStatusRunning, DeadlineDate: pastDeadline},
			to:          domain.CampaignStatusFailed,
			expectWrite: true,
			wantEvent:   domain.EventStatusChanged,
		},
		{
			name:     "Falha só é permitida a administradores",
			actor:    advertiser,
			campaign: &domain.Campaign{ID: "CAM001", AdvertiserID: "ADV001", Status: domain.CampaignStatusRunning, DeadlineDate: pastDeadline},
			to:       domain.CampaignStatusFailed,
			wantErr:  workflow.ErrForbidden,
		},
		{
			name:        "Ator de sistema abre campanha revisada",
			actor:       sysActor,
			campaign:    &domain.Campaign{ID: "CAM001", AdvertiserID: "ADV001", Status: domain.CampaignStatusReviewed},
			to:          domain.CampaignStatusOpen,
			expectWrite: true,
			wantEvent:   domain.EventStatusChanged,
		},
		{
			name:     "Ator de sistema não dispara transições manuais",
			actor:    sysActor,
			campaign: &domain.Campaign{ID: "CAM001", AdvertiserID: "ADV001", Status: domain.CampaignStatusOpen},
			to:       domain.CampaignStatusMatching,
			wantErr:  workflow.ErrForbidden,
		},
		{
			name:        "Corrida perdida vira conflito",
			actor:       advertiser,
			campaign:    &domain.Campaign{ID: "CAM001", AdvertiserID: "ADV001", Status: domain.CampaignStatusGenerated},
			to:          domain.CampaignStatusReviewed,
			repoErr:     repository.ErrStaleStatus,
			expectWrite: true,
			wantErr:     workflow.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
			service := NewService(mockCampaignRepo)

			mockCampaignRepo.EXPECT().
				GetByID(gomock.Any(), tt.campaign.ID).
				Return(tt.campaign, nil)

			if tt.expectWrite {
				mockCampaignRepo.EXPECT().
					UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params repository.UpdateCampaignStatusParams, event *domain.Event) error {
						assert.Equal(t, tt.campaign.Status, params.From)
						assert.Equal(t, tt.to, params.To)

						if tt.wantEvent != "" {
							assert.Equal(t, tt.wantEvent, event.Type)
							assert.Equal(t, string(tt.campaign.Status), event.Payload["from"])
							assert.Equal(t, string(tt.to), event.Payload["to"])
						}

						if tt.to == domain.CampaignStatusOpen {
							assert.NotNil(t, params.OpenedAt)
						}
						if tt.to == domain.CampaignStatusCompleted {
							assert.NotNil(t, params.CompletedAt)
						}
						return tt.repoErr
					})
			}

			campaign, err := service.Transition(context.Background(), tt.actor, tt.campaign.ID, tt.to)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, campaign.Status)
		})
	}
}
