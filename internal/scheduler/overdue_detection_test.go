package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	notificationMocks "github.com/vfg2006/campaign-hub-api/infrastructure/notification/mocks"
	"github.com/vfg2006/campaign-hub-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-hub-api/internal/config"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestOverdueDetectionService_penalizeCampaign(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockApplicationRepo := mocks.NewMockApplicationRepository(ctrl)
	mockSubmissionRepo := mocks.NewMockSubmissionRepository(ctrl)
	mockPenaltyRepo := mocks.NewMockPenaltyRepository(ctrl)
	mockNotifier := notificationMocks.NewMockNotifier(ctrl)

	service := &OverdueDetectionService{
		config: OverdueDetectionConfig{SyncEnabled: true},
		appConfig: &config.Config{
			AWS: config.AWS{AdminEmail: "admin@campaignhub.local"},
		},
		applicationRepo: mockApplicationRepo,
		submissionRepo:  mockSubmissionRepo,
		penaltyRepo:     mockPenaltyRepo,
		notifier:        mockNotifier,
	}

	deadline := time.Now().Add(-72 * time.Hour)
	campaign := &domain.Campaign{
		ID:           "CAM001",
		AdvertiserID: "ADV001",
		Title:        "Campanha de inverno",
		Status:       domain.CampaignStatusRunning,
		DeadlineDate: &deadline,
	}

	mockApplicationRepo.EXPECT().
		ListSelectedByCampaign(gomock.Any(), "CAM001").
		Return([]*domain.Application{
			{ID: "APP001", InfluencerID: "INF001", Status: domain.ApplicationStatusSelected},
			{ID: "APP002", InfluencerID: "INF002", Status: domain.ApplicationStatusSelected},
			{ID: "APP003", InfluencerID: "INF003", Status: domain.ApplicationStatusSelected},
		}, nil)

	// INF001 entregou e foi aprovado, não recebe penalidade
	mockSubmissionRepo.EXPECT().HasApprovedByInfluencer(gomock.Any(), "CAM001", "INF001").Return(true, nil)

	// INF002 já foi penalizado em rodada anterior
	mockSubmissionRepo.EXPECT().HasApprovedByInfluencer(gomock.Any(), "CAM001", "INF002").Return(false, nil)
	mockPenaltyRepo.EXPECT().ExistsForCampaignInfluencer(gomock.Any(), "CAM001", "INF002").Return(true, nil)

	// INF003 sem entrega aprovada e sem penalidade registrada
	mockSubmissionRepo.EXPECT().HasApprovedByInfluencer(gomock.Any(), "CAM001", "INF003").Return(false, nil)
	mockPenaltyRepo.EXPECT().ExistsForCampaignInfluencer(gomock.Any(), "CAM001", "INF003").Return(false, nil)
	mockPenaltyRepo.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, penalty *domain.Penalty, event *domain.Event) error {
			assert.NotEmpty(t, penalty.ID)
			assert.Equal(t, "CAM001", penalty.CampaignID)
			assert.Equal(t, "INF003", penalty.InfluencerID)
			assert.Equal(t, "prazo_vencido", penalty.Reason)
			assert.Equal(t, domain.PenaltyTypeWarning, penalty.PenaltyType)
			assert.Equal(t, domain.PenaltyStatusPending, penalty.Status)
			assert.Equal(t, "scheduler", penalty.AppliedBy)
			assert.Equal(t, domain.EventDeadlineOverdue, event.Type)
			assert.Equal(t, "INF003", event.Payload["influencer_id"])
			return nil
		})

	mockNotifier.EXPECT().
		Send(gomock.Any(), []string{"admin@campaignhub.local"}, gomock.Any(), gomock.Any()).
		Return(nil)

	created := service.penalizeCampaign(context.Background(), campaign)
	assert.Equal(t, 1, created)
}

func TestOverdueDetectionService_penalizeCampaign_TodosAprovados(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockApplicationRepo := mocks.NewMockApplicationRepository(ctrl)
	mockSubmissionRepo := mocks.NewMockSubmissionRepository(ctrl)
	mockPenaltyRepo := mocks.NewMockPenaltyRepository(ctrl)
	mockNotifier := notificationMocks.NewMockNotifier(ctrl)

	service := &OverdueDetectionService{
		config:          OverdueDetectionConfig{SyncEnabled: true},
		appConfig:       &config.Config{},
		applicationRepo: mockApplicationRepo,
		submissionRepo:  mockSubmissionRepo,
		penaltyRepo:     mockPenaltyRepo,
		notifier:        mockNotifier,
	}

	deadline := time.Now().Add(-24 * time.Hour)
	campaign := &domain.Campaign{
		ID:           "CAM001",
		AdvertiserID: "ADV001",
		Status:       domain.CampaignStatusRunning,
		DeadlineDate: &deadline,
	}

	mockApplicationRepo.EXPECT().
		ListSelectedByCampaign(gomock.Any(), "CAM001").
		Return([]*domain.Application{
			{ID: "APP001", InfluencerID: "INF001", Status: domain.ApplicationStatusSelected},
		}, nil)

	mockSubmissionRepo.EXPECT().HasApprovedByInfluencer(gomock.Any(), "CAM001", "INF001").Return(true, nil)

	// Sem penalidades novas, administrador não é notificado
	created := service.penalizeCampaign(context.Background(), campaign)
	assert.Equal(t, 0, created)
}
