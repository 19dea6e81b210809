package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-hub-api/infrastructure/repository"
	"github.com/vfg2006/campaign-hub-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/lifecycling"
	"go.uber.org/mock/gomock"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestStatusTransitionService_autoOpenReviewed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockApplicationRepo := mocks.NewMockApplicationRepository(ctrl)
	mockSubmissionRepo := mocks.NewMockSubmissionRepository(ctrl)

	service := &StatusTransitionService{
		config: StatusTransitionConfig{
			AutoOpenDelayHours: 24,
			SyncEnabled:        true,
		},
		campaignRepo:    mockCampaignRepo,
		applicationRepo: mockApplicationRepo,
		submissionRepo:  mockSubmissionRepo,
		lifecycler:      lifecycling.NewService(mockCampaignRepo),
	}

	reviewed := &domain.Campaign{
		ID:           "CAM001",
		AdvertiserID: "ADV001",
		Status:       domain.CampaignStatusReviewed,
	}

	// Listagem das campanhas fora do período de carência
	mockCampaignRepo.EXPECT().
		ListReviewedBefore(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, before time.Time) ([]*domain.Campaign, error) {
			// O corte respeita o período de carência configurado
			assert.True(t, before.Before(time.Now().Add(-23*time.Hour)))
			return []*domain.Campaign{reviewed}, nil
		})

	// O ciclo de vida relê a campanha e aplica a transição condicional
	mockCampaignRepo.EXPECT().GetByID(gomock.Any(), "CAM001").Return(reviewed, nil)
	mockCampaignRepo.EXPECT().
		UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params repository.UpdateCampaignStatusParams, event *domain.Event) error {
			assert.Equal(t, domain.CampaignStatusReviewed, params.From)
			assert.Equal(t, domain.CampaignStatusOpen, params.To)
			assert.NotNil(t, params.OpenedAt)
			assert.Equal(t, "scheduler", event.ActorID)
			assert.Equal(t, domain.RoleSystem, event.ActorRole)
			return nil
		})

	opened := service.autoOpenReviewed(context.Background())
	assert.Equal(t, 1, opened)
}

func TestStatusTransitionService_autoCompleteRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockApplicationRepo := mocks.NewMockApplicationRepository(ctrl)
	mockSubmissionRepo := mocks.NewMockSubmissionRepository(ctrl)

	service := &StatusTransitionService{
		config:          StatusTransitionConfig{SyncEnabled: true},
		campaignRepo:    mockCampaignRepo,
		applicationRepo: mockApplicationRepo,
		submissionRepo:  mockSubmissionRepo,
		lifecycler:      lifecycling.NewService(mockCampaignRepo),
	}

	pastDeadline := timePtr(time.Now().Add(-48 * time.Hour))
	ready := &domain.Campaign{
		ID:           "CAM001",
		AdvertiserID: "ADV001",
		Status:       domain.CampaignStatusRunning,
		DeadlineDate: pastDeadline,
	}
	pending := &domain.Campaign{
		ID:           "CAM002",
		AdvertiserID: "ADV001",
		Status:       domain.CampaignStatusRunning,
		DeadlineDate: pastDeadline,
	}
	empty := &domain.Campaign{
		ID:           "CAM003",
		AdvertiserID: "ADV001",
		Status:       domain.CampaignStatusRunning,
		DeadlineDate: pastDeadline,
	}

	mockCampaignRepo.EXPECT().
		ListOverdue(gomock.Any(), []domain.CampaignStatus{domain.CampaignStatusRunning}, gomock.Any()).
		Return([]*domain.Campaign{ready, pending, empty}, nil)

	// CAM001: todos os selecionados com entrega aprovada, campanha concluída
	mockApplicationRepo.EXPECT().
		ListSelectedByCampaign(gomock.Any(), "CAM001").
		Return([]*domain.Application{
			{ID: "APP001", InfluencerID: "INF001", Status: domain.ApplicationStatusSelected},
			{ID: "APP002", InfluencerID: "INF002", Status: domain.ApplicationStatusSelected},
		}, nil)
	mockSubmissionRepo.EXPECT().HasApprovedByInfluencer(gomock.Any(), "CAM001", "INF001").Return(true, nil)
	mockSubmissionRepo.EXPECT().HasApprovedByInfluencer(gomock.Any(), "CAM001", "INF002").Return(true, nil)
	mockCampaignRepo.EXPECT().GetByID(gomock.Any(), "CAM001").Return(ready, nil)
	mockCampaignRepo.EXPECT().
		UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params repository.UpdateCampaignStatusParams, event *domain.Event) error {
			assert.Equal(t, "CAM001", params.ID)
			assert.Equal(t, domain.CampaignStatusCompleted, params.To)
			assert.NotNil(t, params.CompletedAt)
			assert.Equal(t, domain.EventCampaignCompleted, event.Type)
			return nil
		})

	// CAM002: entrega pendente de aprovação, campanha permanece em execução
	mockApplicationRepo.EXPECT().
		ListSelectedByCampaign(gomock.Any(), "CAM002").
		Return([]*domain.Application{
			{ID: "APP003", InfluencerID: "INF003", Status: domain.ApplicationStatusSelected},
		}, nil)
	mockSubmissionRepo.EXPECT().HasApprovedByInfluencer(gomock.Any(), "CAM002", "INF003").Return(false, nil)

	// CAM003: sem influenciadores selecionados, nunca concluída automaticamente
	mockApplicationRepo.EXPECT().
		ListSelectedByCampaign(gomock.Any(), "CAM003").
		Return(nil, nil)

	completed := service.autoCompleteRunning(context.Background())
	assert.Equal(t, 1, completed)
}

func TestStatusTransitionService_GetStatus(t *testing.T) {
	service := &StatusTransitionService{
		config: StatusTransitionConfig{
			CronSchedule: "*/30 * * * *",
			SyncEnabled:  true,
		},
	}

	status := service.GetStatus()

	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, "*/30 * * * *", status["sync_cron"])
	assert.Equal(t, true, status["sync_enabled"])
}
