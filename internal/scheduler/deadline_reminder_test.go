package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	notificationMocks "github.com/vfg2006/campaign-hub-api/infrastructure/notification/mocks"
	"github.com/vfg2006/campaign-hub-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/auditing"
	"go.uber.org/mock/gomock"
)

func TestDeadlineReminderService_sendReminders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockApplicationRepo := mocks.NewMockApplicationRepository(ctrl)
	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	mockEventRepo := mocks.NewMockEventRepository(ctrl)
	mockNotifier := notificationMocks.NewMockNotifier(ctrl)

	service := &DeadlineReminderService{
		config:          DeadlineReminderConfig{SyncEnabled: true},
		campaignRepo:    mockCampaignRepo,
		applicationRepo: mockApplicationRepo,
		userRepo:        mockUserRepo,
		eventLogger:     auditing.NewService(mockEventRepo, mockCampaignRepo),
		notifier:        mockNotifier,
	}

	deadline := time.Now().Add(12 * time.Hour)
	campaign := &domain.Campaign{
		ID:           "CAM001",
		AdvertiserID: "ADV001",
		Title:        "Lançamento de verão",
		Status:       domain.CampaignStatusRunning,
		DeadlineDate: &deadline,
	}

	mockCampaignRepo.EXPECT().
		ListDueBetween(gomock.Any(), []domain.CampaignStatus{domain.CampaignStatusRunning}, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ []domain.CampaignStatus, from, to time.Time) ([]*domain.Campaign, error) {
			assert.WithinDuration(t, from.Add(24*time.Hour), to, time.Second)
			return []*domain.Campaign{campaign}, nil
		})

	mockUserRepo.EXPECT().
		GetUserByID(gomock.Any(), "ADV001").
		Return(&domain.User{ID: "ADV001", Email: "anunciante@empresa.com"}, nil)

	mockApplicationRepo.EXPECT().
		ListSelectedByCampaign(gomock.Any(), "CAM001").
		Return([]*domain.Application{
			{ID: "APP001", InfluencerID: "INF001", Status: domain.ApplicationStatusSelected},
			{ID: "APP002", InfluencerID: "INF002", Status: domain.ApplicationStatusSelected},
		}, nil)

	mockUserRepo.EXPECT().
		GetUserByID(gomock.Any(), "INF001").
		Return(&domain.User{ID: "INF001", Email: "influencer1@exemplo.com"}, nil)

	// Falha pontual na busca de um destinatário não interrompe o envio
	mockUserRepo.EXPECT().
		GetUserByID(gomock.Any(), "INF002").
		Return(nil, errors.New("erro de conexão"))

	mockNotifier.EXPECT().
		Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, to []string, subject, body string) error {
			assert.Equal(t, []string{"anunciante@empresa.com", "influencer1@exemplo.com"}, to)
			assert.Contains(t, subject, "Lançamento de verão")
			assert.Contains(t, body, "entregas pendentes")
			return nil
		})

	mockEventRepo.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.Event) error {
			assert.Equal(t, "CAM001", event.CampaignID)
			assert.Equal(t, domain.EventDeadlineReminder, event.Type)
			assert.Equal(t, "scheduler", event.ActorID)
			assert.Equal(t, 2, event.Payload["recipients"])
			return nil
		})

	service.sendReminders()
}

func TestDeadlineReminderService_sendReminders_SemCampanhas(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockEventRepo := mocks.NewMockEventRepository(ctrl)
	mockNotifier := notificationMocks.NewMockNotifier(ctrl)

	service := &DeadlineReminderService{
		config:       DeadlineReminderConfig{SyncEnabled: true},
		campaignRepo: mockCampaignRepo,
		eventLogger:  auditing.NewService(mockEventRepo, mockCampaignRepo),
		notifier:     mockNotifier,
	}

	mockCampaignRepo.EXPECT().
		ListDueBetween(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)

	// Nenhum lembrete enviado nem evento registrado
	service.sendReminders()
}
