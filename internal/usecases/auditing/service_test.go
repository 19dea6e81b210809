package auditing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-hub-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/workflow"
	"go.uber.org/mock/gomock"
)

func TestNewEvent(t *testing.T) {
	actor := domain.Actor{ID: "ADV001", Role: domain.RoleAdvertiser}

	event := NewEvent("CAM001", actor, domain.EventStatusChanged, map[string]any{
		"from": "GENERATED",
		"to":   "REVIEWED",
	})

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "CAM001", event.CampaignID)
	assert.Equal(t, "ADV001", event.ActorID)
	assert.Equal(t, domain.RoleAdvertiser, event.ActorRole)
	assert.Equal(t, domain.EventStatusChanged, event.Type)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestService_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEventRepo := mocks.NewMockEventRepository(ctrl)
	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := NewService(mockEventRepo, mockCampaignRepo)

	actor := domain.Actor{ID: "scheduler", Role: domain.RoleSystem}

	t.Run("Evento válido é anexado à trilha", func(t *testing.T) {
		event := NewEvent("CAM001", actor, domain.EventDeadlineReminder, nil)
		mockEventRepo.EXPECT().Append(gomock.Any(), event).Return(nil)

		assert.NoError(t, service.Record(context.Background(), event))
	})

	t.Run("Gravações repetidas com os mesmos argumentos geram eventos distintos", func(t *testing.T) {
		payload := map[string]any{"application_id": "APP001"}
		first := NewEvent("CAM001", actor, domain.EventApplicationSubmitted, payload)
		second := NewEvent("CAM001", actor, domain.EventApplicationSubmitted, payload)

		// Trilha append-only: nada é deduplicado, cada gravação é um registro
		assert.NotEqual(t, first.ID, second.ID)

		appended := make([]string, 0, 2)
		mockEventRepo.EXPECT().
			Append(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event *domain.Event) error {
				appended = append(appended, event.ID)
				return nil
			}).
			Times(2)

		require.NoError(t, service.Record(context.Background(), first))
		require.NoError(t, service.Record(context.Background(), second))

		require.Len(t, appended, 2)
		assert.NotEqual(t, appended[0], appended[1])
	})

	t.Run("Evento sem campanha ou tipo é rejeitado", func(t *testing.T) {
		err := service.Record(context.Background(), &domain.Event{Type: domain.EventStatusChanged})
		assert.ErrorIs(t, err, workflow.ErrValidation)

		err = service.Record(context.Background(), &domain.Event{CampaignID: "CAM001"})
		assert.ErrorIs(t, err, workflow.ErrValidation)
	})
}

func TestService_ListByCampaign(t *testing.T) {
	campaign := &domain.Campaign{
		ID:           "CAM001",
		AdvertiserID: "ADV001",
		Status:       domain.CampaignStatusOpen,
	}

	tests := []struct {
		name    string
		actor   domain.Actor
		wantErr error
	}{
		{
			name:  "Administrador lê qualquer trilha",
			actor: domain.Actor{ID: "ADM001", Role: domain.RoleAdmin},
		},
		{
			name:  "Anunciante dono lê a própria trilha",
			actor: domain.Actor{ID: "ADV001", Role: domain.RoleAdvertiser},
		},
		{
			name:    "Anunciante de outra campanha não lê a trilha",
			actor:   domain.Actor{ID: "ADV999", Role: domain.RoleAdvertiser},
			wantErr: workflow.ErrForbidden,
		},
		{
			name:    "Influenciador não lê a trilha",
			actor:   domain.Actor{ID: "INF001", Role: domain.RoleInfluencer},
			wantErr: workflow.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockEventRepo := mocks.NewMockEventRepository(ctrl)
			mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
			service := NewService(mockEventRepo, mockCampaignRepo)

			mockCampaignRepo.EXPECT().GetByID(gomock.Any(), "CAM001").Return(campaign, nil)

			if tt.wantErr == nil {
				mockEventRepo.EXPECT().
					ListByCampaign(gomock.Any(), "CAM001").
					Return([]*domain.Event{{ID: "EVT001", CampaignID: "CAM001"}}, nil)
			}

			events, err := service.ListByCampaign(context.Background(), tt.actor, "CAM001")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, events, 1)
		})
	}
}
