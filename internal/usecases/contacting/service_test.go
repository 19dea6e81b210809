package contacting

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	notificationmocks "github.com/vfg2006/campaign-hub-api/infrastructure/notification/mocks"
	"github.com/vfg2006/campaign-hub-api/infrastructure/repository"
	"github.com/vfg2006/campaign-hub-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-hub-api/internal/config"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/workflow"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		AWS: config.AWS{
			AdminEmail: "admin@campaignhub.local",
		},
	}
}

func TestService_Intake(t *testing.T) {
	t.Run("Mensagem persistida e administração notificada em segundo plano", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		mockNotifier := notificationmocks.NewMockNotifier(ctrl)
		service := NewService(mockContactRepo, mockNotifier, testConfig())

		mockContactRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, contact *domain.Contact) error {
				assert.Equal(t, domain.ContactStatusPending, contact.Status)
				assert.Equal(t, "maria@example.com", contact.Email)
				return nil
			})

		notified := make(chan struct{})
		mockNotifier.EXPECT().
			Send(gomock.Any(), []string{"admin@campaignhub.local"}, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ []string, subject, _ string) error {
				assert.Contains(t, subject, "Maria")
				return nil
			})
		// Confirmação enviada para quem escreveu, depois do aviso interno
		mockNotifier.EXPECT().
			Send(gomock.Any(), []string{"maria@example.com"}, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ []string, _, body string) error {
				assert.Contains(t, body, "Maria")
				close(notified)
				return nil
			})

		contact, err := service.Intake(context.Background(), &ContactRequest{
			Name:    "  Maria  ",
			Email:   "  MARIA@example.com ",
			Message: "Quero anunciar na plataforma",
		})

		require.NoError(t, err)
		assert.Equal(t, "Maria", contact.Name)

		select {
		case <-notified:
		case <-time.After(2 * time.Second):
			t.Fatal("notificação não foi disparada")
		}
	})

	t.Run("Falha na notificação não afeta a resposta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		mockNotifier := notificationmocks.NewMockNotifier(ctrl)
		service := NewService(mockContactRepo, mockNotifier, testConfig())

		mockContactRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		notified := make(chan struct{}, 2)
		mockNotifier.EXPECT().
			Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ []string, _, _ string) error {
				notified <- struct{}{}
				return assert.AnError
			}).
			Times(2)

		_, err := service.Intake(context.Background(), &ContactRequest{
			Name:    "João",
			Email:   "joao@example.com",
			Message: "Dúvida sobre campanhas",
		})

		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			select {
			case <-notified:
			case <-time.After(2 * time.Second):
				t.Fatal("notificação não foi disparada")
			}
		}
	})

	t.Run("Campos obrigatórios e formato do email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewService(mocks.NewMockContactRepository(ctrl), notificationmocks.NewMockNotifier(ctrl), testConfig())

		_, err := service.Intake(context.Background(), &ContactRequest{Name: "Maria"})
		assert.ErrorIs(t, err, workflow.ErrValidation)

		_, err = service.Intake(context.Background(), &ContactRequest{
			Name:    "Maria",
			Email:   "sem-arroba",
			Message: "Olá",
		})
		assert.ErrorIs(t, err, workflow.ErrValidation)
	})

	t.Run("Mensagem acima do limite é rejeitada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewService(mocks.NewMockContactRepository(ctrl), notificationmocks.NewMockNotifier(ctrl), testConfig())

		_, err := service.Intake(context.Background(), &ContactRequest{
			Name:    "Maria",
			Email:   "maria@example.com",
			Message: strings.Repeat("a", maxMessageLength+1),
		})
		assert.ErrorIs(t, err, workflow.ErrValidation)
	})
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockContactRepo := mocks.NewMockContactRepository(ctrl)
	service := NewService(mockContactRepo, notificationmocks.NewMockNotifier(ctrl), testConfig())

	mockContactRepo.EXPECT().
		List(gomock.Any(), domain.ContactStatusPending).
		Return([]*domain.Contact{{ID: "CON001", Status: domain.ContactStatusPending}}, nil)

	contacts, err := service.List(context.Background(), domain.ContactStatusPending)

	require.NoError(t, err)
	assert.Len(t, contacts, 1)
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("Mensagem marcada como respondida", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		service := NewService(mockContactRepo, notificationmocks.NewMockNotifier(ctrl), testConfig())

		mockContactRepo.EXPECT().
			UpdateStatus(gomock.Any(), "CON001", domain.ContactStatusResponded).
			Return(nil)

		err := service.UpdateStatus(context.Background(), "CON001", domain.ContactStatusResponded)
		require.NoError(t, err)
	})

	t.Run("Status desconhecido é rejeitado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewService(mocks.NewMockContactRepository(ctrl), notificationmocks.NewMockNotifier(ctrl), testConfig())

		err := service.UpdateStatus(context.Background(), "CON001", domain.ContactStatus("ARQUIVADO"))
		assert.ErrorIs(t, err, workflow.ErrValidation)
	})

	t.Run("Contato inexistente retorna não encontrado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		service := NewService(mockContactRepo, notificationmocks.NewMockNotifier(ctrl), testConfig())

		mockContactRepo.EXPECT().
			UpdateStatus(gomock.Any(), "CON999", domain.ContactStatusClosed).
			Return(repository.ErrNotFound)

		err := service.UpdateStatus(context.Background(), "CON999", domain.ContactStatusClosed)
		assert.ErrorIs(t, err, workflow.ErrNotFound)
	})
}
