package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-hub-api/infrastructure/notification"
	"github.com/vfg2006/campaign-hub-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-hub-api/internal/config"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/contacting"
	"go.uber.org/mock/gomock"
)

func TestSubmitContact(t *testing.T) {
	newHandler := func(t *testing.T) (http.HandlerFunc, *mocks.MockContactRepository) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)

		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		service := contacting.NewService(mockContactRepo, notification.NewNoopNotifier(), &config.Config{})

		return SubmitContact(service), mockContactRepo
	}

	t.Run("Mensagem válida é aceita com 201", func(t *testing.T) {
		handler, mockContactRepo := newHandler(t)

		mockContactRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, contact *domain.Contact) error {
				assert.Equal(t, domain.ContactStatusPending, contact.Status)
				return nil
			})

		body := `{"name":"Maria","email":"maria@example.com","message":"Quero anunciar"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/contact", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusCreated, recorder.Code)

		var contact domain.Contact
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&contact))
		assert.Equal(t, "Maria", contact.Name)
		assert.Equal(t, domain.ContactStatusPending, contact.Status)
		assert.NotEmpty(t, contact.ID)
	})

	t.Run("Corpo inválido retorna 400", func(t *testing.T) {
		handler, _ := newHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/contact", strings.NewReader("{invalido"))
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Campos obrigatórios ausentes retornam 400", func(t *testing.T) {
		handler, _ := newHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/contact", strings.NewReader(`{"name":"Maria"}`))
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var response map[string]any
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Equal(t, "VAL_002", response["code"])
	})
}
