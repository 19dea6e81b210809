package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/contacting"
	"github.com/vfg2006/campaign-hub-api/pkg/apiErrors"
)

type UpdateContactRequest struct {
	Status domain.ContactStatus `json:"status"`
}

// SubmitContact recebe uma mensagem do formulário público de contato
func SubmitContact(service contacting.Contacter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SubmitContact")

		var req contacting.ContactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		contact, err := service.Intake(r.Context(), &req)
		if err != nil {
			handleWorkflowError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(contact)
	}
}

// ListContacts lista as mensagens de contato recebidas (somente admin)
func ListContacts(service contacting.Contacter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := domain.ContactStatus(r.URL.Query().Get("status"))

		contacts, err := service.List(r.Context(), status)
		if err != nil {
			handleWorkflowError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"contacts": contacts,
		})
	}
}

// UpdateContactStatus atualiza o estado de tratamento de uma mensagem
func UpdateContactStatus(service contacting.Contacter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contactID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req UpdateContactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if err := service.UpdateStatus(r.Context(), contactID, req.Status); err != nil {
			handleWorkflowError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
