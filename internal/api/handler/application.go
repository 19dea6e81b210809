package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/applying"
	"github.com/vfg2006/campaign-hub-api/pkg/apiErrors"
)

type ApplyRequest struct {
	Message *string `json:"message,omitempty"`
}

type DecisionRequest struct {
	Action applying.DecisionAction `json:"action"`
}

// ApplyToCampaign registra a candidatura do influenciador logado
func ApplyToCampaign(service applying.Applier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ApplyToCampaign")

		actor, ok := actorFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não fornecido", nil)
			return
		}

		// O corpo é opcional: a candidatura pode ser enviada sem mensagem
		var req ApplyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		application, err := service.Apply(r.Context(), actor, campaignID, req.Message)
		if err != nil {
			handleWorkflowError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(application)
	}
}

// ListCampaignApplications lista as candidaturas de uma campanha para o
// anunciante dono ou para administradores
func ListCampaignApplications(service applying.Applier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não fornecido", nil)
			return
		}

		applications, err := service.ListForCampaign(r.Context(), actor, campaignID)
		if err != nil {
			handleWorkflowError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"applications": applications,
		})
	}
}

// CancelApplication remove uma candidatura ainda não selecionada
func CancelApplication(service applying.Applier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CancelApplication")

		actor, ok := actorFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		params := httprouter.ParamsFromContext(r.Context())
		campaignID := params.ByName("id")
		applicationID := params.ByName("application_id")
		if campaignID == "" || applicationID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha ou da candidatura não fornecido", nil)
			return
		}

		if err := service.Cancel(r.Context(), actor, campaignID, applicationID); err != nil {
			handleWorkflowError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// DecideApplication seleciona ou rejeita uma candidatura
func DecideApplication(service applying.Applier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DecideApplication")

		actor, ok := actorFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		params := httprouter.ParamsFromContext(r.Context())
		campaignID := params.ByName("id")
		applicationID := params.ByName("application_id")
		if campaignID == "" || applicationID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha ou da candidatura não fornecido", nil)
			return
		}

		var req DecisionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.Action != applying.DecisionSelect && req.Action != applying.DecisionReject {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Ação desconhecida: use select ou reject", nil)
			return
		}

		application, err := service.Decide(r.Context(), actor, campaignID, applicationID, req.Action)
		if err != nil {
			handleWorkflowError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(application)
	}
}

// ListMyApplications lista as candidaturas do influenciador logado com o
// resumo da campanha correspondente
func ListMyApplications(service applying.Applier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		applications, err := service.ListForInfluencer(r.Context(), actor)
		if err != nil {
			handleWorkflowError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"applications": applications,
		})
	}
}
