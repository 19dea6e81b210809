package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/submitting"
	"github.com/vfg2006/campaign-hub-api/pkg/apiErrors"
)

type ReviewRequest struct {
	Action   domain.ReviewAction `json:"action"`
	Feedback *string             `json:"feedback,omitempty"`
}

// SubmitContent registra a entrega de conteúdo do influenciador selecionado
func SubmitContent(service submitting.Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SubmitContent")

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

		var req submitting.SubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		submission, err := service.Submit(r.Context(), actor, campaignID, &req)
		if err != nil {
			handleWorkflowError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(submission)
	}
}

// ListCampaignSubmissions lista as entregas de uma campanha conforme a
// visibilidade do ator
func ListCampaignSubmissions(service submitting.Submitter) http.HandlerFunc {
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

		submissions, err := service.ListForCampaign(r.Context(), actor, campaignID)
		if err != nil {
			handleWorkflowError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"submissions": submissions,
		})
	}
}

// ReviewSubmission aprova ou devolve uma entrega para ajustes
func ReviewSubmission(service submitting.Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ReviewSubmission")

		actor, ok := actorFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		params := httprouter.ParamsFromContext(r.Context())
		campaignID := params.ByName("id")
		submissionID := params.ByName("submission_id")
		if campaignID == "" || submissionID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha ou da entrega não fornecido", nil)
			return
		}

		var req ReviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.Action != domain.ReviewActionApprove && req.Action != domain.ReviewActionNeedsFix {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Ação desconhecida: use approve ou needs_fix", nil)
			return
		}

		submission, err := service.Review(r.Context(), actor, campaignID, submissionID, req.Action, req.Feedback)
		if err != nil {
			handleWorkflowError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(submission)
	}
}
