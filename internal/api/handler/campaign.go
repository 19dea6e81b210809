package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/auditing"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/lifecycling"
	"github.com/vfg2006/campaign-hub-api/pkg/apiErrors"
)

type TransitionRequest struct {
	To domain.CampaignStatus `json:"to"`
}

// CreateCampaign cria uma nova campanha em nome do anunciante logado
func CreateCampaign(service lifecycling.Lifecycler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateCampaign")

		actor, ok := actorFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.CreateCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		campaign, err := service.Create(r.Context(), actor, &req)
		if err != nil {
			handleWorkflowError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(campaign)
	}
}

// ListCampaigns lista as campanhas visíveis para o ator, com filtro opcional
// de status e paginação por cursor
func ListCampaigns(service lifecycling.Lifecycler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		statuses, err := parseStatusFilter(r.URL.Query().Get("status"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		cursor := r.URL.Query().Get("cursor")
		limit := parseLimit(r.URL.Query().Get("limit"))

		campaigns, err := service.List(r.Context(), actor, statuses, cursor, limit)
		if err != nil {
			handleWorkflowError(w, err)
			return
		}

		writeCampaignPage(w, campaigns)
	}
}

// ListOpenCampaigns lista as campanhas abertas a candidaturas. A ordenação é
// por abertura mais recente, paginada por cursor
func ListOpenCampaigns(service lifecycling.Lifecycler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cursor := r.URL.Query().Get("cursor")
		limit := parseLimit(r.URL.Query().Get("limit"))

		campaigns, err := service.ListOpen(r.Context(), cursor, limit)
		if err != nil {
			handleWorkflowError(w, err)
			return
		}

		writeCampaignPage(w, campaigns)
	}
}

// GetCampaign retorna o detalhe de uma campanha respeitando a política de
// visibilidade de cada papel
func GetCampaign(service lifecycling.Lifecycler) http.HandlerFunc {
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

		campaign, err := service.Get(r.Context(), actor, campaignID)
		if err != nil {
			handleWorkflowError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(campaign)
	}
}

// TransitionCampaign avança (ou encerra) o status de uma campanha
func TransitionCampaign(service lifecycling.Lifecycler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - TransitionCampaign")

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

		var req TransitionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if !req.To.IsValid() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Status de destino desconhecido", nil)
			return
		}

		campaign, err := service.Transition(r.Context(), actor, campaignID, req.To)
		if err != nil {
			handleWorkflowError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(campaign)
	}
}

// ListCampaignEvents retorna o histórico de eventos de uma campanha
func ListCampaignEvents(service auditing.EventLogger) http.HandlerFunc {
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

		events, err := service.ListByCampaign(r.Context(), actor, campaignID)
		if err != nil {
			handleWorkflowError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"events": events,
		})
	}
}

// parseStatusFilter converte o parâmetro "status" (lista separada por
// vírgula) em statuses de campanha validados
func parseStatusFilter(raw string) ([]domain.CampaignStatus, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	statuses := make([]domain.CampaignStatus, 0, len(parts))
	for _, part := range parts {
		status := domain.CampaignStatus(strings.ToUpper(strings.TrimSpace(part)))
		if !status.IsValid() {
			return nil, errInvalidStatusFilter(part)
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}

type invalidStatusError string

func (e invalidStatusError) Error() string {
	return "status de campanha desconhecido: " + string(e)
}

func errInvalidStatusFilter(value string) error {
	return invalidStatusError(strings.TrimSpace(value))
}

func parseLimit(raw string) uint64 {
	if raw == "" {
		return 0
	}

	limit, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return limit
}

// writeCampaignPage envia a página de campanhas com o cursor da próxima
// página (o ID do último item retornado)
func writeCampaignPage(w http.ResponseWriter, campaigns []*domain.Campaign) {
	var nextCursor string
	if len(campaigns) > 0 {
		nextCursor = campaigns[len(campaigns)-1].ID
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"campaigns":   campaigns,
		"next_cursor": nextCursor,
	})
}
