package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/workflow"
	"github.com/vfg2006/campaign-hub-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-hub-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// actorFromRequest extrai o ator autenticado do contexto da requisição
func actorFromRequest(r *http.Request) (domain.Actor, bool) {
	userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		return domain.Actor{}, false
	}
	return domain.ActorFromClaims(userClaims), true
}

// handleWorkflowError converte erros do núcleo de workflow na resposta HTTP
// padronizada. Erros de workflow carregam o próprio código de API
func handleWorkflowError(w http.ResponseWriter, err error) {
	var wfErr *workflow.Error
	if errors.As(err, &wfErr) {
		apiErrors.WriteError(w, wfErr.Code, wfErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, workflow.ErrNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Recurso não encontrado", nil)
	case errors.Is(err, workflow.ErrForbidden):
		apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Acesso negado ao recurso", nil)
	case errors.Is(err, workflow.ErrConflict):
		apiErrors.WriteError(w, apiErrors.ErrConflict, "Conflito de atualização concorrente", nil)
	case errors.Is(err, workflow.ErrInvalidTransition):
		apiErrors.WriteError(w, apiErrors.ErrInvalidTransition, "Transição de status não permitida", nil)
	case errors.Is(err, workflow.ErrInvalidState):
		apiErrors.WriteError(w, apiErrors.ErrInvalidState, "Operação inválida para o estado atual", nil)
	case errors.Is(err, workflow.ErrValidation):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Requisição inválida", nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno do servidor", nil)
	}
}
