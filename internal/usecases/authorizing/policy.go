// Package authorizing concentra as regras de autorização por papel que
// protegem cada transição do ciclo de vida
package authorizing

import "github.com/vfg2006/campaign-hub-api/internal/domain"

// Action identifica uma operação protegida do workflow
type Action string

const (
	// Ações do influenciador, restritas às próprias candidaturas
	ActionApply  Action = "apply"
	ActionCancel Action = "cancel"
	ActionSubmit Action = "submit"

	// Ações do anunciante, restritas às campanhas que ele possui
	ActionSelect     Action = "select"
	ActionReview     Action = "review"
	ActionTransition Action = "transition"

	// Ação do sistema ao registrar eventos automáticos
	ActionRecord Action = "record"
)

// CanPerform decide se o ator pode executar a ação sobre o recurso cujo dono
// é resourceOwnerID. É uma função pura, sem acesso a armazenamento:
//   - influenciador: apply/cancel/submit apenas sobre recursos próprios
//   - anunciante: select/review/transition apenas em campanhas próprias
//   - admin: qualquer ação de escopo de anunciante, independente do dono
//   - system: somente record (eventos de lembrete/transição automática)
//
// Nenhuma regra concede escrita entre papéis fora desses casos
func CanPerform(actorRole domain.Role, action Action, resourceOwnerID, actorID string) bool {
	switch actorRole {
	case domain.RoleInfluencer:
		switch action {
		case ActionApply, ActionCancel, ActionSubmit:
			return resourceOwnerID == actorID
		}
		return false

	case domain.RoleAdvertiser:
		switch action {
		case ActionSelect, ActionReview, ActionTransition:
			return resourceOwnerID == actorID
		}
		return false

	case domain.RoleAdmin:
		switch action {
		case ActionSelect, ActionReview, ActionTransition:
			return true
		}
		return false

	case domain.RoleSystem:
		return action == ActionRecord
	}

	return false
}
