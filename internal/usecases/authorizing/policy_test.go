package authorizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
)

func TestCanPerform(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.Role
		action   Action
		ownerID  string
		actorID  string
		expected bool
	}{
		{
			name:     "Influenciador pode se candidatar em nome próprio",
			role:     domain.RoleInfluencer,
			action:   ActionApply,
			ownerID:  "INF001",
			actorID:  "INF001",
			expected: true,
		},
		{
			name:     "Influenciador não pode cancelar candidatura de outro",
			role:     domain.RoleInfluencer,
			action:   ActionCancel,
			ownerID:  "INF001",
			actorID:  "INF002",
			expected: false,
		},
		{
			name:     "Influenciador não pode selecionar candidaturas",
			role:     domain.RoleInfluencer,
			action:   ActionSelect,
			ownerID:  "INF001",
			actorID:  "INF001",
			expected: false,
		},
		{
			name:     "Anunciante pode revisar entrega na própria campanha",
			role:     domain.RoleAdvertiser,
			action:   ActionReview,
			ownerID:  "ADV001",
			actorID:  "ADV001",
			expected: true,
		},
		{
			name:     "Anunciante não pode selecionar em campanha alheia",
			role:     domain.RoleAdvertiser,
			action:   ActionSelect,
			ownerID:  "ADV001",
			actorID:  "ADV002",
			expected: false,
		},
		{
			name:     "Anunciante não pode se candidatar",
			role:     domain.RoleAdvertiser,
			action:   ActionApply,
			ownerID:  "ADV001",
			actorID:  "ADV001",
			expected: false,
		},
		{
			name:     "Admin pode selecionar independente do dono",
			role:     domain.RoleAdmin,
			action:   ActionSelect,
			ownerID:  "ADV001",
			actorID:  "ADM001",
			expected: true,
		},
		{
			name:     "Admin pode transicionar campanha alheia",
			role:     domain.RoleAdmin,
			action:   ActionTransition,
			ownerID:  "ADV001",
			actorID:  "ADM001",
			expected: true,
		},
		{
			name:     "Admin não herda ações de influenciador",
			role:     domain.RoleAdmin,
			action:   ActionSubmit,
			ownerID:  "INF001",
			actorID:  "ADM001",
			expected: false,
		},
		{
			name:     "System só pode registrar eventos",
			role:     domain.RoleSystem,
			action:   ActionRecord,
			ownerID:  "",
			actorID:  "system",
			expected: true,
		},
		{
			name:     "System não pode transicionar",
			role:     domain.RoleSystem,
			action:   ActionTransition,
			ownerID:  "ADV001",
			actorID:  "system",
			expected: false,
		},
		{
			name:     "Papel desconhecido nunca é autorizado",
			role:     domain.Role("auditor"),
			action:   ActionReview,
			ownerID:  "ADV001",
			actorID:  "ADV001",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanPerform(tt.role, tt.action, tt.ownerID, tt.actorID)
			assert.Equal(t, tt.expected, result)
		})
	}
}
