package domain

import "time"

// PenaltyType classifica a severidade da penalidade aplicada
type PenaltyType string

const (
	PenaltyTypeWarning    PenaltyType = "warning"
	PenaltyTypeSuspension PenaltyType = "suspension"
)

// PenaltyStatus representa o estado de tratamento da penalidade
type PenaltyStatus string

const (
	PenaltyStatusPending PenaltyStatus = "pending"
	PenaltyStatusApplied PenaltyStatus = "applied"
	PenaltyStatusWaived  PenaltyStatus = "waived"
)

// Penalty registra o descumprimento de prazo de um influenciador selecionado,
// gerado pela detecção automática de atraso
type Penalty struct {
	ID           string        `json:"id"`
	CampaignID   string        `json:"campaign_id"`
	InfluencerID string        `json:"influencer_id"`
	Reason       string        `json:"reason"`
	Description  string        `json:"description"`
	PenaltyType  PenaltyType   `json:"penalty_type"`
	Status       PenaltyStatus `json:"status"`
	AppliedBy    string        `json:"applied_by"`
	CreatedAt    time.Time     `json:"created_at"`
}
