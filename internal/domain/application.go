package domain

import "time"

// ApplicationStatus representa o estado de uma candidatura de influenciador
type ApplicationStatus string

const (
	ApplicationStatusApplied  ApplicationStatus = "APPLIED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
	ApplicationStatusSelected ApplicationStatus = "SELECTED"
)

type Application struct {
	ID           string            `json:"id"`
	CampaignID   string            `json:"campaign_id"`
	InfluencerID string            `json:"influencer_id"`
	Message      *string           `json:"message,omitempty"`
	Status       ApplicationStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	SelectedAt   *time.Time        `json:"selected_at,omitempty"`
}

// ApplicationWithCampaign é a candidatura acompanhada do resumo da campanha
// mãe no momento da leitura. Campaign fica nulo quando a campanha referenciada
// não existe mais (referência pendurada tolerada por contrato)
type ApplicationWithCampaign struct {
	Application
	Campaign *CampaignSnapshot `json:"campaign"`
}
