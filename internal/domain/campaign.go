package domain

import "time"

// CampaignStatus representa o estado atual de uma campanha no ciclo de vida
type CampaignStatus string

const (
	// Estados do fluxo normal da campanha
	CampaignStatusGenerated CampaignStatus = "GENERATED"
	CampaignStatusReviewed  CampaignStatus = "REVIEWED"
	CampaignStatusOpen      CampaignStatus = "OPEN"
	CampaignStatusMatching  CampaignStatus = "MATCHING"
	CampaignStatusRunning   CampaignStatus = "RUNNING"
	CampaignStatusCompleted CampaignStatus = "COMPLETED"

	// Estados terminais administrativos
	CampaignStatusFailed    CampaignStatus = "FAILED"
	CampaignStatusCancelled CampaignStatus = "CANCELLED"
)

// IsTerminal indica se o status não admite mais nenhuma transição
func (s CampaignStatus) IsTerminal() bool {
	return s == CampaignStatusCompleted ||
		s == CampaignStatusFailed ||
		s == CampaignStatusCancelled
}

// IsValid verifica se o valor corresponde a um status conhecido
func (s CampaignStatus) IsValid() bool {
	switch s {
	case CampaignStatusGenerated, CampaignStatusReviewed, CampaignStatusOpen,
		CampaignStatusMatching, CampaignStatusRunning, CampaignStatusCompleted,
		CampaignStatusFailed, CampaignStatusCancelled:
		return true
	}
	return false
}

type Campaign struct {
	ID                string         `json:"id"`
	AdvertiserID      string         `json:"advertiser_id"`
	Title             string         `json:"title"`
	Status            CampaignStatus `json:"status"`
	EstimatedDuration *int           `json:"estimated_duration,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	OpenedAt          *time.Time     `json:"opened_at,omitempty"`
	CompletedAt       *time.Time     `json:"completed_at,omitempty"`
	DeadlineDate      *time.Time     `json:"deadline_date,omitempty"`
}

// IsOverdue indica se a campanha está em execução com o prazo vencido
func (c *Campaign) IsOverdue(now time.Time) bool {
	return c.Status == CampaignStatusRunning &&
		c.DeadlineDate != nil &&
		c.DeadlineDate.Before(now)
}

// CampaignSnapshot é a visão resumida da campanha anexada às listagens de
// candidaturas do influenciador
type CampaignSnapshot struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Status   CampaignStatus `json:"status"`
	Deadline *time.Time     `json:"deadline,omitempty"`
}

type CreateCampaignRequest struct {
	Title             string     `json:"title"`
	DeadlineDate      *time.Time `json:"deadline_date"`
	EstimatedDuration *int       `json:"estimated_duration"`
}

// AdminStats agrega os contadores exibidos no painel administrativo
type AdminStats struct {
	TotalCampaigns   int `json:"total_campaigns"`
	PendingReview    int `json:"pending_review"`
	PendingContracts int `json:"pending_contracts"`
	DelayedContracts int `json:"delayed_contracts"`
}
