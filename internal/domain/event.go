package domain

import "time"

// Tipos de eventos registrados pelas operações que mudam estado
const (
	EventApplicationSubmitted = "application_submitted"
	EventApplicationCancelled = "application_cancelled"
	EventApplicationRejected  = "application_rejected"
	EventInfluencerSelected   = "influencer_selected"
	EventSubmissionSubmitted  = "submission_submitted"
	EventSubmissionApproved   = "submission_approved"
	EventSubmissionNeedsFix   = "submission_needs_fix"
	EventStatusChanged        = "status_changed"
	EventCampaignCompleted    = "campaign_completed"
	EventDeadlineReminder     = "deadline_reminder"
	EventDeadlineOverdue      = "deadline_overdue"
)

// Event é o registro imutável de auditoria de uma ação que mudou estado.
// Nunca é alterado nem removido depois de escrito; a ordenação dentro de uma
// campanha é por created_at
type Event struct {
	ID         string         `json:"id"`
	CampaignID string         `json:"campaign_id"`
	ActorID    string         `json:"actor_id"`
	ActorRole  Role           `json:"actor_role"`
	Type       string         `json:"type"`
	Payload    map[string]any `json:"payload,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
