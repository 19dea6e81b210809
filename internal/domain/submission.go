package domain

import "time"

// SubmissionStatus representa o estado de revisão de uma entrega de conteúdo
type SubmissionStatus string

const (
	SubmissionStatusSubmitted SubmissionStatus = "SUBMITTED"
	SubmissionStatusNeedsFix  SubmissionStatus = "NEEDS_FIX"
	SubmissionStatusApproved  SubmissionStatus = "APPROVED"
)

// SubmissionMetrics é um mapa aberto de métricas numéricas da publicação
// (views, likes, comments, shares, engagement_rate, reach, impressions, ...).
// O conjunto de chaves é extensível por plataforma
type SubmissionMetrics map[string]float64

type Submission struct {
	ID             string            `json:"id"`
	CampaignID     string            `json:"campaign_id"`
	ApplicationID  string            `json:"application_id"`
	InfluencerID   string            `json:"influencer_id"`
	PostURL        string            `json:"post_url"`
	ScreenshotURLs []string          `json:"screenshot_urls"`
	Metrics        SubmissionMetrics `json:"metrics"`
	Status         SubmissionStatus  `json:"status"`
	SubmittedAt    time.Time         `json:"submitted_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	ApprovedAt     *time.Time        `json:"approved_at,omitempty"`
	Feedback       *string           `json:"feedback,omitempty"`
}

// ReviewAction são as ações aceitas na revisão de uma entrega
type ReviewAction string

const (
	ReviewActionApprove  ReviewAction = "approve"
	ReviewActionNeedsFix ReviewAction = "needs_fix"
)
