// Package submitting implementa o fluxo de entregas de conteúdo: influenciadores
// selecionados registram suas publicações e anunciantes as revisam
package submitting

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-hub-api/infrastructure/repository"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/auditing"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/authorizing"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/workflow"
	"github.com/vfg2006/campaign-hub-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-hub-api/pkg/utils"
)

// SubmitRequest carrega os dados da entrega enviados pelo influenciador
type SubmitRequest struct {
	PostURL        string                   `json:"post_url"`
	ScreenshotURLs []string                 `json:"screenshot_urls"`
	Metrics        domain.SubmissionMetrics `json:"metrics"`
}

type Submitter interface {
	Submit(ctx context.Context, actor domain.Actor, campaignID string, req *SubmitRequest) (*domain.Submission, error)
	Review(ctx context.Context, actor domain.Actor, campaignID, submissionID string, action domain.ReviewAction, feedback *string) (*domain.Submission, error)
	ListForCampaign(ctx context.Context, actor domain.Actor, campaignID string) ([]*domain.Submission, error)
}

type service struct {
	submissionRepo  repository.SubmissionRepository
	applicationRepo repository.ApplicationRepository
	campaignRepo    repository.CampaignRepository
}

func NewService(
	submissionRepo repository.SubmissionRepository,
	applicationRepo repository.ApplicationRepository,
	campaignRepo repository.CampaignRepository,
) Submitter {
	return &service{
		submissionRepo:  submissionRepo,
		applicationRepo: applicationRepo,
		campaignRepo:    campaignRepo,
	}
}

// Submit registra uma entrega de conteúdo. Só influenciadores selecionados
// podem entregar; a entrega vale a partir do momento da seleção, qualquer que
// seja o status da campanha
func (s *service) Submit(ctx context.Context, actor domain.Actor, campaignID string, req *SubmitRequest) (*domain.Submission, error) {
	if err := validateSubmitRequest(req); err != nil {
		return nil, err
	}

	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if campaign == nil {
		return nil, workflow.NewError(workflow.ErrNotFound, apiErrors.ErrResourceNotFound, "Campanha não encontrada")
	}

	application, err := s.applicationRepo.GetByInfluencer(ctx, campaignID, actor.ID)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if application == nil || !authorizing.CanPerform(actor.Role, authorizing.ActionSubmit, application.InfluencerID, actor.ID) {
		return nil, workflow.NewError(workflow.ErrForbidden, apiErrors.ErrInsufficientPrivilege, "Influenciador não participa desta campanha")
	}

	if application.Status != domain.ApplicationStatusSelected {
		return nil, workflow.NewError(workflow.ErrInvalidState, apiErrors.ErrInvalidState, "Apenas influenciadores selecionados podem registrar entregas")
	}

	submissionID, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	submission := &domain.Submission{
		ID:             submissionID,
		CampaignID:     campaignID,
		ApplicationID:  application.ID,
		InfluencerID:   actor.ID,
		PostURL:        req.PostURL,
		ScreenshotURLs: req.ScreenshotURLs,
		Metrics:        req.Metrics,
		Status:         domain.SubmissionStatusSubmitted,
		SubmittedAt:    now,
		UpdatedAt:      now,
	}

	event := auditing.NewEvent(campaignID, actor, domain.EventSubmissionSubmitted, map[string]any{
		"submission_id": submissionID,
		"post_url":      req.PostURL,
	})

	if err := s.submissionRepo.Create(ctx, submission, event); err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return submission, nil
}

func validateSubmitRequest(req *SubmitRequest) error {
	if req == nil || req.PostURL == "" {
		return workflow.NewError(workflow.ErrValidation, apiErrors.ErrMissingRequiredData, "URL da publicação é obrigatória")
	}

	parsed, err := url.Parse(req.PostURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return workflow.NewError(workflow.ErrValidation, apiErrors.ErrInvalidFormat, "URL da publicação inválida")
	}

	for name, value := range req.Metrics {
		if value < 0 {
			return workflow.NewError(workflow.ErrValidation, apiErrors.ErrInvalidFormat,
				fmt.Sprintf("Métrica %s não pode ser negativa", name))
		}
	}

	return nil
}

// Review aplica o veredito do anunciante sobre a entrega. Aprovações são
// definitivas; pedidos de ajuste devolvem a entrega ao influenciador, com
// feedback opcional
func (s *service) Review(ctx context.Context, actor domain.Actor, campaignID, submissionID string, action domain.ReviewAction, feedback *string) (*domain.Submission, error) {
	if action != domain.ReviewActionApprove && action != domain.ReviewActionNeedsFix {
		return nil, workflow.NewError(workflow.ErrValidation, apiErrors.ErrInvalidFormat, fmt.Sprintf("Ação desconhecida: %s", action))
	}

	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if campaign == nil {
		return nil, workflow.NewError(workflow.ErrNotFound, apiErrors.ErrResourceNotFound, "Campanha não encontrada")
	}

	if !authorizing.CanPerform(actor.Role, authorizing.ActionReview, campaign.AdvertiserID, actor.ID) {
		return nil, workflow.NewError(workflow.ErrForbidden, apiErrors.ErrInsufficientPrivilege, "Ator sem direitos sobre a campanha")
	}

	submission, err := s.submissionRepo.GetByID(ctx, campaignID, submissionID)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if submission == nil {
		return nil, workflow.NewError(workflow.ErrNotFound, apiErrors.ErrResourceNotFound, "Entrega não encontrada")
	}

	if submission.Status == domain.SubmissionStatusApproved {
		return nil, workflow.NewError(workflow.ErrInvalidState, apiErrors.ErrInvalidState, "Entrega aprovada é imutável")
	}

	now := time.Now()
	params := repository.ReviewSubmissionParams{
		CampaignID:   campaignID,
		SubmissionID: submissionID,
	}

	eventType := domain.EventSubmissionNeedsFix
	if action == domain.ReviewActionApprove {
		params.Status = domain.SubmissionStatusApproved
		params.ApprovedAt = &now
		eventType = domain.EventSubmissionApproved
	} else {
		params.Status = domain.SubmissionStatusNeedsFix
		if feedback != nil && *feedback != "" {
			params.Feedback = feedback
		}
	}

	event := auditing.NewEvent(campaignID, actor, eventType, map[string]any{
		"submission_id": submissionID,
		"influencer_id": submission.InfluencerID,
	})

	if err := s.submissionRepo.Review(ctx, params, event); err != nil {
		switch err {
		case repository.ErrNotFound:
			return nil, workflow.NewError(workflow.ErrNotFound, apiErrors.ErrResourceNotFound, "Entrega não encontrada")
		case repository.ErrStaleStatus:
			return nil, workflow.NewError(workflow.ErrConflict, apiErrors.ErrConflict, "Entrega já foi aprovada por outra operação")
		default:
			return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
		}
	}

	logrus.Infof("Entrega %s da campanha %s revisada como %s por %s",
		submissionID, campaignID, params.Status, actor.ID)

	// Aprovação não mexe no feedback já armazenado
	submission.Status = params.Status
	submission.UpdatedAt = now
	if params.ApprovedAt != nil {
		submission.ApprovedAt = params.ApprovedAt
	}
	if params.Feedback != nil {
		submission.Feedback = params.Feedback
	}

	return submission, nil
}

// ListForCampaign retorna as entregas da campanha. Influenciadores enxergam
// apenas as próprias entregas; anunciante dono e administradores, todas
func (s *service) ListForCampaign(ctx context.Context, actor domain.Actor, campaignID string) ([]*domain.Submission, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if campaign == nil {
		return nil, workflow.NewError(workflow.ErrNotFound, apiErrors.ErrResourceNotFound, "Campanha não encontrada")
	}

	if actor.Role == domain.RoleAdvertiser && campaign.AdvertiserID != actor.ID {
		return nil, workflow.NewError(workflow.ErrForbidden, apiErrors.ErrInsufficientPrivilege, "Entregas restritas ao dono da campanha")
	}

	submissions, err := s.submissionRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if actor.Role == domain.RoleInfluencer {
		own := make([]*domain.Submission, 0)
		for _, submission := range submissions {
			if submission.InfluencerID == actor.ID {
				own = append(own, submission)
			}
		}
		return own, nil
	}

	return submissions, nil
}
