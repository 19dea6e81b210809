// Package reporting agrega os contadores exibidos no painel administrativo
package reporting

import (
	"context"
	"time"

	"github.com/vfg2006/campaign-hub-api/infrastructure/repository"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/workflow"
	"github.com/vfg2006/campaign-hub-api/pkg/apiErrors"
)

type Reporter interface {
	AdminStats(ctx context.Context) (*domain.AdminStats, error)
}

type service struct {
	campaignRepo repository.CampaignRepository
}

func NewService(campaignRepo repository.CampaignRepository) Reporter {
	return &service{
		campaignRepo: campaignRepo,
	}
}

func (s *service) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	total, err := s.campaignRepo.CountAll(ctx)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	pendingReview, err := s.campaignRepo.CountByStatus(ctx,
		domain.CampaignStatusGenerated, domain.CampaignStatusReviewed)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	pendingContracts, err := s.campaignRepo.CountByStatus(ctx, domain.CampaignStatusMatching)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	delayedContracts, err := s.campaignRepo.CountOverdue(ctx, time.Now())
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return &domain.AdminStats{
		TotalCampaigns:   total,
		PendingReview:    pendingReview,
		PendingContracts: pendingContracts,
		DelayedContracts: delayedContracts,
	}, nil
}
