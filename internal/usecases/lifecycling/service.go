// Package lifecycling implementa o ciclo de vida de campanhas: criação,
// consulta e a máquina de estados que governa as transições de status
package lifecycling

import (
	"context"
	"fmt"
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

const (
	defaultOpenPageSize = 20
	maxOpenPageSize     = 100
)

// arestas do fluxo normal da campanha. Cancelamento e falha são arestas
// administrativas tratadas à parte
var forwardTransitions = map[domain.CampaignStatus]domain.CampaignStatus{
	domain.CampaignStatusGenerated: domain.CampaignStatusReviewed,
	domain.CampaignStatusReviewed:  domain.CampaignStatusOpen,
	domain.CampaignStatusOpen:      domain.CampaignStatusMatching,
	domain.CampaignStatusMatching:  domain.CampaignStatusRunning,
	domain.CampaignStatusRunning:   domain.CampaignStatusCompleted,
}

// transições disparadas pelos agendadores internos com ator de sistema
var systemTransitions = map[domain.CampaignStatus]domain.CampaignStatus{
	domain.CampaignStatusReviewed: domain.CampaignStatusOpen,
	domain.CampaignStatusRunning:  domain.CampaignStatusCompleted,
}

type Lifecycler interface {
	Create(ctx context.Context, actor domain.Actor, req *domain.CreateCampaignRequest) (*domain.Campaign, error)
	Get(ctx context.Context, actor domain.Actor, campaignID string) (*domain.Campaign, error)
	List(ctx context.Context, actor domain.Actor, statuses []domain.CampaignStatus, cursor string, limit uint64) ([]*domain.Campaign, error)
	ListOpen(ctx context.Context, cursor string, limit uint64) ([]*domain.Campaign, error)
	Transition(ctx context.Context, actor domain.Actor, campaignID string, to domain.CampaignStatus) (*domain.Campaign, error)
}

type service struct {
	campaignRepo repository.CampaignRepository
}

func NewService(campaignRepo repository.CampaignRepository) Lifecycler {
	return &service{
		campaignRepo: campaignRepo,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req *domain.CreateCampaignRequest) (*domain.Campaign, error) {
	if req.Title == "" {
		return nil, workflow.NewError(workflow.ErrValidation, apiErrors.ErrMissingRequiredData, "Título é obrigatório")
	}

	if req.DeadlineDate != nil && req.DeadlineDate.Before(time.Now()) {
		return nil, workflow.NewError(workflow.ErrValidation, apiErrors.ErrInvalidRequest, "Prazo não pode estar no passado")
	}

	campaignID, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	campaign := &domain.Campaign{
		ID:                campaignID,
		AdvertiserID:      actor.ID,
		Title:             req.Title,
		Status:            domain.CampaignStatusGenerated,
		EstimatedDuration: req.EstimatedDuration,
		DeadlineDate:      req.DeadlineDate,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return campaign, nil
}

func (s *service) Get(ctx context.Context, actor domain.Actor, campaignID string) (*domain.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if campaign == nil {
		return nil, workflow.NewError(workflow.ErrNotFound, apiErrors.ErrResourceNotFound, "Campanha não encontrada")
	}

	// Influenciadores só enxergam campanhas já publicadas
	if actor.Role == domain.RoleInfluencer && campaign.Status == domain.CampaignStatusGenerated {
		return nil, workflow.NewError(workflow.ErrNotFound, apiErrors.ErrResourceNotFound, "Campanha não encontrada")
	}

	if actor.Role == domain.RoleAdvertiser && campaign.AdvertiserID != actor.ID {
		return nil, workflow.NewError(workflow.ErrForbidden, apiErrors.ErrInsufficientPrivilege, "Campanha pertence a outro anunciante")
	}

	return campaign, nil
}

// List retorna as campanhas visíveis ao ator. Anunciantes enxergam apenas as
// próprias campanhas; administradores, todas
func (s *service) List(ctx context.Context, actor domain.Actor, statuses []domain.CampaignStatus, cursor string, limit uint64) ([]*domain.Campaign, error) {
	for _, status := range statuses {
		if !status.IsValid() {
			return nil, workflow.NewError(workflow.ErrValidation, apiErrors.ErrInvalidFormat, fmt.Sprintf("Status desconhecido: %s", status))
		}
	}

	filter := repository.CampaignFilter{
		Statuses: statuses,
		Cursor:   cursor,
		Limit:    normalizeLimit(limit),
	}

	if actor.Role == domain.RoleAdvertiser {
		filter.AdvertiserID = actor.ID
	}

	campaigns, err := s.campaignRepo.List(ctx, filter)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return campaigns, nil
}

// ListOpen é a vitrine de descoberta dos influenciadores: campanhas abertas
// ordenadas da publicação mais recente para a mais antiga
func (s *service) ListOpen(ctx context.Context, cursor string, limit uint64) ([]*domain.Campaign, error) {
	campaigns, err := s.campaignRepo.ListOpen(ctx, cursor, normalizeLimit(limit))
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return campaigns, nil
}

func normalizeLimit(limit uint64) uint64 {
	if limit == 0 {
		return defaultOpenPageSize
	}
	if limit > maxOpenPageSize {
		return maxOpenPageSize
	}
	return limit
}

// Transition move a campanha para o status de destino, validando a aresta e
// a autorização do ator. A escrita é condicional ao status de origem lido,
// então duas transições concorrentes nunca são aplicadas sobre a mesma origem
func (s *service) Transition(ctx context.Context, actor domain.Actor, campaignID string, to domain.CampaignStatus) (*domain.Campaign, error) {
	if !to.IsValid() {
		return nil, workflow.NewError(workflow.ErrValidation, apiErrors.ErrInvalidFormat, fmt.Sprintf("Status desconhecido: %s", to))
	}

	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if campaign == nil {
		return nil, workflow.NewError(workflow.ErrNotFound, apiErrors.ErrResourceNotFound, "Campanha não encontrada")
	}

	if err := s.authorizeTransition(actor, campaign, to); err != nil {
		return nil, err
	}

	if err := s.validateTransition(actor, campaign, to); err != nil {
		return nil, err
	}

	now := time.Now()
	params := repository.UpdateCampaignStatusParams{
		ID:   campaign.ID,
		From: campaign.Status,
		To:   to,
	}

	eventType := domain.EventStatusChanged
	switch to {
	case domain.CampaignStatusOpen:
		params.OpenedAt = &now
	case domain.CampaignStatusCompleted:
		params.CompletedAt = &now
		eventType = domain.EventCampaignCompleted
	}

	event := auditing.NewEvent(campaign.ID, actor, eventType, map[string]any{
		"from": string(campaign.Status),
		"to":   string(to),
	})

	if err := s.campaignRepo.UpdateStatus(ctx, params, event); err != nil {
		switch err {
		case repository.ErrNotFound:
			return nil, workflow.NewError(workflow.ErrNotFound, apiErrors.ErrResourceNotFound, "Campanha não encontrada")
		case repository.ErrStaleStatus:
			return nil, workflow.NewError(workflow.ErrConflict, apiErrors.ErrConflict, "Campanha foi alterada por outra operação")
		default:
			return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
		}
	}

	logrus.Infof("Campanha %s transicionada de %s para %s por %s (%s)",
		campaign.ID, campaign.Status, to, actor.ID, actor.Role)

	campaign.Status = to
	campaign.UpdatedAt = now
	if params.OpenedAt != nil {
		campaign.OpenedAt = params.OpenedAt
	}
	if params.CompletedAt != nil {
		campaign.CompletedAt = params.CompletedAt
	}

	return campaign, nil
}

func (s *service) authorizeTransition(actor domain.Actor, campaign *domain.Campaign, to domain.CampaignStatus) error {
	// Agendadores internos só disparam as transições automáticas
	if actor.Role == domain.RoleSystem {
		if target, ok := systemTransitions[campaign.Status]; ok && target == to {
			return nil
		}
		return workflow.NewError(workflow.ErrForbidden, apiErrors.ErrInsufficientPrivilege, "Transição automática não permitida")
	}

	if !authorizing.CanPerform(actor.Role, authorizing.ActionTransition, campaign.AdvertiserID, actor.ID) {
		return workflow.NewError(workflow.ErrForbidden, apiErrors.ErrInsufficientPrivilege, "Ator sem direitos sobre a campanha")
	}

	return nil
}

func (s *service) validateTransition(actor domain.Actor, campaign *domain.Campaign, to domain.CampaignStatus) error {
	if campaign.Status.IsTerminal() {
		return workflow.NewError(workflow.ErrInvalidTransition, apiErrors.ErrInvalidTransition,
			fmt.Sprintf("Campanha em estado terminal %s", campaign.Status))
	}

	switch to {
	case domain.CampaignStatusCancelled:
		// Qualquer estado não terminal pode ser cancelado, mas apenas por
		// administradores
		if actor.Role != domain.RoleAdmin {
			return workflow.NewError(workflow.ErrForbidden, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem cancelar campanhas")
		}
		return nil

	case domain.CampaignStatusFailed:
		if actor.Role != domain.RoleAdmin {
			return workflow.NewError(workflow.ErrForbidden, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem marcar campanhas como falhas")
		}
		if campaign.Status != domain.CampaignStatusRunning {
			return workflow.NewError(workflow.ErrInvalidTransition, apiErrors.ErrInvalidTransition,
				fmt.Sprintf("Transição %s -> FAILED não permitida", campaign.Status))
		}
		if !campaign.IsOverdue(time.Now()) {
			return workflow.NewError(workflow.ErrInvalidState, apiErrors.ErrInvalidState, "Campanha só pode falhar após o vencimento do prazo")
		}
		return nil
	}

	if next, ok := forwardTransitions[campaign.Status]; !ok || next != to {
		return workflow.NewError(workflow.ErrInvalidTransition, apiErrors.ErrInvalidTransition,
			fmt.Sprintf("Transição %s -> %s não permitida", campaign.Status, to))
	}

	// Prazo definido é pré-requisito para colocar a campanha em execução
	if to == domain.CampaignStatusRunning && campaign.DeadlineDate == nil {
		return workflow.NewError(workflow.ErrInvalidState, apiErrors.ErrInvalidState, "Campanha sem prazo definido não pode entrar em execução")
	}

	return nil
}
