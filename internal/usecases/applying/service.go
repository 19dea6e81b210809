// Package applying implementa o fluxo de candidaturas: influenciadores se
// candidatam a campanhas abertas e anunciantes decidem entre selecionar ou
// rejeitar cada candidatura
package applying

import (
	"context"
	"fmt"
	"regexp"
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

// DecisionAction são as ações aceitas na decisão sobre uma candidatura
type DecisionAction string

const (
	DecisionSelect DecisionAction = "select"
	DecisionReject DecisionAction = "reject"
)

// Telefones e handles de rede social não podem circular pela mensagem da
// candidatura antes da seleção
var contactInfoPattern = regexp.MustCompile(`\d{3}-\d{4}-\d{4}|@\w+`)

func sanitizeMessage(message *string) *string {
	if message == nil {
		return nil
	}

	filtered := contactInfoPattern.ReplaceAllString(*message, "[contato removido]")
	return &filtered
}

type Applier interface {
	Apply(ctx context.Context, actor domain.Actor, campaignID string, message *string) (*domain.Application, error)
	Cancel(ctx context.Context, actor domain.Actor, campaignID, applicationID string) error
	Decide(ctx context.Context, actor domain.Actor, campaignID, applicationID string, action DecisionAction) (*domain.Application, error)
	ListForCampaign(ctx context.Context, actor domain.Actor, campaignID string) ([]*domain.Application, error)
	ListForInfluencer(ctx context.Context, actor domain.Actor) ([]*domain.ApplicationWithCampaign, error)
}

type service struct {
	applicationRepo repository.ApplicationRepository
	campaignRepo    repository.CampaignRepository
}

func NewService(applicationRepo repository.ApplicationRepository, campaignRepo repository.CampaignRepository) Applier {
	return &service{
		applicationRepo: applicationRepo,
		campaignRepo:    campaignRepo,
	}
}

// Apply registra a candidatura do influenciador em uma campanha que ainda
// aceita candidaturas (OPEN ou MATCHING).
// Cada influenciador pode ter no máximo uma candidatura por campanha
func (s *service) Apply(ctx context.Context, actor domain.Actor, campaignID string, message *string) (*domain.Application, error) {
	if actor.Role != domain.RoleInfluencer {
		return nil, workflow.NewError(workflow.ErrForbidden, apiErrors.ErrInsufficientPrivilege, "Apenas influenciadores podem se candidatar")
	}

	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if campaign == nil {
		return nil, workflow.NewError(workflow.ErrNotFound, apiErrors.ErrResourceNotFound, "Campanha não encontrada")
	}

	if campaign.Status != domain.CampaignStatusOpen && campaign.Status != domain.CampaignStatusMatching {
		return nil, workflow.NewError(workflow.ErrValidation, apiErrors.ErrInvalidRequest,
			fmt.Sprintf("Campanha não está aberta para candidaturas (status %s)", campaign.Status))
	}

	existing, err := s.applicationRepo.GetByInfluencer(ctx, campaignID, actor.ID)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if existing != nil {
		return nil, workflow.NewError(workflow.ErrInvalidState, apiErrors.ErrInvalidState, "Influenciador já se candidatou a esta campanha")
	}

	applicationID, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	application := &domain.Application{
		ID:           applicationID,
		CampaignID:   campaignID,
		InfluencerID: actor.ID,
		Message:      sanitizeMessage(message),
		Status:       domain.ApplicationStatusApplied,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	event := auditing.NewEvent(campaignID, actor, domain.EventApplicationSubmitted, map[string]any{
		"application_id": applicationID,
	})

	if err := s.applicationRepo.Create(ctx, application, event); err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return application, nil
}

// Cancel remove a candidatura do próprio influenciador. Candidaturas já
// selecionadas não podem mais ser canceladas
func (s *service) Cancel(ctx context.Context, actor domain.Actor, campaignID, applicationID string) error {
	application, err := s.applicationRepo.GetByID(ctx, campaignID, applicationID)
	if err != nil {
		return workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if application == nil {
		return workflow.NewError(workflow.ErrNotFound, apiErrors.ErrResourceNotFound, "Candidatura não encontrada")
	}

	if !authorizing.CanPerform(actor.Role, authorizing.ActionCancel, application.InfluencerID, actor.ID) {
		return workflow.NewError(workflow.ErrForbidden, apiErrors.ErrInsufficientPrivilege, "Candidatura pertence a outro influenciador")
	}

	if application.Status == domain.ApplicationStatusSelected {
		return workflow.NewError(workflow.ErrInvalidState, apiErrors.ErrInvalidState, "Candidatura selecionada não pode ser cancelada")
	}

	event := auditing.NewEvent(campaignID, actor, domain.EventApplicationCancelled, map[string]any{
		"application_id": applicationID,
	})

	if err := s.applicationRepo.Delete(ctx, campaignID, applicationID, event); err != nil {
		switch err {
		case repository.ErrNotFound:
			return workflow.NewError(workflow.ErrNotFound, apiErrors.ErrResourceNotFound, "Candidatura não encontrada")
		case repository.ErrStaleStatus:
			// Seleção venceu a corrida com o cancelamento
			return workflow.NewError(workflow.ErrInvalidState, apiErrors.ErrInvalidState, "Candidatura selecionada não pode ser cancelada")
		default:
			return workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
		}
	}

	return nil
}

// Decide aplica a decisão do anunciante sobre uma candidatura pendente.
// A decisão é definitiva: candidaturas decididas não voltam a APPLIED
func (s *service) Decide(ctx context.Context, actor domain.Actor, campaignID, applicationID string, action DecisionAction) (*domain.Application, error) {
	if action != DecisionSelect && action != DecisionReject {
		return nil, workflow.NewError(workflow.ErrValidation, apiErrors.ErrInvalidFormat, fmt.Sprintf("Ação desconhecida: %s", action))
	}

	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if campaign == nil {
		return nil, workflow.NewError(workflow.ErrNotFound, apiErrors.ErrResourceNotFound, "Campanha não encontrada")
	}

	if !authorizing.CanPerform(actor.Role, authorizing.ActionSelect, campaign.AdvertiserID, actor.ID) {
		return nil, workflow.NewError(workflow.ErrForbidden, apiErrors.ErrInsufficientPrivilege, "Ator sem direitos sobre a campanha")
	}

	application, err := s.applicationRepo.GetByID(ctx, campaignID, applicationID)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if application == nil {
		return nil, workflow.NewError(workflow.ErrNotFound, apiErrors.ErrResourceNotFound, "Candidatura não encontrada")
	}

	if application.Status != domain.ApplicationStatusApplied {
		return nil, workflow.NewError(workflow.ErrInvalidState, apiErrors.ErrInvalidState,
			fmt.Sprintf("Candidatura já decidida (status %s)", application.Status))
	}

	now := time.Now()
	params := repository.UpdateApplicationStatusParams{
		ID:         applicationID,
		CampaignID: campaignID,
		From:       domain.ApplicationStatusApplied,
	}

	eventType := domain.EventApplicationRejected
	if action == DecisionSelect {
		params.To = domain.ApplicationStatusSelected
		params.SelectedAt = &now
		eventType = domain.EventInfluencerSelected
	} else {
		params.To = domain.ApplicationStatusRejected
	}

	event := auditing.NewEvent(campaignID, actor, eventType, map[string]any{
		"application_id": applicationID,
		"influencer_id":  application.InfluencerID,
	})

	if err := s.applicationRepo.UpdateStatus(ctx, params, event); err != nil {
		switch err {
		case repository.ErrNotFound:
			return nil, workflow.NewError(workflow.ErrNotFound, apiErrors.ErrResourceNotFound, "Candidatura não encontrada")
		case repository.ErrStaleStatus:
			// Duas decisões concorrentes: exatamente uma vence
			return nil, workflow.NewError(workflow.ErrConflict, apiErrors.ErrConflict, "Candidatura já foi decidida por outra operação")
		default:
			return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
		}
	}

	logrus.Infof("Candidatura %s da campanha %s decidida como %s por %s",
		applicationID, campaignID, params.To, actor.ID)

	application.Status = params.To
	application.UpdatedAt = now
	application.SelectedAt = params.SelectedAt

	return application, nil
}

func (s *service) ListForCampaign(ctx context.Context, actor domain.Actor, campaignID string) ([]*domain.Application, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if campaign == nil {
		return nil, workflow.NewError(workflow.ErrNotFound, apiErrors.ErrResourceNotFound, "Campanha não encontrada")
	}

	if actor.Role != domain.RoleAdmin && campaign.AdvertiserID != actor.ID {
		return nil, workflow.NewError(workflow.ErrForbidden, apiErrors.ErrInsufficientPrivilege, "Candidaturas restritas ao dono da campanha")
	}

	applications, err := s.applicationRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return applications, nil
}

// ListForInfluencer retorna as candidaturas do próprio influenciador com o
// resumo da campanha associada. Campanhas removidas aparecem com resumo nulo
func (s *service) ListForInfluencer(ctx context.Context, actor domain.Actor) ([]*domain.ApplicationWithCampaign, error) {
	if actor.Role != domain.RoleInfluencer {
		return nil, workflow.NewError(workflow.ErrForbidden, apiErrors.ErrInsufficientPrivilege, "Listagem disponível apenas para influenciadores")
	}

	applications, err := s.applicationRepo.ListByInfluencer(ctx, actor.ID)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return applications, nil
}
