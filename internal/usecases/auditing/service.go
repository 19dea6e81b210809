// Package auditing expõe a trilha imutável de eventos das campanhas.
// Eventos são gravados pelas operações que mudam estado e nunca são
// alterados ou removidos depois de escritos
package auditing

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-hub-api/infrastructure/repository"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/workflow"
	"github.com/vfg2006/campaign-hub-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-hub-api/pkg/utils"
)

type EventLogger interface {
	Record(ctx context.Context, event *domain.Event) error
	ListByCampaign(ctx context.Context, actor domain.Actor, campaignID string) ([]*domain.Event, error)
}

type service struct {
	eventRepo    repository.EventRepository
	campaignRepo repository.CampaignRepository
}

func NewService(eventRepo repository.EventRepository, campaignRepo repository.CampaignRepository) EventLogger {
	return &service{
		eventRepo:    eventRepo,
		campaignRepo: campaignRepo,
	}
}

// NewEvent monta um evento pronto para gravação. O ID é gerado aqui para que
// repositórios possam inserir o evento na mesma transação da mutação
func NewEvent(campaignID string, actor domain.Actor, eventType string, payload map[string]any) *domain.Event {
	eventID, err := utils.GenerateID()
	if err != nil {
		// gonanoid só falha se o gerador de entropia do SO falhar
		logrus.Errorf("Erro ao gerar ID de evento: %v", err)
	}

	return &domain.Event{
		ID:         eventID,
		CampaignID: campaignID,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Type:       eventType,
		Payload:    payload,
		CreatedAt:  time.Now(),
	}
}

func (s *service) Record(ctx context.Context, event *domain.Event) error {
	if event.CampaignID == "" || event.Type == "" {
		return workflow.NewError(workflow.ErrValidation, apiErrors.ErrMissingRequiredData, "Evento sem campanha ou tipo")
	}

	if err := s.eventRepo.Append(ctx, event); err != nil {
		return workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return nil
}

// ListByCampaign retorna a trilha completa da campanha em ordem de gravação.
// Anunciantes só enxergam as próprias campanhas; administradores, todas
func (s *service) ListByCampaign(ctx context.Context, actor domain.Actor, campaignID string) ([]*domain.Event, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if campaign == nil {
		return nil, workflow.NewError(workflow.ErrNotFound, apiErrors.ErrResourceNotFound, "Campanha não encontrada")
	}

	if actor.Role != domain.RoleAdmin && campaign.AdvertiserID != actor.ID {
		return nil, workflow.NewError(workflow.ErrForbidden, apiErrors.ErrInsufficientPrivilege, "Trilha de eventos restrita ao dono da campanha")
	}

	events, err := s.eventRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return events, nil
}
