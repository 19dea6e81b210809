// Package contacting recebe mensagens do formulário público de contato e
// repassa uma notificação best-effort para a equipe administrativa
package contacting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-hub-api/infrastructure/notification"
	"github.com/vfg2006/campaign-hub-api/infrastructure/repository"
	"github.com/vfg2006/campaign-hub-api/internal/config"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/workflow"
	"github.com/vfg2006/campaign-hub-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-hub-api/pkg/utils"
)

const maxMessageLength = 5000

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type Contacter interface {
	Intake(ctx context.Context, req *ContactRequest) (*domain.Contact, error)
	List(ctx context.Context, status domain.ContactStatus) ([]*domain.Contact, error)
	UpdateStatus(ctx context.Context, contactID string, status domain.ContactStatus) error
}

type service struct {
	contactRepo repository.ContactRepository
	notifier    notification.Notifier
	cfg         *config.Config
}

func NewService(contactRepo repository.ContactRepository, notifier notification.Notifier, cfg *config.Config) Contacter {
	return &service{
		contactRepo: contactRepo,
		notifier:    notifier,
		cfg:         cfg,
	}
}

// Intake persiste a mensagem e dispara a notificação em segundo plano.
// A resposta ao cliente nunca espera nem depende do envio do e-mail
func (s *service) Intake(ctx context.Context, req *ContactRequest) (*domain.Contact, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	contactID, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	contact := &domain.Contact{
		ID:        contactID,
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Message:   strings.TrimSpace(req.Message),
		Status:    domain.ContactStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	go s.notify(contact)

	return contact, nil
}

func (s *service) notify(contact *domain.Contact) {
	// A requisição HTTP original já pode ter terminado
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	adminSubject := fmt.Sprintf("Novo contato recebido: %s", contact.Name)
	adminBody := fmt.Sprintf("Nome: %s\nEmail: %s\n\n%s", contact.Name, contact.Email, contact.Message)

	if err := s.notifier.Send(ctx, []string{s.cfg.AWS.AdminEmail}, adminSubject, adminBody); err != nil {
		logrus.Warnf("Erro ao notificar contato %s: %v", contact.ID, err)
	}

	confirmationBody := fmt.Sprintf("Olá %s,\n\nRecebemos sua mensagem e responderemos em breve.", contact.Name)

	if err := s.notifier.Send(ctx, []string{contact.Email}, "Recebemos sua mensagem", confirmationBody); err != nil {
		logrus.Warnf("Erro ao enviar confirmação do contato %s: %v", contact.ID, err)
	}
}

// UpdateStatus permite ao time administrativo marcar a mensagem como
// respondida ou encerrada
func (s *service) UpdateStatus(ctx context.Context, contactID string, status domain.ContactStatus) error {
	if !status.IsValid() {
		return workflow.NewError(workflow.ErrValidation, apiErrors.ErrInvalidFormat,
			fmt.Sprintf("Status de contato inválido: %s", status))
	}

	if err := s.contactRepo.UpdateStatus(ctx, contactID, status); err != nil {
		switch err {
		case repository.ErrNotFound:
			return workflow.NewError(workflow.ErrNotFound, apiErrors.ErrResourceNotFound, "Contato não encontrado")
		default:
			return workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
		}
	}

	return nil
}

func (s *service) List(ctx context.Context, status domain.ContactStatus) ([]*domain.Contact, error) {
	contacts, err := s.contactRepo.List(ctx, status)
	if err != nil {
		return nil, workflow.NewError(workflow.ErrStorage, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return contacts, nil
}

func validateRequest(req *ContactRequest) error {
	if req == nil || req.Name == "" || req.Email == "" || req.Message == "" {
		return workflow.NewError(workflow.ErrValidation, apiErrors.ErrMissingRequiredData, "Nome, email e mensagem são obrigatórios")
	}

	if !strings.Contains(req.Email, "@") {
		return workflow.NewError(workflow.ErrValidation, apiErrors.ErrInvalidFormat, "Email inválido")
	}

	if len(req.Message) > maxMessageLength {
		return workflow.NewError(workflow.ErrValidation, apiErrors.ErrInvalidFormat, "Mensagem excede o tamanho máximo")
	}

	return nil
}
