package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-hub-api/infrastructure/repository"
	"github.com/vfg2006/campaign-hub-api/internal/config"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/lifecycling"
)

// ator usado pelos agendadores ao registrar transições automáticas
var systemActor = domain.Actor{ID: "scheduler", Role: domain.RoleSystem}

// StatusTransitionConfig representa a configuração do agendador de transições automáticas
type StatusTransitionConfig struct {
	CronSchedule       string
	AutoOpenDelayHours int
	SyncEnabled        bool
}

// StatusTransitionService aplica as transições automáticas de campanhas:
// abertura de campanhas revisadas após o período de carência e conclusão de
// campanhas em execução com prazo vencido e todas as entregas aprovadas
type StatusTransitionService struct {
	scheduler           *gocron.Scheduler
	config              StatusTransitionConfig
	campaignRepo        repository.CampaignRepository
	applicationRepo     repository.ApplicationRepository
	submissionRepo      repository.SubmissionRepository
	lifecycler          lifecycling.Lifecycler
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewStatusTransitionService cria uma nova instância do serviço de transições automáticas
func NewStatusTransitionService(
	campaignRepo repository.CampaignRepository,
	applicationRepo repository.ApplicationRepository,
	submissionRepo repository.SubmissionRepository,
	lifecycler lifecycling.Lifecycler,
	appConfig *config.Config,
) *StatusTransitionService {
	transitionConfig := StatusTransitionConfig{
		CronSchedule:       appConfig.StatusTransition.CronSchedule,
		AutoOpenDelayHours: appConfig.StatusTransition.AutoOpenDelayHours,
		SyncEnabled:        appConfig.StatusTransition.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         transitionConfig.CronSchedule,
		"auto_open_delay_hours": transitionConfig.AutoOpenDelayHours,
		"sync_enabled":          transitionConfig.SyncEnabled,
	}).Info("Configuração do agendador de transições automáticas carregada")

	return &StatusTransitionService{
		scheduler:       scheduler,
		config:          transitionConfig,
		campaignRepo:    campaignRepo,
		applicationRepo: applicationRepo,
		submissionRepo:  submissionRepo,
		lifecycler:      lifecycler,
		syncRunning:     false,
	}
}

// Start inicia o agendador
func (s *StatusTransitionService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Transições automáticas de campanhas desabilitadas por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de transições automáticas de campanhas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runTransitions()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar transições automáticas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de transições automáticas de campanhas")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *StatusTransitionService) runTransitions() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Transições automáticas já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	opened := s.autoOpenReviewed(ctx)
	completed := s.autoCompleteRunning(ctx)

	logrus.WithFields(logrus.Fields{
		"opened":    opened,
		"completed": completed,
	}).Info("Transições automáticas de campanhas concluídas")
}

// autoOpenReviewed abre campanhas revisadas há mais tempo que o período de
// carência configurado
func (s *StatusTransitionService) autoOpenReviewed(ctx context.Context) int {
	cutoff := time.Now().Add(-time.Duration(s.config.AutoOpenDelayHours) * time.Hour)

	campaigns, err := s.campaignRepo.ListReviewedBefore(ctx, cutoff)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar campanhas revisadas para abertura automática")
		return 0
	}

	opened := 0
	for _, campaign := range campaigns {
		if _, err := s.lifecycler.Transition(ctx, systemActor, campaign.ID, domain.CampaignStatusOpen); err != nil {
			logrus.WithError(err).Warnf("Erro ao abrir automaticamente a campanha %s", campaign.ID)
			continue
		}
		opened++
	}

	return opened
}

// autoCompleteRunning conclui campanhas em execução com prazo vencido quando
// todos os influenciadores selecionados já tiveram uma entrega aprovada
func (s *StatusTransitionService) autoCompleteRunning(ctx context.Context) int {
	campaigns, err := s.campaignRepo.ListOverdue(ctx, []domain.CampaignStatus{domain.CampaignStatusRunning}, time.Now())
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar campanhas vencidas para conclusão automática")
		return 0
	}

	completed := 0
	for _, campaign := range campaigns {
		done, err := s.allSelectedApproved(ctx, campaign.ID)
		if err != nil {
			logrus.WithError(err).Warnf("Erro ao verificar entregas da campanha %s", campaign.ID)
			continue
		}

		if !done {
			continue
		}

		if _, err := s.lifecycler.Transition(ctx, systemActor, campaign.ID, domain.CampaignStatusCompleted); err != nil {
			logrus.WithError(err).Warnf("Erro ao concluir automaticamente a campanha %s", campaign.ID)
			continue
		}
		completed++
	}

	return completed
}

func (s *StatusTransitionService) allSelectedApproved(ctx context.Context, campaignID string) (bool, error) {
	selected, err := s.applicationRepo.ListSelectedByCampaign(ctx, campaignID)
	if err != nil {
		return false, err
	}

	// Campanha sem influenciadores selecionados não é concluída automaticamente
	if len(selected) == 0 {
		return false, nil
	}

	for _, application := range selected {
		approved, err := s.submissionRepo.HasApprovedByInfluencer(ctx, campaignID, application.InfluencerID)
		if err != nil {
			return false, err
		}
		if !approved {
			return false, nil
		}
	}

	return true, nil
}

// TriggerManualSync executa manualmente uma rodada de transições automáticas
func (s *StatusTransitionService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Transições automáticas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	go s.runTransitions()
}

// GetStatus retorna o status atual do agendador
func (s *StatusTransitionService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
