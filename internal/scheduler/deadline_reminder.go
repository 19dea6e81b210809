package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-hub-api/infrastructure/notification"
	"github.com/vfg2006/campaign-hub-api/infrastructure/repository"
	"github.com/vfg2006/campaign-hub-api/internal/config"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/auditing"
)

// DeadlineReminderConfig representa a configuração do agendador de lembretes de prazo
type DeadlineReminderConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// DeadlineReminderService avisa anunciantes e influenciadores selecionados
// sobre campanhas em execução que vencem nas próximas 24 horas
type DeadlineReminderService struct {
	scheduler           *gocron.Scheduler
	config              DeadlineReminderConfig
	campaignRepo        repository.CampaignRepository
	applicationRepo     repository.ApplicationRepository
	userRepo            repository.UserRepository
	eventLogger         auditing.EventLogger
	notifier            notification.Notifier
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewDeadlineReminderService cria uma nova instância do serviço de lembretes de prazo
func NewDeadlineReminderService(
	campaignRepo repository.CampaignRepository,
	applicationRepo repository.ApplicationRepository,
	userRepo repository.UserRepository,
	eventLogger auditing.EventLogger,
	notifier notification.Notifier,
	appConfig *config.Config,
) *DeadlineReminderService {
	reminderConfig := DeadlineReminderConfig{
		CronSchedule: appConfig.DeadlineReminder.CronSchedule,
		SyncEnabled:  appConfig.DeadlineReminder.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": reminderConfig.CronSchedule,
		"sync_enabled":  reminderConfig.SyncEnabled,
	}).Info("Configuração do agendador de lembretes de prazo carregada")

	return &DeadlineReminderService{
		scheduler:       scheduler,
		config:          reminderConfig,
		campaignRepo:    campaignRepo,
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
		eventLogger:     eventLogger,
		notifier:        notifier,
		syncRunning:     false,
	}
}

// Start inicia o agendador
func (s *DeadlineReminderService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Lembretes de prazo desabilitados por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de lembretes de prazo")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.sendReminders()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar lembretes de prazo: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de lembretes de prazo")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *DeadlineReminderService) sendReminders() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Envio de lembretes de prazo já em andamento, ignorando")
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

	now := time.Now()
	campaigns, err := s.campaignRepo.ListDueBetween(ctx,
		[]domain.CampaignStatus{domain.CampaignStatusRunning}, now, now.Add(24*time.Hour))
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar campanhas com prazo nas próximas 24 horas")
		return
	}

	if len(campaigns) == 0 {
		logrus.Info("Nenhuma campanha com prazo nas próximas 24 horas")
		return
	}

	for _, campaign := range campaigns {
		s.remindCampaign(ctx, campaign)
	}

	logrus.Infof("Lembretes de prazo enviados para %d campanhas", len(campaigns))
}

func (s *DeadlineReminderService) remindCampaign(ctx context.Context, campaign *domain.Campaign) {
	recipients := s.collectRecipients(ctx, campaign)

	subject := fmt.Sprintf("Campanha %q vence em menos de 24 horas", campaign.Title)
	body := fmt.Sprintf("A campanha %q tem prazo até %s. Verifique as entregas pendentes.",
		campaign.Title, campaign.DeadlineDate.Format("02/01/2006 15:04"))

	if err := s.notifier.Send(ctx, recipients, subject, body); err != nil {
		logrus.WithError(err).Warnf("Erro ao enviar lembrete da campanha %s", campaign.ID)
	}

	event := auditing.NewEvent(campaign.ID, systemActor, domain.EventDeadlineReminder, map[string]any{
		"deadline":   campaign.DeadlineDate.Format(time.RFC3339),
		"recipients": len(recipients),
	})

	if err := s.eventLogger.Record(ctx, event); err != nil {
		logrus.WithError(err).Warnf("Erro ao registrar lembrete da campanha %s", campaign.ID)
	}
}

// collectRecipients reúne o anunciante dono e os influenciadores selecionados
func (s *DeadlineReminderService) collectRecipients(ctx context.Context, campaign *domain.Campaign) []string {
	recipients := make([]string, 0)

	advertiser, err := s.userRepo.GetUserByID(ctx, campaign.AdvertiserID)
	if err != nil {
		logrus.WithError(err).Warnf("Erro ao buscar anunciante da campanha %s", campaign.ID)
	} else if advertiser != nil {
		recipients = append(recipients, advertiser.Email)
	}

	selected, err := s.applicationRepo.ListSelectedByCampaign(ctx, campaign.ID)
	if err != nil {
		logrus.WithError(err).Warnf("Erro ao buscar selecionados da campanha %s", campaign.ID)
		return recipients
	}

	for _, application := range selected {
		influencer, err := s.userRepo.GetUserByID(ctx, application.InfluencerID)
		if err != nil || influencer == nil {
			continue
		}
		recipients = append(recipients, influencer.Email)
	}

	return recipients
}

// TriggerManualSync executa manualmente uma rodada de lembretes
func (s *DeadlineReminderService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Envio de lembretes já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	go s.sendReminders()
}

// GetStatus retorna o status atual do agendador
func (s *DeadlineReminderService) GetStatus() map[string]any {
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
