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
	"github.com/vfg2006/campaign-hub-api/pkg/utils"
)

// OverdueDetectionConfig representa a configuração do detector de atrasos
type OverdueDetectionConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// OverdueDetectionService detecta campanhas em execução com prazo vencido e
// gera penalidades para influenciadores selecionados sem entrega aprovada
type OverdueDetectionService struct {
	scheduler           *gocron.Scheduler
	config              OverdueDetectionConfig
	appConfig           *config.Config
	campaignRepo        repository.CampaignRepository
	applicationRepo     repository.ApplicationRepository
	submissionRepo      repository.SubmissionRepository
	penaltyRepo         repository.PenaltyRepository
	notifier            notification.Notifier
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewOverdueDetectionService cria uma nova instância do detector de atrasos
func NewOverdueDetectionService(
	campaignRepo repository.CampaignRepository,
	applicationRepo repository.ApplicationRepository,
	submissionRepo repository.SubmissionRepository,
	penaltyRepo repository.PenaltyRepository,
	notifier notification.Notifier,
	appConfig *config.Config,
) *OverdueDetectionService {
	detectionConfig := OverdueDetectionConfig{
		CronSchedule: appConfig.OverdueDetection.CronSchedule,
		SyncEnabled:  appConfig.OverdueDetection.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": detectionConfig.CronSchedule,
		"sync_enabled":  detectionConfig.SyncEnabled,
	}).Info("Configuração do detector de atrasos carregada")

	return &OverdueDetectionService{
		scheduler:       scheduler,
		config:          detectionConfig,
		appConfig:       appConfig,
		campaignRepo:    campaignRepo,
		applicationRepo: applicationRepo,
		submissionRepo:  submissionRepo,
		penaltyRepo:     penaltyRepo,
		notifier:        notifier,
		syncRunning:     false,
	}
}

// Start inicia o agendador
func (s *OverdueDetectionService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Detecção de atrasos desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando detector de atrasos")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.detectOverdue()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar detecção de atrasos: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando detector de atrasos")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *OverdueDetectionService) detectOverdue() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Detecção de atrasos já em andamento, ignorando")
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

	campaigns, err := s.campaignRepo.ListOverdue(ctx,
		[]domain.CampaignStatus{domain.CampaignStatusRunning}, time.Now())
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar campanhas vencidas")
		return
	}

	if len(campaigns) == 0 {
		logrus.Info("Nenhuma campanha em execução com prazo vencido")
		return
	}

	penalties := 0
	for _, campaign := range campaigns {
		penalties += s.penalizeCampaign(ctx, campaign)
	}

	logrus.WithFields(logrus.Fields{
		"campaigns": len(campaigns),
		"penalties": penalties,
	}).Info("Detecção de atrasos concluída")
}

// penalizeCampaign gera penalidades para os selecionados da campanha que
// ainda não tiveram nenhuma entrega aprovada. A penalidade é única por par
// campanha/influenciador, então rodadas repetidas não duplicam registros
func (s *OverdueDetectionService) penalizeCampaign(ctx context.Context, campaign *domain.Campaign) int {
	selected, err := s.applicationRepo.ListSelectedByCampaign(ctx, campaign.ID)
	if err != nil {
		logrus.WithError(err).Warnf("Erro ao buscar selecionados da campanha %s", campaign.ID)
		return 0
	}

	created := 0
	for _, application := range selected {
		approved, err := s.submissionRepo.HasApprovedByInfluencer(ctx, campaign.ID, application.InfluencerID)
		if err != nil {
			logrus.WithError(err).Warnf("Erro ao verificar entregas do influenciador %s", application.InfluencerID)
			continue
		}

		if approved {
			continue
		}

		exists, err := s.penaltyRepo.ExistsForCampaignInfluencer(ctx, campaign.ID, application.InfluencerID)
		if err != nil {
			logrus.WithError(err).Warnf("Erro ao verificar penalidades do influenciador %s", application.InfluencerID)
			continue
		}

		if exists {
			continue
		}

		if err := s.createPenalty(ctx, campaign, application.InfluencerID); err != nil {
			logrus.WithError(err).Warnf("Erro ao criar penalidade para o influenciador %s", application.InfluencerID)
			continue
		}
		created++
	}

	if created > 0 {
		s.notifyAdmin(ctx, campaign, created)
	}

	return created
}

func (s *OverdueDetectionService) createPenalty(ctx context.Context, campaign *domain.Campaign, influencerID string) error {
	penaltyID, err := utils.GenerateID()
	if err != nil {
		return err
	}

	penalty := &domain.Penalty{
		ID:           penaltyID,
		CampaignID:   campaign.ID,
		InfluencerID: influencerID,
		Reason:       "prazo_vencido",
		Description:  fmt.Sprintf("Campanha %q vencida em %s sem entrega aprovada", campaign.Title, campaign.DeadlineDate.Format("02/01/2006")),
		PenaltyType:  domain.PenaltyTypeWarning,
		Status:       domain.PenaltyStatusPending,
		AppliedBy:    systemActor.ID,
		CreatedAt:    time.Now(),
	}

	event := auditing.NewEvent(campaign.ID, systemActor, domain.EventDeadlineOverdue, map[string]any{
		"penalty_id":    penaltyID,
		"influencer_id": influencerID,
	})

	return s.penaltyRepo.Create(ctx, penalty, event)
}

func (s *OverdueDetectionService) notifyAdmin(ctx context.Context, campaign *domain.Campaign, penalties int) {
	subject := fmt.Sprintf("Campanha %q vencida com entregas pendentes", campaign.Title)
	body := fmt.Sprintf("A campanha %q passou do prazo (%s) e gerou %d penalidades pendentes de revisão.",
		campaign.Title, campaign.DeadlineDate.Format("02/01/2006"), penalties)

	if err := s.notifier.Send(ctx, []string{s.appConfig.AWS.AdminEmail}, subject, body); err != nil {
		logrus.WithError(err).Warnf("Erro ao notificar atraso da campanha %s", campaign.ID)
	}
}

// TriggerManualSync executa manualmente uma rodada de detecção
func (s *OverdueDetectionService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Detecção de atrasos já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	go s.detectOverdue()
}

// GetStatus retorna o status atual do agendador
func (s *OverdueDetectionService) GetStatus() map[string]any {
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
