package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-hub-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-hub-api/infrastructure/notification"
	"github.com/vfg2006/campaign-hub-api/infrastructure/repository"
	"github.com/vfg2006/campaign-hub-api/infrastructure/storage"
	"github.com/vfg2006/campaign-hub-api/internal/api"
	"github.com/vfg2006/campaign-hub-api/internal/config"
	"github.com/vfg2006/campaign-hub-api/internal/scheduler"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/applying"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/auditing"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/contacting"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/lifecycling"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/reporting"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/submitting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	campaignRepo := repository.NewCampaignRepository(pgConn)
	applicationRepo := repository.NewApplicationRepository(pgConn)
	submissionRepo := repository.NewSubmissionRepository(pgConn)
	eventRepo := repository.NewEventRepository(pgConn)
	penaltyRepo := repository.NewPenaltyRepository(pgConn)
	contactRepo := repository.NewContactRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	notifier := buildNotifier(ctx, cfg)

	uploadStorage, err := storage.NewS3Storage(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar o armazenamento de uploads")
	}

	lifecycler := lifecycling.NewService(campaignRepo)
	applier := applying.NewService(applicationRepo, campaignRepo)
	submitter := submitting.NewService(submissionRepo, applicationRepo, campaignRepo)
	eventLogger := auditing.NewService(eventRepo, campaignRepo)
	reporter := reporting.NewService(campaignRepo)
	contacter := contacting.NewService(contactRepo, notifier, cfg)

	// Inicializa os agendadores do ciclo de vida das campanhas
	statusTransitionService := scheduler.NewStatusTransitionService(
		campaignRepo,
		applicationRepo,
		submissionRepo,
		lifecycler,
		cfg,
	)

	deadlineReminderService := scheduler.NewDeadlineReminderService(
		campaignRepo,
		applicationRepo,
		userRepo,
		eventLogger,
		notifier,
		cfg,
	)

	overdueDetectionService := scheduler.NewOverdueDetectionService(
		campaignRepo,
		applicationRepo,
		submissionRepo,
		penaltyRepo,
		notifier,
		cfg,
	)

	// Inicia os agendadores em background
	if err := statusTransitionService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de transições automáticas")
	} else {
		logrus.Info("Agendador de transições automáticas iniciado com sucesso")
	}

	if err := deadlineReminderService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de lembretes de prazo")
	} else {
		logrus.Info("Agendador de lembretes de prazo iniciado com sucesso")
	}

	if err := overdueDetectionService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o detector de atrasos")
	} else {
		logrus.Info("Detector de atrasos iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		lifecycler,
		applier,
		submitter,
		eventLogger,
		reporter,
		contacter,
		authenticator,
		uploadStorage,
		statusTransitionService,
		deadlineReminderService,
		overdueDetectionService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// buildNotifier escolhe o canal de notificação conforme a configuração
func buildNotifier(ctx context.Context, cfg *config.Config) notification.Notifier {
	if !cfg.AWS.NotificationsOn {
		logrus.Info("Notificações por e-mail desabilitadas, usando notificador nulo")
		return notification.NewNoopNotifier()
	}

	notifier, err := notification.NewSESNotifier(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao inicializar o SES, usando notificador nulo")
		return notification.NewNoopNotifier()
	}

	return notifier
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
