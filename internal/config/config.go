package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	AWS              AWS              `mapstructure:",squash"`
	Storage          Storage          `mapstructure:",squash"`
	StatusTransition StatusTransition `mapstructure:",squash"`
	DeadlineReminder DeadlineReminder `mapstructure:",squash"`
	OverdueDetection OverdueDetection `mapstructure:",squash"`
	SecretKey        string           `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type AWS struct {
	Region          string `mapstructure:"aws_region"`
	EmailSender     string `mapstructure:"aws_email_sender"`
	AdminEmail      string `mapstructure:"aws_admin_email"`
	NotificationsOn bool   `mapstructure:"aws_notifications_enabled"`
}

type Storage struct {
	Bucket           string `mapstructure:"storage_bucket"`
	UploadTTLMinutes int    `mapstructure:"storage_upload_ttl_minutes"`
}

type StatusTransition struct {
	CronSchedule string `mapstructure:"status_transition_cron"`
	Enabled      bool   `mapstructure:"status_transition_enabled"`
	// Horas de espera antes de abrir automaticamente uma campanha revisada
	AutoOpenDelayHours int `mapstructure:"status_transition_auto_open_delay_hours"`
}

type DeadlineReminder struct {
	CronSchedule string `mapstructure:"deadline_reminder_cron"`
	Enabled      bool   `mapstructure:"deadline_reminder_enabled"`
}

type OverdueDetection struct {
	CronSchedule string `mapstructure:"overdue_detection_cron"`
	Enabled      bool   `mapstructure:"overdue_detection_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/campaignhub")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("AWS_EMAIL_SENDER", "no-reply@campaignhub.local")
	viper.SetDefault("AWS_ADMIN_EMAIL", "admin@campaignhub.local")
	viper.SetDefault("AWS_NOTIFICATIONS_ENABLED", false) // Habilitar envio real de emails

	viper.SetDefault("STORAGE_BUCKET", "campaign-hub-uploads")
	viper.SetDefault("STORAGE_UPLOAD_TTL_MINUTES", 5) // URLs assinadas de 5 minutos

	// Defaults dos agendadores de ciclo de vida
	viper.SetDefault("STATUS_TRANSITION_CRON", "0 * * * *") // Toda hora cheia
	viper.SetDefault("STATUS_TRANSITION_ENABLED", false)
	viper.SetDefault("STATUS_TRANSITION_AUTO_OPEN_DELAY_HOURS", 24) // 24h após revisão

	viper.SetDefault("DEADLINE_REMINDER_CRON", "0 9 * * *") // Todos os dias às 9h da manhã
	viper.SetDefault("DEADLINE_REMINDER_ENABLED", false)

	viper.SetDefault("OVERDUE_DETECTION_CRON", "0 1 * * *") // Todos os dias à 1h da manhã
	viper.SetDefault("OVERDUE_DETECTION_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
