package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	Webhooks    Webhooks    `mapstructure:",squash"`
	Idempotency Idempotency `mapstructure:",squash"`
	Redis       Redis       `mapstructure:",squash"`
	Outbound    Outbound    `mapstructure:",squash"`
	Calendar    Calendar    `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Auth guarda o segredo usado para validar os JWTs emitidos pelo Supabase Auth
type Auth struct {
	JWTSecret string `mapstructure:"supabase_jwt_secret"`
}

type Webhooks struct {
	CalcomSecret       string `mapstructure:"hmac_shared_secret_calcom"`
	InstantlySecret    string `mapstructure:"hmac_shared_secret_instantly"`
	DevSignatureBypass bool   `mapstructure:"dev_signature_bypass"`
}

type Idempotency struct {
	Backend string        `mapstructure:"idempotency_backend"`
	TTL     time.Duration `mapstructure:"idempotency_ttl"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

// Outbound configura o envio dos eventos de mudança de estágio para o n8n
type Outbound struct {
	URL          string `mapstructure:"outbound_webhook_url"`
	Secret       string `mapstructure:"crm_outbound_secret"`
	Enabled      bool   `mapstructure:"outbound_dispatch_enabled"`
	CronSchedule string `mapstructure:"outbound_dispatch_cron"`
	BatchSize    int    `mapstructure:"outbound_dispatch_batch_size"`
	MaxAttempts  int    `mapstructure:"outbound_dispatch_max_attempts"`
}

type Calendar struct {
	BaseURL string `mapstructure:"calendar_base_url"`
}

const (
	IdempotencyBackendMemory = "memory"
	IdempotencyBackendRedis  = "redis"
)

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/crm?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "postgres")

	viper.SetDefault("SUPABASE_JWT_SECRET", "")

	viper.SetDefault("HMAC_SHARED_SECRET_CALCOM", "")
	viper.SetDefault("HMAC_SHARED_SECRET_INSTANTLY", "")
	viper.SetDefault("DEV_SIGNATURE_BYPASS", false) // Nunca habilitar fora de desenvolvimento

	viper.SetDefault("IDEMPOTENCY_BACKEND", IdempotencyBackendMemory)
	viper.SetDefault("IDEMPOTENCY_TTL", "24h")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("OUTBOUND_WEBHOOK_URL", "")
	viper.SetDefault("CRM_OUTBOUND_SECRET", "")
	viper.SetDefault("OUTBOUND_DISPATCH_ENABLED", false)
	viper.SetDefault("OUTBOUND_DISPATCH_CRON", "*/5 * * * *") // A cada 5 minutos
	viper.SetDefault("OUTBOUND_DISPATCH_BATCH_SIZE", 50)
	viper.SetDefault("OUTBOUND_DISPATCH_MAX_ATTEMPTS", 5)

	viper.SetDefault("CALENDAR_BASE_URL", "https://cal.com/your-username")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

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

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize deriva campos calculados e valida combinações inválidas
func (c *Config) normalize() error {
	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)

	if c.Idempotency.TTL <= 0 {
		c.Idempotency.TTL = 24 * time.Hour
	}

	switch c.Idempotency.Backend {
	case IdempotencyBackendMemory, IdempotencyBackendRedis:
	case "":
		c.Idempotency.Backend = IdempotencyBackendMemory
	default:
		return fmt.Errorf("config: IDEMPOTENCY_BACKEND inválido: %q", c.Idempotency.Backend)
	}

	if c.Outbound.BatchSize <= 0 {
		c.Outbound.BatchSize = 50
	}
	if c.Outbound.MaxAttempts <= 0 {
		c.Outbound.MaxAttempts = 5
	}

	if c.Outbound.Enabled && c.Outbound.URL == "" {
		return fmt.Errorf("config: OUTBOUND_WEBHOOK_URL é obrigatório quando OUTBOUND_DISPATCH_ENABLED=true")
	}

	if c.Webhooks.DevSignatureBypass {
		logrus.Warn("DEV_SIGNATURE_BYPASS habilitado: assinaturas de webhooks NÃO serão verificadas")
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
