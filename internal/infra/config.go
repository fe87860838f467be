package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Ledger store backends.
const (
	StoreMemory   = "memory"
	StoreBadger   = "badger"
	StorePostgres = "postgres"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	LedgerStore      string
	DataDir          string
	DatabaseURL      string
	RedisAddr        string
	RedisChannel     string
	ConfirmDelay     time.Duration
	Currency         string
	GeoIPDBPath      string
	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAIBaseURL    string
	AllowedOrigins   []string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		LedgerStore:      getEnv("LEDGER_STORE", StoreBadger),
		DataDir:          getEnv("DATA_DIR", "data"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisChannel:     getEnv("REDIS_CONFIRM_CHANNEL", "wallet.tx.confirmed"),
		ConfirmDelay:     time.Second * time.Duration(getEnvInt("CONFIRM_DELAY_SECONDS", 3)),
		Currency:         getEnv("LEDGER_CURRENCY", "ETH"),
		GeoIPDBPath:      os.Getenv("GEOIP_DB_PATH"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		AllowedOrigins:   []string{getEnv("WEB_ORIGIN", "http://localhost:3000")},
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	switch cfg.LedgerStore {
	case StoreMemory, StoreBadger:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when LEDGER_STORE=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown LEDGER_STORE %q", cfg.LedgerStore)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
