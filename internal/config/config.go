package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	ListenAddr  string

	// WebhookSecret is the shared secret the payment provider signs
	// webhook payloads with.
	WebhookSecret string

	// SessionSecret signs the buyer session cookie.
	SessionSecret string

	DefaultCurrency string

	DBType     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

var Module = fx.Provide(Load)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:         getenv("APP_SERVICE", "storefront"),
		AppVersion:      getenv("APP_VERSION", "0.1.0"),
		Environment:     getenv("ENVIRONMENT", "development"),
		ListenAddr:      getenv("LISTEN_ADDR", ":8080"),
		WebhookSecret:   strings.TrimSpace(getenv("PAYMENT_WEBHOOK_SECRET", "")),
		SessionSecret:   strings.TrimSpace(getenv("SESSION_SECRET", "")),
		DefaultCurrency: strings.ToUpper(getenv("DEFAULT_CURRENCY", "USD")),
		DBType:          getenv("DATABASE_TYPE", "postgres"),
		DBHost:          getenv("DATABASE_HOST", "localhost"),
		DBPort:          getenv("DATABASE_PORT", "5432"),
		DBName:          getenv("DATABASE_NAME", "storefront"),
		DBUser:          getenv("DATABASE_USER", "postgres"),
		DBPassword:      getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:       getenv("DATABASE_SSLMODE", "disable"),
	}
}

func (c Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
