package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration
type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	DBConn          string        `env:"DB_CONN" envDefault:"host=localhost port=5432 user=test password=test dbname=pizza sslmode=disable"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"INFO"`
	JWTSecret       string        `env:"JWT_SECRET" envDefault:"secret"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"720h"`
	MigrationsDir   string        `env:"MIGRATIONS_DIR" envDefault:"migrations"`

	// SMTP settings for the daily order report; reporting is disabled
	// when SMTPHost is empty.
	SMTPHost       string `env:"SMTP_HOST"`
	SMTPPort       string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername   string `env:"SMTP_USERNAME"`
	SMTPPassword   string `env:"SMTP_PASSWORD"`
	SenderEmail    string `env:"SENDER_EMAIL"`
	ReportSchedule string `env:"REPORT_SCHEDULE" envDefault:"0 8 * * *"`
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, fmt.Errorf("token TTLs must be positive")
	}

	return cfg, nil
}
