package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"

	"ecohaven_backend/pkg/utils"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	Database  DatabaseConfig
	JWT       JWTConfig
	SMTP      SMTPConfig
	ClientURL []string
	UploadDir string
	// ContactEmail receives contact form messages.
	ContactEmail string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	Migrate      bool
}

// DSN builds a lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether outbound mail should go over SMTP.
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

// Load reads configuration from the environment, loading .env first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.LogWarn("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv reads configuration from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:     utils.Getenv("PORT", "5000"),
		GinMode:  utils.Getenv("GIN_MODE", "debug"),
		LogLevel: utils.Getenv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:         utils.Getenv("DB_HOST", "localhost"),
			Port:         utils.Getenv("DB_PORT", "5432"),
			User:         utils.Getenv("DB_USER", "postgres"),
			Password:     utils.Getenv("DB_PASSWORD", "postgres"),
			Name:         utils.Getenv("DB_NAME", "ecohaven"),
			SSLMode:      utils.Getenv("DB_SSLMODE", "disable"),
			MaxOpenConns: utils.GetenvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: utils.GetenvInt("DB_MAX_IDLE_CONNS", 5),
			Migrate:      utils.GetenvBool("DB_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret: utils.Getenv("JWT_SECRET", ""),
			TTL:    utils.GetenvDuration("JWT_TTL", 24*time.Hour),
		},
		SMTP: SMTPConfig{
			Host:     utils.Getenv("SMTP_HOST", ""),
			Port:     utils.GetenvInt("SMTP_PORT", 587),
			Username: utils.Getenv("SMTP_USERNAME", ""),
			Password: utils.Getenv("SMTP_PASSWORD", ""),
			From:     utils.Getenv("SMTP_FROM", "EcoHaven <no-reply@ecohaven.local>"),
		},
		ClientURL:    utils.GetenvList("CLIENT_URL", []string{"http://localhost:3000"}),
		UploadDir:    utils.Getenv("UPLOAD_DIR", "uploads"),
		ContactEmail: utils.Getenv("CONTACT_EMAIL", ""),
	}

	if cfg.JWT.Secret == "" {
		return nil, ErrMissingJWTSecret
	}
	if cfg.ContactEmail == "" {
		cfg.ContactEmail = cfg.SMTP.Username
	}
	return cfg, nil
}
