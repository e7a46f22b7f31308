package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	Auth0Domain   string
	Auth0Audience string

	NotifierURL     string
	NotifierTimeout time.Duration

	// AMQPURL enables status-change events when set.
	AMQPURL string

	// AttachmentsBucket enables attachment uploads when set.
	AWSRegion         string
	AttachmentsBucket string
	S3Endpoint        string

	StatusSeedFile        string
	StatusRefreshSchedule string

	LogLevel  string
	LogFormat string
}

// LoadConfig reads the environment, loading .env first when it exists.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	timeout, err := time.ParseDuration(getEnv("NOTIFIER_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid NOTIFIER_TIMEOUT: %w", err)
	}

	cfg := Config{
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		DBHost:                getEnv("DB_HOST", "localhost"),
		DBPort:                getEnv("DB_PORT", "5432"),
		DBUser:                getEnv("DB_USER", "postgres"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                getEnv("DB_NAME", "repairdesk"),
		DBSslMode:             getEnv("DB_SSLMODE", "disable"),
		Auth0Domain:           os.Getenv("AUTH0_DOMAIN"),
		Auth0Audience:         os.Getenv("AUTH0_AUDIENCE"),
		NotifierURL:           getEnv("NOTIFIER_URL", "http://localhost:8081"),
		NotifierTimeout:       timeout,
		AMQPURL:               os.Getenv("AMQP_URL"),
		AWSRegion:             getEnv("AWS_REGION", "us-east-1"),
		AttachmentsBucket:     os.Getenv("ATTACHMENTS_BUCKET"),
		S3Endpoint:            os.Getenv("S3_ENDPOINT"),
		StatusSeedFile:        os.Getenv("STATUS_SEED_FILE"),
		StatusRefreshSchedule: os.Getenv("STATUS_REFRESH_SCHEDULE"),
		LogLevel:              getEnv("LOG_LEVEL", "INFO"),
		LogFormat:             getEnv("LOG_FORMAT", "json"),
	}

	if cfg.Auth0Domain == "" || cfg.Auth0Audience == "" {
		return Config{}, fmt.Errorf("AUTH0_DOMAIN and AUTH0_AUDIENCE are required")
	}

	return cfg, nil
}

// DSN renders the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
