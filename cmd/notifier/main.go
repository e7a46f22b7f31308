package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"repairdesk/internal/notifications"
	"repairdesk/internal/pkg/logging"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type config struct {
	Port               string
	DatabaseURL        string
	SMTP               notifications.SMTPConfig
	AWSRegion          string
	DynamoDBEndpoint   string
	NotificationsTable string
	LogLevel           string
	LogFormat          string
}

func main() {
	if err := run(); err != nil {
		slog.Error("notifier stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if cfg.SMTP.Host == "" {
		logger.Warn("SMTP_HOST is not set; every notification will fail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	ddb, err := notifications.NewDynamoClient(ctx, cfg.AWSRegion, cfg.DynamoDBEndpoint)
	if err != nil {
		return err
	}

	service := notifications.NewService(
		notifications.NewDirectory(db),
		notifications.NewSMTPMailer(cfg.SMTP),
		notifications.NewDeliveryLog(ddb, cfg.NotificationsTable),
		logger,
	)

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           notifications.NewRouter(notifications.NewHandler(service, logger)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("notifier listening", "port", cfg.Port)
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func loadConfig() (config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := config{
		Port:        getEnv("PORT", "8081"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SMTP: notifications.SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnv("SMTP_PORT", "587"),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		DynamoDBEndpoint:   os.Getenv("DYNAMODB_ENDPOINT"),
		NotificationsTable: getEnv("NOTIFICATIONS_TABLE", notifications.DefaultDeliveriesTable),
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
	}
	if cfg.DatabaseURL == "" {
		return config{}, errors.New("DATABASE_URL is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
