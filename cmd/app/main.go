package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"repairdesk/cmd"
	httpin "repairdesk/internal/adapters/in/http"
	"repairdesk/internal/adapters/out/postgres"
	"repairdesk/internal/adapters/out/rabbitmq"
	"repairdesk/internal/adapters/out/s3store"
	"repairdesk/internal/adapters/out/seedfile"
	"repairdesk/internal/core/application/usecases/commands"
	"repairdesk/internal/core/ports"
	"repairdesk/internal/jobs"
	"repairdesk/internal/pkg/logging"

	"github.com/labstack/gommon/log"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("repairdesk stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configs, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stdout, configs.LogLevel, configs.LogFormat)
	logger.Info("starting repairdesk")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := openDatabase(configs)
	if err != nil {
		return err
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var publisher ports.EventPublisher
	if configs.AMQPURL != "" {
		conn, dialErr := rabbitmq.Dial(configs.AMQPURL, logger)
		if dialErr != nil {
			return dialErr
		}
		defer conn.Close()

		p := rabbitmq.NewPublisher(conn, logger.With("component", "rabbitmq_publisher"))
		if err = p.DeclareTopology(ctx); err != nil {
			return err
		}
		publisher = p
	} else {
		logger.Warn("AMQP_URL is not set; status change events are disabled")
	}

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)

	if err = seedStatuses(ctx, app, configs.StatusSeedFile, logger); err != nil {
		return err
	}

	var attachments ports.AttachmentStore
	if configs.AttachmentsBucket != "" {
		s3Config := s3store.Config{
			Region:   configs.AWSRegion,
			Bucket:   configs.AttachmentsBucket,
			Endpoint: configs.S3Endpoint,
		}
		client, s3Err := s3store.NewClient(ctx, s3Config)
		if s3Err != nil {
			return s3Err
		}
		attachments = s3store.NewStore(client, s3Config)
	} else {
		logger.Warn("ATTACHMENTS_BUCKET is not set; attachment uploads are disabled")
	}

	jobManager := jobs.NewJobManager(app.Registry(), configs.StatusRefreshSchedule, logger)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, app, attachments, gormDB, configs, logger)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return gormDB, nil
}

func seedStatuses(ctx context.Context, app cmd.CompositionRoot, path string, logger *slog.Logger) error {
	seeds, err := seedfile.Load(path)
	if err != nil {
		return err
	}
	seedCmd, err := commands.NewSeedStatusesCommand(seeds)
	if err != nil {
		return err
	}

	created, err := app.CreateSeedStatusesCommandHandler().Handle(ctx, seedCmd)
	if err != nil {
		return fmt.Errorf("failed to seed statuses: %w", err)
	}
	if created > 0 {
		logger.Info("seeded status workflow", "statuses", created)
	}
	return nil
}

func startWebServer(
	ctx context.Context,
	app cmd.CompositionRoot,
	attachments ports.AttachmentStore,
	gormDB *gorm.DB,
	configs cmd.Config,
	logger *slog.Logger,
) error {
	auth, err := httpin.NewJWTMiddleware(httpin.AuthConfig{
		Domain:   configs.Auth0Domain,
		Audience: configs.Auth0Audience,
	})
	if err != nil {
		return err
	}

	server := httpin.NewServer(app.HTTPHandlers(), attachments, logger)
	e, err := httpin.NewRouter(server, httpin.RouterConfig{
		Auth:     auth,
		LogLevel: echoLogLevel(configs.LogLevel),
		Health: func() error {
			sqlDB, dbErr := gormDB.DB()
			if dbErr != nil {
				return dbErr
			}
			return sqlDB.Ping()
		},
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "port", configs.HTTPPort)
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			errCh <- startErr
		}
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}

func echoLogLevel(level string) log.Lvl {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return log.DEBUG
	case "WARN":
		return log.WARN
	case "ERROR":
		return log.ERROR
	default:
		return log.INFO
	}
}
