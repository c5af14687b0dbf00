package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/sevenboard/board-api/internal/api/http"
	"github.com/sevenboard/board-api/internal/api/http/handlers"
	"github.com/sevenboard/board-api/internal/auth"
	"github.com/sevenboard/board-api/internal/config"
	"github.com/sevenboard/board-api/internal/events"
	"github.com/sevenboard/board-api/internal/mailer"
	"github.com/sevenboard/board-api/internal/observability"
	"github.com/sevenboard/board-api/internal/persistence"
	"github.com/sevenboard/board-api/internal/repository"
	"github.com/sevenboard/board-api/internal/service"
	"github.com/sevenboard/board-api/internal/storage"
	"github.com/sevenboard/board-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	uploads, err := storage.NewUploadStore(cfg.Uploads)
	if err != nil {
		logger.Fatal("failed to init upload store", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	mail := mailer.New(cfg.SMTP, logger)
	worker.NewMailWorker(mail, logger, metrics).Register(dispatcher)

	pool := pg.PoolHandle()
	solRepo := repository.NewSolicitationRepository(pool)
	eventRepo := repository.NewTicketEventRepository(pool)
	readStateRepo := repository.NewReadStateRepository(redis.Client, 30*24*time.Hour)

	solService := service.NewSolicitationService(service.SolicitationDependencies{
		SolicitationRepo: solRepo,
		TicketEventRepo:  eventRepo,
		Dispatcher:       dispatcher,
		Logger:           logger,
	})
	notifService := service.NewNotificationService(solRepo, readStateRepo, logger)

	if cfg.Auth.AdminPasswordHash == "" && cfg.Auth.AdminPassword != "" {
		hash, err := auth.HashOperatorPassword(cfg.Auth.AdminPassword, cfg.Auth.BcryptCost)
		if err != nil {
			logger.Fatal("failed to hash operator password", zap.Error(err))
		}
		cfg.Auth.AdminPasswordHash = hash
		logger.Warn("AUTH_ADMIN_PASSWORD is set in plaintext; prefer AUTH_ADMIN_PASSWORD_HASH")
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTLMinutes)
	sessionMiddleware := auth.NewSessionMiddleware(tokens)

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.Uploads.MaxSizeBytes) + 1<<20,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:              handlers.NewAuthHandler(cfg.Auth, tokens),
		Cards:             handlers.NewCardsHandler(solService, uploads, logger),
		Notifications:     handlers.NewNotificationsHandler(notifService),
		SessionMiddleware: sessionMiddleware,
		UploadDir:         uploads.Dir(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
