package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/academy-service/internal/api/http"
	"github.com/spec-kit/academy-service/internal/api/http/handlers"
	"github.com/spec-kit/academy-service/internal/auth"
	"github.com/spec-kit/academy-service/internal/config"
	"github.com/spec-kit/academy-service/internal/events"
	"github.com/spec-kit/academy-service/internal/observability"
	"github.com/spec-kit/academy-service/internal/persistence"
	"github.com/spec-kit/academy-service/internal/repository"
	"github.com/spec-kit/academy-service/internal/service"
	"github.com/spec-kit/academy-service/internal/worker"
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

	metrics := observability.NewMetrics()

	pool := pg.PoolHandle()
	educatorRepo := repository.NewEducatorRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)

	tenantResolver := service.NewTenantResolver(educatorRepo, redis.ClientHandle(), cfg.Auth.TenantCacheTTL(), logger)
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		EducatorRepo:   educatorRepo,
		StudentRepo:    studentRepo,
		TenantResolver: tenantResolver,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	sessionMiddleware := auth.NewSessionMiddleware(authService.TokenManager(), cfg.Auth.SessionCookieName)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	authHandler := handlers.NewAuthHandler(authService, sessionMiddleware, metrics)
	sessionHandler := handlers.NewSessionHandler(sessionMiddleware)
	academiesHandler := handlers.NewAcademiesHandler(tenantResolver, studentRepo)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            healthHandler,
		Auth:              authHandler,
		Session:           sessionHandler,
		Academies:         academiesHandler,
		SessionMiddleware: sessionMiddleware,
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
