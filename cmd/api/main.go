package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hospital-booking/internal/api/http"
	"github.com/spec-kit/hospital-booking/internal/api/http/handlers"
	"github.com/spec-kit/hospital-booking/internal/auth"
	"github.com/spec-kit/hospital-booking/internal/config"
	"github.com/spec-kit/hospital-booking/internal/events"
	"github.com/spec-kit/hospital-booking/internal/observability"
	"github.com/spec-kit/hospital-booking/internal/persistence"
	"github.com/spec-kit/hospital-booking/internal/repository"
	"github.com/spec-kit/hospital-booking/internal/service"
	"github.com/spec-kit/hospital-booking/internal/worker"
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

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	practitionerRepo := repository.NewPractitionerRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)

	if cfg.Postgres.SeedData && pool != nil {
		if err := persistence.SeedData(ctx, *cfg, accountRepo, practitionerRepo, logger); err != nil {
			logger.Fatal("failed to seed data", zap.Error(err))
		}
	}

	sessions := auth.NewSessionStore(redis.Client, cfg.Auth.SessionTTL(), cfg.Auth.RememberTTL())
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, accountRepo, sessions)
	practitionerService := service.NewPractitionerService(practitionerRepo, dispatcher)
	appointmentService := service.NewAppointmentService(service.AppointmentDependencies{
		AppointmentRepo:  appointmentRepo,
		PractitionerRepo: practitionerRepo,
		AccountRepo:      accountRepo,
		Dispatcher:       dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), sessions, accountRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Accounts:       handlers.NewAccountsHandler(authService, appointmentService),
		Doctors:        handlers.NewDoctorsHandler(practitionerService),
		Appointments:   handlers.NewAppointmentsHandler(appointmentService),
		Admin:          handlers.NewAdminHandler(practitionerService, appointmentService, authService),
		AuthMiddleware: authMiddleware,
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
