package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/freight-board/internal/api/http"
	"github.com/spec-kit/freight-board/internal/api/http/handlers"
	"github.com/spec-kit/freight-board/internal/auth"
	"github.com/spec-kit/freight-board/internal/config"
	"github.com/spec-kit/freight-board/internal/events"
	"github.com/spec-kit/freight-board/internal/observability"
	"github.com/spec-kit/freight-board/internal/persistence"
	"github.com/spec-kit/freight-board/internal/repository"
	"github.com/spec-kit/freight-board/internal/service"
	"github.com/spec-kit/freight-board/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	cargoRepo := repository.NewCargoPostRepository(pool)
	truckRepo := repository.NewTruckPostRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)
	bidRepo := repository.NewBidRepository(pool)
	chatRepo := repository.NewChatRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	activityService := service.NewActivityService(activityRepo, logger)
	authService := service.NewAuthService(*cfg, userRepo, activityService, dispatcher)
	listingService := service.NewListingService(cargoRepo, truckRepo, userRepo, activityService, dispatcher)
	dashboardService := service.NewDashboardService(cargoRepo, truckRepo, userRepo, activityRepo, redis, cfg.Dashboard, logger)
	bidService := service.NewBidService(bidRepo, cargoRepo, activityService, dispatcher)
	chatService := service.NewChatService(chatRepo, cargoRepo, truckRepo)
	companyService := service.NewCompanyService(companyRepo)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		CargoPosts:     handlers.NewCargoPostsHandler(listingService),
		TruckPosts:     handlers.NewTruckPostsHandler(listingService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Activities:     handlers.NewActivitiesHandler(activityService),
		Bids:           handlers.NewBidsHandler(bidService),
		Chats:          handlers.NewChatsHandler(chatService),
		Companies:      handlers.NewCompaniesHandler(companyService),
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
