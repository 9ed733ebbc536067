package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/lidiya-fiker/unity-bot/internal/api"
	"github.com/lidiya-fiker/unity-bot/internal/app"
	"github.com/lidiya-fiker/unity-bot/internal/config"
	"github.com/lidiya-fiker/unity-bot/internal/controller"
	"github.com/lidiya-fiker/unity-bot/internal/service"
	"github.com/lidiya-fiker/unity-bot/internal/session"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting unity bot",
		zap.String("environment", cfg.Environment),
		zap.String("api_base_url", cfg.APIBaseURL))

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatal("Invalid timezone", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := app.NewDBPool(ctx, cfg.DBDSN, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	apiClient := api.NewClient(cfg.APIBaseURL, logger)
	sessionStore := session.NewStore(pool)

	bookingService := service.NewBookingService(apiClient, logger)
	availabilityService := service.NewAvailabilityService(apiClient, logger)
	reviewService := service.NewReviewService(apiClient, logger)
	dashboardService := service.NewDashboardService(apiClient, sessionStore, logger)

	botInstance, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(
		botInstance,
		bookingService,
		availabilityService,
		reviewService,
		dashboardService,
		sessionStore,
		loc,
		logger,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}
