package controller

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/callbacktypes"
	"github.com/lidiya-fiker/unity-bot/internal/controller/handlers"
	"github.com/lidiya-fiker/unity-bot/internal/controller/state"
	"github.com/lidiya-fiker/unity-bot/internal/service"
	"github.com/lidiya-fiker/unity-bot/internal/session"
	"go.uber.org/zap"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	deps     *callbacktypes.Handler
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	bookingService *service.BookingService,
	availabilityService *service.AvailabilityService,
	reviewService *service.ReviewService,
	dashboardService *service.DashboardService,
	sessionStore *session.Store,
	loc *time.Location,
	logger *zap.Logger,
) *BotController {
	// Общие зависимости для callback handlers и диалогов
	deps := &callbacktypes.Handler{
		Booking:      bookingService,
		Availability: availabilityService,
		Reviews:      reviewService,
		Dashboard:    dashboardService,
		Sessions:     sessionStore,
		State:        state.NewManager(),
		Logger:       logger,
		Loc:          loc,
	}

	return &BotController{
		bot:      botInstance,
		handlers: handlers.NewHandlers(deps),
		deps:     deps,
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Регистрируем команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypeExact, c.handlers.HandleLogin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypeExact, c.handlers.HandleLogout)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/book", bot.MatchTypeExact, c.handlers.HandleBook)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mybookings", bot.MatchTypeExact, c.handlers.HandleMyBookings)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/articles", bot.MatchTypeExact, c.handlers.HandleArticles)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Команды для консультантов
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/myschedule", bot.MatchTypeExact, c.handlers.HandleMySchedule)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, callbacks.HandleCallbackQuery(c.deps))

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🏠 Your dashboard"},
		{Command: "login", Description: "🔑 Connect your UNITY account"},
		{Command: "book", Description: "➕ Book a counseling session"},
		{Command: "mybookings", Description: "📅 My booked sessions"},
		{Command: "articles", Description: "📰 Articles from counselors"},
		{Command: "myschedule", Description: "🗓 My availability (counselor)"},
		{Command: "help", Description: "❓ Help"},
		{Command: "cancel", Description: "❌ Cancel the current dialog"},
		{Command: "logout", Description: "👋 Disconnect your account"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
