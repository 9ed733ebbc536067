package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/client"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/common"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/counselor"
	"github.com/lidiya-fiker/unity-bot/internal/controller/state"
	"github.com/lidiya-fiker/unity-bot/internal/session"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	// Залогиненный клиент сразу попадает на дашборд
	if _, err := h.cb.Sessions.Token(ctx, chatID); err == nil {
		client.ShowDashboard(ctx, b, chatID, h.cb)
		return
	} else if !errors.Is(err, session.ErrNoSession) {
		h.logger.Error("Failed to check session", zap.Error(err))
	}

	welcomeText := fmt.Sprintf(
		"👋 Hi, %s!\n\n"+
			"Welcome to UNITY Counseling - book sessions with professional counselors right from Telegram.\n\n"+
			"Available commands:\n"+
			"/login - Connect your UNITY account\n"+
			"/book - Book a counseling session\n"+
			"/mybookings - My booked sessions\n"+
			"/articles - Articles from our counselors\n"+
			"/help - Help\n\n"+
			"For counselors:\n"+
			"/myschedule - Manage your availability",
		update.Message.From.FirstName,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   welcomeText,
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Commands:\n\n" +
		"For clients:\n" +
		"/start - Your dashboard\n" +
		"/login - Connect your UNITY account\n" +
		"/book - Book a counseling session\n" +
		"/mybookings - My booked sessions\n" +
		"/articles - Articles from counselors\n" +
		"/logout - Disconnect your account\n" +
		"/cancel - Cancel the current dialog\n\n" +
		"For counselors:\n" +
		"/myschedule - Manage your availability\n\n" +
		"Every session lasts one hour and costs 1000 birr, paid via Chapa."

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}

// HandleLogin обрабатывает команду /login - начало диалога ввода токена
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.cb.State.SetState(telegramID, state.StateEnterToken)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: "🔑 Paste your UNITY access token.\n\n" +
			"You can copy it from the web app after signing in.\n" +
			"Use /cancel to abort.",
	})
}

// HandleLogout обрабатывает команду /logout
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	if err := h.cb.Sessions.DeleteSession(ctx, chatID); err != nil {
		h.logger.Error("Failed to delete session", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   common.ErrorMessage(err),
		})
		return
	}

	h.cb.State.ClearState(update.Message.From.ID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "👋 You are logged out. Use /login to connect again.",
	})
}

// HandleBook обрабатывает команду /book - запуск мастера бронирования
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	client.StartWizard(ctx, b, update.Message.Chat.ID, h.cb)
}

// HandleMyBookings обрабатывает команду /mybookings
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	client.ShowDashboard(ctx, b, update.Message.Chat.ID, h.cb)
}

// HandleMySchedule обрабатывает команду /myschedule (консультант)
func (h *Handlers) HandleMySchedule(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	counselor.ShowAvailability(ctx, b, update.Message.Chat.ID, h.cb)
}

// HandleArticles обрабатывает команду /articles
func (h *Handlers) HandleArticles(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	articles, err := h.cb.Dashboard.Articles(ctx)
	if err != nil {
		h.logger.Error("Failed to load articles", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   common.ErrorMessage(err),
		})
		return
	}

	if len(articles) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "📰 No articles yet. Check back later!",
		})
		return
	}

	text := "📰 Latest from our counselors:\n"
	for i, article := range articles {
		if i >= 5 {
			break
		}
		text += fmt.Sprintf("\n%d. %s", i+1, article.Title)
		if article.Author != "" {
			text += " - " + article.Author
		}
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.cb.State.GetState(telegramID)

	h.cb.State.ClearState(telegramID)

	text := "✅ Cancelled. Use /start to open your dashboard."
	if currentState == state.StateNone {
		text = "Nothing to cancel. Use /start to open your dashboard."
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	})
}
