package client

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/callbacktypes"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/common"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/common/formatting"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/common/keyboard"
	"github.com/lidiya-fiker/unity-bot/internal/model"
	"github.com/lidiya-fiker/unity-bot/internal/service"
	"go.uber.org/zap"
)

// Callback data дашборда
const (
	CBBackToDashboard = "back_to_dashboard"
)

// ========================
// Client Dashboard
// ========================

// ShowDashboard отправляет дашборд клиента: его сессии с кнопками
// Join / Reschedule и консультантов с кнопками оценки.
func ShowDashboard(ctx context.Context, b *bot.Bot, chatID int64, h *callbacktypes.Handler) {
	token, err := h.Sessions.Token(ctx, chatID)
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: common.ErrorMessage(err)})
		return
	}

	profile, err := h.Booking.ClientProfile(ctx, token)
	if err != nil {
		h.Logger.Error("Failed to load client profile", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: common.ErrorMessage(err)})
		return
	}

	sessions, err := h.Dashboard.Sessions(ctx, token, profile.UserID)
	if err != nil {
		h.Logger.Error("Failed to load sessions", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: common.ErrorMessage(err)})
		return
	}

	greeting := "👋 Welcome back"
	if profile.User.FirstName != "" {
		greeting += ", " + profile.User.FirstName
	}
	greeting += "!"

	now := time.Now().In(h.Loc)

	if len(sessions) == 0 {
		kb := keyboard.NewBuilder().Row(keyboard.Button("➕ Book your first session", CBBookStart))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        greeting + "\n\nYou have no booked sessions yet.\n\n💬 " + dailyQuote(now),
			ReplyMarkup: kb.Build(),
		})
		return
	}

	kb := keyboard.NewBuilder()
	text := greeting + "\n\n📅 Your sessions:\n"

	for i, sess := range sessions {
		name := "your counselor"
		if sess.Counselor != nil {
			name = sess.Counselor.FirstName + " " + sess.Counselor.LastName
		}

		text += fmt.Sprintf(
			"\n%d. %s\n   %s, %s",
			i+1,
			name,
			formatting.FormatDate(sess.Date),
			formatting.FormatSlotRange(sess.StartTime, sess.EndTime),
		)

		row := make([]models.InlineKeyboardButton, 0, 2)
		if service.IsJoinable(sess, now) {
			row = append(row, keyboard.URLButton(fmt.Sprintf("🎥 Join #%d", i+1), sess.ZoomJoinURL))
		}
		row = append(row, keyboard.Button(fmt.Sprintf("🔁 Reschedule #%d", i+1), CBReschedule+sess.ID))
		kb.Row(row...)
	}

	ratingRows := ratingButtons(ctx, h, token, profile.UserID, chatID, sessions)
	if len(ratingRows) > 0 {
		text += "\n\n⭐ Rate your counselors:"
		kb.AddRows(ratingRows)
	}

	kb.Row(keyboard.Button("➕ Book a session", CBBookStart))

	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text, ReplyMarkup: kb.Build()})
}

// ratingButtons кнопки "Rate" для консультантов клиента без его отзыва.
// Уже оценённые показывают сохранённые звёзды вместо кнопки. Если
// отзывы не загрузились, кнопки просто не показываем.
func ratingButtons(ctx context.Context, h *callbacktypes.Handler, token, clientID string, chatID int64, sessions []model.Session) [][]models.InlineKeyboardButton {
	rated, err := h.Reviews.RatedMap(ctx, token, clientID)
	if err != nil {
		h.Logger.Warn("Failed to load client reviews", zap.Error(err))
		return nil
	}

	counselors := h.Dashboard.CounselorsFromSessions(ctx, chatID, sessions)

	rows := make([][]models.InlineKeyboardButton, 0, len(counselors))
	for _, c := range counselors {
		if rating, ok := rated[c.ID]; ok {
			rows = append(rows, []models.InlineKeyboardButton{
				keyboard.Button(formatting.Stars(rating)+" "+c.FullName, keyboard.Noop),
			})
			continue
		}
		rows = append(rows, []models.InlineKeyboardButton{
			keyboard.Button("⭐ Rate "+c.FullName, CBRate+c.ID),
		})
	}
	return rows
}

// Цитаты для пустого дашборда, ротация по дню года.
var dashboardQuotes = []string{
	"Taking care of your mind is the best investment you will ever make.",
	"Small steps every day lead to big changes.",
	"Asking for help is a sign of strength, not weakness.",
	"You don't have to have it all figured out to move forward.",
	"Healing takes time, and that's okay.",
	"Every conversation is a step toward feeling better.",
	"Your feelings are valid. Your story matters.",
}

func dailyQuote(t time.Time) string {
	return dashboardQuotes[t.YearDay()%len(dashboardQuotes)]
}

// HandleBackToDashboard возврат на дашборд из любого экрана.
func HandleBackToDashboard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.State.ClearState(callback.From.ID)
	ShowDashboard(ctx, b, callback.From.ID, h)
}
