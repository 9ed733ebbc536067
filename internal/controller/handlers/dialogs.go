package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/lidiya-fiker/unity-bot/internal/api"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/client"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/common"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/common/keyboard"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/counselor"
	"github.com/lidiya-fiker/unity-bot/internal/controller/state"
	"github.com/lidiya-fiker/unity-bot/internal/service"
	"github.com/lidiya-fiker/unity-bot/internal/session"
	"go.uber.org/zap"
)

// HandleTextMessage маршрутизирует текстовые сообщения по состояниям
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	// Команды обрабатываются своими хэндлерами
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.cb.State.GetState(telegramID)

	switch currentState {
	case state.StateEnterToken:
		h.handleTokenStep(ctx, b, update)
	case state.StateSlotStartTime:
		h.handleSlotTimeStep(ctx, b, update)
	case state.StatePayerFirstName:
		h.handlePayerFirstNameStep(ctx, b, update)
	case state.StatePayerLastName:
		h.handlePayerLastNameStep(ctx, b, update)
	case state.StateReviewComment:
		h.handleReviewCommentStep(ctx, b, update)
	default:
		// Сообщение вне диалога
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "I did not get that. Use /help to see what I can do.",
		})
	}
}

// handleTokenStep сохраняет токен из /login
func (h *Handlers) handleTokenStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID
	token := strings.TrimSpace(update.Message.Text)

	// Токен должен хотя бы декодироваться и нести id пользователя
	if _, err := session.DecodeIdentity(token); err != nil {
		h.logger.Warn("Rejected login token", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ That does not look like a valid token. Paste it again or use /cancel.",
		})
		return
	}

	if err := h.cb.Sessions.SaveToken(ctx, chatID, token); err != nil {
		h.logger.Error("Failed to save token", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   common.ErrorMessage(err),
		})
		return
	}

	h.cb.State.ClearState(telegramID)

	// Клиенту сразу показываем дашборд, консультанту подсказываем команду
	if _, err := h.cb.Booking.ClientProfile(ctx, token); err == nil {
		client.ShowDashboard(ctx, b, chatID, h.cb)
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "✅ Logged in! If you are a counselor, use /myschedule to manage your availability.",
	})
}

// handleSlotTimeStep создаёт слот из введённого времени начала
func (h *Handlers) handleSlotTimeStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID
	startTime := strings.TrimSpace(update.Message.Text)

	draft := h.cb.State.Availability(telegramID)
	if draft == nil || draft.SelectedDate == "" {
		h.cb.State.SetState(telegramID, state.StateNone)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   common.ErrorMessage(common.ErrFlowExpired),
		})
		return
	}

	token, err := h.cb.Sessions.Token(ctx, chatID)
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: common.ErrorMessage(err)})
		return
	}

	slot, err := h.cb.Availability.AddSlot(ctx, token, draft.CounselorID, draft.SelectedDate, startTime)
	if err != nil {
		if errors.Is(err, service.ErrBadStartTime) {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "❌ Time must look like 09:00. Try again or use /cancel.",
			})
			return
		}
		h.logger.Error("Failed to create slot", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ " + api.BackendMessage(err, "Could not create the slot"),
		})
		return
	}

	draft.Schedule = service.MergeSlot(draft.Schedule, draft.SelectedDate, *slot)
	h.cb.State.SetState(telegramID, state.StateNone)

	counselor.RenderAfterSlotAdded(ctx, b, chatID, h.cb, draft)
}

// handlePayerFirstNameStep имя плательщика для Chapa
func (h *Handlers) handlePayerFirstNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID
	firstName := strings.TrimSpace(update.Message.Text)

	draft := h.cb.State.Booking(telegramID)
	if draft == nil {
		h.cb.State.SetState(telegramID, state.StateNone)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   common.ErrorMessage(common.ErrFlowExpired),
		})
		return
	}

	if firstName == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ First name cannot be empty. Try again:",
		})
		return
	}

	draft.FirstName = firstName
	h.cb.State.SetState(telegramID, state.StatePayerLastName)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "Now enter the payer's last name:",
	})
}

// handlePayerLastNameStep фамилия плательщика, затем инициализация оплаты
func (h *Handlers) handlePayerLastNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID
	lastName := strings.TrimSpace(update.Message.Text)

	draft := h.cb.State.Booking(telegramID)
	if draft == nil || draft.Counselor == nil || draft.SelectedSlot == nil {
		h.cb.State.SetState(telegramID, state.StateNone)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   common.ErrorMessage(common.ErrFlowExpired),
		})
		return
	}

	if lastName == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Last name cannot be empty. Try again:",
		})
		return
	}

	draft.LastName = lastName
	h.cb.State.SetState(telegramID, state.StateNone)

	token, err := h.cb.Sessions.Token(ctx, chatID)
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: common.ErrorMessage(err)})
		return
	}

	profile, err := h.cb.Booking.ClientProfile(ctx, token)
	if err != nil {
		h.logger.Error("Failed to load client profile", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: common.ErrorMessage(err)})
		return
	}

	redirectURL, err := h.cb.Booking.InitializePayment(
		ctx, token, profile,
		draft.FirstName, draft.LastName,
		draft.Counselor.ID, draft.SelectedSlot.ID,
	)
	if err != nil {
		h.logger.Error("Failed to initialize payment", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ " + api.BackendMessage(err, "Could not start the payment"),
		})
		return
	}

	client.SendPaymentLink(ctx, b, chatID, redirectURL)
}

// handleReviewCommentStep комментарий отзыва. Пустой после обрезки
// текст отклоняется без похода на бэкенд.
func (h *Handlers) handleReviewCommentStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	draft := h.cb.State.Review(telegramID)
	if draft == nil || draft.Rating == 0 {
		h.cb.State.SetState(telegramID, state.StateNone)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   common.ErrorMessage(common.ErrFlowExpired),
		})
		return
	}

	token, err := h.cb.Sessions.Token(ctx, chatID)
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: common.ErrorMessage(err)})
		return
	}

	err = h.cb.Reviews.Submit(ctx, token, draft.CounselorID, draft.ClientID, update.Message.Text, draft.Rating)
	if err != nil {
		if errors.Is(err, service.ErrEmptyComment) {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "❌ The comment cannot be empty. Write a few words or use /cancel.",
			})
			return
		}
		h.logger.Error("Failed to submit review", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ " + api.BackendMessage(err, "Could not submit the review"),
		})
		return
	}

	h.cb.State.ClearState(telegramID)

	kb := keyboard.NewBuilder().Row(keyboard.Button("📅 My sessions", client.CBBackToDashboard))
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "🙏 Thank you! Your review has been submitted.",
		ReplyMarkup: kb.Build(),
	})
}
