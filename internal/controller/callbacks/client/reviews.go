package client

import (
	"context"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/callbacktypes"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/common"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/common/formatting"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/common/keyboard"
	"github.com/lidiya-fiker/unity-bot/internal/controller/state"
	"go.uber.org/zap"
)

// Callback data отзывов
const (
	CBRate     = "rate:"      // rate:<counselor_id>
	CBRateStar = "rate_star:" // rate_star:<counselor_id>:<rating>
)

// ========================
// Review Panel
// ========================

// HandleRateStart открывает выбор оценки для консультанта.
func HandleRateStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	counselorID := common.CallbackArg(callback.Data, CBRate)
	if counselorID == "" {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	token, err := h.Sessions.Token(ctx, chatID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	profile, err := h.Booking.ClientProfile(ctx, token)
	if err != nil {
		h.Logger.Error("Failed to load client profile", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	// Один отзыв на консультанта: повторная оценка блокируется и здесь,
	// а не только скрытием кнопки на дашборде.
	rated, err := h.Reviews.RatedMap(ctx, token, profile.UserID)
	if _, already := rated[counselorID]; err == nil && already {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "You have already rated this counselor")
		return
	}

	h.State.SetReview(chatID, &state.ReviewDraft{
		CounselorID: counselorID,
		ClientID:    profile.UserID,
	})

	kb := keyboard.NewBuilder()
	for rating := 1; rating <= 5; rating++ {
		kb.Row(keyboard.Button(
			formatting.Stars(rating),
			CBRateStar+counselorID+":"+strconv.Itoa(rating),
		))
	}
	kb.Row(keyboard.Button("◀️ Back", CBBackToDashboard))

	common.AnswerCallback(ctx, b, callback.ID, "")
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "⭐ How was your session? Pick a rating:",
		ReplyMarkup: kb.Build(),
	})
}

// HandleRateStar фиксирует оценку и запрашивает комментарий.
func HandleRateStar(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID

	args := common.CallbackArgs(callback.Data, CBRateStar)
	if len(args) != 2 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	rating, err := strconv.Atoi(args[1])
	if err != nil || rating < 1 || rating > 5 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	draft := h.State.Review(chatID)
	if draft == nil || draft.CounselorID != args[0] {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrFlowExpired))
		return
	}

	draft.Rating = rating
	h.State.SetState(chatID, state.StateReviewComment)

	common.AnswerCallback(ctx, b, callback.ID, formatting.Stars(rating))
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   formatting.Stars(rating) + "\n\nNow write a short comment about your experience:",
	})
}
