package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/callbacktypes"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/client"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/common"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/common/keyboard"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/counselor"
	"go.uber.org/zap"
)

// ========================
// Main Callback Router
// ========================

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	// ===== Common Navigation =====
	case data == keyboard.Noop:
		// No operation - просто подтверждаем callback
		common.AnswerCallback(ctx, b, callback.ID, "")
	case data == client.CBBackToDashboard:
		client.HandleBackToDashboard(ctx, b, callback, h)

	// ===== Booking Wizard =====
	case data == client.CBBookStart:
		client.HandleBookStart(ctx, b, callback, h)
	case strings.HasPrefix(data, client.CBCounselor):
		client.HandleWizardCounselor(ctx, b, callback, h)
	case strings.HasPrefix(data, client.CBMonth):
		client.HandleWizardMonth(ctx, b, callback, h)
	case strings.HasPrefix(data, client.CBDate):
		client.HandleWizardDate(ctx, b, callback, h)
	case strings.HasPrefix(data, client.CBSlot):
		client.HandleWizardSlot(ctx, b, callback, h)
	case data == client.CBNext:
		client.HandleWizardNext(ctx, b, callback, h)
	case data == client.CBBack:
		client.HandleWizardBack(ctx, b, callback, h)
	case data == client.CBPaid:
		client.HandleWizardPaid(ctx, b, callback, h)
	case data == client.CBCancel:
		client.HandleWizardCancel(ctx, b, callback, h)

	// ===== Reschedule =====
	case data == client.CBReschedConfirm:
		client.HandleRescheduleConfirm(ctx, b, callback, h)
	case strings.HasPrefix(data, client.CBReschedMonth):
		client.HandleRescheduleMonth(ctx, b, callback, h)
	case strings.HasPrefix(data, client.CBReschedDate):
		client.HandleRescheduleDate(ctx, b, callback, h)
	case strings.HasPrefix(data, client.CBReschedSlot):
		client.HandleRescheduleSlot(ctx, b, callback, h)
	case strings.HasPrefix(data, client.CBReschedule):
		client.HandleRescheduleStart(ctx, b, callback, h)

	// ===== Reviews =====
	case strings.HasPrefix(data, client.CBRateStar):
		client.HandleRateStar(ctx, b, callback, h)
	case strings.HasPrefix(data, client.CBRate):
		client.HandleRateStart(ctx, b, callback, h)

	// ===== Counselor Availability =====
	case strings.HasPrefix(data, counselor.CBAvailMonth):
		counselor.HandleAvailMonth(ctx, b, callback, h)
	case strings.HasPrefix(data, counselor.CBAvailDate):
		counselor.HandleAvailDate(ctx, b, callback, h)
	case data == counselor.CBAvailAdd:
		counselor.HandleAvailAdd(ctx, b, callback, h)
	case strings.HasPrefix(data, counselor.CBAvailDelete):
		counselor.HandleAvailDelete(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "")
	}
}

// HandleCallbackQuery точка входа для bot.RegisterHandler.
func HandleCallbackQuery(h *callbacktypes.Handler) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.CallbackQuery == nil {
			return
		}
		Route(ctx, b, update.CallbackQuery, h)
	}
}
