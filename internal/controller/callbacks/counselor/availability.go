package counselor

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/lidiya-fiker/unity-bot/internal/api"
	"github.com/lidiya-fiker/unity-bot/internal/calendar"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/callbacktypes"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/common"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/common/formatting"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/common/keyboard"
	"github.com/lidiya-fiker/unity-bot/internal/controller/state"
	"github.com/lidiya-fiker/unity-bot/internal/service"
	"go.uber.org/zap"
)

// Callback data календаря консультанта
const (
	CBAvailMonth  = "avail_month:" // avail_month:<yyyy-mm>
	CBAvailDate   = "avail_date:"  // avail_date:<yyyy-mm-dd>
	CBAvailAdd    = "avail_add"
	CBAvailDelete = "avail_del:" // avail_del:<slot_id>
)

// ========================
// Counselor Availability
// ========================

// ShowAvailability открывает календарь расписания консультанта.
// Команда /myschedule. Неактивный или неодобренный консультант видит
// свой календарь только для чтения.
func ShowAvailability(ctx context.Context, b *bot.Bot, chatID int64, h *callbacktypes.Handler) {
	token, err := h.Sessions.Token(ctx, chatID)
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: common.ErrorMessage(err)})
		return
	}

	canModify := true
	profile, err := h.Availability.Profile(ctx, token)
	if err != nil {
		if !errors.Is(err, service.ErrNotApproved) {
			h.Logger.Error("Failed to load counselor profile", zap.Error(err))
			b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: common.ErrorMessage(err)})
			return
		}
		canModify = false
	}

	today := h.Today()
	sched, err := h.Availability.MonthSchedule(ctx, token, profile.ID, today)
	if err != nil {
		h.Logger.Error("Failed to load schedule", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: common.ErrorMessage(err)})
		return
	}

	draft := &state.AvailabilityDraft{
		CounselorID: profile.ID,
		CanModify:   canModify,
		Month:       calendar.StartOfMonth(today),
		Schedule:    sched,
	}
	h.State.SetAvailability(chatID, draft)

	renderAvailability(ctx, b, chatID, h, draft)
}

// HandleAvailMonth навигация по месяцам.
func HandleAvailMonth(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	draft := h.State.Availability(chatID)
	if draft == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrFlowExpired))
		return
	}

	month, err := time.ParseInLocation("2006-01", common.CallbackArg(callback.Data, CBAvailMonth), h.Loc)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	token, err := h.Sessions.Token(ctx, chatID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	sched, err := h.Availability.MonthSchedule(ctx, token, draft.CounselorID, month)
	if err != nil {
		h.Logger.Error("Failed to load schedule", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	draft.Month = calendar.StartOfMonth(month)
	draft.Schedule = sched
	draft.SelectedDate = ""

	common.AnswerCallback(ctx, b, callback.ID, "")
	renderAvailability(ctx, b, chatID, h, draft)
}

// HandleAvailDate выбор дня для просмотра и изменения слотов.
func HandleAvailDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	draft := h.State.Availability(chatID)
	if draft == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrFlowExpired))
		return
	}

	date, err := time.ParseInLocation(calendar.DateLayout, common.CallbackArg(callback.Data, CBAvailDate), h.Loc)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	if date.Before(h.Today()) {
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	draft.SelectedDate = date.Format(calendar.DateLayout)
	common.AnswerCallback(ctx, b, callback.ID, "")
	renderAvailability(ctx, b, chatID, h, draft)
}

// HandleAvailAdd запускает ввод времени нового слота.
func HandleAvailAdd(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	draft := h.State.Availability(chatID)
	if draft == nil || draft.SelectedDate == "" {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "Pick a date first")
		return
	}

	if !draft.CanModify {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(service.ErrNotApproved))
		return
	}

	h.State.SetState(chatID, state.StateSlotStartTime)

	common.AnswerCallback(ctx, b, callback.ID, "")
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: "🕐 Enter the start time for " + formatting.FormatDate(draft.SelectedDate) +
			" (for example 09:00).\nEach slot lasts one hour.",
	})
}

// HandleAvailDelete удаляет слот. Слот уходит только со своей даты,
// остальные дни не трогаем.
func HandleAvailDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	draft := h.State.Availability(chatID)
	if draft == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrFlowExpired))
		return
	}

	if !draft.CanModify {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(service.ErrNotApproved))
		return
	}

	slotID := common.CallbackArg(callback.Data, CBAvailDelete)

	token, err := h.Sessions.Token(ctx, chatID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	if err := h.Availability.DeleteSlot(ctx, token, slotID); err != nil {
		h.Logger.Error("Failed to delete slot", zap.Error(err), zap.String("slot_id", slotID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ "+api.BackendMessage(err, "Could not delete the slot"))
		return
	}

	draft.Schedule = service.RemoveSlot(draft.Schedule, slotID)

	common.AnswerCallback(ctx, b, callback.ID, "🗑 Slot removed")
	renderAvailability(ctx, b, chatID, h, draft)
}

// RenderAfterSlotAdded перерисовывает календарь после добавления слота
// из текстового диалога.
func RenderAfterSlotAdded(ctx context.Context, b *bot.Bot, chatID int64, h *callbacktypes.Handler, draft *state.AvailabilityDraft) {
	renderAvailability(ctx, b, chatID, h, draft)
}

func renderAvailability(ctx context.Context, b *bot.Bot, chatID int64, h *callbacktypes.Handler, draft *state.AvailabilityDraft) {
	today := h.Today()
	days := calendar.MonthGrid(draft.Month, today, draft.Schedule)

	kb := keyboard.NewBuilder()
	kb.Row(keyboard.MonthNavRow(draft.Month, today, CBAvailMonth)...)
	kb.AddRows(keyboard.CalendarRows(days, CBAvailDate))

	caption := "🗓 Your availability"
	if !draft.CanModify {
		caption += "\n\n⏳ Your account is awaiting approval. You can view your schedule but not change it yet."
	}

	if draft.SelectedDate != "" {
		slots := calendar.SlotsFor(draft.Schedule, draft.SelectedDate)
		caption += "\n\n" + formatting.FormatDate(draft.SelectedDate) + ":"
		if len(slots) == 0 {
			caption += " no slots yet"
		}
		for _, slot := range slots {
			caption += "\n  🕐 " + formatting.FormatSlotRange(slot.Start, slot.End)
			if draft.CanModify {
				kb.Row(keyboard.Button(
					"🗑 "+formatting.FormatSlotRange(slot.Start, slot.End),
					CBAvailDelete+slot.ID,
				))
			}
		}
		if draft.CanModify {
			kb.Row(keyboard.Button("➕ Add slot", CBAvailAdd))
		}
	}

	img, err := common.RenderMonthImage(draft.Month, days)
	if err != nil {
		h.Logger.Error("Failed to render calendar", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: caption, ReplyMarkup: kb.Build()})
		return
	}

	b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileUpload{Filename: "calendar.png", Data: bytes.NewReader(img)},
		Caption:     caption,
		ReplyMarkup: kb.Build(),
	})
}
