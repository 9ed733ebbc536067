package client

import (
	"bytes"
	"context"
	"fmt"
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
	"go.uber.org/zap"
)

// Callback data переноса брони
const (
	CBReschedule     = "resched:"       // resched:<booking_id>
	CBReschedMonth   = "resched_month:" // resched_month:<yyyy-mm>
	CBReschedDate    = "resched_date:"  // resched_date:<yyyy-mm-dd>
	CBReschedSlot    = "resched_slot:"  // resched_slot:<slot_id>
	CBReschedConfirm = "resched_confirm"
)

// ========================
// Reschedule Flow
// ========================

// HandleRescheduleStart вход в перенос с дашборда: находим сессию,
// предзагружаем доступность консультанта и показываем календарь.
func HandleRescheduleStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	bookingID := common.CallbackArg(callback.Data, CBReschedule)

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

	sessions, err := h.Dashboard.Sessions(ctx, token, profile.UserID)
	if err != nil {
		h.Logger.Error("Failed to load sessions", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	draft := &state.RescheduleDraft{
		Mode:         state.ModePrefetched,
		OldBookingID: bookingID,
		ClientID:     profile.UserID,
	}
	found := false
	for _, sess := range sessions {
		if sess.ID != bookingID {
			continue
		}
		found = true
		draft.CounselorID = sess.CounselorID()
		if sess.Counselor != nil {
			draft.CounselorName = sess.Counselor.FirstName + " " + sess.Counselor.LastName
		}
		break
	}

	// Брони уже нет в списке: отменена или перенесена с другого экрана
	if !found {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrSessionGone))
		return
	}

	if !draft.Complete() {
		// Сессия есть, но без консультанта контекст не собрался.
		// Показываем терминальный экран вместо пустого календаря.
		common.AnswerCallback(ctx, b, callback.ID, "")
		renderRescheduleError(ctx, b, chatID)
		return
	}

	today := h.Today()
	sched, err := h.Dashboard.PrefetchAvailability(ctx, token, draft.CounselorID, today)
	if err != nil {
		h.Logger.Error("Failed to prefetch availability", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	draft.Month = calendar.StartOfMonth(today)
	draft.Schedule = sched
	h.State.SetReschedule(chatID, draft)

	common.AnswerCallback(ctx, b, callback.ID, "")
	renderRescheduleCalendar(ctx, b, chatID, h, draft)
}

// HandleRescheduleMonth навигация по месяцам. Уход с предзагруженного
// месяца переключает черновик на загрузку по запросу.
func HandleRescheduleMonth(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	draft := h.State.Reschedule(chatID)
	if draft == nil || !draft.Complete() {
		common.AnswerCallback(ctx, b, callback.ID, "")
		renderRescheduleError(ctx, b, chatID)
		return
	}

	month, err := time.ParseInLocation("2006-01", common.CallbackArg(callback.Data, CBReschedMonth), h.Loc)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	token, err := h.Sessions.Token(ctx, chatID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	sched, err := h.Booking.MonthAvailability(ctx, token, draft.CounselorID, month)
	if err != nil {
		h.Logger.Error("Failed to load availability", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	draft.Mode = state.ModeFetchOnEntry
	draft.Month = calendar.StartOfMonth(month)
	draft.Schedule = sched
	draft.SelectedDate = ""
	draft.SelectedSlot = nil

	common.AnswerCallback(ctx, b, callback.ID, "")
	renderRescheduleCalendar(ctx, b, chatID, h, draft)
}

// HandleRescheduleDate выбор дня: прошедший день игнорируется,
// выбранный слот сбрасывается.
func HandleRescheduleDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	draft := h.State.Reschedule(chatID)
	if draft == nil || !draft.Complete() {
		common.AnswerCallback(ctx, b, callback.ID, "")
		renderRescheduleError(ctx, b, chatID)
		return
	}

	date, err := time.ParseInLocation(calendar.DateLayout, common.CallbackArg(callback.Data, CBReschedDate), h.Loc)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	if !draft.SelectDate(date, h.Today()) {
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")
	renderRescheduleCalendar(ctx, b, chatID, h, draft)
}

// HandleRescheduleSlot выбор нового слота.
func HandleRescheduleSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	draft := h.State.Reschedule(chatID)
	if draft == nil || !draft.Complete() {
		common.AnswerCallback(ctx, b, callback.ID, "")
		renderRescheduleError(ctx, b, chatID)
		return
	}

	slotID := common.CallbackArg(callback.Data, CBReschedSlot)
	slot := findSlot(calendar.SlotsFor(draft.Schedule, draft.SelectedDate), slotID)
	if slot == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ This slot is no longer available")
		return
	}

	draft.SelectedSlot = slot
	common.AnswerCallback(ctx, b, callback.ID, "✅ "+formatting.FormatSlotRange(slot.Start, slot.End))
	renderRescheduleCalendar(ctx, b, chatID, h, draft)
}

// HandleRescheduleConfirm переносит бронь на выбранный слот.
func HandleRescheduleConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	draft := h.State.Reschedule(chatID)
	if draft == nil || !draft.Complete() {
		common.AnswerCallback(ctx, b, callback.ID, "")
		renderRescheduleError(ctx, b, chatID)
		return
	}

	if draft.SelectedSlot == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "Pick a date and a time slot first")
		return
	}

	token, err := h.Sessions.Token(ctx, chatID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	if err := h.Booking.Rebook(ctx, token, draft.OldBookingID, draft.SelectedSlot.ID, draft.ClientID); err != nil {
		h.Logger.Error("Failed to rebook",
			zap.Error(err),
			zap.String("old_booking_id", draft.OldBookingID),
			zap.String("new_schedule_id", draft.SelectedSlot.ID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ "+api.BackendMessage(err, "Could not reschedule the session"))
		return
	}

	text := fmt.Sprintf(
		"✅ Session rescheduled!\n\n"+
			"📅 New date: %s\n"+
			"🕐 New time: %s",
		formatting.FormatDate(draft.SelectedDate),
		formatting.FormatSlotRange(draft.SelectedSlot.Start, draft.SelectedSlot.End),
	)

	h.State.ClearState(chatID)

	kb := keyboard.NewBuilder().Row(keyboard.Button("📅 My sessions", CBBackToDashboard))

	common.AnswerCallback(ctx, b, callback.ID, "✅ Rescheduled")
	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text, ReplyMarkup: kb.Build()})
}

func renderRescheduleCalendar(ctx context.Context, b *bot.Bot, chatID int64, h *callbacktypes.Handler, draft *state.RescheduleDraft) {
	today := h.Today()
	days := calendar.MonthGrid(draft.Month, today, draft.Schedule)

	kb := keyboard.NewBuilder()
	kb.Row(keyboard.MonthNavRow(draft.Month, today, CBReschedMonth)...)
	kb.AddRows(keyboard.CalendarRows(days, CBReschedDate))

	caption := "🔁 Pick a new time"
	if draft.CounselorName != "" {
		caption += " with " + draft.CounselorName
	}
	if draft.SelectedDate != "" {
		slots := calendar.SlotsFor(draft.Schedule, draft.SelectedDate)
		if len(slots) == 0 {
			caption += "\n\n" + formatting.FormatDate(draft.SelectedDate) + ": no free slots"
		} else {
			caption += "\n\n" + formatting.FormatDate(draft.SelectedDate) + ": choose a slot"
			kb.AddRows(keyboard.SlotRows(slots, CBReschedSlot))
		}
	}
	if draft.SelectedSlot != nil {
		caption += "\nSelected: " + formatting.FormatSlotRange(draft.SelectedSlot.Start, draft.SelectedSlot.End)
	}

	kb.Row(
		keyboard.Button("◀️ Back", CBBackToDashboard),
		keyboard.Button("✅ Confirm", CBReschedConfirm),
	)

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

// renderRescheduleError терминальный экран: без id брони, клиента и
// консультанта перенос продолжать нельзя.
func renderRescheduleError(ctx context.Context, b *bot.Bot, chatID int64) {
	kb := keyboard.NewBuilder().Row(keyboard.Button("📅 My sessions", CBBackToDashboard))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        common.ErrorMessage(common.ErrMissingContext),
		ReplyMarkup: kb.Build(),
	})
}
