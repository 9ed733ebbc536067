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
	"github.com/lidiya-fiker/unity-bot/internal/model"
	"github.com/lidiya-fiker/unity-bot/internal/service"
	"go.uber.org/zap"
)

// Callback data мастера бронирования
const (
	CBBookStart = "book_start"
	CBCounselor = "wiz_counselor:" // wiz_counselor:<counselor_id>
	CBMonth     = "wiz_month:"     // wiz_month:<yyyy-mm>
	CBDate      = "wiz_date:"      // wiz_date:<yyyy-mm-dd>
	CBSlot      = "wiz_slot:"      // wiz_slot:<slot_id>
	CBNext      = "wiz_next"
	CBBack      = "wiz_back"
	CBPaid      = "wiz_paid"
	CBCancel    = "wiz_cancel"
)

// ========================
// Booking Wizard
// ========================

// StartWizard начинает мастер бронирования с выбора консультанта.
func StartWizard(ctx context.Context, b *bot.Bot, chatID int64, h *callbacktypes.Handler) {
	if _, err := h.Sessions.Token(ctx, chatID); err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   common.ErrorMessage(err),
		})
		return
	}

	draft := &state.BookingDraft{Step: state.StepSelectCounselor}
	h.State.SetBooking(chatID, draft)

	renderCounselorStep(ctx, b, chatID, h, draft)
}

// HandleBookStart кнопка "Book a session" на дашборде.
func HandleBookStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.AnswerCallback(ctx, b, callback.ID, "")
	StartWizard(ctx, b, callback.From.ID, h)
}

// HandleWizardCounselor выбор консультанта на первом шаге.
func HandleWizardCounselor(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	draft := h.State.Booking(chatID)
	if draft == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrFlowExpired))
		return
	}

	counselorID := common.CallbackArg(callback.Data, CBCounselor)

	counselors, err := h.Booking.Counselors(ctx)
	if err != nil {
		h.Logger.Error("Failed to load counselors", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	var found *model.Counselor
	for i := range counselors {
		if counselors[i].ID == counselorID {
			found = &counselors[i]
			break
		}
	}
	if found == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ This counselor is no longer available")
		return
	}

	selected := model.NewSelectedCounselor(*found)
	draft.Counselor = &selected

	common.AnswerCallback(ctx, b, callback.ID, "✅ "+selected.FullName)
	renderCounselorStep(ctx, b, chatID, h, draft)
}

// HandleWizardNext переход на следующий шаг. Без обязательного выбора
// текущего шага переход блокируется.
func HandleWizardNext(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	draft := h.State.Booking(chatID)
	if draft == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrFlowExpired))
		return
	}

	if !draft.Advance() {
		common.AnswerCallbackAlert(ctx, b, callback.ID, nextBlockedMessage(draft.Step))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")
	renderWizardStep(ctx, b, chatID, h, draft)
}

// HandleWizardBack шаг назад, выбор шагов сохраняется.
func HandleWizardBack(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	draft := h.State.Booking(chatID)
	if draft == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrFlowExpired))
		return
	}

	draft.Back()
	common.AnswerCallback(ctx, b, callback.ID, "")
	renderWizardStep(ctx, b, chatID, h, draft)
}

// HandleWizardMonth навигация по месяцам календаря.
func HandleWizardMonth(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	draft := h.State.Booking(chatID)
	if draft == nil || draft.Counselor == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrFlowExpired))
		return
	}

	month, err := time.ParseInLocation("2006-01", common.CallbackArg(callback.Data, CBMonth), h.Loc)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	if err := loadWizardMonth(ctx, h, chatID, draft, month); err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")
	renderWizardStep(ctx, b, chatID, h, draft)
}

// HandleWizardDate выбор дня в календаре. Прошедший день игнорируется,
// выбор нового дня сбрасывает ранее выбранный слот.
func HandleWizardDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	draft := h.State.Booking(chatID)
	if draft == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrFlowExpired))
		return
	}

	date, err := time.ParseInLocation(calendar.DateLayout, common.CallbackArg(callback.Data, CBDate), h.Loc)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	if !draft.SelectDate(date, h.Today()) {
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")
	renderWizardStep(ctx, b, chatID, h, draft)
}

// HandleWizardSlot выбор слота выбранного дня.
func HandleWizardSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	draft := h.State.Booking(chatID)
	if draft == nil || draft.SelectedDate == "" {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrFlowExpired))
		return
	}

	slotID := common.CallbackArg(callback.Data, CBSlot)
	slot := findSlot(calendar.SlotsFor(draft.Schedule, draft.SelectedDate), slotID)
	if slot == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ This slot is no longer available")
		return
	}

	draft.SelectedSlot = slot
	common.AnswerCallback(ctx, b, callback.ID, "✅ "+formatting.FormatSlotRange(slot.Start, slot.End))
	renderWizardStep(ctx, b, chatID, h, draft)
}

// HandleWizardPaid кнопка "I have paid": создаём бронь и показываем
// подтверждение.
func HandleWizardPaid(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	draft := h.State.Booking(chatID)
	if draft == nil || draft.Counselor == nil || draft.SelectedSlot == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrFlowExpired))
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

	if err := h.Booking.CreateBooking(ctx, token, profile.UserID, draft.SelectedSlot.ID); err != nil {
		h.Logger.Error("Failed to create booking",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.String("schedule_id", draft.SelectedSlot.ID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ "+api.BackendMessage(err, "Could not confirm the booking"))
		return
	}

	if err := h.Sessions.AddRecentCounselor(ctx, chatID, draft.Counselor.ID); err != nil {
		h.Logger.Warn("Failed to remember counselor", zap.Error(err))
	}

	draft.Step = state.StepConfirmation
	common.AnswerCallback(ctx, b, callback.ID, "✅ Booked")
	renderWizardStep(ctx, b, chatID, h, draft)
}

// HandleWizardCancel выход из мастера без бронирования.
func HandleWizardCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	h.State.ClearState(chatID)

	common.AnswerCallback(ctx, b, callback.ID, "")
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "Booking cancelled. Use /book to start again or /start for your dashboard.",
	})
}

// renderWizardStep отрисовывает экран текущего шага.
func renderWizardStep(ctx context.Context, b *bot.Bot, chatID int64, h *callbacktypes.Handler, draft *state.BookingDraft) {
	switch draft.Step {
	case state.StepSelectCounselor:
		renderCounselorStep(ctx, b, chatID, h, draft)
	case state.StepSelectSlot:
		renderSlotStep(ctx, b, chatID, h, draft)
	case state.StepSummary:
		renderSummaryStep(ctx, b, chatID, draft)
	case state.StepPayment:
		startPaymentForm(ctx, b, chatID, h)
	case state.StepConfirmation:
		renderConfirmationStep(ctx, b, chatID, h, draft)
	}
}

func renderCounselorStep(ctx context.Context, b *bot.Bot, chatID int64, h *callbacktypes.Handler, draft *state.BookingDraft) {
	counselors, err := h.Booking.Counselors(ctx)
	if err != nil {
		h.Logger.Error("Failed to load counselors", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: common.ErrorMessage(err)})
		return
	}

	if len(counselors) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "😔 No counselors are available right now. Please try again later.",
		})
		return
	}

	kb := keyboard.NewBuilder()
	for _, c := range counselors {
		label := c.FullName()
		if c.Specialization != "" {
			label += " · " + c.Specialization
		}
		if draft.Counselor != nil && draft.Counselor.ID == c.ID {
			label = "✅ " + label
		}
		kb.Row(keyboard.Button(label, CBCounselor+c.ID))
	}
	kb.Row(
		keyboard.Button("❌ Cancel", CBCancel),
		keyboard.Button("Next ▶️", CBNext),
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "🧑‍⚕️ Step 1 of 5: choose your counselor",
		ReplyMarkup: kb.Build(),
	})
}

func renderSlotStep(ctx context.Context, b *bot.Bot, chatID int64, h *callbacktypes.Handler, draft *state.BookingDraft) {
	if draft.Month.IsZero() {
		if err := loadWizardMonth(ctx, h, chatID, draft, h.Today()); err != nil {
			h.Logger.Error("Failed to load availability", zap.Error(err))
			b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: common.ErrorMessage(err)})
			return
		}
	}

	today := h.Today()
	days := calendar.MonthGrid(draft.Month, today, draft.Schedule)

	kb := keyboard.NewBuilder()
	kb.Row(keyboard.MonthNavRow(draft.Month, today, CBMonth)...)
	kb.AddRows(keyboard.CalendarRows(days, CBDate))

	caption := fmt.Sprintf("📅 Step 2 of 5: pick a time with %s", draft.Counselor.FullName)
	if draft.SelectedDate != "" {
		slots := calendar.SlotsFor(draft.Schedule, draft.SelectedDate)
		if len(slots) == 0 {
			caption += "\n\n" + formatting.FormatDate(draft.SelectedDate) + ": no free slots"
		} else {
			caption += "\n\n" + formatting.FormatDate(draft.SelectedDate) + ": choose a slot"
			kb.AddRows(keyboard.SlotRows(slots, CBSlot))
		}
	}
	if draft.SelectedSlot != nil {
		caption += "\nSelected: " + formatting.FormatSlotRange(draft.SelectedSlot.Start, draft.SelectedSlot.End)
	}

	kb.Row(
		keyboard.Button("◀️ Back", CBBack),
		keyboard.Button("❌ Cancel", CBCancel),
		keyboard.Button("Next ▶️", CBNext),
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

func renderSummaryStep(ctx context.Context, b *bot.Bot, chatID int64, draft *state.BookingDraft) {
	text := fmt.Sprintf(
		"📋 Step 3 of 5: review your booking\n\n"+
			"🧑‍⚕️ Counselor: %s\n"+
			"📅 Date: %s\n"+
			"🕐 Time: %s\n"+
			"💵 Fee: %d birr",
		draft.Counselor.FullName,
		formatting.FormatDate(draft.SelectedDate),
		formatting.FormatSlotRange(draft.SelectedSlot.Start, draft.SelectedSlot.End),
		service.SessionFeeBirr,
	)

	kb := keyboard.NewBuilder().Row(
		keyboard.Button("◀️ Back", CBBack),
		keyboard.Button("❌ Cancel", CBCancel),
		keyboard.Button("Pay ▶️", CBNext),
	)

	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text, ReplyMarkup: kb.Build()})
}

// startPaymentForm запускает диалог ввода имени плательщика.
// Дальше flow ведут текстовые состояния, см. handlers/dialogs.go.
func startPaymentForm(ctx context.Context, b *bot.Bot, chatID int64, h *callbacktypes.Handler) {
	h.State.SetState(chatID, state.StatePayerFirstName)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "💳 Step 4 of 5: payment details\n\nEnter the payer's first name:",
	})
}

// SendPaymentLink отправляет ссылку Chapa и кнопку подтверждения оплаты.
// Вызывается из диалога после ввода имени и фамилии.
func SendPaymentLink(ctx context.Context, b *bot.Bot, chatID int64, redirectURL string) {
	kb := keyboard.NewBuilder().
		Row(keyboard.URLButton("💳 Pay with Chapa", redirectURL)).
		Row(
			keyboard.Button("◀️ Back", CBBack),
			keyboard.Button("✅ I have paid", CBPaid),
		)

	text := fmt.Sprintf(
		"💳 Pay %d birr via Chapa using the button below.\n\n"+
			"Press \"I have paid\" once the payment is complete.",
		service.SessionFeeBirr,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text, ReplyMarkup: kb.Build()})
}

func renderConfirmationStep(ctx context.Context, b *bot.Bot, chatID int64, h *callbacktypes.Handler, draft *state.BookingDraft) {
	text := fmt.Sprintf(
		"🎉 Step 5 of 5: booking confirmed!\n\n"+
			"🧑‍⚕️ Counselor: %s\n"+
			"📅 Date: %s\n"+
			"🕐 Time: %s\n\n"+
			"You will find the session link in /mybookings closer to the start.",
		draft.Counselor.FullName,
		formatting.FormatDate(draft.SelectedDate),
		formatting.FormatSlotRange(draft.SelectedSlot.Start, draft.SelectedSlot.End),
	)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📅 My sessions", CBBackToDashboard)).
		Row(keyboard.Button("➕ Book another", CBBookStart))

	h.State.ClearState(chatID)

	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text, ReplyMarkup: kb.Build()})
}

// loadWizardMonth подгружает доступность консультанта на месяц.
func loadWizardMonth(ctx context.Context, h *callbacktypes.Handler, chatID int64, draft *state.BookingDraft, month time.Time) error {
	token, err := h.Sessions.Token(ctx, chatID)
	if err != nil {
		return err
	}

	sched, err := h.Booking.MonthAvailability(ctx, token, draft.Counselor.ID, month)
	if err != nil {
		return err
	}

	draft.Month = calendar.StartOfMonth(month)
	draft.Schedule = sched
	draft.SelectedDate = ""
	draft.SelectedSlot = nil
	return nil
}

func findSlot(slots []model.TimeSlot, slotID string) *model.TimeSlot {
	for i := range slots {
		if slots[i].ID == slotID {
			return &slots[i]
		}
	}
	return nil
}

func nextBlockedMessage(step int) string {
	switch step {
	case state.StepSelectCounselor:
		return "Choose a counselor first"
	case state.StepSelectSlot:
		return "Pick a date and a time slot first"
	default:
		return "Cannot continue from here"
	}
}
