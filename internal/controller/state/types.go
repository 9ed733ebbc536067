package state

import (
	"time"

	"github.com/lidiya-fiker/unity-bot/internal/model"
)

// UserState текущее состояние диалога с пользователем:
// какой текстовый ввод бот ждёт следующим сообщением.
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Логин
	StateEnterToken UserState = "enter_token"

	// Мастер бронирования - форма оплаты
	StatePayerFirstName UserState = "payer_first_name"
	StatePayerLastName  UserState = "payer_last_name"

	// Расписание консультанта - время нового слота
	StateSlotStartTime UserState = "slot_start_time"

	// Отзыв - текст комментария
	StateReviewComment UserState = "review_comment"
)

// Шаги мастера бронирования. Переходы строго линейные.
const (
	StepSelectCounselor = 1
	StepSelectSlot      = 2
	StepSummary         = 3
	StepPayment         = 4
	StepConfirmation    = 5
)

// BookingDraft состояние мастера бронирования одного чата.
// Живёт только в памяти: /cancel или рестарт бота сбрасывают всё.
type BookingDraft struct {
	Step         int
	Counselor    *model.SelectedCounselor
	Month        time.Time // первое число отображаемого месяца
	Schedule     []model.DaySchedule
	SelectedDate string // "YYYY-MM-DD", пусто если день не выбран
	SelectedSlot *model.TimeSlot
	FirstName    string
	LastName     string
}

// CanAdvance проверяет, заполнен ли обязательный выбор текущего шага.
func (d *BookingDraft) CanAdvance() bool {
	switch d.Step {
	case StepSelectCounselor:
		return d.Counselor != nil
	case StepSelectSlot:
		return d.SelectedSlot != nil && d.SelectedSlot.ID != ""
	case StepSummary, StepPayment:
		return true
	default:
		return false
	}
}

// Advance переходит на следующий шаг, если выбор сделан.
func (d *BookingDraft) Advance() bool {
	if !d.CanAdvance() || d.Step >= StepConfirmation {
		return false
	}
	d.Step++
	return true
}

// Back возвращается на шаг назад без какой-либо валидации.
func (d *BookingDraft) Back() {
	if d.Step > StepSelectCounselor {
		d.Step--
	}
}

// SelectDate выбирает дату в календаре. Прошедшая дата - no-op,
// валидная дата всегда сбрасывает ранее выбранный слот.
func (d *BookingDraft) SelectDate(date, today time.Time) bool {
	if date.Before(today) {
		return false
	}
	d.SelectedDate = date.Format("2006-01-02")
	d.SelectedSlot = nil
	return true
}

// AvailabilityMode откуда flow переноса берёт данные о доступности.
type AvailabilityMode string

const (
	// ModePrefetched доступность передана дашбордом вместе с сессией
	ModePrefetched AvailabilityMode = "prefetched"
	// ModeFetchOnEntry доступность запрашивается самим flow по месяцу
	ModeFetchOnEntry AvailabilityMode = "fetch_on_entry"
)

// RescheduleDraft состояние переноса существующей брони.
type RescheduleDraft struct {
	Mode          AvailabilityMode
	OldBookingID  string
	ClientID      string
	CounselorID   string
	CounselorName string
	Month         time.Time
	Schedule      []model.DaySchedule
	SelectedDate  string
	SelectedSlot  *model.TimeSlot
}

// Complete проверяет, что flow получил всё необходимое из навигации.
func (d *RescheduleDraft) Complete() bool {
	return d.OldBookingID != "" && d.ClientID != "" && d.CounselorID != ""
}

// SelectDate то же правило, что и в мастере бронирования.
func (d *RescheduleDraft) SelectDate(date, today time.Time) bool {
	if date.Before(today) {
		return false
	}
	d.SelectedDate = date.Format("2006-01-02")
	d.SelectedSlot = nil
	return true
}

// AvailabilityDraft состояние календаря консультанта.
type AvailabilityDraft struct {
	CounselorID  string
	CanModify    bool // status == active && isApproved
	Month        time.Time
	Schedule     []model.DaySchedule
	SelectedDate string
}

// ReviewDraft состояние формы отзыва.
type ReviewDraft struct {
	CounselorID   string
	CounselorName string
	ClientID      string
	Rating        int
}

// UserData всё состояние одного чата.
type UserData struct {
	State        UserState
	Booking      *BookingDraft
	Reschedule   *RescheduleDraft
	Availability *AvailabilityDraft
	Review       *ReviewDraft
}
