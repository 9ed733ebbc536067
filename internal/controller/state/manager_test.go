package state

import (
	"testing"
	"time"

	"github.com/lidiya-fiker/unity-bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestManagerStates(t *testing.T) {
	m := NewManager()

	assert.Equal(t, StateNone, m.GetState(1))

	m.SetState(1, StateEnterToken)
	assert.Equal(t, StateEnterToken, m.GetState(1))
	assert.Equal(t, StateNone, m.GetState(2), "states are per chat")

	m.ClearState(1)
	assert.Equal(t, StateNone, m.GetState(1))
}

func TestManagerDraftsSurviveStateChange(t *testing.T) {
	m := NewManager()

	m.SetBooking(1, &BookingDraft{Step: StepSelectSlot})
	m.SetState(1, StatePayerFirstName)

	require.NotNil(t, m.Booking(1))
	assert.Equal(t, StepSelectSlot, m.Booking(1).Step)

	m.SetState(1, StateNone)
	assert.NotNil(t, m.Booking(1), "drafts outlive text states")

	m.ClearState(1)
	assert.Nil(t, m.Booking(1))
}

func TestBookingAdvanceGating(t *testing.T) {
	draft := &BookingDraft{Step: StepSelectCounselor}

	// Без консультанта дальше не пускаем
	assert.False(t, draft.Advance())
	assert.Equal(t, StepSelectCounselor, draft.Step)

	draft.Counselor = &model.SelectedCounselor{ID: "c-1", FullName: "Abebe Kebede"}
	assert.True(t, draft.Advance())
	assert.Equal(t, StepSelectSlot, draft.Step)

	// Без слота тоже
	assert.False(t, draft.Advance())

	draft.SelectedSlot = &model.TimeSlot{ID: "s-1", Start: "09:00", End: "10:00"}
	assert.True(t, draft.Advance())
	assert.Equal(t, StepSummary, draft.Step)

	assert.True(t, draft.Advance())
	assert.Equal(t, StepPayment, draft.Step)

	assert.True(t, draft.Advance())
	assert.Equal(t, StepConfirmation, draft.Step)

	// С последнего шага идти некуда
	assert.False(t, draft.Advance())
}

func TestBookingBackKeepsSelections(t *testing.T) {
	draft := &BookingDraft{
		Step:         StepSummary,
		Counselor:    &model.SelectedCounselor{ID: "c-1"},
		SelectedSlot: &model.TimeSlot{ID: "s-1"},
	}

	draft.Back()
	assert.Equal(t, StepSelectSlot, draft.Step)
	assert.NotNil(t, draft.SelectedSlot, "back does not reset selections")

	draft.Back()
	draft.Back()
	assert.Equal(t, StepSelectCounselor, draft.Step, "back stops at the first step")
}

func TestSelectDateClearsSlot(t *testing.T) {
	today := day(2024, time.June, 10)
	draft := &BookingDraft{
		SelectedDate: "2024-06-15",
		SelectedSlot: &model.TimeSlot{ID: "s-1"},
	}

	ok := draft.SelectDate(day(2024, time.June, 20), today)
	assert.True(t, ok)
	assert.Equal(t, "2024-06-20", draft.SelectedDate)
	assert.Nil(t, draft.SelectedSlot, "new date always clears the slot")
}

func TestSelectDatePastIsNoop(t *testing.T) {
	today := day(2024, time.June, 10)
	draft := &BookingDraft{
		SelectedDate: "2024-06-15",
		SelectedSlot: &model.TimeSlot{ID: "s-1"},
	}

	ok := draft.SelectDate(day(2024, time.June, 5), today)
	assert.False(t, ok)
	assert.Equal(t, "2024-06-15", draft.SelectedDate, "past date changes nothing")
	assert.NotNil(t, draft.SelectedSlot)
}

func TestSelectDateTodayAllowed(t *testing.T) {
	today := day(2024, time.June, 10)
	draft := &BookingDraft{}

	assert.True(t, draft.SelectDate(today, today))
	assert.Equal(t, "2024-06-10", draft.SelectedDate)
}

func TestRescheduleComplete(t *testing.T) {
	draft := &RescheduleDraft{}
	assert.False(t, draft.Complete())

	draft.OldBookingID = "b-1"
	draft.ClientID = "cl-1"
	assert.False(t, draft.Complete(), "counselor id is required too")

	draft.CounselorID = "c-1"
	assert.True(t, draft.Complete())
}

func TestRescheduleSelectDate(t *testing.T) {
	today := day(2024, time.June, 10)
	draft := &RescheduleDraft{SelectedSlot: &model.TimeSlot{ID: "s-1"}}

	assert.False(t, draft.SelectDate(day(2024, time.June, 1), today))
	assert.NotNil(t, draft.SelectedSlot)

	assert.True(t, draft.SelectDate(day(2024, time.June, 12), today))
	assert.Nil(t, draft.SelectedSlot)
}
