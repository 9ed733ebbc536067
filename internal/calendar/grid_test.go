package calendar

import (
	"testing"
	"time"

	"github.com/lidiya-fiker/unity-bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthGridExactDays(t *testing.T) {
	days := MonthGrid(date(2024, time.June, 1), date(2024, time.June, 10), nil)

	require.Len(t, days, 30)
	assert.Equal(t, date(2024, time.June, 1), days[0].Date)
	assert.Equal(t, date(2024, time.June, 30), days[29].Date)

	for _, day := range days {
		assert.True(t, day.InMonth, "day %s must belong to June", day.Date)
	}
}

func TestMonthGridFlags(t *testing.T) {
	sched := []model.DaySchedule{
		{Date: "2024-06-15", Slots: []model.TimeSlot{{ID: "s1", Start: "09:00", End: "10:00"}}},
	}

	days := MonthGrid(date(2024, time.June, 1), date(2024, time.June, 10), sched)

	assert.True(t, days[8].IsPast, "June 9 is before today")
	assert.False(t, days[9].IsPast, "today is not past")
	assert.True(t, days[9].IsToday)
	assert.False(t, days[10].IsPast, "June 11 is in the future")

	assert.True(t, days[14].HasSlots, "June 15 has a slot")
	assert.False(t, days[13].HasSlots)
}

func TestMonthGridFebruaryLeapYear(t *testing.T) {
	days := MonthGrid(date(2024, time.February, 1), date(2024, time.January, 1), nil)
	require.Len(t, days, 29)

	days = MonthGrid(date(2025, time.February, 1), date(2025, time.January, 1), nil)
	require.Len(t, days, 28)
}

func TestGroupSlots(t *testing.T) {
	slots := []model.ScheduleSlot{
		{ID: "b", Date: "2024-06-20T00:00:00.000Z", StartTime: "14:00", EndTime: "15:00"},
		{ID: "a", Date: "2024-06-15", StartTime: "09:00", EndTime: "10:00"},
		{ID: "c", Date: "2024-06-15", StartTime: "11:00", EndTime: "12:00"},
	}

	sched := GroupSlots(slots)

	require.Len(t, sched, 2)
	assert.Equal(t, "2024-06-15", sched[0].Date)
	assert.Equal(t, "2024-06-20", sched[1].Date, "time suffix must be stripped")

	// Порядок слотов внутри дня как в ответе бэкенда
	require.Len(t, sched[0].Slots, 2)
	assert.Equal(t, "a", sched[0].Slots[0].ID)
	assert.Equal(t, "c", sched[0].Slots[1].ID)
}

func TestGroupSlotsEmpty(t *testing.T) {
	assert.Empty(t, GroupSlots(nil))
}

func TestSlotsFor(t *testing.T) {
	sched := []model.DaySchedule{
		{Date: "2024-06-15", Slots: []model.TimeSlot{{ID: "s1"}}},
	}

	assert.Len(t, SlotsFor(sched, "2024-06-15"), 1)
	assert.Nil(t, SlotsFor(sched, "2024-06-16"))
	assert.True(t, HasDate(sched, "2024-06-15"))
	assert.False(t, HasDate(sched, "2024-06-16"))
}

func TestMonthNavigation(t *testing.T) {
	june := date(2024, time.June, 17)

	assert.Equal(t, date(2024, time.June, 1), StartOfMonth(june))
	assert.Equal(t, date(2024, time.May, 1), PrevMonth(june))
	assert.Equal(t, date(2024, time.July, 1), NextMonth(june))
	assert.Equal(t, date(2024, time.June, 30), EndOfMonth(june))

	// Через границу года
	assert.Equal(t, date(2025, time.January, 1), NextMonth(date(2024, time.December, 5)))
	assert.Equal(t, date(2023, time.December, 1), PrevMonth(date(2024, time.January, 5)))
}
