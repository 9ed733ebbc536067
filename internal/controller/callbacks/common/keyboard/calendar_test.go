package keyboard

import (
	"testing"
	"time"

	"github.com/lidiya-fiker/unity-bot/internal/calendar"
	"github.com/lidiya-fiker/unity-bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalendarRowsAlignment(t *testing.T) {
	// Июнь 2024 начинается в субботу: пять заглушек перед "1"
	days := calendar.MonthGrid(date(2024, time.June, 1), date(2024, time.June, 10), nil)
	rows := CalendarRows(days, "d:")

	require.Len(t, rows, 5)
	for _, row := range rows {
		assert.Len(t, row, 7)
	}

	for i := 0; i < 5; i++ {
		assert.Equal(t, Noop, rows[0][i].CallbackData)
		assert.Equal(t, " ", rows[0][i].Text)
	}

	// Сегодня (10 июня) - понедельник третьей строки, с подсветкой
	assert.Equal(t, "d:2024-06-10", rows[2][0].CallbackData)
	assert.Equal(t, "[10]", rows[2][0].Text)

	assert.Equal(t, "d:2024-06-30", rows[4][6].CallbackData)
}

func TestCalendarRowsPastAndSlots(t *testing.T) {
	sched := []model.DaySchedule{
		{Date: "2024-06-15", Slots: []model.TimeSlot{{ID: "s1"}}},
	}
	days := calendar.MonthGrid(date(2024, time.June, 1), date(2024, time.June, 10), sched)
	rows := CalendarRows(days, "d:")

	// 1 июня - прошлое, кнопка-заглушка
	assert.Equal(t, Noop, rows[0][5].CallbackData)
	assert.Equal(t, "✕", rows[0][5].Text)

	// 15 июня несёт маркер слотов и остаётся кликабельным
	var slotDay *struct{ text, data string }
	for _, row := range rows {
		for _, btn := range row {
			if btn.CallbackData == "d:2024-06-15" {
				slotDay = &struct{ text, data string }{btn.Text, btn.CallbackData}
			}
		}
	}
	require.NotNil(t, slotDay)
	assert.Equal(t, "15•", slotDay.text)
}

func TestMonthNavRowHidesPastArrow(t *testing.T) {
	today := date(2024, time.June, 10)

	// Текущий месяц: назад нельзя
	row := MonthNavRow(date(2024, time.June, 1), today, "m:")
	require.Len(t, row, 2)
	assert.Equal(t, "June 2024", row[0].Text)
	assert.Equal(t, Noop, row[0].CallbackData)
	assert.Equal(t, "m:2024-07", row[1].CallbackData)

	// Будущий месяц: обе стрелки
	row = MonthNavRow(date(2024, time.July, 1), today, "m:")
	require.Len(t, row, 3)
	assert.Equal(t, "m:2024-06", row[0].CallbackData)
	assert.Equal(t, "m:2024-08", row[2].CallbackData)
}

func TestSlotRows(t *testing.T) {
	slots := []model.TimeSlot{
		{ID: "a", Start: "09:00", End: "10:00"},
		{ID: "b", Start: "10:00", End: "11:00"},
		{ID: "c", Start: "11:00", End: "12:00"},
		{ID: "d", Start: "14:00", End: "15:00"},
	}

	rows := SlotRows(slots, "s:")

	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 3)
	assert.Len(t, rows[1], 1)
	assert.Equal(t, "s:a", rows[0][0].CallbackData)
	assert.Equal(t, "09:00 - 10:00", rows[0][0].Text)
}
