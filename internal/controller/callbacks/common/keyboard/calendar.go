package keyboard

import (
	"strconv"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/lidiya-fiker/unity-bot/internal/calendar"
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/common/formatting"
	"github.com/lidiya-fiker/unity-bot/internal/model"
)

// Noop callback data кнопок-заглушек: бот только подтверждает нажатие.
const Noop = "noop"

// CalendarRows строит ряды дней месяца для inline клавиатуры.
// Неделя начинается с понедельника, первая неделя дополняется
// заглушками. Прошедшие дни не кликабельны, дни со слотами
// помечены точкой.
func CalendarRows(days []calendar.Day, datePrefix string) [][]models.InlineKeyboardButton {
	rows := make([][]models.InlineKeyboardButton, 0, 6)
	row := make([]models.InlineKeyboardButton, 0, 7)

	if len(days) > 0 {
		// Monday=0 .. Sunday=6
		offset := (int(days[0].Date.Weekday()) + 6) % 7
		for i := 0; i < offset; i++ {
			row = append(row, Button(" ", Noop))
		}
	}

	for _, day := range days {
		row = append(row, dayButton(day, datePrefix))
		if len(row) == 7 {
			rows = append(rows, row)
			row = make([]models.InlineKeyboardButton, 0, 7)
		}
	}

	if len(row) > 0 {
		for len(row) < 7 {
			row = append(row, Button(" ", Noop))
		}
		rows = append(rows, row)
	}

	return rows
}

func dayButton(day calendar.Day, datePrefix string) models.InlineKeyboardButton {
	label := strconv.Itoa(day.Date.Day())
	if day.HasSlots {
		label += "•"
	}
	if day.IsToday {
		label = "[" + label + "]"
	}

	if day.IsPast {
		return Button("✕", Noop)
	}
	return Button(label, datePrefix+day.Date.Format(calendar.DateLayout))
}

// MonthNavRow строит ряд навигации по месяцам вокруг заголовка.
// Назад от текущего месяца уйти нельзя.
func MonthNavRow(month, today time.Time, monthPrefix string) []models.InlineKeyboardButton {
	title := formatting.MonthTitle(month)

	row := make([]models.InlineKeyboardButton, 0, 3)
	if calendar.StartOfMonth(month).After(calendar.StartOfMonth(today)) {
		row = append(row, Button("◀️", monthPrefix+calendar.PrevMonth(month).Format("2006-01")))
	}
	row = append(row, Button(title, Noop))
	row = append(row, Button("▶️", monthPrefix+calendar.NextMonth(month).Format("2006-01")))
	return row
}

// SlotRows строит ряды кнопок слотов выбранного дня, по три в ряд.
func SlotRows(slots []model.TimeSlot, slotPrefix string) [][]models.InlineKeyboardButton {
	rows := make([][]models.InlineKeyboardButton, 0, (len(slots)+2)/3)
	row := make([]models.InlineKeyboardButton, 0, 3)

	for _, slot := range slots {
		row = append(row, Button(slot.Start+" - "+slot.End, slotPrefix+slot.ID))
		if len(row) == 3 {
			rows = append(rows, row)
			row = make([]models.InlineKeyboardButton, 0, 3)
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return rows
}
