package formatting

import (
	"strings"
	"time"

	"github.com/lidiya-fiker/unity-bot/internal/calendar"
)

// FormatDate форматирует дату "YYYY-MM-DD" для пользователя.
// Нераспарсившаяся строка возвращается как есть.
func FormatDate(date string) string {
	if idx := strings.Index(date, "T"); idx >= 0 {
		date = date[:idx]
	}
	t, err := time.Parse(calendar.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 2 2006")
}

// FormatSlotRange форматирует интервал слота "HH:MM[:SS]".
func FormatSlotRange(start, end string) string {
	return TrimSeconds(start) + " - " + TrimSeconds(end)
}

// TrimSeconds обрезает секунды: "09:00:00" -> "09:00".
func TrimSeconds(clock string) string {
	if strings.Count(clock, ":") == 2 {
		return clock[:strings.LastIndex(clock, ":")]
	}
	return clock
}

// MonthTitle заголовок месяца для экранов календаря.
func MonthTitle(month time.Time) string {
	return month.Format("January 2006")
}

// Stars строит строку оценки: Stars(3) -> "⭐⭐⭐☆☆".
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("⭐", rating) + strings.Repeat("☆", 5-rating)
}
