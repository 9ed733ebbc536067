package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/lidiya-fiker/unity-bot/internal/model"
)

// DateLayout формат дат, которым обменивается клиент с бэкендом.
const DateLayout = "2006-01-02"

// Day одна ячейка месячной сетки календаря.
type Day struct {
	Date     time.Time
	InMonth  bool // принадлежит отображаемому месяцу
	IsToday  bool
	IsPast   bool // строго раньше сегодняшнего дня - выбрать нельзя
	HasSlots bool // на дату есть хотя бы один слот
}

// MonthGrid строит ячейки месяца month: ровно с первого по последнее
// число, в порядке дат. HasSlots берётся из sched по совпадению даты.
func MonthGrid(month, today time.Time, sched []model.DaySchedule) []Day {
	first := StartOfMonth(month)
	last := first.AddDate(0, 1, -1)

	dates := make(map[string]bool, len(sched))
	for _, ds := range sched {
		dates[ds.Date] = true
	}

	days := make([]Day, 0, last.Day())
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateLayout)
		days = append(days, Day{
			Date:     d,
			InMonth:  d.Month() == first.Month() && d.Year() == first.Year(),
			IsToday:  sameDay(d, today),
			IsPast:   d.Before(today) && !sameDay(d, today),
			HasSlots: dates[key],
		})
	}

	return days
}

// GroupSlots группирует слоты бэкенда по датам. Дата берётся до "T",
// порядок слотов внутри дня сохраняется как в ответе, даты уникальны
// по построению (map), итоговый список отсортирован по дате.
func GroupSlots(slots []model.ScheduleSlot) []model.DaySchedule {
	byDate := make(map[string][]model.TimeSlot)
	for _, slot := range slots {
		date := slot.Date
		if idx := strings.Index(date, "T"); idx >= 0 {
			date = date[:idx]
		}
		byDate[date] = append(byDate[date], model.TimeSlot{
			ID:    slot.ID,
			Start: slot.StartTime,
			End:   slot.EndTime,
		})
	}

	sched := make([]model.DaySchedule, 0, len(byDate))
	for date, daySlots := range byDate {
		sched = append(sched, model.DaySchedule{Date: date, Slots: daySlots})
	}

	sort.Slice(sched, func(i, j int) bool {
		return sched[i].Date < sched[j].Date
	})

	return sched
}

// SlotsFor возвращает слоты даты date ("YYYY-MM-DD") или nil.
func SlotsFor(sched []model.DaySchedule, date string) []model.TimeSlot {
	for _, ds := range sched {
		if ds.Date == date {
			return ds.Slots
		}
	}
	return nil
}

// HasDate проверяет, есть ли в расписании хотя бы один слот на дату.
func HasDate(sched []model.DaySchedule, date string) bool {
	return len(SlotsFor(sched, date)) > 0
}

// StartOfMonth нормализует время к первому числу месяца.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// PrevMonth сдвигает месяц ровно на один назад.
func PrevMonth(month time.Time) time.Time {
	return StartOfMonth(month).AddDate(0, -1, 0)
}

// NextMonth сдвигает месяц ровно на один вперёд.
func NextMonth(month time.Time) time.Time {
	return StartOfMonth(month).AddDate(0, 1, 0)
}

// EndOfMonth возвращает последнее число месяца.
func EndOfMonth(month time.Time) time.Time {
	return StartOfMonth(month).AddDate(0, 1, -1)
}

// StartOfToday полночь сегодняшнего дня в заданной таймзоне.
func StartOfToday(loc *time.Location) time.Time {
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
