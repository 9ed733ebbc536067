package model

// TimeSlot один бронируемый интервал в рамках дня.
// ID пустой, пока слот не сохранён бэкендом.
type TimeSlot struct {
	ID    string `json:"id,omitempty"`
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`   // "HH:MM"
}

// DaySchedule слоты одной календарной даты.
// Даты уникальны в рамках расписания - это гарантирует группировка
// в calendar.GroupSlots, после неё инвариант не перепроверяется.
type DaySchedule struct {
	Date  string     `json:"date"` // "YYYY-MM-DD"
	Slots []TimeSlot `json:"slots"`
}

// ScheduleSlot слот в том виде, в котором его отдаёт бэкенд.
// Date может приходить как "YYYY-MM-DD", так и полной ISO-датой с "T".
type ScheduleSlot struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}
