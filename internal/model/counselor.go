package model

import "strings"

// Counselor запись каталога консультантов с бэкенда.
type Counselor struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Image          string `json:"image"`
	Specialization string `json:"specialization"`
}

// FullName собирает отображаемое имя консультанта.
func (c Counselor) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// SelectedCounselor проекция консультанта в состоянии мастера бронирования.
// Собирается в момент выбора и живёт только в памяти.
type SelectedCounselor struct {
	ID          string
	FullName    string
	Image       string
	FirstLetter string
}

// NewSelectedCounselor строит проекцию из записи каталога.
func NewSelectedCounselor(c Counselor) SelectedCounselor {
	letter := "?"
	if name := []rune(c.FirstName); len(name) > 0 {
		letter = strings.ToUpper(string(name[0]))
	} else if name := []rune(c.LastName); len(name) > 0 {
		letter = strings.ToUpper(string(name[0]))
	}

	return SelectedCounselor{
		ID:          c.ID,
		FullName:    c.FullName(),
		Image:       c.Image,
		FirstLetter: letter,
	}
}

// CounselorProfile профиль консультанта со статусными флагами.
type CounselorProfile struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Status         string `json:"status"`
	IsApproved     bool   `json:"isApproved"`
	Specialization string `json:"specialization"`
}

// CanModifyAvailability проверяет оба флага, открывающих изменение расписания.
// Статус сравнивается без учёта регистра, как в веб-клиенте.
func (p CounselorProfile) CanModifyAvailability() bool {
	return strings.EqualFold(p.Status, "active") && p.IsApproved
}
