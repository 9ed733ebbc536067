package model

// SessionCounselor консультант, вложенный в запись о сессии.
// id/userId встречаются в ответах вперемешку, поэтому читаем оба.
type SessionCounselor struct {
	ID             string `json:"id"`
	UserID         string `json:"userId"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Image          string `json:"image"`
	Specialization string `json:"specialization"`
}

// CounselorID возвращает любой из идентификаторов, который заполнен.
func (c SessionCounselor) CounselorID() string {
	if c.ID != "" {
		return c.ID
	}
	return c.UserID
}

// SessionSchedule ссылка на слот расписания внутри сессии.
type SessionSchedule struct {
	ID          string `json:"id"`
	CounselorID string `json:"counselorId"`
}

// Session забронированная сессия. Клиент читает её оптимистично и
// не владеет её жизненным циклом - консистентность за бэкендом.
type Session struct {
	ID          string            `json:"id"`
	ClientID    string            `json:"clientId"`
	Date        string            `json:"date"`      // "YYYY-MM-DD"
	StartTime   string            `json:"startTime"` // "HH:MM:SS" или "HH:MM"
	EndTime     string            `json:"endTime"`
	ZoomJoinURL string            `json:"zoomJoinUrl"`
	Counselor   *SessionCounselor `json:"counselor,omitempty"`
	Schedule    *SessionSchedule  `json:"schedule,omitempty"`
}

// CounselorID достаёт id консультанта из сессии, где бы он ни лежал.
func (s Session) CounselorID() string {
	if s.Counselor != nil {
		if id := s.Counselor.CounselorID(); id != "" {
			return id
		}
	}
	if s.Schedule != nil {
		return s.Schedule.CounselorID
	}
	return ""
}
