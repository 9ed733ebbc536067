package model

// ReviewCounselor консультант внутри отзыва.
type ReviewCounselor struct {
	UserID string `json:"userId"`
}

// Review отзыв клиента о консультанте.
type Review struct {
	ID          string           `json:"id"`
	CounselorID string           `json:"counselorId"`
	ClientID    string           `json:"clientId"`
	Rating      int              `json:"rating"`
	Comment     string           `json:"comment"`
	Counselor   *ReviewCounselor `json:"counselor,omitempty"`
}

// RatedCounselorID возвращает id консультанта, к которому относится отзыв.
func (r Review) RatedCounselorID() string {
	if r.Counselor != nil && r.Counselor.UserID != "" {
		return r.Counselor.UserID
	}
	return r.CounselorID
}
