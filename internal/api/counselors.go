package api

import (
	"context"

	"github.com/lidiya-fiker/unity-bot/internal/model"
)

// Counselors возвращает полный каталог консультантов без фильтра
// по статусу.
func (c *Client) Counselors(ctx context.Context) ([]model.Counselor, error) {
	var counselors []model.Counselor
	if err := c.get(ctx, "/counselors", nil, "", &counselors); err != nil {
		return nil, err
	}
	return counselors, nil
}

// ApprovedCounselors возвращает только одобренных консультантов.
func (c *Client) ApprovedCounselors(ctx context.Context) ([]model.Counselor, error) {
	var counselors []model.Counselor
	if err := c.get(ctx, "/counselors/approved", nil, "", &counselors); err != nil {
		return nil, err
	}
	return counselors, nil
}

// CounselorProfile возвращает профиль консультанта со статусными флагами.
func (c *Client) CounselorProfile(ctx context.Context, token, counselorID string) (*model.CounselorProfile, error) {
	var profile model.CounselorProfile
	if err := c.get(ctx, "/counselors/profile/"+counselorID, nil, token, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
