package api

import (
	"context"
	"net/url"

	"github.com/lidiya-fiker/unity-bot/internal/model"
	"go.uber.org/zap"
)

// AvailableSlots запрашивает свободные слоты консультанта за период.
// Даты в формате "YYYY-MM-DD" включительно.
func (c *Client) AvailableSlots(ctx context.Context, token, counselorID, startDate, endDate string) ([]model.ScheduleSlot, error) {
	query := url.Values{}
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)
	query.Set("counselorId", counselorID)

	var slots []model.ScheduleSlot
	if err := c.get(ctx, "/schedule/available", query, token, &slots); err != nil {
		return nil, err
	}

	c.logger.Debug("Fetched available slots",
		zap.String("counselor_id", counselorID),
		zap.String("start_date", startDate),
		zap.String("end_date", endDate),
		zap.Int("count", len(slots)))

	return slots, nil
}

// CreateSlotRequest тело запроса на создание слота расписания.
type CreateSlotRequest struct {
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	CounselorID string `json:"counselorId"`
	IsAvailable bool   `json:"isAvailable"`
}

// CreateSlot создаёт слот и возвращает его с присвоенным бэкендом id.
func (c *Client) CreateSlot(ctx context.Context, token string, req CreateSlotRequest) (*model.ScheduleSlot, error) {
	var slot model.ScheduleSlot
	if err := c.post(ctx, "/schedule", token, req, &slot); err != nil {
		return nil, err
	}

	c.logger.Info("Slot created",
		zap.String("slot_id", slot.ID),
		zap.String("date", req.Date),
		zap.String("start_time", req.StartTime))

	return &slot, nil
}

// DeleteSlot удаляет слот по его backend id.
func (c *Client) DeleteSlot(ctx context.Context, token, slotID string) error {
	if err := c.delete(ctx, "/schedule/"+slotID, token); err != nil {
		return err
	}

	c.logger.Info("Slot deleted", zap.String("slot_id", slotID))
	return nil
}
