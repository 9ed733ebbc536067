package api

import (
	"context"

	"github.com/lidiya-fiker/unity-bot/internal/model"
	"go.uber.org/zap"
)

// CreateBookingRequest тело запроса на бронирование слота.
type CreateBookingRequest struct {
	ClientID   string `json:"clientId"`
	ScheduleID string `json:"scheduleId"`
}

// CreateBooking бронирует слот за клиентом.
func (c *Client) CreateBooking(ctx context.Context, token string, req CreateBookingRequest) error {
	if err := c.post(ctx, "/api/bookings", token, req, nil); err != nil {
		return err
	}

	c.logger.Info("Booking created",
		zap.String("client_id", req.ClientID),
		zap.String("schedule_id", req.ScheduleID))

	return nil
}

// RebookRequest тело запроса на перенос существующей брони на новый слот.
type RebookRequest struct {
	OldBookingID  string `json:"oldBookingId"`
	NewScheduleID string `json:"newScheduleId"`
	ClientID      string `json:"clientId"`
}

// Rebook переносит бронь на другой слот одним вызовом.
func (c *Client) Rebook(ctx context.Context, token string, req RebookRequest) error {
	if err := c.post(ctx, "/api/rebook", token, req, nil); err != nil {
		return err
	}

	c.logger.Info("Booking rescheduled",
		zap.String("old_booking_id", req.OldBookingID),
		zap.String("new_schedule_id", req.NewScheduleID))

	return nil
}

// ClientBookings возвращает все сессии клиента.
func (c *Client) ClientBookings(ctx context.Context, token, clientID string) ([]model.Session, error) {
	var sessions []model.Session
	if err := c.get(ctx, "/api/clientbooking/"+clientID, nil, token, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
