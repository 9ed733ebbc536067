package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lidiya-fiker/unity-bot/internal/api"
	"github.com/lidiya-fiker/unity-bot/internal/calendar"
	"github.com/lidiya-fiker/unity-bot/internal/model"
	"github.com/lidiya-fiker/unity-bot/internal/session"
	"go.uber.org/zap"
)

// Фиксированная стоимость сессии в быррах. Бэкенд её не возвращает,
// клиент всегда инициализирует оплату на эту сумму.
const SessionFeeBirr = 1000

type BookingService struct {
	api    *api.Client
	logger *zap.Logger
}

func NewBookingService(apiClient *api.Client, logger *zap.Logger) *BookingService {
	return &BookingService{
		api:    apiClient,
		logger: logger,
	}
}

// Counselors возвращает список одобренных консультантов для выбора.
func (s *BookingService) Counselors(ctx context.Context) ([]model.Counselor, error) {
	counselors, err := s.api.ApprovedCounselors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list counselors: %w", err)
	}
	return counselors, nil
}

// MonthAvailability загружает слоты консультанта на месяц month и
// группирует их по датам.
func (s *BookingService) MonthAvailability(ctx context.Context, token, counselorID string, month time.Time) ([]model.DaySchedule, error) {
	start := calendar.StartOfMonth(month).Format(calendar.DateLayout)
	end := calendar.EndOfMonth(month).Format(calendar.DateLayout)

	slots, err := s.api.AvailableSlots(ctx, token, counselorID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load availability: %w", err)
	}

	return calendar.GroupSlots(slots), nil
}

// ClientProfile восстанавливает профиль клиента из его токена.
// Профильный эндпоинт у бэкенда местами отстаёт от основного, поэтому
// при его отказе пробуем запись клиента напрямую.
func (s *BookingService) ClientProfile(ctx context.Context, token string) (*model.ClientProfile, error) {
	identity, err := session.DecodeIdentity(token)
	if err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}

	profile, err := s.api.ClientProfile(ctx, token, identity.UserID)
	if err != nil {
		s.logger.Warn("Profile endpoint failed, falling back to client record", zap.Error(err))
		profile, err = s.api.ClientByID(ctx, token, identity.UserID)
		if err != nil {
			return nil, fmt.Errorf("get client profile: %w", err)
		}
	}

	if profile.UserID == "" {
		profile.UserID = identity.UserID
	}

	return profile, nil
}

// InitializePayment инициирует оплату через Chapa и возвращает URL
// для перехода. Референс транзакции генерируется на стороне клиента.
func (s *BookingService) InitializePayment(
	ctx context.Context,
	token string,
	profile *model.ClientProfile,
	firstName, lastName, counselorID, scheduleID string,
) (string, error) {
	req := api.InitializePaymentRequest{
		FirstName:            firstName,
		LastName:             lastName,
		Email:                profile.User.Email,
		Amount:               SessionFeeBirr,
		ClientID:             profile.UserID,
		CounselorID:          counselorID,
		ScheduleID:           scheduleID,
		TransactionReference: "tx-" + uuid.New().String(),
	}

	resp, err := s.api.InitializePayment(ctx, token, req)
	if err != nil {
		return "", fmt.Errorf("initialize payment: %w", err)
	}

	s.logger.Info("Payment initialized",
		zap.String("client_id", profile.UserID),
		zap.String("schedule_id", scheduleID))

	return resp.ChapaRedirectURL, nil
}

// CreateBooking создаёт бронь после подтверждения оплаты.
func (s *BookingService) CreateBooking(ctx context.Context, token, clientID, scheduleID string) error {
	req := api.CreateBookingRequest{
		ClientID:   clientID,
		ScheduleID: scheduleID,
	}

	if err := s.api.CreateBooking(ctx, token, req); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	s.logger.Info("Booking created",
		zap.String("client_id", clientID),
		zap.String("schedule_id", scheduleID))

	return nil
}

// Rebook переносит бронь на новый слот.
func (s *BookingService) Rebook(ctx context.Context, token, oldBookingID, newScheduleID, clientID string) error {
	req := api.RebookRequest{
		OldBookingID:  oldBookingID,
		NewScheduleID: newScheduleID,
		ClientID:      clientID,
	}

	if err := s.api.Rebook(ctx, token, req); err != nil {
		return fmt.Errorf("rebook: %w", err)
	}

	s.logger.Info("Booking rescheduled",
		zap.String("old_booking_id", oldBookingID),
		zap.String("new_schedule_id", newScheduleID))

	return nil
}
