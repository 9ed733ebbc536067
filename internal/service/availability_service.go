package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lidiya-fiker/unity-bot/internal/api"
	"github.com/lidiya-fiker/unity-bot/internal/calendar"
	"github.com/lidiya-fiker/unity-bot/internal/model"
	"github.com/lidiya-fiker/unity-bot/internal/session"
	"go.uber.org/zap"
)

// ErrNotApproved консультант не активен или ещё не одобрен админом.
var ErrNotApproved = errors.New("counselor is not active or not approved")

// ErrBadStartTime время начала слота не в формате HH:MM.
var ErrBadStartTime = errors.New("start time must be HH:MM")

// Длительность каждого слота фиксирована платформой.
const slotDuration = time.Hour

type AvailabilityService struct {
	api    *api.Client
	logger *zap.Logger
}

func NewAvailabilityService(apiClient *api.Client, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		api:    apiClient,
		logger: logger,
	}
}

// Profile возвращает профиль консультанта из его токена.
// ErrNotApproved если менять расписание ему нельзя.
func (s *AvailabilityService) Profile(ctx context.Context, token string) (*model.CounselorProfile, error) {
	identity, err := session.DecodeIdentity(token)
	if err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}

	profile, err := s.api.CounselorProfile(ctx, token, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("get counselor profile: %w", err)
	}

	if !profile.CanModifyAvailability() {
		return profile, ErrNotApproved
	}

	return profile, nil
}

// MonthSchedule загружает собственные слоты консультанта на месяц.
func (s *AvailabilityService) MonthSchedule(ctx context.Context, token, counselorID string, month time.Time) ([]model.DaySchedule, error) {
	start := calendar.StartOfMonth(month).Format(calendar.DateLayout)
	end := calendar.EndOfMonth(month).Format(calendar.DateLayout)

	slots, err := s.api.AvailableSlots(ctx, token, counselorID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}

	return calendar.GroupSlots(slots), nil
}

// AddSlot создаёт часовой слот на дату date с началом startTime и
// возвращает созданный слот.
func (s *AvailabilityService) AddSlot(ctx context.Context, token, counselorID, date, startTime string) (*model.TimeSlot, error) {
	endTime, err := DeriveEndTime(startTime)
	if err != nil {
		return nil, err
	}

	req := api.CreateSlotRequest{
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		CounselorID: counselorID,
		IsAvailable: true,
	}

	created, err := s.api.CreateSlot(ctx, token, req)
	if err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	s.logger.Info("Slot created",
		zap.String("counselor_id", counselorID),
		zap.String("date", date),
		zap.String("start", startTime))

	return &model.TimeSlot{ID: created.ID, Start: startTime, End: endTime}, nil
}

// DeleteSlot удаляет слот по id.
func (s *AvailabilityService) DeleteSlot(ctx context.Context, token, slotID string) error {
	if err := s.api.DeleteSlot(ctx, token, slotID); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	s.logger.Info("Slot deleted", zap.String("slot_id", slotID))
	return nil
}

// DeriveEndTime прибавляет час к времени "HH:MM": "09:00" -> "10:00".
func DeriveEndTime(startTime string) (string, error) {
	t, err := time.Parse("15:04", startTime)
	if err != nil {
		return "", ErrBadStartTime
	}
	return t.Add(slotDuration).Format("15:04"), nil
}

// MergeSlot добавляет слот в расписание, не трогая остальные даты.
// Новая дата вставляется с сохранением сортировки.
func MergeSlot(sched []model.DaySchedule, date string, slot model.TimeSlot) []model.DaySchedule {
	for i, ds := range sched {
		if ds.Date == date {
			sched[i].Slots = append(sched[i].Slots, slot)
			return sched
		}
	}

	merged := make([]model.DaySchedule, 0, len(sched)+1)
	inserted := false
	for _, ds := range sched {
		if !inserted && date < ds.Date {
			merged = append(merged, model.DaySchedule{Date: date, Slots: []model.TimeSlot{slot}})
			inserted = true
		}
		merged = append(merged, ds)
	}
	if !inserted {
		merged = append(merged, model.DaySchedule{Date: date, Slots: []model.TimeSlot{slot}})
	}
	return merged
}

// RemoveSlot убирает слот по id только с его даты. День без слотов
// исчезает из расписания.
func RemoveSlot(sched []model.DaySchedule, slotID string) []model.DaySchedule {
	result := make([]model.DaySchedule, 0, len(sched))
	for _, ds := range sched {
		kept := make([]model.TimeSlot, 0, len(ds.Slots))
		for _, slot := range ds.Slots {
			if slot.ID != slotID {
				kept = append(kept, slot)
			}
		}
		if len(kept) > 0 {
			result = append(result, model.DaySchedule{Date: ds.Date, Slots: kept})
		}
	}
	return result
}
