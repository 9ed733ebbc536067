package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lidiya-fiker/unity-bot/internal/api"
	"github.com/lidiya-fiker/unity-bot/internal/calendar"
	"github.com/lidiya-fiker/unity-bot/internal/model"
	"github.com/lidiya-fiker/unity-bot/internal/session"
	"go.uber.org/zap"
)

// Кнопка Join появляется за 10 минут до начала сессии.
const joinWindowBefore = 10 * time.Minute

// Горизонт предзагрузки доступности при переносе брони.
const prefetchDays = 30

type DashboardService struct {
	api      *api.Client
	sessions *session.Store
	logger   *zap.Logger
}

func NewDashboardService(apiClient *api.Client, sessions *session.Store, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		api:      apiClient,
		sessions: sessions,
		logger:   logger,
	}
}

// Sessions возвращает сессии клиента, отсортированные по дате и времени.
func (s *DashboardService) Sessions(ctx context.Context, token, clientID string) ([]model.Session, error) {
	sessions, err := s.api.ClientBookings(ctx, token, clientID)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].Date != sessions[j].Date {
			return sessions[i].Date < sessions[j].Date
		}
		return sessions[i].StartTime < sessions[j].StartTime
	})

	return sessions, nil
}

// IsJoinable проверяет, можно ли сейчас войти в сессию: от 10 минут
// до начала и до самого конца. Битые дата или время трактуются как нет.
func IsJoinable(sess model.Session, now time.Time) bool {
	if sess.ZoomJoinURL == "" {
		return false
	}

	start, ok := sessionMoment(sess.Date, sess.StartTime, now.Location())
	if !ok {
		return false
	}
	end, ok := sessionMoment(sess.Date, sess.EndTime, now.Location())
	if !ok {
		return false
	}

	return !now.Before(start.Add(-joinWindowBefore)) && now.Before(end)
}

// sessionMoment собирает момент времени из даты "YYYY-MM-DD" (возможно
// с хвостом "T...") и времени "HH:MM" или "HH:MM:SS".
func sessionMoment(date, clock string, loc *time.Location) (time.Time, bool) {
	if idx := strings.Index(date, "T"); idx >= 0 {
		date = date[:idx]
	}

	layout := "15:04"
	if strings.Count(clock, ":") == 2 {
		layout = "15:04:05"
	}

	t, err := time.ParseInLocation(calendar.DateLayout+" "+layout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CounselorsFromSessions собирает консультантов из сессий клиента,
// недавние (по локальной истории чата) первыми. Каждый встречается
// один раз.
func (s *DashboardService) CounselorsFromSessions(ctx context.Context, chatID int64, sessions []model.Session) []model.SelectedCounselor {
	recent, err := s.sessions.RecentCounselors(ctx, chatID)
	if err != nil {
		s.logger.Warn("Failed to load recent counselors", zap.Error(err))
		recent = nil
	}

	byID := make(map[string]model.SelectedCounselor)
	order := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		if sess.Counselor == nil {
			continue
		}
		id := sess.CounselorID()
		if id == "" {
			continue
		}
		if _, seen := byID[id]; seen {
			continue
		}
		byID[id] = model.NewSelectedCounselor(model.Counselor{
			ID:             id,
			FirstName:      sess.Counselor.FirstName,
			LastName:       sess.Counselor.LastName,
			Image:          sess.Counselor.Image,
			Specialization: sess.Counselor.Specialization,
		})
		order = append(order, id)
	}

	result := make([]model.SelectedCounselor, 0, len(byID))
	added := make(map[string]bool, len(byID))
	for _, id := range recent {
		if c, exists := byID[id]; exists && !added[id] {
			result = append(result, c)
			added[id] = true
		}
	}
	for _, id := range order {
		if !added[id] {
			result = append(result, byID[id])
			added[id] = true
		}
	}

	return result
}

// Articles возвращает ленту статей консультантов.
func (s *DashboardService) Articles(ctx context.Context) ([]model.Article, error) {
	articles, err := s.api.Articles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load articles: %w", err)
	}
	return articles, nil
}

// PrefetchAvailability загружает доступность консультанта на 30 дней
// вперёд для flow переноса брони.
func (s *DashboardService) PrefetchAvailability(ctx context.Context, token, counselorID string, today time.Time) ([]model.DaySchedule, error) {
	start := today.Format(calendar.DateLayout)
	end := today.AddDate(0, 0, prefetchDays).Format(calendar.DateLayout)

	slots, err := s.api.AvailableSlots(ctx, token, counselorID, start, end)
	if err != nil {
		return nil, fmt.Errorf("prefetch availability: %w", err)
	}

	return calendar.GroupSlots(slots), nil
}
