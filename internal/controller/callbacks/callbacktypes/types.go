package callbacktypes

import (
	"time"

	"github.com/lidiya-fiker/unity-bot/internal/controller/state"
	"github.com/lidiya-fiker/unity-bot/internal/service"
	"github.com/lidiya-fiker/unity-bot/internal/session"
	"go.uber.org/zap"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	Booking      *service.BookingService
	Availability *service.AvailabilityService
	Reviews      *service.ReviewService
	Dashboard    *service.DashboardService
	Sessions     *session.Store
	State        *state.Manager
	Logger       *zap.Logger

	// Таймзона, в которой считаем "сегодня" и окна сессий
	Loc *time.Location
}

// Today полночь сегодняшнего дня в таймзоне бота.
func (h *Handler) Today() time.Time {
	now := time.Now().In(h.Loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.Loc)
}
