package common

import (
	"errors"

	"github.com/lidiya-fiker/unity-bot/internal/service"
	"github.com/lidiya-fiker/unity-bot/internal/session"
)

// Общие ошибки для обработчиков
var (
	ErrInvalidFormat  = errors.New("invalid callback format")
	ErrSessionGone    = errors.New("session not found")
	ErrFlowExpired    = errors.New("flow state expired")
	ErrMissingContext = errors.New("reschedule context is incomplete")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, session.ErrNoSession):
		return "❌ You are not logged in. Use /login first"
	case errors.Is(err, session.ErrInvalidToken):
		return "❌ Your session token is invalid. Use /login again"
	case errors.Is(err, service.ErrNotApproved):
		return "⏳ Your counselor account is awaiting approval"
	case errors.Is(err, service.ErrEmptyComment):
		return "❌ Review comment cannot be empty"
	case errors.Is(err, service.ErrBadStartTime):
		return "❌ Time must look like 09:00"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Invalid action data"
	case errors.Is(err, ErrSessionGone):
		return "❌ Session not found. Open /mybookings again"
	case errors.Is(err, ErrFlowExpired):
		return "❌ This screen has expired. Start over from /start"
	case errors.Is(err, ErrMissingContext):
		return "❌ Something went wrong with this reschedule. Please start again from your bookings"
	default:
		return "❌ Something went wrong"
	}
}
