package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lidiya-fiker/unity-bot/internal/service"
	"github.com/lidiya-fiker/unity-bot/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{session.ErrNoSession, "❌ You are not logged in. Use /login first"},
		{session.ErrInvalidToken, "❌ Your session token is invalid. Use /login again"},
		{service.ErrNotApproved, "⏳ Your counselor account is awaiting approval"},
		{ErrSessionGone, "❌ Session not found. Open /mybookings again"},
		{ErrFlowExpired, "❌ This screen has expired. Start over from /start"},
		{errors.New("connection refused"), "❌ Something went wrong"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ErrorMessage(tc.err), "error %v", tc.err)
	}
}

func TestErrorMessageUnwrapsChains(t *testing.T) {
	wrapped := fmt.Errorf("load sessions: %w", session.ErrNoSession)
	assert.Equal(t, "❌ You are not logged in. Use /login first", ErrorMessage(wrapped))
}
