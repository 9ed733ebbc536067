package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL, zap.NewNop())
}

func TestAvailableSlots(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/schedule/available", r.URL.Path)
		assert.Equal(t, "c-1", r.URL.Query().Get("counselorId"))
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("startDate"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"s1","date":"2024-06-15","startTime":"09:00","endTime":"10:00"}]`))
	})

	slots, err := client.AvailableSlots(context.Background(), "tok", "c-1", "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "s1", slots[0].ID)
	assert.Equal(t, "09:00", slots[0].StartTime)
}

func TestBackendErrorMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Slot already booked"}`))
	})

	err := client.CreateBooking(context.Background(), "tok", CreateBookingRequest{
		ClientID:   "cl-1",
		ScheduleID: "s1",
	})
	require.Error(t, err)

	// Текст бэкенда доходит до пользователя как есть
	assert.Equal(t, "Slot already booked", BackendMessage(err, "fallback"))
}

func TestBackendErrorWithoutMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	})

	err := client.DeleteSlot(context.Background(), "tok", "s1")
	require.Error(t, err)
	assert.Equal(t, "fallback", BackendMessage(err, "fallback"))
}

func TestCounselorsDirectory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/counselors", r.URL.Path)
		w.Write([]byte(`[{"id":"c-1","firstName":"Abel","lastName":"Tesfaye"}]`))
	})

	counselors, err := client.Counselors(context.Background())
	require.NoError(t, err)
	require.Len(t, counselors, 1)
	assert.Equal(t, "c-1", counselors[0].ID)
}

func TestMalformedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})

	_, err := client.Counselors(context.Background())
	require.Error(t, err)
	assert.Equal(t, "fallback", BackendMessage(err, "fallback"), "decode errors carry no backend message")
}

func TestUnauthenticatedRequestHasNoAuthHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	})

	_, err := client.ApprovedCounselors(context.Background())
	require.NoError(t, err)
}
