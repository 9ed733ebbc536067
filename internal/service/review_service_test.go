package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lidiya-fiker/unity-bot/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSubmitEmptyCommentNeverCallsBackend(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	svc := NewReviewService(api.NewClient(srv.URL, zap.NewNop()), zap.NewNop())

	for _, comment := range []string{"", "   ", "\n\t  "} {
		err := svc.Submit(context.Background(), "tok", "c-1", "cl-1", comment, 5)
		assert.ErrorIs(t, err, ErrEmptyComment, "comment %q", comment)
	}

	assert.False(t, called, "backend must not be called for empty comments")
}

func TestSubmitTrimsComment(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	svc := NewReviewService(api.NewClient(srv.URL, zap.NewNop()), zap.NewNop())

	err := svc.Submit(context.Background(), "tok", "c-1", "cl-1", "  great session  ", 4)
	require.NoError(t, err)
	assert.Contains(t, gotBody, `"comment":"great session"`)
	assert.Contains(t, gotBody, `"rating":4`)
}

func TestRatedMap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reviews/client/cl-1", r.URL.Path)
		w.Write([]byte(`[
			{"id":"r1","counselorId":"c-1","rating":5,"comment":"good"},
			{"id":"r2","counselor":{"userId":"c-2"},"rating":3,"comment":"ok"}
		]`))
	}))
	defer srv.Close()

	svc := NewReviewService(api.NewClient(srv.URL, zap.NewNop()), zap.NewNop())

	rated, err := svc.RatedMap(context.Background(), "tok", "cl-1")
	require.NoError(t, err)
	assert.Equal(t, 5, rated["c-1"])
	assert.Equal(t, 3, rated["c-2"], "nested counselor.userId is also recognized")
	_, ok := rated["c-3"]
	assert.False(t, ok)
}
