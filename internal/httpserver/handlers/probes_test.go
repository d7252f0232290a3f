package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrSnakeDoc/bookshelf/internal/domain"
	"github.com/MrSnakeDoc/bookshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookshelf/internal/logger"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthz(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d := deps.Deps{
		Logger:    logger.NewNop(),
		StartTime: start,
		Version:   "v1.2.3",
		TimeNow:   func() time.Time { return start.Add(90 * time.Second) },
		Books: &stubBooks{
			summaries:  []domain.Summary{{ID: "1"}, {ID: "2"}},
			lastChange: start.Add(time.Minute),
		},
	}

	rr := httptest.NewRecorder()
	Healthz(d)(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeEnvelope(t, rr)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(90), body["uptime_seconds"])
	assert.Equal(t, float64(2), body["books"])
	assert.Equal(t, "v1.2.3", body["version"])
	assert.Equal(t, "2024-01-01T00:01:00Z", body["last_change"])
}

func TestReadyz(t *testing.T) {
	tests := []struct {
		name     string
		feed     deps.Pinger
		wantCode int
		wantFeed string
	}{
		{name: "feed disabled", feed: nil, wantCode: http.StatusOK, wantFeed: "disabled"},
		{name: "feed ok", feed: pingerFunc(func(context.Context) error { return nil }), wantCode: http.StatusOK, wantFeed: "ok"},
		{
			name:     "feed down",
			feed:     pingerFunc(func(context.Context) error { return errors.New("connection refused") }),
			wantCode: http.StatusServiceUnavailable,
			wantFeed: "unreachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := deps.Deps{Logger: logger.NewNop(), Feed: tt.feed}
			rr := httptest.NewRecorder()
			Readyz(d)(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantCode, rr.Code)
			body := decodeEnvelope(t, rr)
			assert.Equal(t, tt.wantFeed, body["feed"])
			assert.Equal(t, tt.wantCode == http.StatusOK, body["ready"])
		})
	}
}
