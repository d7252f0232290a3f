package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/bookshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookshelf/internal/logger"
)

const readyzPingTimeout = 2 * time.Second

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Feed  string `json:"feed"`
	Error string `json:"error,omitempty"`
}

// Readyz reports whether the service can take traffic. The shelf itself is
// always ready; a configured change feed must answer a ping.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Feed == nil {
			writeJSON(w, http.StatusOK, readyzResponse{Ready: true, Feed: "disabled"}, d.Logger)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), readyzPingTimeout)
		defer cancel()

		if err := d.Feed.Ping(ctx); err != nil {
			d.Logger.Warn("readiness check failed", logger.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{
				Ready: false,
				Feed:  "unreachable",
				Error: err.Error(),
			}, d.Logger)
			return
		}

		writeJSON(w, http.StatusOK, readyzResponse{Ready: true, Feed: "ok"}, d.Logger)
	}
}
