package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/bookshelf/internal/httpserver/deps"
)

type healthzResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Books         int     `json:"books"`
	LastChange    string  `json:"last_change,omitempty"`
	Version       string  `json:"version,omitempty"`
	Commit        string  `json:"commit,omitempty"`
	BuildDate     string  `json:"build_date,omitempty"`
	GoVersion     string  `json:"go_version,omitempty"`
}

func Healthz(d deps.Deps) http.HandlerFunc {
	now := d.TimeNow
	if now == nil {
		now = time.Now
	}
	return func(w http.ResponseWriter, r *http.Request) {
		lastChange := ""
		if t := d.Books.LastChange(); !t.IsZero() {
			lastChange = t.UTC().Format(time.RFC3339)
		}
		writeJSON(w, http.StatusOK, healthzResponse{
			Status:        "ok",
			UptimeSeconds: now().Sub(d.StartTime).Seconds(),
			Books:         d.Books.Count(),
			LastChange:    lastChange,
			Version:       d.Version,
			Commit:        d.Commit,
			BuildDate:     d.BuildDate,
			GoVersion:     d.GoVersion,
		}, d.Logger)
	}
}
