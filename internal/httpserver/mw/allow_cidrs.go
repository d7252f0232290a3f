package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/bookshelf/internal/logger"
	"github.com/MrSnakeDoc/bookshelf/internal/utils"
)

// AllowOnlyCIDRS lets through only clients whose IP is listed or falls in
// a listed CIDR. An empty list disables the check.
// trustProxy should be true when running behind a trusted reverse proxy.
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m := utils.NewIPMatcher(allowed)
	if m.IsEmpty() {
		return func(next http.Handler) http.Handler { return next }
	}

	log.Debugf("AllowOnlyCIDRS: initialized with %d rules, trustProxy=%v", len(allowed), trustProxy)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !m.Allow(ip) {
				log.Debug("client rejected by CIDR allow-list",
					logger.String("ip", ip),
					logger.String("path", r.URL.Path))
				writeFail(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
