package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/sbilibin2017/gw-user-admin/internal/logger"
)

// RateLimitMiddleware allows at most limit requests per minute from one client IP.
// A non-positive limit disables limiting.
func RateLimitMiddleware(limit int) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(limit, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.Log.Warnw("rate limit exceeded", "remote_addr", r.RemoteAddr, "uri", r.RequestURI)
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)
}
