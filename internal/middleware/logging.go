package middleware

import (
	"net/http"
	"time"

	"infinite-experiment/gamecache/internal/logging"
)

// Logging writes one structured record per request
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(lw, r)
		dur := time.Since(start)

		logging.WithRequest(RequestID(r.Context()), routePatternOf(r)).Infow("HTTP request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status_code", lw.statusCode,
			"duration_ms", dur.Milliseconds(),
			"remote_addr", r.RemoteAddr,
		)
	})
}
