package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// RequestLogging logs one line per API request. Health probes and static
// assets are skipped to keep the log readable.
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shouldSkipLogging(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: 200}
		next.ServeHTTP(wrapped, r)

		log.Printf("[HTTP] %s %s %d %s", r.Method, r.URL.Path, wrapped.statusCode, time.Since(start))
	})
}

func shouldSkipLogging(path string) bool {
	return strings.HasPrefix(path, "/health") ||
		strings.HasPrefix(path, "/static/") ||
		path == "/metrics"
}
