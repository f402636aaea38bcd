package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"booknetwork/internal/platform/metrics"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	bytesWritten  int64
	headerWritten bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.headerWritten {
		rw.statusCode = code
		rw.headerWritten = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += int64(n)
	return n, err
}

func (rw *responseWriter) wroteHeader() bool {
	return rw.headerWritten
}

// AccessLogMiddleware logs one line per request and records its latency
// under the matched route pattern. Middleware between it and the ServeMux
// must not clone the request, or the pattern is lost. m may be nil.
func AccessLogMiddleware(logger *slog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			info := &accessInfo{}
			r = r.WithContext(context.WithValue(r.Context(), accessKey, info))
			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			logger.InfoContext(r.Context(), "access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.statusCode,
				"bytes", rw.bytesWritten,
				"duration_ms", duration.Milliseconds(),
				"request_id", RequestIDFrom(r),
				"user_id", info.userID,
			)

			if m != nil {
				route := r.Pattern
				if route == "" {
					route = "unmatched"
				}
				m.HTTPRequestTiming.
					WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).
					Observe(duration.Seconds())
			}
		})
	}
}
