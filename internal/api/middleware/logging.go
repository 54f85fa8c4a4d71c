package middleware

import (
	"net/http"
	"time"
)

// AccessLog пишет строку лога на каждый запрос
func AccessLog(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			requestID := GetRequestID(r.Context())
			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("%s %s - status=%d duration=%s request_id=%s", r.Method, r.URL.Path, rec.status, duration, requestID)
			case rec.status >= http.StatusBadRequest:
				logger.Warn("%s %s - status=%d duration=%s request_id=%s", r.Method, r.URL.Path, rec.status, duration, requestID)
			default:
				logger.Info("%s %s - status=%d duration=%s request_id=%s", r.Method, r.URL.Path, rec.status, duration, requestID)
			}
		})
	}
}
