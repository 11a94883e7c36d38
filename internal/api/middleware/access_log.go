package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// AccessLog пишет строку лога на каждый запрос
func AccessLog(log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			requestID, _ := GetRequestID(r.Context())
			elapsed := time.Since(started)

			switch {
			case rec.status >= http.StatusInternalServerError:
				log.Error("%s %s - %d (%s) request_id=%s", r.Method, r.URL.Path, rec.status, elapsed, requestID)
			case rec.status >= http.StatusBadRequest:
				log.Warn("%s %s - %d (%s) request_id=%s", r.Method, r.URL.Path, rec.status, elapsed, requestID)
			default:
				log.Info("%s %s - %d (%s) request_id=%s", r.Method, r.URL.Path, rec.status, elapsed, requestID)
			}
		})
	}
}
