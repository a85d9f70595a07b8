package middleware

import (
	"net/http"
	"pwreset/internal/core/domain/logging"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger logs one line per request once the response is written.
func RequestLogger(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(rw, r.ProtoMajor)
			start := time.Now()
			defer func() {
				entries := []logging.LogEntry{
					logging.Entry("method", r.Method),
					logging.Entry("path", r.URL.Path),
					logging.Entry("status", ww.Status()),
					logging.Entry("duration", time.Since(start)),
				}
				if reqID := chimiddleware.GetReqID(r.Context()); reqID != "" {
					entries = append(entries, logging.Entry("requestID", reqID))
				}
				if ww.Status() >= http.StatusInternalServerError {
					log.Warning(r.Context(), "Request failed.", entries...)
					return
				}
				log.Info(r.Context(), "Request handled.", entries...)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
