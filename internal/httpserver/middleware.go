package httpserver

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

// accessLog attaches the global zerolog logger to each request and writes
// one line per request with method, path, status, size and duration.
// The request ID comes from chi's RequestID middleware.
func accessLog() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		logged := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
			lvl := zerolog.InfoLevel
			if status >= http.StatusInternalServerError {
				lvl = zerolog.ErrorLevel
			}
			hlog.FromRequest(r).WithLevel(lvl).
				Str("requestId", chimw.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("size", size).
				Dur("duration", duration).
				Msg("http request")
		})(next)
		return hlog.NewHandler(log.Logger)(logged)
	}
}
