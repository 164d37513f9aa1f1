package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/vasapolrittideah/property-listing-api/shared/response"
)

const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request an id with chi's RequestID middleware, keeping one the
// client sent in X-Request-ID, and echoes it in the response.
func RequestID(next http.Handler) http.Handler {
	return chimiddleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(RequestIDHeader, chimiddleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r)
	}))
}

// Logger attaches logger to the request context and writes one access log line per
// request.
func Logger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		if status == 0 {
			status = http.StatusOK
		}

		log := hlog.FromRequest(r)
		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}

		event.
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", size).
			Dur("duration", duration).
			Msg("request completed")
	})

	return func(next http.Handler) http.Handler {
		return hlog.NewHandler(*logger)(access(next))
	}
}

// Recoverer turns a panic in a handler into a 500 JSON response.
func Recoverer(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}

					logger.Error().
						Str("request_id", chimiddleware.GetReqID(r.Context())).
						Interface("panic", rec).
						Msg("recovered from panic")

					response.Error(w, http.StatusInternalServerError, "Something went wrong", "")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
