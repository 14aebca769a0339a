package errors

import (
	"net/http"
	"runtime/debug"

	"github.com/lemmaandrew/anneal-image/internal/logging"
)

// RecoveryMiddleware returns a middleware that recovers from panics in the
// telemetry HTTP server and answers with a 500. The panic is logged through
// the request-scoped logger, so entries carry the request id and path the
// logging middleware attached.
func RecoveryMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logging.FromContext(r.Context()).Error("Recovered from panic", map[string]interface{}{
						"error": rec,
						"stack": string(debug.Stack()),
					})
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
