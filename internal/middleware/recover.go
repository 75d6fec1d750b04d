package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gariousf/api-backend/pkg/utils"
)

// Recoverer converts a handler panic into a generic JSON 500, logging
// the full detail server-side only.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						"panic", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					utils.RespondError(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
