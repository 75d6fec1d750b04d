package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gariousf/api-backend/internal/config"
	chatHandler "github.com/gariousf/api-backend/internal/handler/chat"
	middlewarePkg "github.com/gariousf/api-backend/internal/middleware"
	"github.com/gariousf/api-backend/internal/model/chat"
	"github.com/gariousf/api-backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services. The caller owns the
// limiter's lifecycle and stops it on shutdown.
func NewRouter(chatH *chatHandler.Handler, limiter *middlewarePkg.RateLimiter, cfg config.ServerConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middlewarePkg.Recoverer(logger))
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc:  allowOriginPrefix(cfg.AllowedOrigins),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(middlewarePkg.RateLimit(limiter))

	r.Get("/", handleHealth)
	chatH.RegisterRoutes(r)

	return r
}

// allowOriginPrefix matches the request Origin against the configured
// allow-list by exact prefix.
func allowOriginPrefix(prefixes []string) func(r *http.Request, origin string) bool {
	return func(_ *http.Request, origin string) bool {
		for _, prefix := range prefixes {
			if strings.HasPrefix(origin, prefix) {
				return true
			}
		}
		return false
	}
}

// handleHealth reports liveness with a fresh timestamp.
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, chat.Health{
		Status:    "ok",
		Message:   "persona chat gateway is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
}
