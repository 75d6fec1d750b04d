package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gariousf/api-backend/internal/cache"
	"github.com/gariousf/api-backend/internal/config"
	"github.com/gariousf/api-backend/internal/handler"
	chatHandler "github.com/gariousf/api-backend/internal/handler/chat"
	"github.com/gariousf/api-backend/internal/middleware"
	"github.com/gariousf/api-backend/internal/model/persona"
	"github.com/gariousf/api-backend/internal/service/ai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file loaded, continuing with system environment", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// The persona descriptor is load-or-fail-fast: the gateway must not
	// accept connections without it.
	desc, err := persona.Load(cfg.AI.PersonaFile)
	if err != nil {
		logger.Error("failed to load persona descriptor", "file", cfg.AI.PersonaFile, "error", err)
		os.Exit(1)
	}

	upstream, err := ai.NewGeminiUpstream(ctx, cfg.AI.APIKey, cfg.AI.Model)
	if err != nil {
		logger.Error("failed to initialize upstream client", "error", err)
		os.Exit(1)
	}

	replyCache := cache.New()
	aiService := ai.NewService(upstream, replyCache, desc, ai.Config{
		HistoryLimit: cfg.AI.HistoryLimit,
		Retry: ai.Policy{
			MaxAttempts: cfg.AI.MaxAttempts,
			BaseDelay:   cfg.AI.BaseDelay,
		},
	}, logger)

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimitMax, cfg.Server.RateLimitWindow)
	defer limiter.Stop()

	router := handler.NewRouter(chatHandler.New(aiService, logger), limiter, cfg.Server, logger)

	logger.Info("persona chat gateway starting",
		"addr", cfg.Server.Addr,
		"model", cfg.AI.Model,
		"history_limit", cfg.AI.HistoryLimit,
	)
	startServer(ctx, cfg.Server, router, logger)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logger *slog.Logger) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if err := runServer(ctx, srv); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
