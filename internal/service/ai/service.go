package ai

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/gariousf/api-backend/internal/cache"
	"github.com/gariousf/api-backend/internal/model/persona"
	"github.com/gariousf/api-backend/internal/sanitize"
)

const defaultHistoryLimit = 10

const (
	seedInstruction = "\n\nStay in character for the whole conversation. The visitor's messages follow."
	contextTurn     = "User: %s\n(Earlier context, no reply needed yet.)"
	finalTurn       = "User: %s\nReply to this message in character."
)

var assistantLabel = regexp.MustCompile(`^\s*(Assistant|AI)\s*:\s*`)

// Config tunes the replay driver.
type Config struct {
	HistoryLimit int
	Retry        Policy
}

// Service orchestrates a single chat request: sanitize, cache lookup,
// seeded history replay against a fresh upstream session, reply cleanup
// and cache store.
type Service struct {
	upstream Upstream
	replies  *cache.Cache
	persona  persona.Descriptor
	retry    *Executor
	history  int
	logger   *slog.Logger
}

// NewService wires the replay driver to its collaborators.
func NewService(upstream Upstream, replies *cache.Cache, desc persona.Descriptor, cfg Config, logger *slog.Logger) *Service {
	history := cfg.HistoryLimit
	if history < 1 {
		history = defaultHistoryLimit
	}
	return &Service{
		upstream: upstream,
		replies:  replies,
		persona:  desc,
		retry:    NewExecutor(cfg.Retry, logger),
		history:  history,
		logger:   logger,
	}
}

// Reply runs the full pipeline for one request. A cache hit returns
// before any upstream work, prompt construction included. Any
// unrecovered upstream failure aborts the whole request; there is no
// partial reply.
func (s *Service) Reply(ctx context.Context, rawMessages []string) (string, error) {
	if len(rawMessages) == 0 {
		return "", fmt.Errorf("no messages to reply to")
	}

	messages := make([]string, len(rawMessages))
	for i, m := range rawMessages {
		messages[i] = sanitize.Clean(m)
	}

	key := cache.Normalize(messages[len(messages)-1])
	if reply, ok := s.replies.Get(key); ok {
		s.logger.Info("cache hit, skipping upstream", "cached_replies", s.replies.Len())
		return reply, nil
	}

	session, err := s.upstream.NewSession(ctx)
	if err != nil {
		return "", fmt.Errorf("starting upstream session: %w", err)
	}

	prompt := BuildSystemPrompt(s.persona)
	if _, err := s.retry.Do(ctx, "seed", func(ctx context.Context) (string, error) {
		return session.Send(ctx, prompt+seedInstruction)
	}); err != nil {
		return "", fmt.Errorf("seeding session: %w", err)
	}

	// Replay only the newest window; anything older is dropped.
	window := messages
	if len(window) > s.history {
		window = window[len(window)-s.history:]
	}

	for _, msg := range window[:len(window)-1] {
		if _, err := s.retry.Do(ctx, "replay", func(ctx context.Context) (string, error) {
			return session.Send(ctx, fmt.Sprintf(contextTurn, msg))
		}); err != nil {
			return "", fmt.Errorf("replaying history: %w", err)
		}
	}

	text, err := s.retry.Do(ctx, "final", func(ctx context.Context) (string, error) {
		return session.Send(ctx, fmt.Sprintf(finalTurn, window[len(window)-1]))
	})
	if err != nil {
		return "", fmt.Errorf("sending final turn: %w", err)
	}

	reply := stripAssistantLabel(text)
	s.replies.Set(key, reply)
	return reply, nil
}

// stripAssistantLabel removes a leading "Assistant:" or "AI:" label the
// model sometimes prepends.
func stripAssistantLabel(text string) string {
	return strings.TrimSpace(assistantLabel.ReplaceAllString(text, ""))
}
