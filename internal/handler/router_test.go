package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gariousf/api-backend/internal/config"
	chatHandler "github.com/gariousf/api-backend/internal/handler/chat"
	"github.com/gariousf/api-backend/internal/middleware"
)

type staticReplier struct{}

func (staticReplier) Reply(context.Context, []string) (string, error) {
	return "fine", nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.ServerConfig{
		Addr:            ":0",
		AllowedOrigins:  []string{"http://localhost"},
		RateLimitMax:    100,
		RateLimitWindow: time.Minute,
	}
	limiter := middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	t.Cleanup(limiter.Stop)
	return NewRouter(chatHandler.New(staticReplier{}, logger), limiter, cfg, logger)
}

func TestHealthEndpoint(t *testing.T) {
	r := testRouter(t)

	first := getHealth(t, r)
	time.Sleep(time.Millisecond)
	second := getHealth(t, r)

	if first.Status != "ok" {
		t.Fatalf("unexpected status: %q", first.Status)
	}
	if first.Message == "" {
		t.Fatal("health message is empty")
	}
	if _, err := time.Parse(time.RFC3339Nano, first.Timestamp); err != nil {
		t.Fatalf("timestamp %q is not RFC 3339: %v", first.Timestamp, err)
	}
	if first.Timestamp == second.Timestamp {
		t.Fatal("timestamp did not change between calls")
	}
}

type healthBody struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func getHealth(t *testing.T, r http.Handler) healthBody {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body healthBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding health body: %v", err)
	}
	return body
}

func TestAllowOriginPrefix(t *testing.T) {
	allow := allowOriginPrefix([]string{"http://localhost", "https://example.com"})

	cases := []struct {
		origin string
		want   bool
	}{
		{"http://localhost", true},
		{"http://localhost:3000", true},
		{"https://example.com", true},
		{"https://example.com.evil.net", true}, // prefix match is deliberately coarse
		{"https://other.net", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := allow(nil, tc.origin); got != tc.want {
			t.Fatalf("allow(%q) = %v, want %v", tc.origin, got, tc.want)
		}
	}
}

func TestRouterServesChat(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/chat", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	// Empty body fails validation, not routing.
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
