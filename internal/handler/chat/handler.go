package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gariousf/api-backend/internal/model/chat"
	"github.com/gariousf/api-backend/internal/service/ai"
	"github.com/gariousf/api-backend/pkg/utils"
)

// Replier produces a persona reply for an ordered message history.
type Replier interface {
	Reply(ctx context.Context, messages []string) (string, error)
}

// Handler serves the chat endpoint.
type Handler struct {
	replier Replier
	logger  *slog.Logger
}

// New creates the chat handler.
func New(replier Replier, logger *slog.Logger) *Handler {
	return &Handler{
		replier: replier,
		logger:  logger,
	}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

// handleChat validates the request, delegates to the replay driver, and
// maps any terminal upstream failure onto a 200 fallback reply so the
// chat UX stays uninterrupted.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chat.Request
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body: messages must be an array")
		return
	}

	if len(payload.Messages) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "messages is required and must be a non-empty array")
		return
	}

	texts := make([]string, len(payload.Messages))
	for i, m := range payload.Messages {
		texts[i] = m.Message
	}

	logger := h.logger.With("request_id", uuid.NewString())

	reply, err := h.replier.Reply(r.Context(), texts)
	if err != nil {
		category := ai.Classify(err)
		logger.Error("chat request failed",
			"category", category.String(),
			"error", err,
		)
		utils.RespondJSON(w, http.StatusOK, chat.Response{Reply: ai.Fallback(category)})
		return
	}

	logger.Info("chat request served", "reply_length", len(reply))
	utils.RespondJSON(w, http.StatusOK, chat.Response{Reply: reply})
}
