package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Session is one stateful upstream conversation. Sends are
// order-dependent; callers must not interleave sends on the same session.
type Session interface {
	Send(ctx context.Context, text string) (string, error)
}

// Upstream creates fresh chat sessions against the hosted model.
type Upstream interface {
	NewSession(ctx context.Context) (Session, error)
}

// GeminiUpstream implements Upstream on the Gemini API.
type GeminiUpstream struct {
	client *genai.Client
	model  string
}

// NewGeminiUpstream builds the production upstream from an API key and
// model identifier.
func NewGeminiUpstream(ctx context.Context, apiKey, model string) (*GeminiUpstream, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiUpstream{client: client, model: model}, nil
}

// NewSession opens a chat session with empty history.
func (g *GeminiUpstream) NewSession(ctx context.Context) (Session, error) {
	chat, err := g.client.Chats.Create(ctx, g.model, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("creating chat session: %w", err)
	}
	return &geminiSession{chat: chat}, nil
}

type geminiSession struct {
	chat *genai.Chat
}

func (s *geminiSession) Send(ctx context.Context, text string) (string, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
