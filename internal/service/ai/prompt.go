package ai

import "github.com/gariousf/api-backend/internal/model/persona"

const systemPrompt = `You are a friendly virtual assistant chatting with visitors on a personal website.
Keep every reply warm, upbeat, and family-appropriate. Steer clear of
controversial topics, keep answers reasonably short, and never break
character.`

// BuildSystemPrompt returns the instructional preamble seeded into
// every upstream session. The emitted text is fixed; the descriptor is
// accepted but does not vary the output — current contract, validated
// at load time instead.
func BuildSystemPrompt(_ persona.Descriptor) string {
	return systemPrompt
}
