package driven

import "context"

// LLMService provides chat completions from one provider.
// The explanation service holds an ordered slice of these and falls back
// from one to the next on failure.
//
// Implementations may include:
//   - OpenAI-compatible gateways (OpenAI, Routeway)
//   - Anthropic (Claude)
type LLMService interface {
	// Chat conducts a multi-turn conversation and returns the completion text.
	// Implementations return a *domain.UpstreamError for non-success statuses,
	// malformed payloads and transport failures, and never return an empty
	// string with a nil error.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// Name identifies the configured provider (e.g. "routeway").
	Name() string

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
