package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies the wire protocol an LLM provider speaks.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOpenAI is any OpenAI-compatible chat completions API
	// (OpenAI itself, Routeway and similar gateways).
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic Messages API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOpenAI:
		return "OpenAI-compatible chat completions"
	case AIProviderAnthropic:
		return "Anthropic messages"
	default:
		return unknownDescription
	}
}

// ProviderSettings configures one entry of the LLM provider chain.
type ProviderSettings struct {
	// Name identifies the provider in logs and responses, e.g. "routeway".
	Name string

	// Provider selects the adapter.
	Provider AIProvider

	// APIKey is the bearer credential. An empty key disables the provider.
	APIKey string

	// BaseURL overrides the adapter's default endpoint.
	BaseURL string

	// Model is the model name sent with each request.
	Model string
}

// IsConfigured returns true if the provider can be called.
func (p ProviderSettings) IsConfigured() bool {
	return p.Provider.IsValid() && p.APIKey != ""
}

// LLMSettings holds the ordered provider chain.
type LLMSettings struct {
	// Providers are tried in order until one returns a completion.
	Providers []ProviderSettings

	// Timeout bounds each provider call.
	Timeout time.Duration
}

// Configured returns the providers that have credentials, in order.
func (l LLMSettings) Configured() []ProviderSettings {
	out := make([]ProviderSettings, 0, len(l.Providers))
	for _, p := range l.Providers {
		if p.IsConfigured() {
			out = append(out, p)
		}
	}
	return out
}

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	Addr string
}

// RateLimitSettings configures the fixed-window limiter.
type RateLimitSettings struct {
	// Requests is the number of requests allowed per window.
	Requests int

	// Window is the window length.
	Window time.Duration

	// Capacity bounds the number of tracked identifiers (0 = unbounded).
	Capacity int
}

// CacheSettings configures the explanation cache.
type CacheSettings struct {
	// TTL is the default entry lifetime.
	TTL time.Duration

	// Capacity bounds the number of entries (0 = unbounded).
	Capacity int

	// HashKeys replaces raw snippet concatenation with a SHA-256 digest.
	HashKeys bool
}

// GitHubSettings configures the GitHub collaborator and discovery limits.
type GitHubSettings struct {
	ClientID     string
	ClientSecret string

	// MaxFiles caps how many code files are fetched per repository.
	MaxFiles int

	// MaxFunctionsPerFile caps how many functions are kept per file.
	MaxFunctionsPerFile int

	// Concurrency bounds parallel content fetches.
	Concurrency int

	// RequestsPerSecond is the proactive client-side throttle.
	RequestsPerSecond float64
}

// ParserSettings configures which files are parsed and how they are grouped.
type ParserSettings struct {
	// ContainerDirs are top-level directories skipped when naming features.
	ContainerDirs []string

	// Extensions are the file extensions treated as code.
	Extensions []string
}

// Settings holds all application settings.
type Settings struct {
	Server    ServerSettings
	RateLimit RateLimitSettings
	Cache     CacheSettings
	LLM       LLMSettings
	GitHub    GitHubSettings
	Parser    ParserSettings
}

// Default provider endpoints and models.
const (
	DefaultRoutewayBaseURL = "https://api.routeway.ai/v1"
	DefaultOpenAIBaseURL   = "https://api.openai.com/v1"
	DefaultChatModel       = "gpt-3.5-turbo"
	DefaultAnthropicModel  = "claude-3-5-haiku-latest"
)

// DefaultSettings returns settings with sensible defaults.
// No provider has a key, so explanations fail with ErrConfig until one is set.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{Addr: ":8080"},
		RateLimit: RateLimitSettings{
			Requests: 100,
			Window:   time.Hour,
			Capacity: 10000,
		},
		Cache: CacheSettings{
			TTL:      24 * time.Hour,
			Capacity: 10000,
		},
		LLM: LLMSettings{
			Providers: []ProviderSettings{
				{Name: "routeway", Provider: AIProviderOpenAI, BaseURL: DefaultRoutewayBaseURL, Model: DefaultChatModel},
				{Name: "openai", Provider: AIProviderOpenAI, BaseURL: DefaultOpenAIBaseURL, Model: DefaultChatModel},
				{Name: "anthropic", Provider: AIProviderAnthropic, Model: DefaultAnthropicModel},
			},
			Timeout: 30 * time.Second,
		},
		GitHub: GitHubSettings{
			MaxFiles:            50,
			MaxFunctionsPerFile: 10,
			Concurrency:         4,
			RequestsPerSecond:   10,
		},
		Parser: ParserSettings{
			ContainerDirs: []string{"src", "app"},
			Extensions:    []string{".ts", ".tsx", ".js", ".jsx"},
		},
	}
}
