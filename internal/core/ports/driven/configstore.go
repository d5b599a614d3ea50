package driven

// ConfigStore holds the settings written by "codelens settings set".
// Keys are dotted paths such as "rate_limit.requests". Typed getters
// return the zero value when a key is absent or holds another type, so
// callers that must tell "unset" from "zero" use Get first.
type ConfigStore interface {
	// Get returns the raw value stored under key.
	Get(key string) (any, bool)

	GetString(key string) string

	// GetInt accepts any integer type the decoder produced.
	GetInt(key string) int

	// GetFloat also accepts integers.
	GetFloat(key string) float64

	GetBool(key string) bool

	// GetStringSlice accepts []string and []any of strings.
	GetStringSlice(key string) []string

	// Set changes a value in memory; Save writes it out.
	Set(key string, value any) error

	Save() error

	// Load replaces the in-memory values with what storage holds.
	Load() error

	// Path names the backing file, or "" for stores without one.
	Path() string
}
