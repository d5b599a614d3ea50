package services

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/codelens/internal/core/domain"
	"github.com/custodia-labs/codelens/internal/core/ports/driven"
	"github.com/custodia-labs/codelens/internal/core/ports/driving"
	"github.com/custodia-labs/codelens/internal/logger"
)

var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyServerAddr          = "server.addr"
	keyRateLimitRequests   = "rate_limit.requests"
	keyRateLimitWindowMS   = "rate_limit.window_ms"
	keyRateLimitCapacity   = "rate_limit.capacity"
	keyCacheTTLMS          = "cache.ttl_ms"
	keyCacheCapacity       = "cache.capacity"
	keyCacheHashKeys       = "cache.hash_keys"
	keyLLMTimeoutMS        = "llm.timeout_ms"
	keyPrimaryAPIKey       = "llm.primary.api_key"
	keyPrimaryBaseURL      = "llm.primary.base_url"
	keyPrimaryModel        = "llm.primary.model"
	keySecondaryAPIKey     = "llm.secondary.api_key"
	keySecondaryBaseURL    = "llm.secondary.base_url"
	keySecondaryModel      = "llm.secondary.model"
	keyAnthropicAPIKey     = "llm.anthropic.api_key"
	keyAnthropicModel      = "llm.anthropic.model"
	keyGitHubClientID      = "github.client_id"
	keyGitHubClientSecret  = "github.client_secret"
	keyGitHubMaxFiles      = "github.max_files"
	keyGitHubMaxFunctions  = "github.max_functions_per_file"
	keyGitHubConcurrency   = "github.concurrency"
	keyGitHubRequestsPerS  = "github.requests_per_second"
	keyParserContainerDirs = "parser.container_dirs"
	keyParserExtensions    = "parser.extensions"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindBool
	kindList
)

type settingKey struct {
	key  string
	env  string
	kind valueKind
}

// settingKeys lists every supported key with its environment override.
var settingKeys = []settingKey{
	{keyServerAddr, "CODELENS_ADDR", kindString},
	{keyRateLimitRequests, "RATE_LIMIT_REQUESTS", kindInt},
	{keyRateLimitWindowMS, "RATE_LIMIT_WINDOW_MS", kindInt},
	{keyRateLimitCapacity, "RATE_LIMIT_CAPACITY", kindInt},
	{keyCacheTTLMS, "CACHE_TTL_MS", kindInt},
	{keyCacheCapacity, "CACHE_CAPACITY", kindInt},
	{keyCacheHashKeys, "CACHE_HASH_KEYS", kindBool},
	{keyLLMTimeoutMS, "LLM_TIMEOUT_MS", kindInt},
	{keyPrimaryAPIKey, "ROUTEWAY_API_KEY", kindString},
	{keyPrimaryBaseURL, "ROUTEWAY_BASE_URL", kindString},
	{keyPrimaryModel, "ROUTEWAY_MODEL", kindString},
	{keySecondaryAPIKey, "OPENAI_API_KEY", kindString},
	{keySecondaryBaseURL, "OPENAI_BASE_URL", kindString},
	{keySecondaryModel, "OPENAI_MODEL", kindString},
	{keyAnthropicAPIKey, "ANTHROPIC_API_KEY", kindString},
	{keyAnthropicModel, "ANTHROPIC_MODEL", kindString},
	{keyGitHubClientID, "GITHUB_CLIENT_ID", kindString},
	{keyGitHubClientSecret, "GITHUB_CLIENT_SECRET", kindString},
	{keyGitHubMaxFiles, "GITHUB_MAX_FILES", kindInt},
	{keyGitHubMaxFunctions, "GITHUB_MAX_FUNCTIONS_PER_FILE", kindInt},
	{keyGitHubConcurrency, "GITHUB_CONCURRENCY", kindInt},
	{keyGitHubRequestsPerS, "GITHUB_REQUESTS_PER_SECOND", kindFloat},
	{keyParserContainerDirs, "PARSER_CONTAINER_DIRS", kindList},
	{keyParserExtensions, "PARSER_EXTENSIONS", kindList},
}

// SettingKeys returns the supported configuration keys in display order.
func SettingKeys() []string {
	keys := make([]string, 0, len(settingKeys))
	for _, k := range settingKeys {
		keys = append(keys, k.key)
	}
	return keys
}

// IsSecretKey reports whether a key holds a credential that should be masked.
func IsSecretKey(key string) bool {
	return strings.HasSuffix(key, ".api_key") || strings.HasSuffix(key, ".client_secret")
}

// SettingsService resolves application settings from the environment, the
// config store and built-in defaults, in that order of precedence.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a settings service. A nil lookupEnv uses os.LookupEnv.
func NewSettingsService(configStore driven.ConfigStore, lookupEnv func(string) (string, bool)) *SettingsService {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   lookupEnv,
	}
}

// LoadSettings is shorthand for NewSettingsService(store, lookupEnv).Get().
func LoadSettings(store driven.ConfigStore, lookupEnv func(string) (string, bool)) domain.Settings {
	return NewSettingsService(store, lookupEnv).Get()
}

// Get returns the resolved settings. Invalid values are logged and replaced
// by their defaults; Get never fails.
func (s *SettingsService) Get() domain.Settings {
	d := domain.DefaultSettings()

	settings := domain.Settings{
		Server: domain.ServerSettings{
			Addr: s.getString(keyServerAddr, d.Server.Addr),
		},
		RateLimit: domain.RateLimitSettings{
			Requests: s.getPositiveInt(keyRateLimitRequests, d.RateLimit.Requests),
			Window:   s.getMillis(keyRateLimitWindowMS, d.RateLimit.Window),
			Capacity: s.getInt(keyRateLimitCapacity, d.RateLimit.Capacity),
		},
		Cache: domain.CacheSettings{
			TTL:      s.getMillis(keyCacheTTLMS, d.Cache.TTL),
			Capacity: s.getInt(keyCacheCapacity, d.Cache.Capacity),
			HashKeys: s.getBool(keyCacheHashKeys, d.Cache.HashKeys),
		},
		LLM: domain.LLMSettings{
			Timeout:   s.getMillis(keyLLMTimeoutMS, d.LLM.Timeout),
			Providers: s.providers(d.LLM.Providers),
		},
		GitHub: domain.GitHubSettings{
			ClientID:            s.getString(keyGitHubClientID, ""),
			ClientSecret:        s.getString(keyGitHubClientSecret, ""),
			MaxFiles:            s.getPositiveInt(keyGitHubMaxFiles, d.GitHub.MaxFiles),
			MaxFunctionsPerFile: s.getPositiveInt(keyGitHubMaxFunctions, d.GitHub.MaxFunctionsPerFile),
			Concurrency:         s.getPositiveInt(keyGitHubConcurrency, d.GitHub.Concurrency),
			RequestsPerSecond:   s.getFloat(keyGitHubRequestsPerS, d.GitHub.RequestsPerSecond),
		},
		Parser: domain.ParserSettings{
			ContainerDirs: s.getList(keyParserContainerDirs, d.Parser.ContainerDirs),
			Extensions:    s.getList(keyParserExtensions, d.Parser.Extensions),
		},
	}

	return settings
}

// providers overlays configured credentials onto the default provider chain.
func (s *SettingsService) providers(defaults []domain.ProviderSettings) []domain.ProviderSettings {
	out := slices.Clone(defaults)
	for i := range out {
		p := &out[i]
		switch p.Name {
		case "routeway":
			p.APIKey = s.getString(keyPrimaryAPIKey, "")
			p.BaseURL = s.getString(keyPrimaryBaseURL, p.BaseURL)
			p.Model = s.getString(keyPrimaryModel, p.Model)
		case "openai":
			p.APIKey = s.getString(keySecondaryAPIKey, "")
			p.BaseURL = s.getString(keySecondaryBaseURL, p.BaseURL)
			p.Model = s.getString(keySecondaryModel, p.Model)
		case "anthropic":
			p.APIKey = s.getString(keyAnthropicAPIKey, "")
			p.Model = s.getString(keyAnthropicModel, p.Model)
		}
	}
	return out
}

// Set validates and stores a configuration value given as text, then saves.
func (s *SettingsService) Set(key, raw string) error {
	k, ok := lookupKey(key)
	if !ok {
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}

	value, err := parseValue(k.kind, raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return s.configStore.Save()
}

// Lookup returns the effective value of key as text and where it came from
// ("env", "file" or "default").
func (s *SettingsService) Lookup(key string) (value, origin string, err error) {
	k, ok := lookupKey(key)
	if !ok {
		return "", "", fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}
	if v, ok := s.env(k); ok {
		return v, "env", nil
	}
	if v, ok := s.configStore.Get(key); ok {
		return formatValue(v), "file", nil
	}
	return "", "default", nil
}

func lookupKey(key string) (settingKey, bool) {
	i := slices.IndexFunc(settingKeys, func(k settingKey) bool { return k.key == key })
	if i < 0 {
		return settingKey{}, false
	}
	return settingKeys[i], true
}

func (s *SettingsService) env(k settingKey) (string, bool) {
	v, ok := s.lookupEnv(k.env)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (s *SettingsService) getString(key, def string) string {
	k, _ := lookupKey(key)
	if v, ok := s.env(k); ok {
		return v
	}
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return def
}

func (s *SettingsService) getInt(key string, def int) int {
	k, _ := lookupKey(key)
	if v, ok := s.env(k); ok {
		n, err := strconv.Atoi(v)
		if err == nil && n >= 0 {
			return n
		}
		logger.Warn("ignoring invalid environment value", "env", k.env, "value", v)
	}
	if _, ok := s.configStore.Get(key); ok {
		if n := s.configStore.GetInt(key); n >= 0 {
			return n
		}
		logger.Warn("ignoring negative config value", "key", key)
	}
	return def
}

func (s *SettingsService) getPositiveInt(key string, def int) int {
	if n := s.getInt(key, def); n > 0 {
		return n
	}
	return def
}

func (s *SettingsService) getMillis(key string, def time.Duration) time.Duration {
	return time.Duration(s.getPositiveInt(key, int(def/time.Millisecond))) * time.Millisecond
}

func (s *SettingsService) getFloat(key string, def float64) float64 {
	k, _ := lookupKey(key)
	if v, ok := s.env(k); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil && f > 0 {
			return f
		}
		logger.Warn("ignoring invalid environment value", "env", k.env, "value", v)
	}
	if f := s.configStore.GetFloat(key); f > 0 {
		return f
	}
	return def
}

func (s *SettingsService) getBool(key string, def bool) bool {
	k, _ := lookupKey(key)
	if v, ok := s.env(k); ok {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
		logger.Warn("ignoring invalid environment value", "env", k.env, "value", v)
	}
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetBool(key)
	}
	return def
}

func (s *SettingsService) getList(key string, def []string) []string {
	k, _ := lookupKey(key)
	if v, ok := s.env(k); ok {
		return splitList(v)
	}
	if list := s.configStore.GetStringSlice(key); len(list) > 0 {
		return list
	}
	return slices.Clone(def)
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseValue(kind valueKind, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("expected a non-negative integer, got %q", raw)
		}
		return n, nil
	case kindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("expected a positive number, got %q", raw)
		}
		return f, nil
	case kindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("expected true or false, got %q", raw)
		}
		return b, nil
	case kindList:
		return splitList(raw), nil
	default:
		return raw, nil
	}
}

func formatValue(v any) string {
	switch x := v.(type) {
	case []string:
		return strings.Join(x, ",")
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}
