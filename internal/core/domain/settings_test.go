package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected bool
	}{
		{"openai is valid", AIProviderOpenAI, true},
		{"anthropic is valid", AIProviderAnthropic, true},
		{"empty string is invalid", AIProvider(""), false},
		{"unknown is invalid", AIProvider("ollama"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.IsValid())
		})
	}
}

func TestAIProvider_Description(t *testing.T) {
	assert.Equal(t, "Anthropic messages", AIProviderAnthropic.Description())
	assert.Equal(t, unknownDescription, AIProvider("x").Description())
}

func TestProviderSettings_IsConfigured(t *testing.T) {
	assert.False(t, ProviderSettings{Provider: AIProviderOpenAI}.IsConfigured())
	assert.False(t, ProviderSettings{Provider: "bogus", APIKey: "k"}.IsConfigured())
	assert.True(t, ProviderSettings{Provider: AIProviderOpenAI, APIKey: "k"}.IsConfigured())
}

func TestLLMSettings_ConfiguredKeepsOrder(t *testing.T) {
	l := LLMSettings{Providers: []ProviderSettings{
		{Name: "a", Provider: AIProviderOpenAI},
		{Name: "b", Provider: AIProviderOpenAI, APIKey: "kb"},
		{Name: "c", Provider: AIProviderAnthropic, APIKey: "kc"},
	}}

	got := l.Configured()

	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Name)
	assert.Equal(t, "c", got[1].Name)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, 100, s.RateLimit.Requests)
	assert.Equal(t, time.Hour, s.RateLimit.Window)
	assert.Equal(t, 24*time.Hour, s.Cache.TTL)
	assert.False(t, s.Cache.HashKeys)
	assert.Equal(t, 50, s.GitHub.MaxFiles)
	assert.Equal(t, 10, s.GitHub.MaxFunctionsPerFile)
	assert.Equal(t, []string{"src", "app"}, s.Parser.ContainerDirs)
	assert.Empty(t, s.LLM.Configured(), "no provider is configured without keys")
	require.Len(t, s.LLM.Providers, 3)
	assert.Equal(t, "routeway", s.LLM.Providers[0].Name)
	assert.Equal(t, "openai", s.LLM.Providers[1].Name)
}
