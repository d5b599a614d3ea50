package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/codelens/internal/core/domain"
)

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name      string
		settings  domain.ProviderSettings
		wantErr   error
		wantName  string
		wantModel string
	}{
		{
			name:     "missing key",
			settings: domain.ProviderSettings{Name: "openai", Provider: domain.AIProviderOpenAI},
			wantErr:  domain.ErrConfig,
		},
		{
			name:     "unknown provider",
			settings: domain.ProviderSettings{Name: "x", Provider: "mystery", APIKey: "k"},
			wantErr:  domain.ErrConfig,
		},
		{
			name: "openai compatible gateway",
			settings: domain.ProviderSettings{
				Name:     "routeway",
				Provider: domain.AIProviderOpenAI,
				APIKey:   "k",
				BaseURL:  domain.DefaultRoutewayBaseURL,
				Model:    "gpt-4o-mini",
			},
			wantName:  "routeway",
			wantModel: "gpt-4o-mini",
		},
		{
			name: "anthropic",
			settings: domain.ProviderSettings{
				Name:     "anthropic",
				Provider: domain.AIProviderAnthropic,
				APIKey:   "k",
			},
			wantName:  "anthropic",
			wantModel: domain.DefaultAnthropicModel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			defer svc.Close()
			assert.Equal(t, tt.wantName, svc.Name())
			assert.Equal(t, tt.wantModel, svc.ModelName())
		})
	}
}

func TestNewChain_KeepsOrderAndSkipsUnconfigured(t *testing.T) {
	settings := domain.DefaultSettings().LLM
	settings.Providers[0].APIKey = "" // routeway
	settings.Providers[1].APIKey = "openai-key"
	settings.Providers[2].APIKey = "anthropic-key"

	chain := NewChain(settings)
	defer chain.Close()

	assert.Equal(t, []string{"openai", "anthropic"}, chain.Names())
}

func TestNewChain_Empty(t *testing.T) {
	chain := NewChain(domain.DefaultSettings().LLM)
	defer chain.Close()

	assert.Empty(t, chain.Providers)
	assert.Empty(t, chain.Names())
}

func TestNewChain_DropsInvalidProviders(t *testing.T) {
	chain := NewChain(domain.LLMSettings{Providers: []domain.ProviderSettings{
		{Name: "bad", Provider: "mystery", APIKey: "k"},
		{Name: "openai", Provider: domain.AIProviderOpenAI, APIKey: "k"},
	}})
	defer chain.Close()

	assert.Equal(t, []string{"openai"}, chain.Names())
}
