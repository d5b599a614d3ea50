// Package openai provides an LLM service adapter for OpenAI-compatible
// chat completion APIs (OpenAI itself and gateways such as Routeway).
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/custodia-labs/codelens/internal/core/domain"
	"github.com/custodia-labs/codelens/internal/core/ports/driven"
	"github.com/custodia-labs/codelens/internal/logger"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultTimeout = 60 * time.Second
)

// Config holds configuration for an OpenAI-compatible LLM service.
type Config struct {
	// Name identifies the provider in logs and responses (default: openai).
	Name string

	// APIKey is the bearer credential (required).
	APIKey string

	// BaseURL is the API base URL including the version segment
	// (default: https://api.openai.com/v1).
	BaseURL string

	// Model is the LLM model to use (default: gpt-3.5-turbo).
	Model string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// LLMService provides chat completions through go-openai.
type LLMService struct {
	client     *goopenai.Client
	httpClient *http.Client
	name       string
	model      string
}

// NewLLMService creates a new OpenAI-compatible LLM service.
func NewLLMService(cfg Config) (*LLMService, error) {
	if cfg.Name == "" {
		cfg.Name = "openai"
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: %s: API key is required", domain.ErrConfig, cfg.Name)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultOpenAIBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = domain.DefaultChatModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	clientCfg.HTTPClient = httpClient

	return &LLMService{
		client:     goopenai.NewClientWithConfig(clientCfg),
		httpClient: httpClient,
		name:       cfg.Name,
		model:      cfg.Model,
	}, nil
}

// Chat conducts a multi-turn conversation and returns the first choice.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	req := goopenai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    make([]goopenai.ChatCompletionMessage, 0, len(messages)),
		MaxTokens:   opts.MaxTokens,
		Temperature: float32(opts.Temperature),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, goopenai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	logger.Debug("calling chat completions", "provider", s.name, "model", s.model)

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", s.wrapError(err)
	}

	if len(resp.Choices) == 0 {
		return "", domain.NewUpstreamError(s.name, http.StatusOK, "missing choices or message", nil)
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", domain.NewUpstreamError(s.name, http.StatusOK, "empty completion", nil)
	}

	logger.Debug("chat completion received", "provider", s.name, "finish_reason", resp.Choices[0].FinishReason)
	return content, nil
}

// wrapError converts go-openai errors into *domain.UpstreamError.
func (s *LLMService) wrapError(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return domain.NewUpstreamError(s.name, apiErr.HTTPStatusCode, apiErr.Message, err)
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		msg := string(reqErr.Body)
		if msg == "" && reqErr.Err != nil {
			msg = reqErr.Err.Error()
		}
		return domain.NewUpstreamError(s.name, reqErr.HTTPStatusCode, msg, err)
	}

	return domain.NewUpstreamError(s.name, 0, "request failed", err)
}

// Name identifies the provider.
func (s *LLMService) Name() string {
	return s.name
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Close releases resources.
func (s *LLMService) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}
