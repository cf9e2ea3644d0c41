package llm

import (
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"studybuddy/internal/config"
	"studybuddy/internal/domain"
)

// Supported generation providers.
const (
	ProviderOllama   = "ollama"
	ProviderOpenAI   = "openai"
	ProviderEndpoint = "endpoint"
)

// NewClient builds the generation client selected by cfg.Provider.
func NewClient(cfg config.GenerationConfig, logger *zap.Logger) (domain.GenerationClient, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case ProviderOllama:
		if cfg.ServerURL == "" {
			return nil, fmt.Errorf("ollama server URL cannot be empty")
		}
		model, err := ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create LangchainGo Ollama client: %w", err)
		}
		logger.Info("Using Ollama generation", zap.String("server_url", cfg.ServerURL), zap.String("model", cfg.Model))
		return NewLangChainGenerator(model, cfg.Temperature, logger), nil

	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai API key cannot be empty")
		}
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
			openai.WithHTTPClient(httpClient),
		}
		if cfg.ServerURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.ServerURL))
		}
		model, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create LangchainGo OpenAI client: %w", err)
		}
		logger.Info("Using OpenAI generation", zap.String("model", cfg.Model))
		return NewLangChainGenerator(model, cfg.Temperature, logger), nil

	case ProviderEndpoint:
		if cfg.ServerURL == "" {
			return nil, fmt.Errorf("answer endpoint URL cannot be empty")
		}
		logger.Info("Using answer endpoint generation", zap.String("url", cfg.ServerURL))
		return NewAnswerEndpointClient(cfg.ServerURL, httpClient, logger), nil

	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", cfg.Provider)
	}
}
