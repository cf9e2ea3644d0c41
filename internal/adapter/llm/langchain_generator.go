package llm

import (
	"context"
	"time"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"

	"studybuddy/internal/domain"
)

// LangChainGenerator implements domain.GenerationClient with a langchaingo model.
type LangChainGenerator struct {
	model       llms.Model
	temperature float64
	logger      *zap.Logger
}

// NewLangChainGenerator wraps model. temperature is sent with every call.
func NewLangChainGenerator(model llms.Model, temperature float64, logger *zap.Logger) *LangChainGenerator {
	return &LangChainGenerator{
		model:       model,
		temperature: temperature,
		logger:      logger,
	}
}

func (g *LangChainGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt, llms.WithTemperature(g.temperature))
	if err != nil {
		g.logger.Warn("Model call failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", domain.NewTransportError("", err)
	}
	g.logger.Debug("Model call finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("prompt_length", len(prompt)),
		zap.Int("response_length", len(text)))
	return text, nil
}
