package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"

	"studybuddy/internal/domain"
)

type fakeModel struct {
	reply       string
	err         error
	prompt      string
	temperature float64
}

func (m *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, o := range options {
		o(&opts)
	}
	m.temperature = opts.Temperature
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				m.prompt = text.Text
			}
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.reply}}}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func TestLangChainGenerator_Generate(t *testing.T) {
	model := &fakeModel{reply: "```json\n{\"questions\": []}\n```"}
	g := NewLangChainGenerator(model, 0.3, zap.NewNop())

	text, err := g.Generate(context.Background(), "write a quiz")

	require.NoError(t, err)
	assert.Equal(t, model.reply, text)
	assert.Equal(t, "write a quiz", model.prompt)
	assert.Equal(t, 0.3, model.temperature)
}

func TestLangChainGenerator_TransportError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	g := NewLangChainGenerator(&fakeModel{err: cause}, 0.3, zap.NewNop())

	_, err := g.Generate(context.Background(), "write a quiz")

	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeTransport))
	assert.ErrorIs(t, err, cause)
	_, hasDetail := domain.ServerDetail(err)
	assert.False(t, hasDetail)
}
