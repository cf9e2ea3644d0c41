package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"studybuddy/internal/domain"
)

// maxErrorBody caps how much of a failed response body is kept as error detail.
const maxErrorBody = 512

type answerRequest struct {
	Prompt string `json:"prompt"`
}

type answerResponse struct {
	Answer string `json:"answer"`
}

// AnswerEndpointClient implements domain.GenerationClient for services that accept
// {"prompt": ...} and reply with {"answer": ...}.
type AnswerEndpointClient struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewAnswerEndpointClient creates a client posting to url. The timeout of client
// bounds every call.
func NewAnswerEndpointClient(url string, client *http.Client, logger *zap.Logger) *AnswerEndpointClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &AnswerEndpointClient{
		url:    url,
		client: client,
		logger: logger,
	}
}

func (c *AnswerEndpointClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(answerRequest{Prompt: prompt})
	if err != nil {
		return "", domain.NewInternalError("Failed to encode generation request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", domain.NewInternalError("Failed to build generation request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", domain.NewTransportError("", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		detail := fmt.Sprintf("%d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
		c.logger.Warn("Generation endpoint returned an error",
			zap.String("url", c.url),
			zap.Int("status", resp.StatusCode))
		return "", domain.NewTransportError(detail, nil)
	}

	var out answerResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", domain.NewTransportError("", fmt.Errorf("decode answer: %w", err))
	}
	return out.Answer, nil
}
