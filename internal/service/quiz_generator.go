package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"studybuddy/internal/config"
	"studybuddy/internal/domain"
	"studybuddy/internal/pipeline"
)

// quizGenerator implements domain.QuizGenerator on top of a raw generation client.
type quizGenerator struct {
	client   domain.GenerationClient
	pipeline *pipeline.Pipeline
	cfg      config.QuizConfig
	logger   *zap.Logger
}

// NewQuizGenerator creates a new instance of quizGenerator
func NewQuizGenerator(client domain.GenerationClient, p *pipeline.Pipeline, cfg config.QuizConfig, logger *zap.Logger) domain.QuizGenerator {
	return &quizGenerator{
		client:   client,
		pipeline: p,
		cfg:      cfg,
		logger:   logger,
	}
}

func (g *quizGenerator) GenerateQuestions(ctx context.Context, req domain.QuestionRequest) (*domain.QuestionSet, error) {
	count := g.cfg.QuestionCount
	if count <= 0 {
		count = 5
	}
	prompt := buildQuestionPrompt(req, count)

	start := time.Now()
	raw, err := g.client.Generate(ctx, prompt)
	if err != nil {
		g.logger.Error("Question generation call failed",
			zap.String("subject", req.Subject),
			zap.Error(err))
		return nil, err
	}
	g.logger.Debug("Question generation call finished",
		zap.String("subject", req.Subject),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_length", len(raw)))

	return g.pipeline.QuestionSet(raw, req.Subject)
}

func (g *quizGenerator) GenerateFeedback(ctx context.Context, req domain.FeedbackRequest) (*domain.FeedbackReport, error) {
	prompt := buildFeedbackPrompt(req)

	raw, err := g.client.Generate(ctx, prompt)
	if err != nil {
		g.logger.Error("Feedback generation call failed",
			zap.String("subject", req.Subject),
			zap.Error(err))
		return nil, err
	}
	return g.pipeline.FeedbackReport(raw)
}
