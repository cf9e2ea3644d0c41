package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"studybuddy/internal/config"
	"studybuddy/internal/domain"
	"studybuddy/internal/util"
)

// User-visible failure messages.
const (
	MsgAnalyzeMaterialFailed   = "Failed to analyze PDF"
	MsgGenerateQuestionsFailed = "Failed to generate questions"
	MsgGenerateFeedbackFailed  = "Failed to generate feedback"
	MsgSessionAbandoned        = "Session abandoned"
)

// EncouragingStrength is added to a report that lists no weaknesses.
const EncouragingStrength = "Great work! You showed a solid understanding of every topic in this quiz."

// Orchestrator drives QuizSessions through their state machine. It is the only
// place pipeline and transport errors are caught.
type Orchestrator struct {
	generator    domain.QuizGenerator
	progress     domain.ProgressService
	cfg          config.QuizConfig
	logger       *zap.Logger
	now          func() time.Time
	onTransition func(*domain.QuizSession)
}

// NewOrchestrator creates a new Orchestrator. progress may be nil, in which case
// completions are neither persisted nor counted toward the streak.
func NewOrchestrator(generator domain.QuizGenerator, progress domain.ProgressService, cfg config.QuizConfig, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		generator: generator,
		progress:  progress,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// OnTransition registers fn to be called, on the acting goroutine, after every state change.
func (o *Orchestrator) OnTransition(fn func(*domain.QuizSession)) {
	o.onTransition = fn
}

func (o *Orchestrator) transition(s *domain.QuizSession, state domain.SessionState) {
	o.logger.Debug("Session state change",
		zap.String("session_id", s.ID),
		zap.String("from", string(s.State)),
		zap.String("to", string(state)))
	s.State = state
	s.UpdatedAt = o.now()
	if o.onTransition != nil {
		o.onTransition(s)
	}
}

// Start generates the questions of a new quiz.
func (o *Orchestrator) Start(ctx context.Context, s *domain.QuizSession, opts domain.StartOptions) error {
	if s.State != domain.StateNotStarted {
		return domain.NewInvalidStateError("start", s.State)
	}
	if !domain.IsValidDifficulty(opts.Difficulty) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("difficulty", opts.Difficulty)}
	}
	s.Options = opts
	return o.load(ctx, s)
}

// Retry re-enters loading with the original start options while the retry budget lasts.
func (o *Orchestrator) Retry(ctx context.Context, s *domain.QuizSession) error {
	if s.State != domain.StateErrored {
		return domain.NewInvalidStateError("retry", s.State)
	}
	if !s.CanRetry() {
		return domain.NewRetryExhaustedError(s.RetryCount)
	}
	o.logger.Info("Retrying session",
		zap.String("session_id", s.ID),
		zap.Int("retry_count", s.RetryCount))
	s.ResetGeneration()
	return o.load(ctx, s)
}

func (o *Orchestrator) load(ctx context.Context, s *domain.QuizSession) error {
	o.transition(s, domain.StateLoading)

	ctx, release := s.Bind(ctx)
	defer release()

	req := domain.QuestionRequest{
		Subject:        s.Subject,
		Grade:          s.Grade,
		Difficulty:     s.Options.Difficulty,
		SourceText:     s.Options.SourceText,
		RecentFeedback: o.recentFeedback(ctx, s.Subject),
	}

	set, err := o.generator.GenerateQuestions(ctx, req)
	if err == nil {
		err = set.Validate()
	}
	if err != nil {
		fallback := MsgGenerateQuestionsFailed
		if s.Options.SourceText != "" {
			fallback = MsgAnalyzeMaterialFailed
		}
		o.fail(s, err, fallback)
		return nil
	}

	s.QuestionSet = set
	s.CurrentIndex = 0
	s.Answers = nil
	o.logger.Info("Quiz ready",
		zap.String("session_id", s.ID),
		zap.String("subject", s.Subject),
		zap.Int("questions", len(set.Questions)))
	o.transition(s, domain.StateReady)
	return nil
}

func (o *Orchestrator) recentFeedback(ctx context.Context, subject string) []domain.FeedbackReport {
	if o.progress == nil || o.cfg.HistoryContext <= 0 {
		return nil
	}
	records, err := o.progress.History(ctx, subject, o.cfg.HistoryContext)
	if err != nil {
		o.logger.Warn("Could not load recent feedback for prompt", zap.String("subject", subject), zap.Error(err))
		return nil
	}
	out := make([]domain.FeedbackReport, 0, len(records))
	for _, r := range records {
		out = append(out, r.Feedback)
	}
	return out
}

// Answer records the answer to the current question. The last answer triggers grading.
func (o *Orchestrator) Answer(ctx context.Context, s *domain.QuizSession, optionIndex int) error {
	if s.State != domain.StateReady && s.State != domain.StateAnswering {
		return domain.NewInvalidStateError("answer", s.State)
	}
	total := s.TotalQuestions()
	if s.CurrentIndex >= total || s.IsAnswered(s.CurrentIndex) {
		return domain.NewInvalidAnswerError("question has already been answered")
	}
	q := s.QuestionSet.Questions[s.CurrentIndex]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return domain.NewInvalidAnswerError(fmt.Sprintf("option index %d out of range", optionIndex)).
			WithContext("options", len(q.Options))
	}

	s.Answers = append(s.Answers, domain.AnswerRecord{
		QuestionIndex:  s.CurrentIndex,
		SelectedOption: optionIndex,
		Correct:        q.IsCorrect(optionIndex),
	})
	s.CurrentIndex++

	if s.CurrentIndex < total {
		o.transition(s, domain.StateAnswering)
		return nil
	}
	return o.grade(ctx, s)
}

func (o *Orchestrator) grade(ctx context.Context, s *domain.QuizSession) error {
	o.transition(s, domain.StateGrading)

	ctx, release := s.Bind(ctx)
	defer release()

	score := s.Score()
	report, err := o.generator.GenerateFeedback(ctx, domain.FeedbackRequest{
		Subject:   s.Subject,
		Grade:     s.Grade,
		Questions: s.QuestionSet.Questions,
		Answers:   s.Answers,
		Topics:    s.QuestionSet.Topics,
		Score:     score,
	})
	if err != nil {
		o.fail(s, err, MsgGenerateFeedbackFailed)
		return nil
	}
	report = withEncouragement(report)

	completedAt := o.now()
	record := &domain.ProgressRecord{
		ID:             util.NewULID(),
		Subject:        s.Subject,
		Grade:          s.Grade,
		Difficulty:     s.Options.Difficulty,
		Score:          score,
		TotalQuestions: s.TotalQuestions(),
		CorrectAnswers: s.CorrectCount(),
		Feedback:       *report,
		Topics:         s.QuestionSet.Topics,
		CompletedAt:    completedAt,
	}
	var streak domain.StudyStreak
	if o.progress != nil {
		if streak, err = o.progress.RecordCompletion(ctx, record); err != nil {
			o.fail(s, err, MsgGenerateFeedbackFailed)
			return nil
		}
	}

	s.Feedback = report
	s.StudyStreak = streak.Count
	s.CompletedAt = completedAt
	o.logger.Info("Quiz completed",
		zap.String("session_id", s.ID),
		zap.String("subject", s.Subject),
		zap.Float64("score", score),
		zap.Int("streak", streak.Count))
	o.transition(s, domain.StateCompleted)
	return nil
}

func withEncouragement(report *domain.FeedbackReport) *domain.FeedbackReport {
	if len(report.Weaknesses) > 0 {
		return report
	}
	out := *report
	out.Strengths = append(append([]string(nil), report.Strengths...), EncouragingStrength)
	return &out
}

// fail moves the session to errored and charges the retry budget. Abandoned sessions
// are not charged.
func (o *Orchestrator) fail(s *domain.QuizSession, err error, fallback string) {
	if s.Abandoned() && errors.Is(err, context.Canceled) {
		s.ErrorMessage = MsgSessionAbandoned
		s.LastErrorCode = domain.CodeOf(err)
		o.transition(s, domain.StateErrored)
		return
	}

	s.ErrorMessage = failureMessage(err, fallback)
	s.LastErrorCode = domain.CodeOf(err)
	if s.RetryCount < domain.MaxRetries {
		s.RetryCount++
	}
	o.logger.Error("Session attempt failed",
		zap.String("session_id", s.ID),
		zap.String("state", string(s.State)),
		zap.String("code", string(s.LastErrorCode)),
		zap.Int("retry_count", s.RetryCount),
		zap.Error(err))
	o.transition(s, domain.StateErrored)
}

func failureMessage(err error, fallback string) string {
	if detail, ok := domain.ServerDetail(err); ok {
		return "Server error: " + detail
	}
	return fallback
}

// Abandon cancels any in-flight generation call of the session. Unlike the other
// actions it may run while another action holds the session.
func (o *Orchestrator) Abandon(s *domain.QuizSession) {
	s.Abandon()
	o.logger.Info("Session abandoned", zap.String("session_id", s.ID))
}
