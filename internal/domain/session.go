package domain

import (
	"context"
	"sync"
	"time"
)

// MaxRetries is the number of failed generation attempts a session tolerates
// before its error becomes terminal.
const MaxRetries = 3

// SessionState is a state of the quiz session state machine.
type SessionState string

const (
	StateNotStarted SessionState = "not_started"
	StateLoading    SessionState = "loading"
	StateReady      SessionState = "ready"
	StateAnswering  SessionState = "answering"
	StateGrading    SessionState = "grading"
	StateCompleted  SessionState = "completed"
	StateErrored    SessionState = "errored"
)

// AnswerRecord is the single answer recorded for one question.
type AnswerRecord struct {
	QuestionIndex  int  `json:"questionIndex"`
	SelectedOption int  `json:"selectedOption"`
	Correct        bool `json:"correct"`
}

// StartOptions are the user's choices when starting (or retrying) a quiz.
type StartOptions struct {
	Difficulty string
	// SourceText is optional study material (for example text extracted from a PDF)
	// the questions should be based on.
	SourceText string
}

// QuizSession drives one quiz from selection through grading. It is mutated only by
// the orchestrator; callers must not run two actions on the same session concurrently.
// Sessions must be created with NewQuizSession.
type QuizSession struct {
	ID           string
	Subject      string
	Grade        string
	Options      StartOptions
	State        SessionState
	QuestionSet  *QuestionSet
	CurrentIndex int
	Answers      []AnswerRecord
	RetryCount   int
	Feedback     *FeedbackReport
	// ErrorMessage is the user-visible message of the last failure.
	ErrorMessage  string
	LastErrorCode ErrorCode
	StudyStreak   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CompletedAt   time.Time

	lifetime *sessionLifetime
}

type sessionLifetime struct {
	mu        sync.Mutex
	cancel    context.CancelFunc
	abandoned bool
}

// NewQuizSession creates a session in the NotStarted state.
func NewQuizSession(id, subject, grade string) *QuizSession {
	return &QuizSession{
		ID:        id,
		Subject:   subject,
		Grade:     grade,
		State:     StateNotStarted,
		CreatedAt: time.Now(),
		lifetime:  &sessionLifetime{},
	}
}

// Snapshot returns a copy that is safe to read while the session keeps changing.
// The question set and feedback are shared since they are never mutated.
func (s *QuizSession) Snapshot() QuizSession {
	c := *s
	c.Answers = append([]AnswerRecord(nil), s.Answers...)
	return c
}

// Bind derives a context for one in-flight call that is cancelled when the session is
// abandoned. The returned release func must be called when the call finishes.
func (s *QuizSession) Bind(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	s.lifetime.mu.Lock()
	if s.lifetime.abandoned {
		cancel()
	}
	s.lifetime.cancel = cancel
	s.lifetime.mu.Unlock()

	return ctx, func() {
		s.lifetime.mu.Lock()
		s.lifetime.cancel = nil
		s.lifetime.mu.Unlock()
		cancel()
	}
}

// Abandon cancels any in-flight call and marks the session as abandoned.
// It is safe to call concurrently with an in-flight action.
func (s *QuizSession) Abandon() {
	s.lifetime.mu.Lock()
	defer s.lifetime.mu.Unlock()
	s.lifetime.abandoned = true
	if s.lifetime.cancel != nil {
		s.lifetime.cancel()
	}
}

// Abandoned reports whether Abandon has been called.
func (s *QuizSession) Abandoned() bool {
	s.lifetime.mu.Lock()
	defer s.lifetime.mu.Unlock()
	return s.lifetime.abandoned
}

// CanRetry reports whether the retry action is available.
func (s *QuizSession) CanRetry() bool {
	return s.State == StateErrored && s.RetryCount < MaxRetries
}

// TotalQuestions returns the number of questions currently held.
func (s *QuizSession) TotalQuestions() int {
	if s.QuestionSet == nil {
		return 0
	}
	return len(s.QuestionSet.Questions)
}

// CorrectCount counts correct answers.
func (s *QuizSession) CorrectCount() int {
	n := 0
	for _, a := range s.Answers {
		if a.Correct {
			n++
		}
	}
	return n
}

// Score is count(correct)/len(questions), 0 when no questions are held.
func (s *QuizSession) Score() float64 {
	total := s.TotalQuestions()
	if total == 0 {
		return 0
	}
	return float64(s.CorrectCount()) / float64(total)
}

// IsAnswered reports whether an answer was already recorded for questionIndex.
func (s *QuizSession) IsAnswered(questionIndex int) bool {
	for _, a := range s.Answers {
		if a.QuestionIndex == questionIndex {
			return true
		}
	}
	return false
}

// AnswerFor returns the answer recorded for questionIndex.
func (s *QuizSession) AnswerFor(questionIndex int) (AnswerRecord, bool) {
	for _, a := range s.Answers {
		if a.QuestionIndex == questionIndex {
			return a, true
		}
	}
	return AnswerRecord{}, false
}

// ResetGeneration discards everything produced by the previous generation attempt.
func (s *QuizSession) ResetGeneration() {
	s.QuestionSet = nil
	s.CurrentIndex = 0
	s.Answers = nil
	s.Feedback = nil
	s.ErrorMessage = ""
	s.LastErrorCode = ""
}
