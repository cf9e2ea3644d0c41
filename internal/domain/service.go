package domain

import "context"

// SessionService manages the quiz sessions of the running process.
type SessionService interface {
	Create(ctx context.Context, subject, grade string) (QuizSession, error)
	Get(ctx context.Context, id string) (QuizSession, error)
	Start(ctx context.Context, id string, opts StartOptions) (QuizSession, error)
	Answer(ctx context.Context, id string, optionIndex int) (QuizSession, error)
	Retry(ctx context.Context, id string) (QuizSession, error)
	// Abandon cancels any in-flight generation and forgets the session.
	Abandon(ctx context.Context, id string) error
}

// ProgressService records completed quizzes and maintains the study streak.
type ProgressService interface {
	// RecordCompletion persists the record and returns the updated streak.
	RecordCompletion(ctx context.Context, record *ProgressRecord) (StudyStreak, error)
	History(ctx context.Context, subject string, limit int) ([]ProgressRecord, error)
	DeleteRecord(ctx context.Context, id string) error
	Streak(ctx context.Context) (StudyStreak, error)
	ResetStreak(ctx context.Context) error
}
