package domain

import (
	"context"
	"time"
)

// StreakWindow is how long after the previous study session a new one still extends the streak.
const StreakWindow = 24 * time.Hour

// ProgressRecord is one completed quiz as kept in the feedback history.
type ProgressRecord struct {
	ID             string
	Subject        string
	Grade          string
	Difficulty     string
	Score          float64
	TotalQuestions int
	CorrectAnswers int
	Feedback       FeedbackReport
	Topics         []string
	CompletedAt    time.Time
}

// StudyStreak counts consecutive study sessions.
type StudyStreak struct {
	Count       int
	LastStudyAt time.Time
}

// NextStreak returns the streak after a study session completed at `at`. A session
// within StreakWindow of the previous one extends the streak, otherwise it restarts at 1.
func NextStreak(prev StudyStreak, at time.Time) StudyStreak {
	if prev.Count > 0 && !prev.LastStudyAt.IsZero() {
		elapsed := at.Sub(prev.LastStudyAt)
		if elapsed >= 0 && elapsed <= StreakWindow {
			return StudyStreak{Count: prev.Count + 1, LastStudyAt: at}
		}
	}
	return StudyStreak{Count: 1, LastStudyAt: at}
}

// ProgressRepository persists the feedback history.
type ProgressRepository interface {
	Save(ctx context.Context, record *ProgressRecord) error
	Get(ctx context.Context, id string) (*ProgressRecord, error)
	// List returns records newest first. An empty subject lists all subjects.
	List(ctx context.Context, subject string, limit int) ([]ProgressRecord, error)
	Delete(ctx context.Context, id string) error
}

// StreakRepository persists the study streak.
type StreakRepository interface {
	Get(ctx context.Context) (StudyStreak, error)
	Save(ctx context.Context, streak StudyStreak) error
	Reset(ctx context.Context) error
}
