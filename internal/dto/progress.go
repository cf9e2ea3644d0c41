package dto

import (
	"time"

	"studybuddy/internal/domain"
)

// FeedbackHistoryItem is one completed quiz in the feedback history
type FeedbackHistoryItem struct {
	ID             string       `json:"id"`
	Subject        string       `json:"subject"`
	Grade          string       `json:"grade,omitempty"`
	Difficulty     string       `json:"difficulty,omitempty"`
	Score          float64      `json:"score"`
	TotalQuestions int          `json:"total_questions"`
	CorrectAnswers int          `json:"correct_answers"`
	Topics         []string     `json:"topics"`
	Feedback       FeedbackView `json:"feedback"`
	CompletedAt    time.Time    `json:"completed_at"`
}

// FeedbackHistoryResponse lists feedback history, newest first
type FeedbackHistoryResponse struct {
	Records []FeedbackHistoryItem `json:"records"`
	Count   int                   `json:"count"`
}

// StreakResponse is the current study streak
type StreakResponse struct {
	Count       int        `json:"count"`
	LastStudyAt *time.Time `json:"last_study_at,omitempty"`
}

// HealthResponse reports the state of the backing services
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// NewFeedbackHistoryResponse converts progress records.
func NewFeedbackHistoryResponse(records []domain.ProgressRecord) FeedbackHistoryResponse {
	resp := FeedbackHistoryResponse{
		Records: make([]FeedbackHistoryItem, 0, len(records)),
		Count:   len(records),
	}
	for _, r := range records {
		resp.Records = append(resp.Records, FeedbackHistoryItem{
			ID:             r.ID,
			Subject:        r.Subject,
			Grade:          r.Grade,
			Difficulty:     r.Difficulty,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			CorrectAnswers: r.CorrectAnswers,
			Topics:         nonNil(r.Topics),
			Feedback:       NewFeedbackView(r.Feedback),
			CompletedAt:    r.CompletedAt,
		})
	}
	return resp
}

// NewStreakResponse converts a study streak.
func NewStreakResponse(s domain.StudyStreak) StreakResponse {
	resp := StreakResponse{Count: s.Count}
	if !s.LastStudyAt.IsZero() {
		last := s.LastStudyAt
		resp.LastStudyAt = &last
	}
	return resp
}
