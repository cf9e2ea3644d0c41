package dto

import (
	"time"

	"studybuddy/internal/domain"
)

// CreateSessionRequest is the body of POST /sessions
// @Description Subject and grade of the quiz to prepare
type CreateSessionRequest struct {
	Subject string `json:"subject" example:"Biology"`
	Grade   string `json:"grade" example:"7"`
}

// StartSessionRequest is the body of POST /sessions/{id}/start
// @Description Difficulty and optional study material
type StartSessionRequest struct {
	Difficulty string `json:"difficulty" example:"medium"`
	SourceText string `json:"source_text,omitempty"`
}

// AnswerRequest is the body of POST /sessions/{id}/answers
type AnswerRequest struct {
	OptionIndex *int `json:"option_index" example:"2"`
}

// QuestionView is a question as shown to the learner. The correct answer and the
// explanation are only included once the question has been answered.
type QuestionView struct {
	Index          int      `json:"index"`
	Text           string   `json:"text"`
	Options        []string `json:"options"`
	Answered       bool     `json:"answered"`
	SelectedOption *int     `json:"selected_option,omitempty"`
	Correct        *bool    `json:"correct,omitempty"`
	CorrectAnswer  *int     `json:"correct_answer,omitempty"`
	Explanation    string   `json:"explanation,omitempty"`
}

// ImprovementAreaView is a suggested area of improvement
type ImprovementAreaView struct {
	Topic       string `json:"topic"`
	Description string `json:"description"`
}

// RecommendationView is one recommendation of a feedback report
type RecommendationView struct {
	Topic     string   `json:"topic"`
	Action    string   `json:"action"`
	Resources []string `json:"resources"`
}

// FeedbackView is the assessment shown after grading
type FeedbackView struct {
	Strengths       []string             `json:"strengths"`
	Weaknesses      []string             `json:"weaknesses"`
	Recommendations []RecommendationView `json:"recommendations"`
}

// SessionResponse is the view of a quiz session
// @Description Quiz session state
type SessionResponse struct {
	ID                   string                `json:"id"`
	Subject              string                `json:"subject"`
	Grade                string                `json:"grade"`
	Difficulty           string                `json:"difficulty,omitempty"`
	State                string                `json:"state"`
	CurrentQuestionIndex int                   `json:"current_question_index"`
	TotalQuestions       int                   `json:"total_questions"`
	Questions            []QuestionView        `json:"questions"`
	Topics               []string              `json:"topics,omitempty"`
	ImprovementAreas     []ImprovementAreaView `json:"improvement_areas,omitempty"`
	Score                *float64              `json:"score,omitempty"`
	CorrectCount         int                   `json:"correct_count"`
	Feedback             *FeedbackView         `json:"feedback,omitempty"`
	StudyStreak          int                   `json:"study_streak,omitempty"`
	RetryCount           int                   `json:"retry_count"`
	CanRetry             bool                  `json:"can_retry"`
	ErrorMessage         string                `json:"error_message,omitempty"`
	ErrorCode            string                `json:"error_code,omitempty"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
	CompletedAt          *time.Time            `json:"completed_at,omitempty"`
}

// NewSessionResponse builds the view of a session snapshot.
func NewSessionResponse(s domain.QuizSession) SessionResponse {
	resp := SessionResponse{
		ID:                   s.ID,
		Subject:              s.Subject,
		Grade:                s.Grade,
		Difficulty:           s.Options.Difficulty,
		State:                string(s.State),
		CurrentQuestionIndex: s.CurrentIndex,
		TotalQuestions:       s.TotalQuestions(),
		Questions:            []QuestionView{},
		CorrectCount:         s.CorrectCount(),
		StudyStreak:          s.StudyStreak,
		RetryCount:           s.RetryCount,
		CanRetry:             s.CanRetry(),
		ErrorMessage:         s.ErrorMessage,
		ErrorCode:            string(s.LastErrorCode),
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}

	if s.QuestionSet != nil {
		for i, q := range s.QuestionSet.Questions {
			view := QuestionView{
				Index:   i,
				Text:    q.Text,
				Options: append([]string(nil), q.Options...),
			}
			if a, ok := s.AnswerFor(i); ok {
				selected, correct, answer := a.SelectedOption, a.Correct, q.CorrectAnswer
				view.Answered = true
				view.SelectedOption = &selected
				view.Correct = &correct
				view.CorrectAnswer = &answer
				view.Explanation = q.Explanation
			}
			resp.Questions = append(resp.Questions, view)
		}
		resp.Topics = s.QuestionSet.Topics
		for _, area := range s.QuestionSet.ImprovementAreas {
			resp.ImprovementAreas = append(resp.ImprovementAreas, ImprovementAreaView{Topic: area.Topic, Description: area.Description})
		}
	}

	if s.State == domain.StateCompleted {
		score := s.Score()
		resp.Score = &score
		completedAt := s.CompletedAt
		resp.CompletedAt = &completedAt
	}
	if s.Feedback != nil {
		fb := NewFeedbackView(*s.Feedback)
		resp.Feedback = &fb
	}
	return resp
}

// NewFeedbackView converts a feedback report.
func NewFeedbackView(r domain.FeedbackReport) FeedbackView {
	view := FeedbackView{
		Strengths:       nonNil(r.Strengths),
		Weaknesses:      nonNil(r.Weaknesses),
		Recommendations: make([]RecommendationView, 0, len(r.Recommendations)),
	}
	for _, rec := range r.Recommendations {
		view.Recommendations = append(view.Recommendations, RecommendationView{
			Topic:     rec.Topic,
			Action:    rec.Action,
			Resources: nonNil(rec.Resources),
		})
	}
	return view
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
