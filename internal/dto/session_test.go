package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/domain"
)

func answeringSession() domain.QuizSession {
	s := domain.NewQuizSession("01HZY3V8Q4J2K6M8N0P2R4T6W8", "Math", "5")
	s.Options = domain.StartOptions{Difficulty: "easy"}
	s.State = domain.StateAnswering
	s.QuestionSet = &domain.QuestionSet{
		Questions: []domain.Question{
			{Text: "2+2?", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: 1, Explanation: "four"},
			{Text: "3*3?", Options: []string{"6", "9", "12", "3"}, CorrectAnswer: 1, Explanation: "nine"},
		},
		Topics:           []string{"Arithmetic"},
		ImprovementAreas: []domain.ImprovementArea{{Topic: "Arithmetic", Description: "Review arithmetic"}},
	}
	s.Answers = []domain.AnswerRecord{{QuestionIndex: 0, SelectedOption: 2, Correct: false}}
	s.CurrentIndex = 1
	return s.Snapshot()
}

func TestNewSessionResponse_HidesUnansweredSolutions(t *testing.T) {
	resp := NewSessionResponse(answeringSession())

	require.Len(t, resp.Questions, 2)
	answered, open := resp.Questions[0], resp.Questions[1]

	assert.True(t, answered.Answered)
	require.NotNil(t, answered.CorrectAnswer)
	assert.Equal(t, 1, *answered.CorrectAnswer)
	assert.Equal(t, 2, *answered.SelectedOption)
	assert.False(t, *answered.Correct)
	assert.Equal(t, "four", answered.Explanation)

	assert.False(t, open.Answered)
	assert.Nil(t, open.CorrectAnswer)
	assert.Empty(t, open.Explanation)

	data, err := json.Marshal(open)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "correct_answer")
	assert.NotContains(t, string(data), "explanation")

	assert.Equal(t, "answering", resp.State)
	assert.Equal(t, 1, resp.CurrentQuestionIndex)
	assert.Nil(t, resp.Score)
	assert.Nil(t, resp.CompletedAt)
}

func TestNewSessionResponse_Completed(t *testing.T) {
	s := answeringSession()
	s.Answers = append(s.Answers, domain.AnswerRecord{QuestionIndex: 1, SelectedOption: 1, Correct: true})
	s.State = domain.StateCompleted
	s.CompletedAt = time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	s.StudyStreak = 3
	s.Feedback = &domain.FeedbackReport{Strengths: []string{"Multiplication"}}

	resp := NewSessionResponse(s)

	require.NotNil(t, resp.Score)
	assert.Equal(t, 0.5, *resp.Score)
	assert.Equal(t, 1, resp.CorrectCount)
	assert.Equal(t, 3, resp.StudyStreak)
	require.NotNil(t, resp.Feedback)
	assert.Equal(t, []string{}, resp.Feedback.Weaknesses)
	assert.Equal(t, []RecommendationView{}, resp.Feedback.Recommendations)
	assert.True(t, resp.Questions[1].Answered)
}

func TestNewSessionResponse_Errored(t *testing.T) {
	s := domain.NewQuizSession("01HZY3V8Q4J2K6M8N0P2R4T6W8", "Math", "5")
	s.State = domain.StateErrored
	s.RetryCount = 1
	s.ErrorMessage = "Failed to generate questions"
	s.LastErrorCode = domain.CodeSyntaxRepairFailed

	resp := NewSessionResponse(s.Snapshot())

	assert.True(t, resp.CanRetry)
	assert.Equal(t, "Failed to generate questions", resp.ErrorMessage)
	assert.Equal(t, "SYNTAX_REPAIR_FAILED", resp.ErrorCode)
	assert.Equal(t, []QuestionView{}, resp.Questions)
}

func TestNewStreakResponse(t *testing.T) {
	assert.Nil(t, NewStreakResponse(domain.StudyStreak{}).LastStudyAt)

	at := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	resp := NewStreakResponse(domain.StudyStreak{Count: 2, LastStudyAt: at})
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, at, *resp.LastStudyAt)
}
