package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet() *QuestionSet {
	return &QuestionSet{
		Questions: []Question{
			{Text: "Q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1, Explanation: "E1"},
			{Text: "Q2", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 2, Explanation: "E2"},
		},
		Topics:           []string{"T"},
		ImprovementAreas: []ImprovementArea{{Topic: "T", Description: "D"}},
	}
}

func TestQuizSession_Score(t *testing.T) {
	s := NewQuizSession("s1", "Math", "5")
	assert.Equal(t, StateNotStarted, s.State)
	assert.Equal(t, 0.0, s.Score())

	s.QuestionSet = sampleSet()
	s.Answers = []AnswerRecord{{QuestionIndex: 0, SelectedOption: 1, Correct: true}}
	assert.Equal(t, 0.5, s.Score())
	assert.True(t, s.IsAnswered(0))
	assert.False(t, s.IsAnswered(1))

	s.Answers = append(s.Answers, AnswerRecord{QuestionIndex: 1, SelectedOption: 0})
	assert.Equal(t, 0.5, s.Score())
	assert.Equal(t, 1, s.CorrectCount())
}

func TestQuizSession_CanRetry(t *testing.T) {
	s := NewQuizSession("s1", "Math", "5")
	assert.False(t, s.CanRetry())

	s.State = StateErrored
	for i := 0; i < MaxRetries; i++ {
		s.RetryCount = i
		assert.True(t, s.CanRetry())
	}
	s.RetryCount = MaxRetries
	assert.False(t, s.CanRetry())
}

func TestQuizSession_AbandonCancelsBoundContext(t *testing.T) {
	s := NewQuizSession("s1", "Math", "5")

	ctx, release := s.Bind(context.Background())
	defer release()
	require.NoError(t, ctx.Err())

	s.Abandon()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.True(t, s.Abandoned())

	late, releaseLate := s.Bind(context.Background())
	defer releaseLate()
	assert.ErrorIs(t, late.Err(), context.Canceled)
}

func TestQuestionSet_Validate(t *testing.T) {
	require.NoError(t, sampleSet().Validate())

	set := sampleSet()
	set.Questions[1].Options = []string{"a", "b", "c"}
	assert.True(t, IsCode(set.Validate(), CodeSchemaInvalid))

	set = sampleSet()
	set.Topics = nil
	assert.True(t, IsCode(set.Validate(), CodeSchemaInvalid))
}

func TestErrors(t *testing.T) {
	err := NewTransportError("503: upstream overloaded", nil)
	detail, ok := ServerDetail(err)
	assert.True(t, ok)
	assert.Equal(t, "503: upstream overloaded", detail)
	assert.Equal(t, CodeTransport, CodeOf(err))

	_, ok = ServerDetail(NewTransportError("", context.DeadlineExceeded))
	assert.False(t, ok)
	assert.ErrorIs(t, NewTransportError("", context.DeadlineExceeded), context.DeadlineExceeded)

	wrapped := NewError(CodeInternal, "outer", NewSchemaInvalidError("inner"))
	assert.True(t, IsCode(wrapped, CodeSchemaInvalid))
	assert.Equal(t, CodeInternal, CodeOf(wrapped))
	assert.Equal(t, CodeInternal, CodeOf(context.Canceled))

	verrs := ValidationErrors{NewMissingFieldError("subject")}
	assert.Equal(t, "validation failed: subject: is required", verrs.Error())
}
