package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/domain"
)

func TestStringSlice(t *testing.T) {
	v, err := StringSlice(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = StringSlice{"Forces", "Motion"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["Forces","Motion"]`, v)

	var s StringSlice
	require.NoError(t, s.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, StringSlice{"a", "b"}, s)

	require.NoError(t, s.Scan(nil))
	assert.Equal(t, StringSlice{}, s)

	require.NoError(t, s.Scan("null"))
	assert.Equal(t, StringSlice{}, s)

	assert.Error(t, s.Scan(42))
}

func TestFeedbackJSON(t *testing.T) {
	report := domain.FeedbackReport{
		Strengths:       []string{"Units"},
		Weaknesses:      []string{},
		Recommendations: []domain.Recommendation{{Topic: "Vectors", Action: "Practice", Resources: []string{"Book"}}},
	}

	v, err := FeedbackJSON(report).Value()
	require.NoError(t, err)

	var f FeedbackJSON
	require.NoError(t, f.Scan(v))
	assert.Equal(t, report, domain.FeedbackReport(f))

	require.NoError(t, f.Scan(nil))
	assert.Equal(t, domain.FeedbackReport{}, domain.FeedbackReport(f))
	assert.Error(t, f.Scan("{not json"))
}

func TestFeedbackHistory_ToDomain(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	m := &FeedbackHistory{
		ID:             "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		Subject:        "Physics",
		Score:          0.75,
		TotalQuestions: 4,
		CorrectAnswers: 3,
		Topics:         StringSlice{"Forces"},
		CompletedAt:    now,
	}
	rec := m.ToDomain()
	assert.Equal(t, "", rec.Grade)
	assert.Equal(t, []string{"Forces"}, rec.Topics)
	assert.Equal(t, 3, rec.CorrectAnswers)
	assert.Equal(t, now, rec.CompletedAt)
}

func TestNewFeedbackHistory(t *testing.T) {
	local := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("KST", 9*3600))
	m := NewFeedbackHistory(&domain.ProgressRecord{ID: "r1", Subject: "Physics", CompletedAt: local})
	assert.False(t, m.Grade.Valid)
	assert.Equal(t, time.UTC, m.CompletedAt.Location())
	assert.True(t, local.Equal(m.CompletedAt))

	m = NewFeedbackHistory(&domain.ProgressRecord{ID: "r2", Grade: "8"})
	assert.True(t, m.Grade.Valid)
	assert.Equal(t, "8", m.Grade.String)
}
