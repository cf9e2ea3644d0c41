package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"studybuddy/internal/domain"
)

// StringSlice stores a string list as a JSON array in a text column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	data, err := scanText(value)
	if err != nil {
		return fmt.Errorf("StringSlice Scan: %w", err)
	}
	if len(data) == 0 || string(data) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// FeedbackJSON stores a feedback report as a JSON document in a text column.
type FeedbackJSON domain.FeedbackReport

func (f FeedbackJSON) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(domain.FeedbackReport(f))
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (f *FeedbackJSON) Scan(value interface{}) error {
	data, err := scanText(value)
	if err != nil {
		return fmt.Errorf("FeedbackJSON Scan: %w", err)
	}
	var report domain.FeedbackReport
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &report); err != nil {
			return err
		}
	}
	*f = FeedbackJSON(report)
	return nil
}

func scanText(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("unsupported type " + fmt.Sprintf("%T", value))
	}
}

// FeedbackHistory is one row of the feedback_history table.
type FeedbackHistory struct {
	ID             string
	Subject        string
	Grade          sql.NullString
	Difficulty     sql.NullString
	Score          float64
	TotalQuestions int
	CorrectAnswers int
	Topics         StringSlice
	Feedback       FeedbackJSON
	CompletedAt    time.Time
}

// NewFeedbackHistory converts a domain record to its row. An empty grade or difficulty
// is stored as NULL.
func NewFeedbackHistory(record *domain.ProgressRecord) FeedbackHistory {
	return FeedbackHistory{
		ID:             record.ID,
		Subject:        record.Subject,
		Grade:          sql.NullString{String: record.Grade, Valid: record.Grade != ""},
		Difficulty:     sql.NullString{String: record.Difficulty, Valid: record.Difficulty != ""},
		Score:          record.Score,
		TotalQuestions: record.TotalQuestions,
		CorrectAnswers: record.CorrectAnswers,
		Topics:         StringSlice(record.Topics),
		Feedback:       FeedbackJSON(record.Feedback),
		CompletedAt:    record.CompletedAt.UTC(),
	}
}

// ToDomain converts the row to a domain.ProgressRecord.
func (m *FeedbackHistory) ToDomain() domain.ProgressRecord {
	return domain.ProgressRecord{
		ID:             m.ID,
		Subject:        m.Subject,
		Grade:          m.Grade.String,
		Difficulty:     m.Difficulty.String,
		Score:          m.Score,
		TotalQuestions: m.TotalQuestions,
		CorrectAnswers: m.CorrectAnswers,
		Feedback:       domain.FeedbackReport(m.Feedback),
		Topics:         []string(m.Topics),
		CompletedAt:    m.CompletedAt,
	}
}
