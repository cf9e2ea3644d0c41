package domain

import (
	"fmt"
	"strings"
)

// OptionsPerQuestion is the number of answer options every generated question carries.
const OptionsPerQuestion = 4

// Question is one multiple-choice question of a generated quiz.
type Question struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// IsCorrect reports whether optionIndex is the correct option.
func (q *Question) IsCorrect(optionIndex int) bool {
	return optionIndex == q.CorrectAnswer
}

// Validate checks the invariants of a normalized question
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewSchemaInvalidError("question text is required")
	}
	if len(q.Options) < OptionsPerQuestion {
		return NewSchemaInvalidError(fmt.Sprintf("question needs %d options, got %d", OptionsPerQuestion, len(q.Options)))
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= OptionsPerQuestion {
		return NewSchemaInvalidError(fmt.Sprintf("correct answer %d out of range", q.CorrectAnswer))
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return NewSchemaInvalidError("question explanation is required")
	}
	return nil
}

// ImprovementArea is a topic the learner should work on, as suggested by the generator.
type ImprovementArea struct {
	Topic       string `json:"topic"`
	Description string `json:"description"`
}

// QuestionSet is the normalized output of one question generation call.
type QuestionSet struct {
	Questions        []Question        `json:"questions"`
	Topics           []string          `json:"topics"`
	ImprovementAreas []ImprovementArea `json:"improvementAreas"`
}

// Validate validates the question set
func (s *QuestionSet) Validate() error {
	if len(s.Questions) == 0 {
		return NewSchemaInvalidError("question set has no questions")
	}
	for i := range s.Questions {
		if err := s.Questions[i].Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	if len(s.Topics) == 0 {
		return NewSchemaInvalidError("question set has no topics")
	}
	if len(s.ImprovementAreas) == 0 {
		return NewSchemaInvalidError("question set has no improvement areas")
	}
	return nil
}

// Recommendation is a study action suggested in a feedback report.
type Recommendation struct {
	Topic     string   `json:"topic"`
	Action    string   `json:"action"`
	Resources []string `json:"resources"`
}

// FeedbackReport is the normalized assessment produced after a quiz is graded.
type FeedbackReport struct {
	Strengths       []string         `json:"strengths"`
	Weaknesses      []string         `json:"weaknesses"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Difficulty levels accepted when starting a quiz.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// IsValidDifficulty reports whether d is one of the supported difficulty levels.
func IsValidDifficulty(d string) bool {
	switch strings.ToLower(d) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}
