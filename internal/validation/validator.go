package validation

import (
	"strings"
	"unicode/utf8"

	"studybuddy/internal/domain"
	"studybuddy/internal/util"
)

// Request limits.
const (
	MaxSubjectLength    = 100
	MaxGradeLength      = 20
	MaxSourceTextLength = 200000
	MaxHistoryLimit     = 200
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateID checks that value is a well-formed identifier.
func (v *Validator) ValidateID(field, value string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(value) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if !util.IsULID(value) {
		errors = append(errors, domain.NewInvalidFormatError(field, value))
	}
	return errors
}

// ValidateCreateSession validates the create session request
func (v *Validator) ValidateCreateSession(subject, grade string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(subject) == "" {
		errors = append(errors, domain.NewMissingFieldError("subject"))
	} else if n := utf8.RuneCountInString(subject); n > MaxSubjectLength {
		errors = append(errors, domain.NewOutOfRangeError("subject", n, 1, MaxSubjectLength))
	}

	if strings.TrimSpace(grade) == "" {
		errors = append(errors, domain.NewMissingFieldError("grade"))
	} else if n := utf8.RuneCountInString(grade); n > MaxGradeLength {
		errors = append(errors, domain.NewOutOfRangeError("grade", n, 1, MaxGradeLength))
	}

	return errors
}

// ValidateStartSession validates the start session request
func (v *Validator) ValidateStartSession(difficulty, sourceText string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(difficulty) == "" {
		errors = append(errors, domain.NewMissingFieldError("difficulty"))
	} else if !domain.IsValidDifficulty(difficulty) {
		errors = append(errors, domain.NewInvalidFormatError("difficulty", difficulty))
	}

	if len(sourceText) > MaxSourceTextLength {
		errors = append(errors, domain.NewOutOfRangeError("source_text", len(sourceText), 0, MaxSourceTextLength))
	}

	return errors
}

// ValidateAnswer validates the submitted option index. The upper bound depends on
// the question and is checked when the answer is recorded.
func (v *Validator) ValidateAnswer(optionIndex *int) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if optionIndex == nil {
		errors = append(errors, domain.NewMissingFieldError("option_index"))
	} else if *optionIndex < 0 {
		errors = append(errors, domain.NewInvalidFormatError("option_index", *optionIndex))
	}
	return errors
}

// ValidateHistoryLimit validates the optional history page size
func (v *Validator) ValidateHistoryLimit(limit int) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if limit < 0 || limit > MaxHistoryLimit {
		errors = append(errors, domain.NewOutOfRangeError("limit", limit, 0, MaxHistoryLimit))
	}
	return errors
}
