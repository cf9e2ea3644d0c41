package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Generation pipeline errors
	CodeTransport          ErrorCode = "TRANSPORT_ERROR"
	CodeExtractionFailed   ErrorCode = "EXTRACTION_FAILED"
	CodeSyntaxRepairFailed ErrorCode = "SYNTAX_REPAIR_FAILED"
	CodeSchemaInvalid      ErrorCode = "SCHEMA_INVALID"

	// Session errors
	CodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
	CodeInvalidState    ErrorCode = "INVALID_STATE"
	CodeInvalidAnswer   ErrorCode = "INVALID_ANSWER"
	CodeRetryExhausted  ErrorCode = "RETRY_EXHAUSTED"
	CodeSessionBusy     ErrorCode = "SESSION_BUSY"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a key/value pair that is surfaced in API error details.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsCode reports whether any error in err's chain is a DomainError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	for err != nil {
		if !errors.As(err, &domainErr) {
			return false
		}
		if domainErr.Code == code {
			return true
		}
		err = domainErr.Cause
	}
	return false
}

// CodeOf returns the code of the outermost DomainError in err's chain, or CodeInternal.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

// TransportError is a network/HTTP failure talking to the generation service or a
// persistence backend. Detail, when set, is what the remote side reported.
type TransportError struct {
	Detail string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("transport error: %s", e.Detail)
	}
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps a network failure. detail is empty when the remote side never answered.
func NewTransportError(detail string, cause error) *DomainError {
	return NewError(CodeTransport, "Generation service request failed", &TransportError{Detail: detail, Err: cause})
}

// ServerDetail returns the remote-reported failure detail carried by err, if any.
func ServerDetail(err error) (string, bool) {
	var te *TransportError
	if errors.As(err, &te) && te.Detail != "" {
		return te.Detail, true
	}
	return "", false
}

func NewExtractionFailedError(cause error) *DomainError {
	return NewError(CodeExtractionFailed, "No structured data found in generated text", cause)
}

func NewSyntaxRepairFailedError(cause error) *DomainError {
	return NewError(CodeSyntaxRepairFailed, "Generated data could not be repaired", cause)
}

func NewSchemaInvalidError(message string) *DomainError {
	return NewError(CodeSchemaInvalid, message, nil)
}

func NewSessionNotFoundError(sessionID string) *DomainError {
	return NewError(CodeSessionNotFound, fmt.Sprintf("Session not found with ID: %s", sessionID), nil)
}

func NewInvalidStateError(action string, state SessionState) *DomainError {
	return NewError(CodeInvalidState, fmt.Sprintf("Cannot %s while session is %s", action, state), nil).
		WithContext("state", string(state))
}

func NewInvalidAnswerError(message string) *DomainError {
	return NewError(CodeInvalidAnswer, message, nil)
}

func NewRetryExhaustedError(retryCount int) *DomainError {
	return NewError(CodeRetryExhausted, "Retry limit reached", nil).
		WithContext("retry_count", retryCount)
}

func NewSessionBusyError(sessionID string) *DomainError {
	return NewError(CodeSessionBusy, fmt.Sprintf("Session %s has a request in flight", sessionID), nil)
}

// ValidationError describes one invalid request field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field errors so handlers can report all of them at once.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	switch len(v) {
	case 0:
		return "validation failed"
	case 1:
		return "validation failed: " + v[0].Error()
	}
	return fmt.Sprintf("validation failed: %s (and %d more)", v[0].Error(), len(v)-1)
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Field: field, Message: "has an invalid format", Value: value}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("must be between %d and %d", min, max), Value: value}
}
