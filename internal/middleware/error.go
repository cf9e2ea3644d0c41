package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"studybuddy/internal/domain"
	"studybuddy/internal/logger"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse lists every rejected request field.
type ValidationErrorResponse struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Status  int                      `json:"status"`
	Errors  []domain.ValidationError `json:"errors"`
}

var statusByCode = map[domain.ErrorCode]int{
	domain.CodeNotFound:        fiber.StatusNotFound,
	domain.CodeSessionNotFound: fiber.StatusNotFound,

	domain.CodeValidation:    fiber.StatusBadRequest,
	domain.CodeMissingField:  fiber.StatusBadRequest,
	domain.CodeInvalidFormat: fiber.StatusBadRequest,
	domain.CodeOutOfRange:    fiber.StatusBadRequest,
	domain.CodeInvalidAnswer: fiber.StatusBadRequest,

	domain.CodeInvalidState:   fiber.StatusConflict,
	domain.CodeRetryExhausted: fiber.StatusConflict,
	domain.CodeSessionBusy:    fiber.StatusConflict,

	domain.CodeExtractionFailed:   fiber.StatusBadGateway,
	domain.CodeSyntaxRepairFailed: fiber.StatusBadGateway,
	domain.CodeSchemaInvalid:      fiber.StatusBadGateway,

	domain.CodeTransport: fiber.StatusServiceUnavailable,
}

// StatusFor returns the HTTP status for a domain error code. Unknown codes map to 500.
func StatusFor(code domain.ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler renders every error returned by a handler or middleware as JSON.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			return renderValidation(c, validationErrs)
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return renderDomain(c, domainErr)
		}

		log := logger.Get()
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("Request rejected by router",
				zap.String("path", c.Path()),
				zap.Int("status", fiberErr.Code),
				zap.String("message", fiberErr.Message))
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:    "HTTP_ERROR",
				Message: fiberErr.Message,
				Status:  fiberErr.Code,
			})
		}

		log.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Code:    string(domain.CodeInternal),
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}
}

func renderValidation(c *fiber.Ctx, errs domain.ValidationErrors) error {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	logger.Get().Warn("Request validation failed",
		zap.String("path", c.Path()),
		zap.Strings("fields", fields))

	return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{
		Code:    string(domain.CodeValidation),
		Message: "Request validation failed",
		Status:  fiber.StatusBadRequest,
		Errors:  errs,
	})
}

func renderDomain(c *fiber.Ctx, domainErr *domain.DomainError) error {
	status := StatusFor(domainErr.Code)

	fields := []zap.Field{
		zap.String("path", c.Path()),
		zap.String("code", string(domainErr.Code)),
		zap.Int("status", status),
	}
	if domainErr.Cause != nil {
		fields = append(fields, zap.Error(domainErr.Cause))
	}
	if status >= fiber.StatusInternalServerError {
		logger.Get().Error(domainErr.Message, fields...)
	} else {
		logger.Get().Warn(domainErr.Message, fields...)
	}

	resp := ErrorResponse{
		Code:    string(domainErr.Code),
		Message: domainErr.Message,
		Status:  status,
	}
	if len(domainErr.Context) > 0 {
		resp.Details = domainErr.Context
	}
	return c.Status(status).JSON(resp)
}
