package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"studybuddy/internal/domain"
	"studybuddy/internal/validation"
)

// HistoryLimitKey is the c.Locals key holding the validated ?limit value.
const HistoryLimitKey = "historyLimit"

// ValidationMiddleware rejects malformed requests before they reach a handler.
type ValidationMiddleware struct {
	validator *validation.Validator
}

func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateID rejects requests whose path parameter is not a ULID.
func (vm *ValidationMiddleware) ValidateID(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errs := vm.validator.ValidateID(param, c.Params(param)); len(errs) > 0 {
			return errs
		}
		return c.Next()
	}
}

// ValidateHistoryLimit parses the optional ?limit query and stores it under
// HistoryLimitKey. A missing limit is stored as 0.
func (vm *ValidationMiddleware) ValidateHistoryLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return domain.ValidationErrors{domain.NewInvalidFormatError("limit", raw)}
			}
			limit = n
		}
		if errs := vm.validator.ValidateHistoryLimit(limit); len(errs) > 0 {
			return errs
		}
		c.Locals(HistoryLimitKey, limit)
		return c.Next()
	}
}
