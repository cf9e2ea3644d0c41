package handler

import (
	"github.com/gofiber/fiber/v2"

	"studybuddy/internal/domain"
	"studybuddy/internal/dto"
	"studybuddy/internal/validation"
)

// SessionHandler handles quiz session HTTP requests
type SessionHandler struct {
	sessions  domain.SessionService
	validator *validation.Validator
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(sessions domain.SessionService) *SessionHandler {
	return &SessionHandler{
		sessions:  sessions,
		validator: validation.NewValidator(),
	}
}

// CreateSession godoc
// @Summary Create a quiz session
// @Description Creates a quiz session for a subject and grade. Questions are generated by the start action.
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest true "Subject and grade"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", nil)}
	}
	if errs := h.validator.ValidateCreateSession(req.Subject, req.Grade); len(errs) > 0 {
		return errs
	}

	session, err := h.sessions.Create(c.UserContext(), req.Subject, req.Grade)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSessionResponse(session))
}

// GetSession godoc
// @Summary Get a quiz session
// @Description Returns the current state of a quiz session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.sessions.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSessionResponse(session))
}

// StartSession godoc
// @Summary Start a quiz session
// @Description Generates the questions. Generation failures are reported in the session state, not as HTTP errors.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.StartSessionRequest true "Difficulty and optional study material"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/start [post]
func (h *SessionHandler) StartSession(c *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", nil)}
	}
	if errs := h.validator.ValidateStartSession(req.Difficulty, req.SourceText); len(errs) > 0 {
		return errs
	}

	session, err := h.sessions.Start(c.UserContext(), c.Params("id"), domain.StartOptions{
		Difficulty: req.Difficulty,
		SourceText: req.SourceText,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSessionResponse(session))
}

// SubmitAnswer godoc
// @Summary Answer the current question
// @Description Records the answer to the current question. The last answer grades the quiz.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.AnswerRequest true "Selected option"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/answers [post]
func (h *SessionHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", nil)}
	}
	if errs := h.validator.ValidateAnswer(req.OptionIndex); len(errs) > 0 {
		return errs
	}

	session, err := h.sessions.Answer(c.UserContext(), c.Params("id"), *req.OptionIndex)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSessionResponse(session))
}

// RetrySession godoc
// @Summary Retry a failed generation
// @Description Regenerates the questions of an errored session while retries remain
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/retry [post]
func (h *SessionHandler) RetrySession(c *fiber.Ctx) error {
	session, err := h.sessions.Retry(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSessionResponse(session))
}

// AbandonSession godoc
// @Summary Abandon a quiz session
// @Description Cancels any in-flight generation and discards the session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [delete]
func (h *SessionHandler) AbandonSession(c *fiber.Ctx) error {
	if err := h.sessions.Abandon(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
