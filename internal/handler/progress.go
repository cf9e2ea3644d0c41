package handler

import (
	"github.com/gofiber/fiber/v2"

	"studybuddy/internal/domain"
	"studybuddy/internal/dto"
	"studybuddy/internal/middleware"
)

// ProgressHandler handles feedback history and streak requests
type ProgressHandler struct {
	progress domain.ProgressService
}

// NewProgressHandler creates a new ProgressHandler instance
func NewProgressHandler(progress domain.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

// GetFeedbackHistory godoc
// @Summary List feedback history
// @Description Lists completed quizzes newest first, optionally filtered by subject
// @Tags progress
// @Produce json
// @Param subject query string false "Subject"
// @Param limit query int false "Maximum number of records"
// @Success 200 {object} dto.FeedbackHistoryResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /feedback-history [get]
func (h *ProgressHandler) GetFeedbackHistory(c *fiber.Ctx) error {
	limit, _ := c.Locals(middleware.HistoryLimitKey).(int)

	records, err := h.progress.History(c.UserContext(), c.Query("subject"), limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFeedbackHistoryResponse(records))
}

// DeleteFeedbackRecord godoc
// @Summary Delete a feedback history record
// @Tags progress
// @Param id path string true "Record ID"
// @Success 204
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /feedback-history/{id} [delete]
func (h *ProgressHandler) DeleteFeedbackRecord(c *fiber.Ctx) error {
	if err := h.progress.DeleteRecord(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetStreak godoc
// @Summary Get the study streak
// @Tags progress
// @Produce json
// @Success 200 {object} dto.StreakResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /progress/streak [get]
func (h *ProgressHandler) GetStreak(c *fiber.Ctx) error {
	streak, err := h.progress.Streak(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewStreakResponse(streak))
}

// ResetStreak godoc
// @Summary Reset the study streak
// @Tags progress
// @Success 204
// @Failure 500 {object} middleware.ErrorResponse
// @Router /progress/streak [delete]
func (h *ProgressHandler) ResetStreak(c *fiber.Ctx) error {
	if err := h.progress.ResetStreak(c.UserContext()); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
