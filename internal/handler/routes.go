package handler

import (
	"github.com/gofiber/fiber/v2"

	"studybuddy/internal/middleware"
)

// RegisterRoutes mounts the API under /api.
func RegisterRoutes(app *fiber.App, sessions *SessionHandler, progress *ProgressHandler, health *HealthHandler) {
	vm := middleware.NewValidationMiddleware()
	api := app.Group("/api")

	api.Get("/health", health.Health)

	api.Post("/sessions", sessions.CreateSession)
	session := api.Group("/sessions/:id", vm.ValidateID("id"))
	session.Get("", sessions.GetSession)
	session.Delete("", sessions.AbandonSession)
	session.Post("/start", sessions.StartSession)
	session.Post("/answers", sessions.SubmitAnswer)
	session.Post("/retry", sessions.RetrySession)

	api.Get("/feedback-history", vm.ValidateHistoryLimit(), progress.GetFeedbackHistory)
	api.Delete("/feedback-history/:id", vm.ValidateID("id"), progress.DeleteFeedbackRecord)
	api.Get("/progress/streak", progress.GetStreak)
	api.Delete("/progress/streak", progress.ResetStreak)
}
