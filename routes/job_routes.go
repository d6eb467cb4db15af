package routes

import (
	"github.com/amelbk/stagelink/handlers"
	"github.com/amelbk/stagelink/middleware"
	"github.com/gofiber/fiber/v2"
)

func JobRoutes(app *fiber.App, h *handlers.JobHandler) {
	api := app.Group("/api/v1")

	jobs := api.Group("/jobs")
	jobs.Get("", h.ListJobs)
	jobs.Get("/company/:companyId", h.ListCompanyJobs)
	jobs.Get("/:jobId", h.GetJob)
	jobs.Post("/:jobId/apply", middleware.Protected(), middleware.StudentRequired(), h.Apply)
}
