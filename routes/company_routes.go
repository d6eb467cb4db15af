package routes

import (
	"github.com/amelbk/stagelink/handlers"
	"github.com/amelbk/stagelink/middleware"
	"github.com/gofiber/fiber/v2"
)

func CompanyRoutes(app *fiber.App, h *handlers.CompanyHandler) {
	api := app.Group("/api/v1")

	companies := api.Group("/companies/me", middleware.Protected(), middleware.CompanyRequired())
	companies.Put("", h.UpdateCompanyProfile)

	companies.Post("/jobs", h.CreateJob)
	companies.Put("/jobs/:jobId", h.UpdateJob)
	companies.Post("/jobs/:jobId/toggle", h.ToggleJobStatus)
	companies.Delete("/jobs/:jobId", h.DeleteJob)

	companies.Get("/applications", h.ListApplications)
	companies.Put("/applications/:applicationId/status", h.UpdateApplicationStatus)
}
