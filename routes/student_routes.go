package routes

import (
	"github.com/amelbk/stagelink/handlers"
	"github.com/amelbk/stagelink/middleware"
	"github.com/gofiber/fiber/v2"
)

func StudentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	students := api.Group("/students/me", middleware.Protected(), middleware.StudentRequired())
	students.Put("", handlers.UpdateStudentProfile)
	students.Post("/skills", handlers.AddSkill)
	students.Delete("/skills/:skillId", handlers.DeleteSkill)
	students.Get("/applications", handlers.ListMyApplications)
	students.Delete("/applications/:applicationId", handlers.WithdrawApplication)
}
