package routes

import (
	"github.com/amelbk/stagelink/handlers"
	"github.com/amelbk/stagelink/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/dashboard", handlers.GetDashboardStats)

	users := admin.Group("/users")
	users.Get("", handlers.GetAllUsers)
	users.Put("/:userId/status", handlers.ToggleUserStatus)
	users.Delete("/:userId", handlers.AdminDeleteUser)

	reports := admin.Group("/reports")
	reports.Get("/applications", handlers.GenerateApplicationsReport)
}
