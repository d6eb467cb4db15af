package routes

import (
	"github.com/amelbk/stagelink/handlers"
	"github.com/amelbk/stagelink/middleware"
	"github.com/gofiber/fiber/v2"
)

func NotificationRoutes(app *fiber.App, h *handlers.NotificationHandler) {
	api := app.Group("/api/v1")

	notifications := api.Group("/notifications", middleware.Protected())
	notifications.Get("", h.ListMyNotifications)
	notifications.Post("/read-all", h.MarkAllRead)
}
