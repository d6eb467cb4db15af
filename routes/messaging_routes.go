package routes

import (
	"github.com/amelbk/stagelink/handlers"
	"github.com/amelbk/stagelink/middleware"
	"github.com/gofiber/fiber/v2"
)

func MessagingRoutes(app *fiber.App, h *handlers.MessagingHandler) {
	api := app.Group("/api/v1")

	messages := api.Group("/messages", middleware.Protected())
	messages.Get("", h.GetInbox)
	messages.Get("/conversations/:userId", h.GetThread)
	messages.Post("/conversations/:userId", h.SendMessage)
}
