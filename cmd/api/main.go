package main

import (
	"log"
	"time"

	"github.com/amelbk/stagelink/database"
	"github.com/amelbk/stagelink/handlers"
	"github.com/amelbk/stagelink/jobs"
	"github.com/amelbk/stagelink/notifications"
	"github.com/amelbk/stagelink/routes"
	"github.com/amelbk/stagelink/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()

	directory := services.NewDirectoryService(database.DB)
	notifier := services.NewNotificationService(database.DB)
	messaging := services.NewMessagingService(database.DB, directory, notifier)
	offers := services.NewOfferLetterService(database.DB, notifier)

	c := cron.New()
	c.AddFunc("*/15 * * * *", func() { jobs.CloseExpiredJobPosts(notifier) })
	c.AddFunc("0 8 * * *", jobs.SendPendingApplicationReminders)
	go c.Start()
	log.Println("✅ Cron jobs scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "StageLink",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to StageLink API",
		})
	})

	routes.AuthRoutes(app)
	routes.ProfileRoutes(app)
	routes.StudentRoutes(app)
	routes.CompanyRoutes(app, handlers.NewCompanyHandler(database.DB, notifier, offers))
	routes.JobRoutes(app, handlers.NewJobHandler(database.DB, notifier))
	routes.MessagingRoutes(app, handlers.NewMessagingHandler(messaging))
	routes.NotificationRoutes(app, handlers.NewNotificationHandler(notifier))
	routes.AdminRoutes(app)
	routes.UploadRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	err := app.Listen(":8080")
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
