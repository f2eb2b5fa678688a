package routes

import (
	"github.com/gofiber/fiber/v2"

	"quizportal_backend/handlers"
	"quizportal_backend/middleware"
)

func ClassRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	classes := api.Group("/classes", middleware.Protected())
	classes.Get("", handlers.ListClasses)
	classes.Get("/:id", handlers.GetClass)

	manage := classes.Group("", middleware.AdminRequired())
	manage.Post("", handlers.CreateClass)
	manage.Put("/:id", handlers.UpdateClass)
	manage.Delete("/:id", handlers.DeleteClass)
}
