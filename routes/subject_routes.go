package routes

import (
	"github.com/gofiber/fiber/v2"

	"quizportal_backend/handlers"
	"quizportal_backend/middleware"
)

func SubjectRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	subjects := api.Group("/subjects", middleware.Protected())
	subjects.Get("", handlers.ListSubjects)
	subjects.Get("/search", handlers.SearchSubjects)

	manage := subjects.Group("", middleware.AdminRequired())
	manage.Post("", handlers.CreateSubject)
	manage.Put("/:id", handlers.UpdateSubject)
	manage.Delete("/:id", handlers.DeleteSubject)
}
