package routes

import (
	"github.com/gofiber/fiber/v2"

	"quizportal_backend/handlers"
	"quizportal_backend/middleware"
)

func QuestionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	questions := api.Group("/questions", middleware.Protected())
	questions.Get("/quiz/:quizId", handlers.GetQuestionsByQuiz)
	questions.Get("/:id", handlers.GetQuestion)

	authoring := questions.Group("", middleware.StaffRequired())
	authoring.Post("", handlers.CreateQuestion)
	authoring.Post("/bulk", handlers.BulkCreateQuestions)
	authoring.Put("/:id", handlers.UpdateQuestion)
	authoring.Delete("/:id", handlers.DeleteQuestion)
}
