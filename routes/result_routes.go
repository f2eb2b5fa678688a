package routes

import (
	"github.com/gofiber/fiber/v2"

	"quizportal_backend/handlers"
	"quizportal_backend/middleware"
)

func ResultRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	results := api.Group("/results", middleware.Protected())

	student := results.Group("", middleware.StudentRequired())
	student.Post("/submit", handlers.SubmitQuiz)
	student.Get("/user/:userId", handlers.GetUserResults)
	student.Get("/user-stats/:userId", handlers.GetUserStats)

	teacher := results.Group("/teacher", middleware.TeacherRequired())
	teacher.Get("/quiz/:quizId", handlers.GetQuizAttemptsForTeacher)
	teacher.Get("/attempt/:resultId", handlers.GetStudentAnswerDetails)
	teacher.Put("/:resultId/review", handlers.ReviewManualAnswer)
	teacher.Put("/:resultId/mark", handlers.MarkQuizForTeacher)
	teacher.Put("/:resultId/publish", handlers.PublishResultForTeacher)

	student.Get("/:id", handlers.GetResultByID)
}
