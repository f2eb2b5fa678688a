package routes

import (
	"github.com/gofiber/fiber/v2"

	"quizportal_backend/handlers"
	"quizportal_backend/middleware"
)

func QuizRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	quizzes := api.Group("/quizzes", middleware.Protected())

	// Static paths before the :id routes.
	quizzes.Get("/available", middleware.StudentRequired(), handlers.ListAvailableQuizzes)
	quizzes.Get("/class/:classId", handlers.GetQuizzesByClass)
	quizzes.Get("/:id", handlers.GetQuiz)

	manage := quizzes.Group("", middleware.AdminRequired())
	manage.Post("", handlers.CreateQuiz)
	manage.Get("", handlers.ListQuizzes)
	manage.Put("/:id", handlers.UpdateQuiz)
	manage.Delete("/:id", handlers.DeleteQuiz)

	teacher := api.Group("/teacher/quizzes", middleware.Protected(), middleware.TeacherRequired())
	teacher.Post("", handlers.TeacherCreateQuiz)
	teacher.Get("", handlers.GetTeacherQuizzes)
	teacher.Get("/class/:classId", handlers.GetTeacherQuizzesByClass)
	teacher.Get("/:id", handlers.GetQuizForTeacher)
	teacher.Put("/:id", handlers.TeacherUpdateQuiz)
	teacher.Delete("/:id", handlers.TeacherDeleteQuiz)
}
