package routes

import (
	"github.com/gofiber/fiber/v2"

	"quizportal_backend/handlers"
	"quizportal_backend/middleware"
)

func TeacherRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	teachers := api.Group("/teachers")
	teachers.Post("/login", handlers.TeacherLogin)

	// Teacher self-service.
	me := teachers.Group("/me", middleware.Protected(), middleware.TeacherRequired())
	me.Get("/profile", handlers.GetTeacherProfile)
	me.Get("/batches", handlers.GetAssignedBatches)
	me.Get("/batches/:classId/courses", handlers.GetCoursesForBatch)
	me.Get("/batches/:classId/subjects", handlers.GetSubjectsForBatch)

	// Admin-side teacher management.
	manage := teachers.Group("", middleware.Protected(), middleware.AdminRequired())
	manage.Post("", handlers.CreateTeacher)
	manage.Get("", handlers.ListTeachers)
	manage.Post("/:teacherId/assign-courses", handlers.AssignCourses)
	manage.Get("/:teacherId/courses", handlers.GetAssignedCourses)
	manage.Get("/:id", handlers.GetTeacher)
	manage.Put("/:id", handlers.UpdateTeacher)
	manage.Delete("/:id", handlers.DeleteTeacher)
}
