package routes

import (
	"github.com/gofiber/fiber/v2"

	"quizportal_backend/handlers"
	"quizportal_backend/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/admin")
	auth.Post("/register", handlers.AdminRegister)
	auth.Post("/login", handlers.AdminLogin)

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/profile", handlers.GetAdminProfile)
	admin.Get("/dashboard-stats", handlers.GetDashboardStats)
}
