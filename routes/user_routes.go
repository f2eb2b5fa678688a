package routes

import (
	"github.com/gofiber/fiber/v2"

	"quizportal_backend/handlers"
	"quizportal_backend/middleware"
)

func UserRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	users := api.Group("/users")
	users.Post("/register", handlers.RegisterUser)
	users.Post("/login", handlers.LoginUser)
	users.Get("/profile", middleware.Protected(), handlers.GetUserProfile)
}
