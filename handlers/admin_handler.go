package handlers

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"quizportal_backend/database"
	"quizportal_backend/models"
	"quizportal_backend/utils"
)

type AdminRegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin superadmin"`
}

func AdminRegister(c *fiber.Ctx) error {
	var req AdminRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var count int64
	database.DB.Model(&models.Admin{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already in use"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	role := req.Role
	if role == "" {
		role = "admin"
	}

	admin := models.Admin{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := database.DB.Create(&admin).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create admin"})
	}

	t, err := signToken(admin.ID, "admin")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Admin account created successfully",
		"token":   t,
		"admin": fiber.Map{
			"id":    admin.ID,
			"name":  admin.Name,
			"email": admin.Email,
			"role":  admin.Role,
		},
	})
}

func AdminLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var admin models.Admin
	if err := database.DB.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	t, err := signToken(admin.ID, "admin")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   t,
		"admin": fiber.Map{
			"id":    admin.ID,
			"name":  admin.Name,
			"email": admin.Email,
			"role":  admin.Role,
		},
	})
}

func GetAdminProfile(c *fiber.Ctx) error {
	adminID, err := utils.RequesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var admin models.Admin
	if err := database.DB.First(&admin, "id = ?", adminID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Admin not found"})
	}

	return c.JSON(fiber.Map{"admin": admin})
}

// GetDashboardStats returns aggregate counts only. Attempt-level detail is
// reserved for the owning teacher.
func GetDashboardStats(c *fiber.Ctx) error {
	var classes, subjects, teachers, students, quizzes, attempts int64

	database.DB.Model(&models.Class{}).Count(&classes)
	database.DB.Model(&models.Subject{}).Count(&subjects)
	database.DB.Model(&models.Teacher{}).Count(&teachers)
	database.DB.Model(&models.User{}).Count(&students)
	database.DB.Model(&models.Quiz{}).Count(&quizzes)
	database.DB.Model(&models.Result{}).Count(&attempts)

	return c.JSON(fiber.Map{
		"stats": fiber.Map{
			"classes":  classes,
			"subjects": subjects,
			"teachers": teachers,
			"students": students,
			"quizzes":  quizzes,
			"attempts": attempts,
		},
	})
}
