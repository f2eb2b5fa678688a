package handlers

import (
	"github.com/gofiber/fiber/v2"

	"quizportal_backend/database"
	"quizportal_backend/models"
)

type ClassRequest struct {
	Name        string `json:"name" validate:"required"`
	Semester    string `json:"semester" validate:"required"`
	Description string `json:"description"`
}

type UpdateClassRequest struct {
	Name        *string `json:"name,omitempty"`
	Semester    *string `json:"semester,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func CreateClass(c *fiber.Ctx) error {
	var req ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	class := models.Class{
		Name:        req.Name,
		Semester:    req.Semester,
		Description: req.Description,
		IsActive:    true,
	}
	if err := database.DB.Create(&class).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create class"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Class created successfully",
		"class":   class,
	})
}

func ListClasses(c *fiber.Ctx) error {
	var classes []models.Class
	database.DB.Order("created_at DESC").Find(&classes)
	return c.JSON(fiber.Map{"classes": classes})
}

func GetClass(c *fiber.Ctx) error {
	var class models.Class
	if err := database.DB.First(&class, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}
	return c.JSON(fiber.Map{"class": class})
}

func UpdateClass(c *fiber.Ctx) error {
	var class models.Class
	if err := database.DB.First(&class, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	var req UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.Semester != nil {
		class.Semester = *req.Semester
	}
	if req.Description != nil {
		class.Description = *req.Description
	}
	if req.IsActive != nil {
		class.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&class).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update class"})
	}

	return c.JSON(fiber.Map{
		"message": "Class updated successfully",
		"class":   class,
	})
}

func DeleteClass(c *fiber.Ctx) error {
	result := database.DB.Delete(&models.Class{}, "id = ?", c.Params("id"))
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete class"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}
	return c.JSON(fiber.Map{"message": "Class deleted successfully"})
}
