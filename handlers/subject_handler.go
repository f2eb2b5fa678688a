package handlers

import (
	"github.com/gofiber/fiber/v2"

	"quizportal_backend/database"
	"quizportal_backend/models"
	"quizportal_backend/utils"
)

type SubjectRequest struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code"`
}

type UpdateSubjectRequest struct {
	Name     *string `json:"name,omitempty"`
	Code     *string `json:"code,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func CreateSubject(c *fiber.Ctx) error {
	adminID, err := utils.RequesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req SubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var count int64
	database.DB.Model(&models.Subject{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Subject already exists"})
	}

	subject := models.Subject{
		Name:      req.Name,
		Code:      req.Code,
		IsActive:  true,
		CreatedBy: &adminID,
	}
	if err := database.DB.Create(&subject).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create subject"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"subject": subject})
}

func ListSubjects(c *fiber.Ctx) error {
	var subjects []models.Subject
	database.DB.Order("name ASC").Find(&subjects)
	return c.JSON(fiber.Map{"subjects": subjects})
}

func SearchSubjects(c *fiber.Ctx) error {
	q := c.Query("q")

	var subjects []models.Subject
	tx := database.DB.Order("name ASC").Limit(20)
	if q != "" {
		tx = tx.Where("name ILIKE ?", "%"+q+"%")
	}
	tx.Find(&subjects)

	return c.JSON(fiber.Map{"subjects": subjects})
}

func UpdateSubject(c *fiber.Ctx) error {
	var subject models.Subject
	if err := database.DB.First(&subject, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subject not found"})
	}

	var req UpdateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Code != nil {
		subject.Code = *req.Code
	}
	if req.IsActive != nil {
		subject.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&subject).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update subject"})
	}

	return c.JSON(fiber.Map{"subject": subject})
}

func DeleteSubject(c *fiber.Ctx) error {
	result := database.DB.Delete(&models.Subject{}, "id = ?", c.Params("id"))
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete subject"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subject not found"})
	}
	return c.JSON(fiber.Map{"message": "Subject deleted"})
}
