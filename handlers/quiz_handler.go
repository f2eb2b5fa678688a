package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizportal_backend/database"
	"quizportal_backend/models"
	"quizportal_backend/services"
	"quizportal_backend/utils"
)

type QuizRequest struct {
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description"`
	ClassID      string    `json:"class_id" validate:"required,uuid"`
	SubjectID    *string   `json:"subject_id,omitempty"`
	Duration     int       `json:"duration" validate:"omitempty,gt=0"`
	TotalMarks   float64   `json:"total_marks" validate:"omitempty,gte=0"`
	PassingMarks float64   `json:"passing_marks" validate:"omitempty,gte=0"`
	StartDate    time.Time `json:"start_date" validate:"required"`
	ExpiryDate   time.Time `json:"expiry_date" validate:"required"`
	IsActive     *bool     `json:"is_active,omitempty"`
}

func quizFromRequest(req QuizRequest) (models.Quiz, error) {
	classID, err := uuid.Parse(req.ClassID)
	if err != nil {
		return models.Quiz{}, err
	}

	quiz := models.Quiz{
		Title:        req.Title,
		Description:  req.Description,
		ClassID:      classID,
		Duration:     req.Duration,
		TotalMarks:   req.TotalMarks,
		PassingMarks: req.PassingMarks,
		StartDate:    req.StartDate,
		ExpiryDate:   req.ExpiryDate,
	}
	if quiz.Duration == 0 {
		quiz.Duration = 30
	}
	if req.SubjectID != nil && *req.SubjectID != "" {
		subjectID, err := uuid.Parse(*req.SubjectID)
		if err != nil {
			return models.Quiz{}, err
		}
		quiz.SubjectID = &subjectID
	}
	return quiz, nil
}

// CreateQuiz creates an admin-owned quiz, published by default.
func CreateQuiz(c *fiber.Ctx) error {
	adminID, err := utils.RequesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req QuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	quiz, err := quizFromRequest(req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id in request"})
	}
	quiz.CreatedBy = &adminID
	quiz.IsActive = true
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}

	if err := database.DB.Create(&quiz).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create quiz"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Quiz created successfully",
		"quiz":    quiz,
	})
}

// TeacherCreateQuiz creates a teacher-owned quiz. Teacher quizzes start as
// drafts so students cannot see them until the teacher publishes.
func TeacherCreateQuiz(c *fiber.Ctx) error {
	teacherID, err := utils.RequesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req QuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	quiz, err := quizFromRequest(req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id in request"})
	}

	var assignment models.CourseAssignment
	if err := database.DB.Where("teacher_id = ? AND class_id = ?", teacherID, quiz.ClassID).First(&assignment).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not assigned to this class"})
	}

	quiz.TeacherID = &teacherID
	quiz.IsActive = false
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}

	if err := database.DB.Create(&quiz).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create quiz"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Quiz created successfully",
		"quiz":    quiz,
	})
}

func ListQuizzes(c *fiber.Ctx) error {
	var quizzes []models.Quiz
	database.DB.Preload("Class").Preload("Subject").
		Order("created_at DESC").
		Find(&quizzes)
	return c.JSON(fiber.Map{"quizzes": quizzes})
}

// ListAvailableQuizzes returns only quizzes a student may currently attempt.
func ListAvailableQuizzes(c *fiber.Ctx) error {
	now := time.Now()

	var quizzes []models.Quiz
	database.DB.Preload("Class").Preload("Subject").
		Where("is_active = ? AND start_date <= ? AND expiry_date >= ?", true, now, now).
		Order("created_at DESC").
		Find(&quizzes)

	return c.JSON(fiber.Map{"quizzes": quizzes})
}

func GetQuiz(c *fiber.Ctx) error {
	var quiz models.Quiz
	if err := database.DB.Preload("Class").Preload("Subject").First(&quiz, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}
	return c.JSON(fiber.Map{"quiz": quiz})
}

func GetQuizzesByClass(c *fiber.Ctx) error {
	var quizzes []models.Quiz
	database.DB.Preload("Class").
		Where("class_id = ?", c.Params("classId")).
		Order("created_at DESC").
		Find(&quizzes)
	return c.JSON(fiber.Map{"quizzes": quizzes})
}

func UpdateQuiz(c *fiber.Ctx) error {
	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}
	return applyQuizUpdate(c, quiz)
}

func DeleteQuiz(c *fiber.Ctx) error {
	return deleteQuizCascading(c, c.Params("id"))
}

// GetTeacherQuizzes lists the requesting teacher's own quizzes.
func GetTeacherQuizzes(c *fiber.Ctx) error {
	teacherID, err := utils.RequesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var quizzes []models.Quiz
	database.DB.Preload("Class").Preload("Subject").
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&quizzes)

	return c.JSON(fiber.Map{"quizzes": quizzes})
}

func GetTeacherQuizzesByClass(c *fiber.Ctx) error {
	teacherID, err := utils.RequesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var quizzes []models.Quiz
	database.DB.Preload("Class").
		Where("teacher_id = ? AND class_id = ?", teacherID, c.Params("classId")).
		Order("created_at DESC").
		Find(&quizzes)

	return c.JSON(fiber.Map{"quizzes": quizzes})
}

func GetQuizForTeacher(c *fiber.Ctx) error {
	quiz, ok, err := loadOwnedQuiz(c)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return c.JSON(fiber.Map{"quiz": quiz})
}

func TeacherUpdateQuiz(c *fiber.Ctx) error {
	quiz, ok, err := loadOwnedQuiz(c)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return applyQuizUpdate(c, quiz)
}

func TeacherDeleteQuiz(c *fiber.Ctx) error {
	quiz, ok, err := loadOwnedQuiz(c)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return deleteQuizCascading(c, quiz.ID.String())
}

// loadOwnedQuiz fetches the quiz in :id and enforces teacher ownership. When
// ok is false a response has already been written.
func loadOwnedQuiz(c *fiber.Ctx) (models.Quiz, bool, error) {
	teacherID, err := utils.RequesterID(c)
	if err != nil {
		return models.Quiz{}, false, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var quiz models.Quiz
	if err := database.DB.Preload("Class").Preload("Subject").First(&quiz, "id = ?", c.Params("id")).Error; err != nil {
		return models.Quiz{}, false, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	if !services.QuizOwnedByTeacher(quiz, teacherID) {
		return models.Quiz{}, false, c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized for this quiz"})
	}

	return quiz, true, nil
}

func applyQuizUpdate(c *fiber.Ctx, quiz models.Quiz) error {
	var req QuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := quizFromRequest(req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id in request"})
	}

	quiz.Title = updated.Title
	quiz.Description = updated.Description
	quiz.ClassID = updated.ClassID
	quiz.SubjectID = updated.SubjectID
	quiz.Duration = updated.Duration
	quiz.TotalMarks = updated.TotalMarks
	quiz.PassingMarks = updated.PassingMarks
	quiz.StartDate = updated.StartDate
	quiz.ExpiryDate = updated.ExpiryDate
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&quiz).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update quiz"})
	}

	return c.JSON(fiber.Map{
		"message": "Quiz updated successfully",
		"quiz":    quiz,
	})
}

func deleteQuizCascading(c *fiber.Ctx, quizID string) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Question{}, "quiz_id = ?", quizID).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Quiz{}, "id = ?", quizID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete quiz"})
	}

	return c.JSON(fiber.Map{"message": "Quiz and associated questions deleted successfully"})
}
