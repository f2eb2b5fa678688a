package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"quizportal_backend/database"
	"quizportal_backend/models"
	"quizportal_backend/services"
	"quizportal_backend/utils"
)

type OptionRequest struct {
	OptionText string `json:"optionText" validate:"required"`
	IsCorrect  bool   `json:"isCorrect"`
}

type QuestionRequest struct {
	QuizID       string          `json:"quiz_id" validate:"required,uuid"`
	QuestionText string          `json:"question_text" validate:"required"`
	QuestionType string          `json:"question_type" validate:"omitempty,oneof=mcq truefalse text"`
	Options      []OptionRequest `json:"options" validate:"dive"`
	Marks        float64         `json:"marks" validate:"omitempty,gt=0"`
	Order        int             `json:"order"`
	IsActive     *bool           `json:"is_active,omitempty"`
}

type BulkQuestionsRequest struct {
	QuizID    string `json:"quiz_id" validate:"required,uuid"`
	Questions []struct {
		QuestionText string          `json:"question_text" validate:"required"`
		QuestionType string          `json:"question_type" validate:"omitempty,oneof=mcq truefalse text"`
		Options      []OptionRequest `json:"options" validate:"dive"`
		Marks        float64         `json:"marks" validate:"omitempty,gt=0"`
		Order        int             `json:"order"`
	} `json:"questions" validate:"required,min=1,dive"`
}

// validateOptions enforces the objective-question invariants: at least two
// options with at least one flagged correct. Text questions carry none.
func validateOptions(questionType string, options []OptionRequest) (string, bool) {
	if questionType == "" {
		questionType = models.QuestionTypeMCQ
	}
	if questionType == models.QuestionTypeText {
		return "", true
	}

	if len(options) < 2 {
		return "MCQ and True/False questions need at least 2 options", false
	}
	for _, opt := range options {
		if opt.IsCorrect {
			return "", true
		}
	}
	return "Please mark one option as correct", false
}

func toModelOptions(questionType string, options []OptionRequest) datatypes.JSONType[[]models.QuestionOption] {
	if questionType == models.QuestionTypeText {
		return datatypes.NewJSONType([]models.QuestionOption{})
	}
	opts := make([]models.QuestionOption, 0, len(options))
	for _, o := range options {
		opts = append(opts, models.QuestionOption{OptionText: o.OptionText, IsCorrect: o.IsCorrect})
	}
	return datatypes.NewJSONType(opts)
}

// loadQuizForAuthoring fetches the quiz and, for teacher callers, enforces
// ownership. When ok is false a response has already been written.
func loadQuizForAuthoring(c *fiber.Ctx, quizID string) (models.Quiz, bool, error) {
	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ?", quizID).Error; err != nil {
		return models.Quiz{}, false, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	if utils.RequesterRole(c) == "teacher" {
		teacherID, err := utils.RequesterID(c)
		if err != nil {
			return models.Quiz{}, false, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		if !services.QuizOwnedByTeacher(quiz, teacherID) {
			return models.Quiz{}, false, c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized for this quiz"})
		}
	}

	return quiz, true, nil
}

func CreateQuestion(c *fiber.Ctx) error {
	var req QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	questionType := req.QuestionType
	if questionType == "" {
		questionType = models.QuestionTypeMCQ
	}
	if msg, ok := validateOptions(questionType, req.Options); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	quiz, ok, err := loadQuizForAuthoring(c, req.QuizID)
	if err != nil || !ok {
		return err
	}

	marks := req.Marks
	if marks == 0 {
		marks = 1
	}

	question := models.Question{
		QuizID:       quiz.ID,
		ClassID:      &quiz.ClassID,
		QuestionType: questionType,
		QuestionText: req.QuestionText,
		Options:      toModelOptions(questionType, req.Options),
		Marks:        marks,
		Order:        req.Order,
		IsActive:     true,
	}
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}

	if err := database.DB.Create(&question).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create question"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Question created successfully",
		"question": question,
	})
}

func BulkCreateQuestions(c *fiber.Ctx) error {
	var req BulkQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	for _, q := range req.Questions {
		if msg, ok := validateOptions(q.QuestionType, q.Options); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
		}
	}

	quiz, ok, err := loadQuizForAuthoring(c, req.QuizID)
	if err != nil || !ok {
		return err
	}

	questions := make([]models.Question, 0, len(req.Questions))
	for _, q := range req.Questions {
		questionType := q.QuestionType
		if questionType == "" {
			questionType = models.QuestionTypeMCQ
		}
		marks := q.Marks
		if marks == 0 {
			marks = 1
		}
		questions = append(questions, models.Question{
			QuizID:       quiz.ID,
			ClassID:      &quiz.ClassID,
			QuestionType: questionType,
			QuestionText: q.QuestionText,
			Options:      toModelOptions(questionType, q.Options),
			Marks:        marks,
			Order:        q.Order,
			IsActive:     true,
		})
	}

	if err := database.DB.Create(&questions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create questions"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Questions created successfully",
		"questions": questions,
	})
}

func GetQuestionsByQuiz(c *fiber.Ctx) error {
	var questions []models.Question
	database.DB.Where("quiz_id = ?", c.Params("quizId")).
		Order(`"order" ASC`).
		Find(&questions)
	return c.JSON(fiber.Map{"questions": questions})
}

func GetQuestion(c *fiber.Ctx) error {
	var question models.Question
	if err := database.DB.First(&question, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}
	return c.JSON(fiber.Map{"question": question})
}

func UpdateQuestion(c *fiber.Ctx) error {
	var question models.Question
	if err := database.DB.First(&question, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}

	if _, ok, err := loadQuizForAuthoring(c, question.QuizID.String()); err != nil || !ok {
		return err
	}

	var req QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	questionType := req.QuestionType
	if questionType == "" {
		questionType = question.Type()
	}

	options := req.Options
	if len(options) == 0 && questionType != models.QuestionTypeText {
		// Keep stored options when the client sends none.
		for _, o := range question.Options.Data() {
			options = append(options, OptionRequest{OptionText: o.OptionText, IsCorrect: o.IsCorrect})
		}
	}
	if msg, ok := validateOptions(questionType, options); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	if req.QuestionText != "" {
		question.QuestionText = req.QuestionText
	}
	question.QuestionType = questionType
	question.Options = toModelOptions(questionType, options)
	if req.Marks > 0 {
		question.Marks = req.Marks
	}
	question.Order = req.Order
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&question).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update question"})
	}

	return c.JSON(fiber.Map{
		"message":  "Question updated successfully",
		"question": question,
	})
}

func DeleteQuestion(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question id"})
	}

	var question models.Question
	if err := database.DB.First(&question, "id = ?", questionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}

	if _, ok, err := loadQuizForAuthoring(c, question.QuizID.String()); err != nil || !ok {
		return err
	}

	if err := database.DB.Delete(&question).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete question"})
	}

	return c.JSON(fiber.Map{"message": "Question deleted successfully"})
}
