package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizportal_backend/database"
	"quizportal_backend/models"
	"quizportal_backend/services"
	"quizportal_backend/utils"
)

type SubmitQuizRequest struct {
	QuizID  string `json:"quiz_id" validate:"required,uuid"`
	Answers []struct {
		QuestionID     string `json:"question_id" validate:"required,uuid"`
		SelectedAnswer string `json:"selected_answer"`
		TypedAnswer    string `json:"typed_answer"`
	} `json:"answers" validate:"required,min=1,dive"`
}

type ReviewAnswerRequest struct {
	QuestionID   string  `json:"question_id" validate:"required,uuid"`
	MarksAwarded float64 `json:"marks_awarded"`
}

type MarkQuizRequest struct {
	Marks []struct {
		QuestionID   string  `json:"question_id" validate:"required,uuid"`
		MarksAwarded float64 `json:"marks_awarded"`
	} `json:"marks" validate:"required,min=1,dive"`
	ReviewComments string `json:"review_comments"`
}

// SubmitQuiz grades a student's submission and stores the result. One attempt
// per quiz; the unique index on (user_id, quiz_id) backstops the pre-check.
func SubmitQuiz(c *fiber.Ctx) error {
	userID, err := utils.RequesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	quizID, err := uuid.Parse(req.QuizID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid quiz id"})
	}

	var count int64
	database.DB.Model(&models.Result{}).Where("user_id = ? AND quiz_id = ?", userID, quizID).Count(&count)
	if err := services.CheckFirstAttempt(count); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ?", quizID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	var questions []models.Question
	database.DB.Where("quiz_id = ?", quizID).Find(&questions)

	answers := make([]services.SubmittedAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		questionID, err := uuid.Parse(a.QuestionID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question id"})
		}
		answers = append(answers, services.SubmittedAnswer{
			QuestionID:     questionID,
			SelectedAnswer: a.SelectedAnswer,
			TypedAnswer:    a.TypedAnswer,
		})
	}

	graded, err := services.GradeSubmission(quiz, questions, answers, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrQuizNotAvailable) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Quiz is not available"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to grade submission"})
	}

	result := models.Result{
		UserID:              userID,
		QuizID:              quizID,
		Answers:             graded.Answers,
		TotalMarks:          graded.TotalMarks,
		ObtainedMarks:       graded.ObtainedMarks,
		Percentage:          graded.Percentage,
		IsPassed:            graded.IsPassed,
		ManualReviewPending: graded.ManualReviewPending,
		ReviewStatus:        models.ReviewStatusPending,
		SubmittedAt:         time.Now(),
	}

	if err := database.DB.Create(&result).Error; err != nil {
		// Second racer on the (user_id, quiz_id) unique index lands here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": services.ErrDuplicateSubmission.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save result"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Quiz submitted successfully",
		"result": fiber.Map{
			"result_id":             result.ID,
			"total_marks":           result.TotalMarks,
			"obtained_marks":        result.ObtainedMarks,
			"percentage":            result.Percentage,
			"is_passed":             result.IsPassed,
			"manual_review_pending": result.ManualReviewPending,
		},
	})
}

// studentResultView hides marks until the review is published; auto-graded
// results are visible immediately.
func studentResultView(result models.Result) fiber.Map {
	if services.ResultVisibleToStudent(result) {
		return fiber.Map{
			"id":                    result.ID,
			"quiz_id":               result.QuizID,
			"answers":               result.Answers,
			"total_marks":           result.TotalMarks,
			"obtained_marks":        result.ObtainedMarks,
			"percentage":            result.Percentage,
			"is_passed":             result.IsPassed,
			"manual_review_pending": result.ManualReviewPending,
			"review_status":         result.ReviewStatus,
			"review_comments":       result.ReviewComments,
			"submitted_at":          result.SubmittedAt,
		}
	}
	return fiber.Map{
		"id":                    result.ID,
		"quiz_id":               result.QuizID,
		"manual_review_pending": result.ManualReviewPending,
		"review_status":         result.ReviewStatus,
		"submitted_at":          result.SubmittedAt,
	}
}

func GetUserResults(c *fiber.Ctx) error {
	requesterID, err := utils.RequesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	if c.Params("userId") != requesterID.String() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Unauthorized access"})
	}

	var results []models.Result
	database.DB.Preload("Answers").Preload("Quiz").
		Where("user_id = ?", requesterID).
		Order("created_at DESC").
		Find(&results)

	views := make([]fiber.Map, 0, len(results))
	for _, r := range results {
		view := studentResultView(r)
		view["quiz"] = fiber.Map{
			"id":          r.Quiz.ID,
			"title":       r.Quiz.Title,
			"description": r.Quiz.Description,
			"total_marks": r.Quiz.TotalMarks,
		}
		views = append(views, view)
	}

	return c.JSON(fiber.Map{"results": views})
}

func GetUserStats(c *fiber.Ctx) error {
	requesterID, err := utils.RequesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	if c.Params("userId") != requesterID.String() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Unauthorized access"})
	}

	var results []models.Result
	database.DB.Where("user_id = ?", requesterID).Find(&results)

	passed := 0
	var totalPercentage float64
	for _, r := range results {
		if r.IsPassed {
			passed++
		}
		totalPercentage += r.Percentage
	}

	average := 0.0
	if len(results) > 0 {
		average = totalPercentage / float64(len(results))
	}

	return c.JSON(fiber.Map{
		"stats": fiber.Map{
			"total_quizzes":     len(results),
			"completed_quizzes": len(results),
			"passed_quizzes":    passed,
			"average_score":     average,
		},
	})
}

func GetResultByID(c *fiber.Ctx) error {
	requesterID, err := utils.RequesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var result models.Result
	if err := database.DB.Preload("Answers").Preload("Quiz").First(&result, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Result not found"})
	}

	if !services.CanViewResult(result, requesterID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Unauthorized access"})
	}

	view := studentResultView(result)
	view["quiz"] = fiber.Map{
		"id":          result.Quiz.ID,
		"title":       result.Quiz.Title,
		"description": result.Quiz.Description,
		"total_marks": result.Quiz.TotalMarks,
	}

	return c.JSON(fiber.Map{"result": view})
}

// loadGradableResult fetches the result in :resultId with its quiz and
// enforces the grading policy for the requesting teacher. When ok is false a
// response has already been written.
func loadGradableResult(c *fiber.Ctx) (models.Result, models.Quiz, bool, error) {
	teacherID, err := utils.RequesterID(c)
	if err != nil {
		return models.Result{}, models.Quiz{}, false, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var result models.Result
	if err := database.DB.Preload("Answers").First(&result, "id = ?", c.Params("resultId")).Error; err != nil {
		return models.Result{}, models.Quiz{}, false, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Result not found"})
	}

	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ?", result.QuizID).Error; err != nil {
		return models.Result{}, models.Quiz{}, false, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	if !services.CanGradeResult(quiz, teacherID) {
		return models.Result{}, models.Quiz{}, false, c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized for this quiz"})
	}

	return result, quiz, true, nil
}

// GetQuizAttemptsForTeacher lists every attempt against one of the teacher's
// quizzes.
func GetQuizAttemptsForTeacher(c *fiber.Ctx) error {
	teacherID, err := utils.RequesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ?", c.Params("quizId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}
	if !services.QuizOwnedByTeacher(quiz, teacherID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized for this quiz"})
	}

	var results []models.Result
	database.DB.Preload("User").
		Where("quiz_id = ?", quiz.ID).
		Order("obtained_marks DESC").
		Find(&results)

	attempts := make([]fiber.Map, 0, len(results))
	for _, r := range results {
		attempts = append(attempts, fiber.Map{
			"result_id":             r.ID,
			"student":               fiber.Map{"id": r.User.ID, "name": r.User.Name, "email": r.User.Email},
			"total_marks":           r.TotalMarks,
			"obtained_marks":        r.ObtainedMarks,
			"percentage":            r.Percentage,
			"is_passed":             r.IsPassed,
			"manual_review_pending": r.ManualReviewPending,
			"review_status":         r.ReviewStatus,
			"submitted_at":          r.SubmittedAt,
		})
	}

	return c.JSON(fiber.Map{"attempts": attempts})
}

// GetStudentAnswerDetails returns one attempt's answers joined with their
// questions, for the marking screen.
func GetStudentAnswerDetails(c *fiber.Ctx) error {
	result, quiz, ok, err := loadGradableResult(c)
	if err != nil || !ok {
		return err
	}

	var questions []models.Question
	database.DB.Where("quiz_id = ?", result.QuizID).Find(&questions)
	byID := make(map[uuid.UUID]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	answers := make([]fiber.Map, 0, len(result.Answers))
	for _, a := range result.Answers {
		entry := fiber.Map{
			"question_id":            a.QuestionID,
			"selected_answer":        a.SelectedAnswer,
			"typed_answer":           a.TypedAnswer,
			"is_correct":             a.IsCorrect,
			"marks_obtained":         a.MarksObtained,
			"requires_manual_review": a.RequiresManualReview,
		}
		if q, found := byID[a.QuestionID]; found {
			entry["question_text"] = q.QuestionText
			entry["question_type"] = q.Type()
			entry["options"] = q.Options.Data()
			entry["marks"] = q.Marks
		}
		answers = append(answers, entry)
	}

	return c.JSON(fiber.Map{
		"result": fiber.Map{
			"id":                    result.ID,
			"quiz":                  fiber.Map{"id": quiz.ID, "title": quiz.Title, "passing_marks": quiz.PassingMarks},
			"answers":               answers,
			"total_marks":           result.TotalMarks,
			"obtained_marks":        result.ObtainedMarks,
			"percentage":            result.Percentage,
			"is_passed":             result.IsPassed,
			"manual_review_pending": result.ManualReviewPending,
			"review_status":         result.ReviewStatus,
			"review_comments":       result.ReviewComments,
		},
	})
}

// ReviewManualAnswer scores a single text answer and reconciles the result's
// aggregate fields.
func ReviewManualAnswer(c *fiber.Ctx) error {
	result, quiz, ok, err := loadGradableResult(c)
	if err != nil || !ok {
		return err
	}

	var req ReviewAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question id"})
	}

	var questions []models.Question
	database.DB.Where("quiz_id = ?", result.QuizID).Find(&questions)

	question, err := services.FindQuizQuestion(questions, questionID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	if err := services.ApplyManualMark(&result, quiz, question, questions, req.MarksAwarded); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidQuestionType):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrAnswerNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to apply mark"})
		}
	}

	if result.ReviewStatus == models.ReviewStatusPending {
		result.ReviewStatus = models.ReviewStatusInProgress
	}

	if err := saveResult(&result); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save result"})
	}

	return c.JSON(fiber.Map{
		"message": "Answer marked successfully",
		"result":  result,
	})
}

// MarkQuizForTeacher applies a full marking pass over an attempt.
func MarkQuizForTeacher(c *fiber.Ctx) error {
	result, quiz, ok, err := loadGradableResult(c)
	if err != nil || !ok {
		return err
	}

	teacherID, err := utils.RequesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req MarkQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	marks := make([]services.AnswerMark, 0, len(req.Marks))
	for _, m := range req.Marks {
		questionID, err := uuid.Parse(m.QuestionID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question id"})
		}
		marks = append(marks, services.AnswerMark{QuestionID: questionID, MarksAwarded: m.MarksAwarded})
	}

	var questions []models.Question
	database.DB.Where("quiz_id = ?", result.QuizID).Find(&questions)

	services.MarkQuizBulk(&result, quiz, questions, marks, req.ReviewComments, teacherID, time.Now())

	if err := saveResult(&result); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save result"})
	}

	return c.JSON(fiber.Map{
		"message": "Quiz marked successfully",
		"result":  result,
	})
}

// PublishResultForTeacher makes a marked attempt visible to the student.
func PublishResultForTeacher(c *fiber.Ctx) error {
	result, _, ok, err := loadGradableResult(c)
	if err != nil || !ok {
		return err
	}

	services.PublishResult(&result)

	if err := database.DB.Model(&result).Update("review_status", result.ReviewStatus).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to publish result"})
	}

	return c.JSON(fiber.Map{
		"message": "Result published successfully",
		"result":  result,
	})
}

func saveResult(result *models.Result) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		for i := range result.Answers {
			if err := tx.Save(&result.Answers[i]).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Answers").Save(result).Error
	})
}
