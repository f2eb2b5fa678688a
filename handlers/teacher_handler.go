package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"quizportal_backend/database"
	"quizportal_backend/models"
	"quizportal_backend/utils"
)

type CreateTeacherRequest struct {
	Name          string `json:"name" validate:"required,min=2"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	ContactNumber string `json:"contact_number" validate:"required"`
}

type UpdateTeacherRequest struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	ContactNumber *string `json:"contact_number,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

type AssignCoursesRequest struct {
	Assignments []struct {
		ClassID   string  `json:"class_id" validate:"required,uuid"`
		SubjectID *string `json:"subject_id,omitempty"`
	} `json:"assignments" validate:"required,min=1,dive"`
}

func TeacherLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var teacher models.Teacher
	if err := database.DB.Where("email = ?", req.Email).First(&teacher).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	if !teacher.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Teacher account is inactive"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(teacher.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	t, err := signToken(teacher.ID, "teacher")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   t,
		"teacher": fiber.Map{
			"id":             teacher.ID,
			"name":           teacher.Name,
			"email":          teacher.Email,
			"contact_number": teacher.ContactNumber,
		},
	})
}

func GetTeacherProfile(c *fiber.Ctx) error {
	teacherID, err := utils.RequesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var teacher models.Teacher
	if err := database.DB.First(&teacher, "id = ?", teacherID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}

	return c.JSON(fiber.Map{"teacher": teacher})
}

func CreateTeacher(c *fiber.Ctx) error {
	adminID, err := utils.RequesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req CreateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var count int64
	database.DB.Model(&models.Teacher{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already in use"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	teacher := models.Teacher{
		Name:          req.Name,
		Email:         req.Email,
		Password:      string(hashedPassword),
		ContactNumber: req.ContactNumber,
		IsActive:      true,
		CreatedBy:     &adminID,
	}
	if err := database.DB.Create(&teacher).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create teacher"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Teacher created successfully",
		"teacher": teacher,
	})
}

func ListTeachers(c *fiber.Ctx) error {
	var teachers []models.Teacher
	database.DB.Order("created_at DESC").Find(&teachers)
	return c.JSON(fiber.Map{"teachers": teachers})
}

func GetTeacher(c *fiber.Ctx) error {
	var teacher models.Teacher
	if err := database.DB.First(&teacher, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}
	return c.JSON(fiber.Map{"teacher": teacher})
}

func UpdateTeacher(c *fiber.Ctx) error {
	var teacher models.Teacher
	if err := database.DB.First(&teacher, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}

	var req UpdateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Email != nil && *req.Email != teacher.Email {
		var count int64
		database.DB.Model(&models.Teacher{}).Where("email = ?", *req.Email).Count(&count)
		if count > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already in use"})
		}
		teacher.Email = *req.Email
	}
	if req.Name != nil {
		teacher.Name = *req.Name
	}
	if req.ContactNumber != nil {
		teacher.ContactNumber = *req.ContactNumber
	}
	if req.IsActive != nil {
		teacher.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&teacher).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update teacher"})
	}

	return c.JSON(fiber.Map{
		"message": "Teacher updated successfully",
		"teacher": teacher,
	})
}

func DeleteTeacher(c *fiber.Ctx) error {
	teacherID := c.Params("id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Teacher{}, "id = ?", teacherID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Delete(&models.CourseAssignment{}, "teacher_id = ?", teacherID).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete teacher"})
	}

	return c.JSON(fiber.Map{"message": "Teacher deleted successfully"})
}

// AssignCourses replaces a teacher's class/subject assignments wholesale, the
// way the admin UI submits them.
func AssignCourses(c *fiber.Ctx) error {
	adminID, err := utils.RequesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid teacher id"})
	}

	var teacher models.Teacher
	if err := database.DB.First(&teacher, "id = ?", teacherID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}

	var req AssignCoursesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	assignments := make([]models.CourseAssignment, 0, len(req.Assignments))
	for _, a := range req.Assignments {
		classID, err := uuid.Parse(a.ClassID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class id"})
		}
		assignment := models.CourseAssignment{
			TeacherID:  teacherID,
			ClassID:    classID,
			AssignedBy: adminID,
		}
		if a.SubjectID != nil && *a.SubjectID != "" {
			subjectID, err := uuid.Parse(*a.SubjectID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid subject id"})
			}
			assignment.SubjectID = &subjectID
		}
		assignments = append(assignments, assignment)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.CourseAssignment{}, "teacher_id = ?", teacherID).Error; err != nil {
			return err
		}
		return tx.Create(&assignments).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign courses"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Courses assigned successfully",
		"assignments": assignments,
	})
}

func GetAssignedCourses(c *fiber.Ctx) error {
	teacherID := c.Params("teacherId")
	if teacherID == "" {
		id, err := utils.RequesterID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		teacherID = id.String()
	}

	var assignments []models.CourseAssignment
	database.DB.Preload("Class").Preload("Subject").
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&assignments)

	return c.JSON(fiber.Map{"assignments": assignments})
}

// GetAssignedBatches returns the distinct classes a teacher is assigned to.
func GetAssignedBatches(c *fiber.Ctx) error {
	teacherID, err := utils.RequesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var assignments []models.CourseAssignment
	database.DB.Preload("Class").Where("teacher_id = ?", teacherID).Find(&assignments)

	seen := make(map[uuid.UUID]bool)
	batches := make([]models.Class, 0, len(assignments))
	for _, a := range assignments {
		if !seen[a.ClassID] {
			seen[a.ClassID] = true
			batches = append(batches, a.Class)
		}
	}

	return c.JSON(fiber.Map{"batches": batches})
}

// GetCoursesForBatch lists the quizzes the teacher created for one of their
// assigned classes.
func GetCoursesForBatch(c *fiber.Ctx) error {
	teacherID, err := utils.RequesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	classID := c.Params("classId")

	var assignment models.CourseAssignment
	if err := database.DB.Where("teacher_id = ? AND class_id = ?", teacherID, classID).First(&assignment).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not assigned to this batch"})
	}

	var quizzes []models.Quiz
	database.DB.Where("teacher_id = ? AND class_id = ?", teacherID, classID).
		Order("created_at DESC").
		Find(&quizzes)

	return c.JSON(fiber.Map{"courses": quizzes})
}

// GetSubjectsForBatch lists the distinct subjects assigned to the teacher for
// a class.
func GetSubjectsForBatch(c *fiber.Ctx) error {
	teacherID, err := utils.RequesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	classID := c.Params("classId")

	var assignments []models.CourseAssignment
	database.DB.Preload("Subject").
		Where("teacher_id = ? AND class_id = ?", teacherID, classID).
		Find(&assignments)

	seen := make(map[uuid.UUID]bool)
	subjects := make([]models.Subject, 0, len(assignments))
	for _, a := range assignments {
		if a.Subject != nil && !seen[a.Subject.ID] {
			seen[a.Subject.ID] = true
			subjects = append(subjects, *a.Subject)
		}
	}

	return c.JSON(fiber.Map{"subjects": subjects})
}
