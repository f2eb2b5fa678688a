package services

import (
	"time"

	"github.com/google/uuid"

	"quizportal_backend/models"
)

// QuizAvailableToStudent reports whether a student may see and attempt the
// quiz right now.
func QuizAvailableToStudent(quiz models.Quiz, now time.Time) bool {
	return CheckQuizAvailability(quiz, now) == nil
}

// QuizOwnedByTeacher reports whether the teacher may edit or mark the quiz.
// Legacy admin-created quizzes store the owner in CreatedBy, so both fields
// grant access.
func QuizOwnedByTeacher(quiz models.Quiz, teacherID uuid.UUID) bool {
	if quiz.TeacherID != nil && *quiz.TeacherID == teacherID {
		return true
	}
	if quiz.CreatedBy != nil && *quiz.CreatedBy == teacherID {
		return true
	}
	return false
}

// CanGradeResult reports whether the grader owns the quiz the result was
// submitted against. Students never grade, and admins are deliberately
// excluded from attempt-level access.
func CanGradeResult(quiz models.Quiz, graderID uuid.UUID) bool {
	return QuizOwnedByTeacher(quiz, graderID)
}

// CanViewResult reports whether the requester is the student who submitted
// the result.
func CanViewResult(result models.Result, requesterID uuid.UUID) bool {
	return result.UserID == requesterID
}

// ResultVisibleToStudent reports whether the student may see the result's
// marks in full: either the review has been published, or the quiz was
// auto-graded only and never entered manual review. A nil IsCorrect marks an
// answer that was (or still is) manually scored.
func ResultVisibleToStudent(result models.Result) bool {
	if result.ReviewStatus == models.ReviewStatusPublished {
		return true
	}
	for _, a := range result.Answers {
		if a.IsCorrect == nil {
			return false
		}
	}
	return true
}
