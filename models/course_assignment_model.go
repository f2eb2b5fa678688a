package models

import (
	"time"

	"github.com/google/uuid"
)

// CourseAssignment pairs a teacher with a class (optionally a subject). It is
// a visibility filter only; grading never consults it.
type CourseAssignment struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TeacherID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_assignments_teacher_class" json:"teacher_id"`
	ClassID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_assignments_teacher_class" json:"class_id"`
	SubjectID  *uuid.UUID `gorm:"type:uuid" json:"subject_id"`
	QuizID     *uuid.UUID `gorm:"type:uuid" json:"quiz_id"`
	AssignedBy uuid.UUID  `gorm:"type:uuid;not null" json:"assigned_by"`

	Teacher Teacher  `gorm:"foreignkey:TeacherID" json:"-"`
	Class   Class    `gorm:"foreignkey:ClassID" json:"class,omitempty"`
	Subject *Subject `gorm:"foreignkey:SubjectID" json:"subject,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
