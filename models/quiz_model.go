package models

import (
	"time"

	"github.com/google/uuid"
)

// Quiz is owned either by the admin who created it (CreatedBy) or by a
// teacher (TeacherID); the two are mutually exclusive.
type Quiz struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	ClassID      uuid.UUID  `gorm:"type:uuid;not null" json:"class_id"`
	SubjectID    *uuid.UUID `gorm:"type:uuid" json:"subject_id"`
	Duration     int        `gorm:"not null;default:30" json:"duration"`
	TotalMarks   float64    `gorm:"not null;default:100" json:"total_marks"`
	PassingMarks float64    `gorm:"not null;default:40" json:"passing_marks"`
	StartDate    time.Time  `json:"start_date"`
	ExpiryDate   time.Time  `json:"expiry_date"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	CreatedBy    *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	TeacherID    *uuid.UUID `gorm:"type:uuid" json:"teacher_id"`

	Class   Class    `gorm:"foreignkey:ClassID" json:"class,omitempty"`
	Subject *Subject `gorm:"foreignkey:SubjectID" json:"subject,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
