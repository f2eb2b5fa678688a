package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a student account. Admins and teachers have their own tables.
type User struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name     string     `gorm:"size:255;not null" json:"name"`
	Email    string     `gorm:"size:255;not null;unique" json:"email"`
	Password string     `gorm:"not null" json:"-"`
	ClassID  *uuid.UUID `gorm:"type:uuid" json:"class_id"`

	Class *Class `gorm:"foreignkey:ClassID" json:"class,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
