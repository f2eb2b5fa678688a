package models

import (
	"time"

	"github.com/google/uuid"
)

type Subject struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string     `gorm:"size:255;not null;unique" json:"name"`
	Code      string     `gorm:"size:50" json:"code"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
