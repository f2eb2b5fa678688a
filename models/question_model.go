package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	QuestionTypeMCQ       = "mcq"
	QuestionTypeTrueFalse = "truefalse"
	QuestionTypeText      = "text"
)

type QuestionOption struct {
	OptionText string `json:"optionText"`
	IsCorrect  bool   `json:"isCorrect"`
}

type Question struct {
	ID           uuid.UUID                            `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	QuizID       uuid.UUID                            `gorm:"type:uuid;not null;index" json:"quiz_id"`
	ClassID      *uuid.UUID                           `gorm:"type:uuid" json:"class_id"`
	QuestionType string                               `gorm:"size:20;not null;default:'mcq'" json:"question_type"`
	QuestionText string                               `gorm:"type:text;not null" json:"question_text"`
	Options      datatypes.JSONType[[]QuestionOption] `json:"options"`
	Marks        float64                              `gorm:"not null;default:1" json:"marks"`
	Order        int                                  `gorm:"default:0" json:"order"`
	IsActive     bool                                 `gorm:"default:true" json:"is_active"`

	Quiz Quiz `gorm:"foreignkey:QuizID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Type returns the question type, defaulting to mcq for rows created before
// the question_type column existed.
func (q Question) Type() string {
	if q.QuestionType == "" {
		return QuestionTypeMCQ
	}
	return q.QuestionType
}

// IsObjective reports whether the question is auto-gradable.
func (q Question) IsObjective() bool {
	t := q.Type()
	return t == QuestionTypeMCQ || t == QuestionTypeTrueFalse
}

// CorrectOption returns the first option flagged correct, or nil.
func (q Question) CorrectOption() *QuestionOption {
	for _, opt := range q.Options.Data() {
		if opt.IsCorrect {
			return &opt
		}
	}
	return nil
}
