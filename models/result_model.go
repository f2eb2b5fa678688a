package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ReviewStatusPending    = "pending"
	ReviewStatusInProgress = "in-progress"
	ReviewStatusMarked     = "marked"
	ReviewStatusPublished  = "published"
)

// Result is one student's graded submission for one quiz. The unique index on
// (user_id, quiz_id) enforces the single-attempt rule at the store layer, so
// two racing submissions cannot both persist.
type Result struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_results_user_quiz" json:"user_id"`
	QuizID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_results_user_quiz" json:"quiz_id"`

	Answers []ResultAnswer `gorm:"foreignkey:ResultID" json:"answers"`

	TotalMarks    float64 `gorm:"not null" json:"total_marks"`
	ObtainedMarks float64 `gorm:"not null" json:"obtained_marks"`
	Percentage    float64 `gorm:"not null" json:"percentage"`
	IsPassed      bool    `gorm:"not null" json:"is_passed"`

	ManualReviewPending bool       `gorm:"default:false" json:"manual_review_pending"`
	ReviewStatus        string     `gorm:"size:20;not null;default:'pending'" json:"review_status"`
	MarkedBy            *uuid.UUID `gorm:"type:uuid" json:"marked_by"`
	MarkedAt            *time.Time `json:"marked_at"`
	ReviewComments      string     `gorm:"type:text" json:"review_comments"`

	SubmittedAt time.Time `gorm:"not null" json:"submitted_at"`

	User User `gorm:"foreignkey:UserID" json:"-"`
	Quiz Quiz `gorm:"foreignkey:QuizID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResultAnswer holds one graded answer. IsCorrect is nil for answers that are
// not auto-gradable (text questions, and manually scored answers).
type ResultAnswer struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResultID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null" json:"question_id"`

	SelectedAnswer       string                   `gorm:"type:text" json:"selected_answer"`
	TypedAnswer          string                   `gorm:"type:text" json:"typed_answer"`
	IsCorrect            *bool                    `json:"is_correct"`
	MarksObtained        float64                  `gorm:"default:0" json:"marks_obtained"`
	RequiresManualReview bool                     `gorm:"default:false" json:"requires_manual_review"`
	EvaluatedOptions     datatypes.JSONSlice[int] `json:"evaluated_options"`

	Question Question `gorm:"foreignkey:QuestionID" json:"-"`
}
