package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quizset groups quizzes; a course optionally points at one set.
type Quizset struct {
	ID          string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title" validate:"required"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Active      bool   `gorm:"default:false" json:"active"`

	Quizzes []Quiz   `gorm:"foreignKey:QuizsetID" json:"quizzes,omitempty"`
	Courses []Course `gorm:"foreignKey:QuizsetID" json:"courses,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Quizset) TableName() string { return "quizsets" }

func (q *Quizset) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.CreatedAt = time.Time{}
	q.UpdatedAt = time.Time{}
	return nil
}

// DefaultQuizMark is assigned when a quiz is created without a mark.
const DefaultQuizMark = 5

type Quiz struct {
	ID           string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title        string         `gorm:"not null" json:"title" validate:"required"`
	Description  string         `gorm:"type:text" json:"description,omitempty"`
	Explanations string         `gorm:"type:text" json:"explanations,omitempty"`
	Slug         string         `json:"slug,omitempty"`
	Options      datatypes.JSON `json:"options"` // free-form option list, shape owned by the consumer
	Mark         int            `gorm:"default:5" json:"mark" validate:"gte=0"`

	QuizsetID string   `gorm:"type:varchar(36);index;not null" json:"quizsetId" validate:"required"`
	Quizset   *Quizset `gorm:"foreignKey:QuizsetID" json:"quizset,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Quiz) TableName() string { return "quizzes" }

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	// A zero mark is indistinguishable from an omitted one and is
	// coerced to the default; the column default does the same.
	if q.Mark == 0 {
		q.Mark = DefaultQuizMark
	}
	q.CreatedAt = time.Time{}
	q.UpdatedAt = time.Time{}
	return nil
}
