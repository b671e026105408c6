package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Report records a student's completion state within a course. The
// completed-id lists must stay subsets of the course's own modules
// and lessons; the store enforces that at write time.
type Report struct {
	ID                    string                      `gorm:"type:varchar(36);primaryKey" json:"id"`
	TotalCompletedLessons datatypes.JSONSlice[string] `json:"totalCompletedLessons"`
	TotalCompletedModules datatypes.JSONSlice[string] `json:"totalCompletedModules"`
	CompletionDate        *time.Time                  `json:"completion_date,omitempty"`

	CourseID  string  `gorm:"type:varchar(36);index;not null" json:"courseId" validate:"required"`
	Course    *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	StudentID string  `gorm:"type:varchar(36);index;not null" json:"studentId" validate:"required"`
	Student   *User   `gorm:"foreignKey:StudentID" json:"student,omitempty"`

	// Optional and unique: at most one report per assessment.
	QuizAssessmentID *string     `gorm:"type:varchar(36);uniqueIndex" json:"quizAssessmentId,omitempty"`
	QuizAssessment   *Assessment `gorm:"foreignKey:QuizAssessmentID" json:"quizAssessment,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Report) TableName() string { return "reports" }

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.CreatedAt = time.Time{}
	r.UpdatedAt = time.Time{}
	return nil
}
