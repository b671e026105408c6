package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Assessment holds quiz attempt records for a student. A report links
// back to at most one assessment; an assessment may exist with no
// report at all (an unscored attempt).
type Assessment struct {
	ID          string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Assessments datatypes.JSON `json:"assessments"` // free-form attempt records
	OtherMarks  float64        `gorm:"default:0" json:"otherMarks"`

	Report *Report `gorm:"foreignKey:QuizAssessmentID" json:"report,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Assessment) TableName() string { return "assessments" }

func (a *Assessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Time{}
	a.UpdatedAt = time.Time{}
	return nil
}
