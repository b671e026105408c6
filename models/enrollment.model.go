package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnrollmentStatus is the closed set of enrollment states.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

func (s EnrollmentStatus) IsValid() bool {
	switch s {
	case EnrollmentActive, EnrollmentCompleted, EnrollmentCancelled:
		return true
	}
	return false
}

// Enrollment tracks a student's enrollment in a course.
// CompletionDate, when set, must not precede EnrollmentDate.
type Enrollment struct {
	ID             string           `gorm:"type:varchar(36);primaryKey" json:"id"`
	EnrollmentDate time.Time        `gorm:"not null" json:"enrollment_date"`
	Status         EnrollmentStatus `gorm:"default:'active'" json:"status" validate:"omitempty,oneof=active completed cancelled"`
	CompletionDate *time.Time       `json:"completion_date,omitempty"`
	Method         string           `gorm:"not null" json:"method" validate:"required"`

	CourseID  string  `gorm:"type:varchar(36);index;not null" json:"courseId" validate:"required"`
	Course    *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	StudentID string  `gorm:"type:varchar(36);index;not null" json:"studentId" validate:"required"`
	Student   *User   `gorm:"foreignKey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Enrollment) TableName() string { return "enrollments" }

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = EnrollmentActive
	}
	if e.EnrollmentDate.IsZero() {
		e.EnrollmentDate = time.Now()
	}
	e.CreatedAt = time.Time{}
	e.UpdatedAt = time.Time{}
	return nil
}
