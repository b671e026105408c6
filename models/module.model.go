package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Module represents a section within a course. Order defines the
// display sequence inside the owning course.
type Module struct {
	ID          string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title" validate:"required"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Active      bool   `gorm:"default:false" json:"active"`
	Slug        string `gorm:"not null" json:"slug" validate:"required"`
	Order       int    `gorm:"column:order" json:"order"`

	CourseID string  `gorm:"type:varchar(36);index;not null" json:"courseId" validate:"required"`
	Course   *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	Lessons []Lesson `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
	Watches []Watch  `gorm:"foreignKey:ModuleID" json:"watches,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Module) TableName() string { return "modules" }

func (m *Module) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt = time.Time{}
	m.UpdatedAt = time.Time{}
	return nil
}
