package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Access is the closed set of lesson access levels.
type Access string

const (
	AccessPrivate Access = "private"
	AccessPublic  Access = "public"
)

func (a Access) IsValid() bool {
	return a == AccessPrivate || a == AccessPublic
}

type Lesson struct {
	ID          string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title" validate:"required"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Duration    int    `gorm:"default:0;check:duration >= 0" json:"duration" validate:"gte=0"` // seconds
	VideoURL    string `json:"video_url,omitempty"`
	Active      bool   `gorm:"default:false" json:"active"`
	Slug        string `gorm:"not null" json:"slug" validate:"required"`
	Access      Access `gorm:"default:'private'" json:"access" validate:"omitempty,oneof=private public"`
	Order       int    `gorm:"column:order" json:"order"`

	ModuleID string  `gorm:"type:varchar(36);index;not null" json:"moduleId" validate:"required"`
	Module   *Module `gorm:"foreignKey:ModuleID" json:"module,omitempty"`

	Watches []Watch `gorm:"foreignKey:LessonID" json:"watches,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Lesson) TableName() string { return "lessons" }

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Access == "" {
		l.Access = AccessPrivate
	}
	l.CreatedAt = time.Time{}
	l.UpdatedAt = time.Time{}
	return nil
}
