package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Testimonial struct {
	ID      string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content" validate:"required"`
	Rating  int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating" validate:"required,min=1,max=5"`

	UserID   string  `gorm:"type:varchar(36);index;not null" json:"userId" validate:"required"`
	User     *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CourseID string  `gorm:"type:varchar(36);index;not null" json:"courseId" validate:"required"`
	Course   *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Testimonial) TableName() string { return "testimonials" }

func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = time.Time{}
	t.UpdatedAt = time.Time{}
	return nil
}
