package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title" validate:"required"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Thumbnail   string `gorm:"not null" json:"thumbnail" validate:"required"`

	Courses []Course `gorm:"foreignKey:CategoryID" json:"courses,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Category) TableName() string { return "categories" }

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Time{}
	c.UpdatedAt = time.Time{}
	return nil
}
