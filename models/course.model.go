package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course represents a learning course
type Course struct {
	ID          string                      `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string                      `gorm:"not null" json:"title" validate:"required"`
	Subtitle    string                      `json:"subtitle,omitempty"`
	Description string                      `gorm:"type:text;not null" json:"description" validate:"required"`
	Thumbnail   string                      `json:"thumbnail,omitempty"`
	Price       float64                     `gorm:"default:0;check:price >= 0" json:"price" validate:"gte=0"`
	Active      bool                        `gorm:"default:false" json:"active"`
	Learning    datatypes.JSONSlice[string] `json:"learning"` // ordered list of learning outcomes

	CategoryID   *string   `gorm:"type:varchar(36);index" json:"categoryId,omitempty"`
	Category     *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	InstructorID *string   `gorm:"type:varchar(36);index" json:"instructorId,omitempty"`
	Instructor   *User     `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	QuizsetID    *string   `gorm:"type:varchar(36);index" json:"quizsetId,omitempty"`
	Quizset      *Quizset  `gorm:"foreignKey:QuizsetID" json:"quizset,omitempty"`

	Modules      []Module      `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
	Testimonials []Testimonial `gorm:"foreignKey:CourseID" json:"testimonials,omitempty"`
	Enrollments  []Enrollment  `gorm:"foreignKey:CourseID" json:"enrollments,omitempty"`
	Reports      []Report      `gorm:"foreignKey:CourseID" json:"reports,omitempty"`

	CreatedOn  time.Time `gorm:"column:created_on;autoCreateTime" json:"createdOn"`
	ModifiedOn time.Time `gorm:"column:modified_on;autoUpdateTime" json:"modifiedOn"`
}

func (Course) TableName() string { return "courses" }

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	// Timestamps are store-managed; caller-supplied values are
	// discarded so the insert stamps both from the same clock read.
	c.CreatedOn = time.Time{}
	c.ModifiedOn = time.Time{}
	return nil
}
