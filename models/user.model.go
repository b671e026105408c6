package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID             string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	FirstName      string            `gorm:"not null" json:"firstName" validate:"required"`
	LastName       string            `gorm:"not null" json:"lastName" validate:"required"`
	Password       string            `gorm:"not null" json:"-" validate:"required"` // stored hashed, hashing happens upstream
	Email          string            `gorm:"unique;not null" json:"email" validate:"required,email"`
	Phone          string            `gorm:"default:''" json:"phone,omitempty"`
	Role           Role              `gorm:"default:'student'" json:"role" validate:"omitempty,oneof=student instructor admin"`
	Bio            string            `gorm:"type:text" json:"bio,omitempty"`
	SocialMedia    datatypes.JSONMap `json:"socialMedia,omitempty"`
	ProfilePicture string            `json:"profilePicture,omitempty"`
	Designation    string            `json:"designation,omitempty"`

	TaughtCourses []Course      `gorm:"foreignKey:InstructorID" json:"taughtCourses,omitempty"`
	Enrollments   []Enrollment  `gorm:"foreignKey:StudentID" json:"enrollments,omitempty"`
	Reports       []Report      `gorm:"foreignKey:StudentID" json:"reports,omitempty"`
	Testimonials  []Testimonial `gorm:"foreignKey:UserID" json:"testimonials,omitempty"`
	Watches       []Watch       `gorm:"foreignKey:UserID" json:"watches,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleStudent
	}
	u.CreatedAt = time.Time{}
	u.UpdatedAt = time.Time{}
	return nil
}
