package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WatchState is the closed set of playback states.
type WatchState string

const (
	WatchStarted   WatchState = "started"
	WatchCompleted WatchState = "completed"
	WatchPaused    WatchState = "paused"
)

func (s WatchState) IsValid() bool {
	switch s {
	case WatchStarted, WatchCompleted, WatchPaused:
		return true
	}
	return false
}

// Watch tracks a user's playback position within a lesson. LastTime is
// the resume point in seconds.
type Watch struct {
	ID       string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	State    WatchState `gorm:"default:'started'" json:"state" validate:"omitempty,oneof=started completed paused"`
	LastTime float64    `gorm:"default:0;check:last_time >= 0" json:"lastTime" validate:"gte=0"`

	LessonID string  `gorm:"type:varchar(36);index;not null" json:"lessonId" validate:"required"`
	Lesson   *Lesson `gorm:"foreignKey:LessonID" json:"lesson,omitempty"`
	UserID   string  `gorm:"type:varchar(36);index;not null" json:"userId" validate:"required"`
	User     *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ModuleID string  `gorm:"type:varchar(36);index;not null" json:"moduleId" validate:"required"`
	Module   *Module `gorm:"foreignKey:ModuleID" json:"module,omitempty"`

	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	ModifiedAt time.Time `gorm:"column:modified_at;autoUpdateTime" json:"modified_at"`
}

func (Watch) TableName() string { return "watches" }

func (w *Watch) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.State == "" {
		w.State = WatchStarted
	}
	// Timestamps are store-managed; caller-supplied values are
	// discarded.
	w.CreatedAt = time.Time{}
	w.ModifiedAt = time.Time{}
	return nil
}
