package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"elearn/models"
)

// CreateLesson inserts a new lesson. The owning module must exist.
// When no order is given the lesson is appended after the module's
// current last lesson.
func (s *Store) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	if err := checkStruct(lesson); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.exists(ctx, tx, "module", &models.Module{}, lesson.ModuleID); err != nil {
			return err
		}
		if lesson.Order == 0 {
			var last models.Lesson
			err := tx.Where("module_id = ?", lesson.ModuleID).Order(orderDesc).First(&last).Error
			switch {
			case err == nil:
				lesson.Order = last.Order + 1
			case errors.Is(err, gorm.ErrRecordNotFound):
				lesson.Order = 1
			default:
				return err
			}
		}
		return tx.Create(lesson).Error
	})
	return s.wrap(err)
}

func (s *Store) GetLesson(ctx context.Context, id string, preloads ...string) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := s.firstByID(ctx, "lesson", &lesson, id, preloads...); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// LessonUpdate carries the partial field set for UpdateLesson.
type LessonUpdate struct {
	Title       *string
	Description *string
	Duration    *int
	VideoURL    *string
	Active      *bool
	Slug        *string
	Access      *models.Access
	Order       *int
	ModuleID    *string
}

func (s *Store) UpdateLesson(ctx context.Context, id string, upd LessonUpdate) (*models.Lesson, error) {
	var lesson models.Lesson
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&lesson).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "lesson", ID: id}
			}
			return err
		}
		changes := map[string]interface{}{}
		if upd.Title != nil {
			lesson.Title = *upd.Title
			changes["title"] = *upd.Title
		}
		if upd.Description != nil {
			lesson.Description = *upd.Description
			changes["description"] = *upd.Description
		}
		if upd.Duration != nil {
			lesson.Duration = *upd.Duration
			changes["duration"] = *upd.Duration
		}
		if upd.VideoURL != nil {
			lesson.VideoURL = *upd.VideoURL
			changes["video_url"] = *upd.VideoURL
		}
		if upd.Active != nil {
			lesson.Active = *upd.Active
			changes["active"] = *upd.Active
		}
		if upd.Slug != nil {
			lesson.Slug = *upd.Slug
			changes["slug"] = *upd.Slug
		}
		if upd.Access != nil {
			lesson.Access = *upd.Access
			changes["access"] = *upd.Access
		}
		if upd.Order != nil {
			lesson.Order = *upd.Order
			changes["order"] = *upd.Order
		}
		if upd.ModuleID != nil {
			if err := s.exists(ctx, tx, "module", &models.Module{}, *upd.ModuleID); err != nil {
				return err
			}
			lesson.ModuleID = *upd.ModuleID
			changes["module_id"] = *upd.ModuleID
		}
		if len(changes) == 0 {
			return nil
		}
		if err := checkStruct(&lesson); err != nil {
			return err
		}
		return tx.Model(&lesson).Updates(changes).Error
	})
	if err != nil {
		return nil, s.wrap(err)
	}
	return &lesson, nil
}

// DeleteLesson removes a lesson and cascades to its watches.
func (s *Store) DeleteLesson(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.exists(ctx, tx, "lesson", &models.Lesson{}, id); err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", id).Delete(&models.Watch{}).Error; err != nil {
			return err
		}
		return s.deleteByID(ctx, tx, "lesson", &models.Lesson{}, id)
	})
	return s.wrap(err)
}

func (s *Store) LessonWatches(ctx context.Context, lessonID string) ([]models.Watch, error) {
	var watches []models.Watch
	if err := s.db.WithContext(ctx).Where("lesson_id = ?", lessonID).Find(&watches).Error; err != nil {
		return nil, s.wrap(err)
	}
	return watches, nil
}
