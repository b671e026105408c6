package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"elearn/models"
)

// CreateWatch inserts a new watch record. Lesson, user and module
// must all exist, and the lesson must belong to the given module.
func (s *Store) CreateWatch(ctx context.Context, watch *models.Watch) error {
	if err := checkStruct(watch); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.exists(ctx, tx, "lesson", &models.Lesson{}, watch.LessonID); err != nil {
			return err
		}
		if err := s.exists(ctx, tx, "user", &models.User{}, watch.UserID); err != nil {
			return err
		}
		if err := s.exists(ctx, tx, "module", &models.Module{}, watch.ModuleID); err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&models.Lesson{}).Where("id = ? AND module_id = ?", watch.LessonID, watch.ModuleID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return validationErr("moduleId", "moduleId must be the module owning the watched lesson!")
		}
		return tx.Create(watch).Error
	})
	return s.wrap(err)
}

func (s *Store) GetWatch(ctx context.Context, id string, preloads ...string) (*models.Watch, error) {
	var watch models.Watch
	if err := s.firstByID(ctx, "watch", &watch, id, preloads...); err != nil {
		return nil, err
	}
	return &watch, nil
}

// FindWatch looks up the watch record of a user on a lesson.
func (s *Store) FindWatch(ctx context.Context, userID, lessonID string) (*models.Watch, error) {
	var watch models.Watch
	err := s.db.WithContext(ctx).Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&watch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "watch", ID: userID + "/" + lessonID}
		}
		return nil, s.wrap(err)
	}
	return &watch, nil
}

// WatchUpdate carries the partial field set for UpdateWatch.
type WatchUpdate struct {
	State    *models.WatchState
	LastTime *float64
}

// UpdateWatch merges the given fields. modified_at advances on every
// call, including writes that set lastTime to its current value.
func (s *Store) UpdateWatch(ctx context.Context, id string, upd WatchUpdate) (*models.Watch, error) {
	var watch models.Watch
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&watch).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "watch", ID: id}
			}
			return err
		}
		changes := map[string]interface{}{}
		if upd.State != nil {
			watch.State = *upd.State
			changes["state"] = *upd.State
		}
		if upd.LastTime != nil {
			watch.LastTime = *upd.LastTime
			changes["last_time"] = *upd.LastTime
		}
		if len(changes) == 0 {
			return nil
		}
		if err := checkStruct(&watch); err != nil {
			return err
		}
		return tx.Model(&watch).Updates(changes).Error
	})
	if err != nil {
		return nil, s.wrap(err)
	}
	return &watch, nil
}

func (s *Store) DeleteWatch(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.deleteByID(ctx, tx, "watch", &models.Watch{}, id)
	})
	return s.wrap(err)
}
