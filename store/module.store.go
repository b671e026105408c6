package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"elearn/models"
)

// CreateModule inserts a new module. The owning course must exist.
// When no order is given the module is appended after the course's
// current last module.
func (s *Store) CreateModule(ctx context.Context, module *models.Module) error {
	if err := checkStruct(module); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.exists(ctx, tx, "course", &models.Course{}, module.CourseID); err != nil {
			return err
		}
		if module.Order == 0 {
			var last models.Module
			err := tx.Where("course_id = ?", module.CourseID).Order(orderDesc).First(&last).Error
			switch {
			case err == nil:
				module.Order = last.Order + 1
			case errors.Is(err, gorm.ErrRecordNotFound):
				module.Order = 1
			default:
				return err
			}
		}
		return tx.Create(module).Error
	})
	return s.wrap(err)
}

func (s *Store) GetModule(ctx context.Context, id string, preloads ...string) (*models.Module, error) {
	var module models.Module
	if err := s.firstByID(ctx, "module", &module, id, preloads...); err != nil {
		return nil, err
	}
	return &module, nil
}

// ModuleUpdate carries the partial field set for UpdateModule.
type ModuleUpdate struct {
	Title       *string
	Description *string
	Active      *bool
	Slug        *string
	Order       *int
	CourseID    *string
}

func (s *Store) UpdateModule(ctx context.Context, id string, upd ModuleUpdate) (*models.Module, error) {
	var module models.Module
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&module).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "module", ID: id}
			}
			return err
		}
		changes := map[string]interface{}{}
		if upd.Title != nil {
			module.Title = *upd.Title
			changes["title"] = *upd.Title
		}
		if upd.Description != nil {
			module.Description = *upd.Description
			changes["description"] = *upd.Description
		}
		if upd.Active != nil {
			module.Active = *upd.Active
			changes["active"] = *upd.Active
		}
		if upd.Slug != nil {
			module.Slug = *upd.Slug
			changes["slug"] = *upd.Slug
		}
		if upd.Order != nil {
			module.Order = *upd.Order
			changes["order"] = *upd.Order
		}
		if upd.CourseID != nil {
			if err := s.exists(ctx, tx, "course", &models.Course{}, *upd.CourseID); err != nil {
				return err
			}
			module.CourseID = *upd.CourseID
			changes["course_id"] = *upd.CourseID
		}
		if len(changes) == 0 {
			return nil
		}
		if err := checkStruct(&module); err != nil {
			return err
		}
		return tx.Model(&module).Updates(changes).Error
	})
	if err != nil {
		return nil, s.wrap(err)
	}
	return &module, nil
}

// DeleteModule removes a module and cascades to its lessons and
// watches.
func (s *Store) DeleteModule(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.exists(ctx, tx, "module", &models.Module{}, id); err != nil {
			return err
		}
		return s.cascadeModules(ctx, tx, "id = ?", id)
	})
	return s.wrap(err)
}

// ModuleLessons returns the module's lessons in display order.
func (s *Store) ModuleLessons(ctx context.Context, moduleID string) ([]models.Lesson, error) {
	var lessons []models.Lesson
	if err := s.db.WithContext(ctx).Where("module_id = ?", moduleID).Order(orderAsc).Find(&lessons).Error; err != nil {
		return nil, s.wrap(err)
	}
	return lessons, nil
}

func (s *Store) ModuleWatches(ctx context.Context, moduleID string) ([]models.Watch, error) {
	var watches []models.Watch
	if err := s.db.WithContext(ctx).Where("module_id = ?", moduleID).Find(&watches).Error; err != nil {
		return nil, s.wrap(err)
	}
	return watches, nil
}
