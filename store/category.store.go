package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"elearn/models"
)

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := checkStruct(category); err != nil {
		return err
	}
	return s.wrap(s.db.WithContext(ctx).Create(category).Error)
}

func (s *Store) GetCategory(ctx context.Context, id string, preloads ...string) (*models.Category, error) {
	var category models.Category
	if err := s.firstByID(ctx, "category", &category, id, preloads...); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, s.wrap(err)
	}
	return categories, nil
}

// CategoryUpdate carries the partial field set for UpdateCategory.
type CategoryUpdate struct {
	Title       *string
	Description *string
	Thumbnail   *string
}

func (s *Store) UpdateCategory(ctx context.Context, id string, upd CategoryUpdate) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "category", ID: id}
			}
			return err
		}
		changes := map[string]interface{}{}
		if upd.Title != nil {
			category.Title = *upd.Title
			changes["title"] = *upd.Title
		}
		if upd.Description != nil {
			category.Description = *upd.Description
			changes["description"] = *upd.Description
		}
		if upd.Thumbnail != nil {
			category.Thumbnail = *upd.Thumbnail
			changes["thumbnail"] = *upd.Thumbnail
		}
		if len(changes) == 0 {
			return nil
		}
		if err := checkStruct(&category); err != nil {
			return err
		}
		return tx.Model(&category).Updates(changes).Error
	})
	if err != nil {
		return nil, s.wrap(err)
	}
	return &category, nil
}

// DeleteCategory removes a category and detaches its courses: the
// category link on a course is optional, so dependents are kept with
// a cleared categoryId rather than blocking the delete.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.exists(ctx, tx, "category", &models.Category{}, id); err != nil {
			return err
		}
		if err := tx.Model(&models.Course{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		return s.deleteByID(ctx, tx, "category", &models.Category{}, id)
	})
	return s.wrap(err)
}

// CategoryCourses resolves the one-to-many relation to courses.
func (s *Store) CategoryCourses(ctx context.Context, categoryID string) ([]models.Course, error) {
	var courses []models.Course
	if err := s.db.WithContext(ctx).Where("category_id = ?", categoryID).Find(&courses).Error; err != nil {
		return nil, s.wrap(err)
	}
	return courses, nil
}
