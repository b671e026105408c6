package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"elearn/models"
)

// CreateTestimonial inserts a new testimonial. Both the author and
// the course must exist; the rating is bounded to 1-5.
func (s *Store) CreateTestimonial(ctx context.Context, testimonial *models.Testimonial) error {
	if err := checkStruct(testimonial); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.exists(ctx, tx, "user", &models.User{}, testimonial.UserID); err != nil {
			return err
		}
		if err := s.exists(ctx, tx, "course", &models.Course{}, testimonial.CourseID); err != nil {
			return err
		}
		return tx.Create(testimonial).Error
	})
	return s.wrap(err)
}

func (s *Store) GetTestimonial(ctx context.Context, id string, preloads ...string) (*models.Testimonial, error) {
	var testimonial models.Testimonial
	if err := s.firstByID(ctx, "testimonial", &testimonial, id, preloads...); err != nil {
		return nil, err
	}
	return &testimonial, nil
}

// TestimonialUpdate carries the partial field set for
// UpdateTestimonial.
type TestimonialUpdate struct {
	Content *string
	Rating  *int
}

func (s *Store) UpdateTestimonial(ctx context.Context, id string, upd TestimonialUpdate) (*models.Testimonial, error) {
	var testimonial models.Testimonial
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&testimonial).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "testimonial", ID: id}
			}
			return err
		}
		changes := map[string]interface{}{}
		if upd.Content != nil {
			testimonial.Content = *upd.Content
			changes["content"] = *upd.Content
		}
		if upd.Rating != nil {
			testimonial.Rating = *upd.Rating
			changes["rating"] = *upd.Rating
		}
		if len(changes) == 0 {
			return nil
		}
		if err := checkStruct(&testimonial); err != nil {
			return err
		}
		return tx.Model(&testimonial).Updates(changes).Error
	})
	if err != nil {
		return nil, s.wrap(err)
	}
	return &testimonial, nil
}

func (s *Store) DeleteTestimonial(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.deleteByID(ctx, tx, "testimonial", &models.Testimonial{}, id)
	})
	return s.wrap(err)
}
