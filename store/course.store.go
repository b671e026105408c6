package store

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"elearn/models"
)

// CreateCourse inserts a new course after resolving its optional
// references. A missing category, instructor or quizset fails with
// NotFoundError before anything is written.
func (s *Store) CreateCourse(ctx context.Context, course *models.Course) error {
	if err := checkStruct(course); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if course.CategoryID != nil {
			if err := s.exists(ctx, tx, "category", &models.Category{}, *course.CategoryID); err != nil {
				return err
			}
		}
		if course.InstructorID != nil {
			if err := s.exists(ctx, tx, "user", &models.User{}, *course.InstructorID); err != nil {
				return err
			}
		}
		if course.QuizsetID != nil {
			if err := s.exists(ctx, tx, "quizset", &models.Quizset{}, *course.QuizsetID); err != nil {
				return err
			}
		}
		return tx.Create(course).Error
	})
	return s.wrap(err)
}

func (s *Store) GetCourse(ctx context.Context, id string, preloads ...string) (*models.Course, error) {
	var course models.Course
	if err := s.firstByID(ctx, "course", &course, id, preloads...); err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *Store) ListCourses(ctx context.Context, activeOnly bool) ([]models.Course, error) {
	tx := s.db.WithContext(ctx)
	if activeOnly {
		tx = tx.Where("active = ?", true)
	}
	var courses []models.Course
	if err := tx.Find(&courses).Error; err != nil {
		return nil, s.wrap(err)
	}
	return courses, nil
}

// CourseUpdate carries the partial field set for UpdateCourse. Nil
// fields stay untouched; the optional references clear when set to an
// empty string.
type CourseUpdate struct {
	Title        *string
	Subtitle     *string
	Description  *string
	Thumbnail    *string
	Price        *float64
	Active       *bool
	Learning     *[]string
	CategoryID   *string
	InstructorID *string
	QuizsetID    *string
}

func (s *Store) UpdateCourse(ctx context.Context, id string, upd CourseUpdate) (*models.Course, error) {
	var course models.Course
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&course).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "course", ID: id}
			}
			return err
		}

		changes := map[string]interface{}{}
		if upd.Title != nil {
			course.Title = *upd.Title
			changes["title"] = *upd.Title
		}
		if upd.Subtitle != nil {
			course.Subtitle = *upd.Subtitle
			changes["subtitle"] = *upd.Subtitle
		}
		if upd.Description != nil {
			course.Description = *upd.Description
			changes["description"] = *upd.Description
		}
		if upd.Thumbnail != nil {
			course.Thumbnail = *upd.Thumbnail
			changes["thumbnail"] = *upd.Thumbnail
		}
		if upd.Price != nil {
			course.Price = *upd.Price
			changes["price"] = *upd.Price
		}
		if upd.Active != nil {
			course.Active = *upd.Active
			changes["active"] = *upd.Active
		}
		if upd.Learning != nil {
			course.Learning = datatypes.JSONSlice[string](*upd.Learning)
			changes["learning"] = course.Learning
		}
		if upd.CategoryID != nil {
			if *upd.CategoryID == "" {
				course.CategoryID = nil
				changes["category_id"] = nil
			} else {
				if err := s.exists(ctx, tx, "category", &models.Category{}, *upd.CategoryID); err != nil {
					return err
				}
				course.CategoryID = upd.CategoryID
				changes["category_id"] = *upd.CategoryID
			}
		}
		if upd.InstructorID != nil {
			if *upd.InstructorID == "" {
				course.InstructorID = nil
				changes["instructor_id"] = nil
			} else {
				if err := s.exists(ctx, tx, "user", &models.User{}, *upd.InstructorID); err != nil {
					return err
				}
				course.InstructorID = upd.InstructorID
				changes["instructor_id"] = *upd.InstructorID
			}
		}
		if upd.QuizsetID != nil {
			if *upd.QuizsetID == "" {
				course.QuizsetID = nil
				changes["quizset_id"] = nil
			} else {
				if err := s.exists(ctx, tx, "quizset", &models.Quizset{}, *upd.QuizsetID); err != nil {
					return err
				}
				course.QuizsetID = upd.QuizsetID
				changes["quizset_id"] = *upd.QuizsetID
			}
		}
		if len(changes) == 0 {
			return nil
		}
		if err := checkStruct(&course); err != nil {
			return err
		}
		return tx.Model(&course).Updates(changes).Error
	})
	if err != nil {
		return nil, s.wrap(err)
	}
	return &course, nil
}

// DeleteCourse removes a course and cascades through its content
// hierarchy (modules, lessons, watches). Cross-aggregate dependents
// (enrollments, reports, testimonials) block the delete instead.
func (s *Store) DeleteCourse(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.exists(ctx, tx, "course", &models.Course{}, id); err != nil {
			return err
		}
		dependents := []struct {
			name  string
			model interface{}
		}{
			{"enrollment", &models.Enrollment{}},
			{"report", &models.Report{}},
			{"testimonial", &models.Testimonial{}},
		}
		for _, d := range dependents {
			n, err := s.countWhere(ctx, tx, d.model, "course_id = ?", id)
			if err != nil {
				return err
			}
			if n > 0 {
				return &ReferentialIntegrityError{Entity: "course", ID: id, Dependent: d.name, Count: n}
			}
		}
		if err := s.cascadeModules(ctx, tx, "course_id = ?", id); err != nil {
			return err
		}
		return s.deleteByID(ctx, tx, "course", &models.Course{}, id)
	})
	return s.wrap(err)
}

// cascadeModules deletes the modules matched by the query together
// with their lessons and watches.
func (s *Store) cascadeModules(ctx context.Context, tx *gorm.DB, query string, args ...interface{}) error {
	var moduleIDs []string
	if err := tx.WithContext(ctx).Model(&models.Module{}).Where(query, args...).Pluck("id", &moduleIDs).Error; err != nil {
		return err
	}
	if len(moduleIDs) == 0 {
		return nil
	}
	if err := tx.WithContext(ctx).Where("module_id IN ?", moduleIDs).Delete(&models.Watch{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("module_id IN ?", moduleIDs).Delete(&models.Lesson{}).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Where("id IN ?", moduleIDs).Delete(&models.Module{}).Error
}

// Relation traversal.

// CourseModules returns the course's modules in display order.
func (s *Store) CourseModules(ctx context.Context, courseID string) ([]models.Module, error) {
	var modules []models.Module
	if err := s.db.WithContext(ctx).Where("course_id = ?", courseID).Order(orderAsc).Find(&modules).Error; err != nil {
		return nil, s.wrap(err)
	}
	return modules, nil
}

func (s *Store) CourseEnrollments(ctx context.Context, courseID string) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := s.db.WithContext(ctx).Where("course_id = ?", courseID).Find(&enrollments).Error; err != nil {
		return nil, s.wrap(err)
	}
	return enrollments, nil
}

func (s *Store) CourseReports(ctx context.Context, courseID string) ([]models.Report, error) {
	var reports []models.Report
	if err := s.db.WithContext(ctx).Where("course_id = ?", courseID).Find(&reports).Error; err != nil {
		return nil, s.wrap(err)
	}
	return reports, nil
}

func (s *Store) CourseTestimonials(ctx context.Context, courseID string) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	if err := s.db.WithContext(ctx).Where("course_id = ?", courseID).Find(&testimonials).Error; err != nil {
		return nil, s.wrap(err)
	}
	return testimonials, nil
}
