package store

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"elearn/models"
)

func (s *Store) CreateQuizset(ctx context.Context, quizset *models.Quizset) error {
	if err := checkStruct(quizset); err != nil {
		return err
	}
	return s.wrap(s.db.WithContext(ctx).Create(quizset).Error)
}

func (s *Store) GetQuizset(ctx context.Context, id string, preloads ...string) (*models.Quizset, error) {
	var quizset models.Quizset
	if err := s.firstByID(ctx, "quizset", &quizset, id, preloads...); err != nil {
		return nil, err
	}
	return &quizset, nil
}

// QuizsetUpdate carries the partial field set for UpdateQuizset.
type QuizsetUpdate struct {
	Title       *string
	Description *string
	Slug        *string
	Active      *bool
}

func (s *Store) UpdateQuizset(ctx context.Context, id string, upd QuizsetUpdate) (*models.Quizset, error) {
	var quizset models.Quizset
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&quizset).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "quizset", ID: id}
			}
			return err
		}
		changes := map[string]interface{}{}
		if upd.Title != nil {
			quizset.Title = *upd.Title
			changes["title"] = *upd.Title
		}
		if upd.Description != nil {
			quizset.Description = *upd.Description
			changes["description"] = *upd.Description
		}
		if upd.Slug != nil {
			quizset.Slug = *upd.Slug
			changes["slug"] = *upd.Slug
		}
		if upd.Active != nil {
			quizset.Active = *upd.Active
			changes["active"] = *upd.Active
		}
		if len(changes) == 0 {
			return nil
		}
		if err := checkStruct(&quizset); err != nil {
			return err
		}
		return tx.Model(&quizset).Updates(changes).Error
	})
	if err != nil {
		return nil, s.wrap(err)
	}
	return &quizset, nil
}

// DeleteQuizset removes a quiz set and cascades to its quizzes. A
// course still pointing at the set blocks the delete.
func (s *Store) DeleteQuizset(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.exists(ctx, tx, "quizset", &models.Quizset{}, id); err != nil {
			return err
		}
		n, err := s.countWhere(ctx, tx, &models.Course{}, "quizset_id = ?", id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &ReferentialIntegrityError{Entity: "quizset", ID: id, Dependent: "course", Count: n}
		}
		if err := tx.Where("quizset_id = ?", id).Delete(&models.Quiz{}).Error; err != nil {
			return err
		}
		return s.deleteByID(ctx, tx, "quizset", &models.Quizset{}, id)
	})
	return s.wrap(err)
}

// QuizsetQuizzes resolves the one-to-many relation to quizzes.
func (s *Store) QuizsetQuizzes(ctx context.Context, quizsetID string) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := s.db.WithContext(ctx).Where("quizset_id = ?", quizsetID).Find(&quizzes).Error; err != nil {
		return nil, s.wrap(err)
	}
	return quizzes, nil
}

// QuizsetCourses resolves the one-to-many relation to courses.
func (s *Store) QuizsetCourses(ctx context.Context, quizsetID string) ([]models.Course, error) {
	var courses []models.Course
	if err := s.db.WithContext(ctx).Where("quizset_id = ?", quizsetID).Find(&courses).Error; err != nil {
		return nil, s.wrap(err)
	}
	return courses, nil
}

// CreateQuiz inserts a new quiz into an existing quiz set.
func (s *Store) CreateQuiz(ctx context.Context, quiz *models.Quiz) error {
	if err := checkStruct(quiz); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.exists(ctx, tx, "quizset", &models.Quizset{}, quiz.QuizsetID); err != nil {
			return err
		}
		return tx.Create(quiz).Error
	})
	return s.wrap(err)
}

func (s *Store) GetQuiz(ctx context.Context, id string, preloads ...string) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.firstByID(ctx, "quiz", &quiz, id, preloads...); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// QuizUpdate carries the partial field set for UpdateQuiz.
type QuizUpdate struct {
	Title        *string
	Description  *string
	Explanations *string
	Slug         *string
	Options      *datatypes.JSON
	Mark         *int
	QuizsetID    *string
}

func (s *Store) UpdateQuiz(ctx context.Context, id string, upd QuizUpdate) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&quiz).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "quiz", ID: id}
			}
			return err
		}
		changes := map[string]interface{}{}
		if upd.Title != nil {
			quiz.Title = *upd.Title
			changes["title"] = *upd.Title
		}
		if upd.Description != nil {
			quiz.Description = *upd.Description
			changes["description"] = *upd.Description
		}
		if upd.Explanations != nil {
			quiz.Explanations = *upd.Explanations
			changes["explanations"] = *upd.Explanations
		}
		if upd.Slug != nil {
			quiz.Slug = *upd.Slug
			changes["slug"] = *upd.Slug
		}
		if upd.Options != nil {
			quiz.Options = *upd.Options
			changes["options"] = *upd.Options
		}
		if upd.Mark != nil {
			quiz.Mark = *upd.Mark
			changes["mark"] = *upd.Mark
		}
		if upd.QuizsetID != nil {
			if err := s.exists(ctx, tx, "quizset", &models.Quizset{}, *upd.QuizsetID); err != nil {
				return err
			}
			quiz.QuizsetID = *upd.QuizsetID
			changes["quizset_id"] = *upd.QuizsetID
		}
		if len(changes) == 0 {
			return nil
		}
		if err := checkStruct(&quiz); err != nil {
			return err
		}
		return tx.Model(&quiz).Updates(changes).Error
	})
	if err != nil {
		return nil, s.wrap(err)
	}
	return &quiz, nil
}

func (s *Store) DeleteQuiz(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.deleteByID(ctx, tx, "quiz", &models.Quiz{}, id)
	})
	return s.wrap(err)
}
