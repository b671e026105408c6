package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"elearn/models"
)

// CreateEnrollment inserts a new enrollment. Course and student must
// exist, and a completion date set at creation must not precede the
// enrollment date. The enrollment date defaults here, before the
// guard, so a completion date is always checked against the value
// that gets persisted.
func (s *Store) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	if err := checkStruct(enrollment); err != nil {
		return err
	}
	if enrollment.EnrollmentDate.IsZero() {
		enrollment.EnrollmentDate = time.Now()
	}
	if enrollment.CompletionDate != nil && enrollment.CompletionDate.Before(enrollment.EnrollmentDate) {
		return validationErr("completion_date", "completion_date must not precede enrollment_date!")
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.exists(ctx, tx, "course", &models.Course{}, enrollment.CourseID); err != nil {
			return err
		}
		if err := s.exists(ctx, tx, "user", &models.User{}, enrollment.StudentID); err != nil {
			return err
		}
		return tx.Create(enrollment).Error
	})
	return s.wrap(err)
}

func (s *Store) GetEnrollment(ctx context.Context, id string, preloads ...string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := s.firstByID(ctx, "enrollment", &enrollment, id, preloads...); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// EnrollmentUpdate carries the partial field set for UpdateEnrollment.
type EnrollmentUpdate struct {
	Status         *models.EnrollmentStatus
	CompletionDate *time.Time
	Method         *string
}

func (s *Store) UpdateEnrollment(ctx context.Context, id string, upd EnrollmentUpdate) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "enrollment", ID: id}
			}
			return err
		}
		changes := map[string]interface{}{}
		if upd.Status != nil {
			enrollment.Status = *upd.Status
			changes["status"] = *upd.Status
		}
		if upd.CompletionDate != nil {
			if upd.CompletionDate.Before(enrollment.EnrollmentDate) {
				return validationErr("completion_date", "completion_date must not precede enrollment_date!")
			}
			enrollment.CompletionDate = upd.CompletionDate
			changes["completion_date"] = *upd.CompletionDate
		}
		if upd.Method != nil {
			enrollment.Method = *upd.Method
			changes["method"] = *upd.Method
		}
		if len(changes) == 0 {
			return nil
		}
		if err := checkStruct(&enrollment); err != nil {
			return err
		}
		return tx.Model(&enrollment).Updates(changes).Error
	})
	if err != nil {
		return nil, s.wrap(err)
	}
	return &enrollment, nil
}

func (s *Store) DeleteEnrollment(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.deleteByID(ctx, tx, "enrollment", &models.Enrollment{}, id)
	})
	return s.wrap(err)
}

// FindEnrollment looks up the enrollment of a student in a course.
func (s *Store) FindEnrollment(ctx context.Context, courseID, studentID string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := s.db.WithContext(ctx).Where("course_id = ? AND student_id = ?", courseID, studentID).First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "enrollment", ID: courseID + "/" + studentID}
		}
		return nil, s.wrap(err)
	}
	return &enrollment, nil
}
