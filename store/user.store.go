package store

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"elearn/models"
)

// CreateUser inserts a new user. Email must be unique across all live
// users; the password is expected to be hashed already.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := checkStruct(user); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return &UniquenessConflict{Entity: "user", Field: "email", Value: user.Email}
		}
		return tx.Create(user).Error
	})
	return s.wrap(err)
}

func (s *Store) GetUser(ctx context.Context, id string, preloads ...string) (*models.User, error) {
	var user models.User
	if err := s.firstByID(ctx, "user", &user, id, preloads...); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "user", ID: email}
		}
		return nil, s.wrap(err)
	}
	return &user, nil
}

func (s *Store) ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Where("role = ?", role).Find(&users).Error; err != nil {
		return nil, s.wrap(err)
	}
	return users, nil
}

// UserUpdate carries the partial field set for UpdateUser. Nil fields
// stay untouched.
type UserUpdate struct {
	FirstName      *string
	LastName       *string
	Password       *string
	Email          *string
	Phone          *string
	Role           *models.Role
	Bio            *string
	SocialMedia    *datatypes.JSONMap
	ProfilePicture *string
	Designation    *string
}

func (s *Store) UpdateUser(ctx context.Context, id string, upd UserUpdate) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "user", ID: id}
			}
			return err
		}

		changes := map[string]interface{}{}
		if upd.FirstName != nil {
			user.FirstName = *upd.FirstName
			changes["first_name"] = *upd.FirstName
		}
		if upd.LastName != nil {
			user.LastName = *upd.LastName
			changes["last_name"] = *upd.LastName
		}
		if upd.Password != nil {
			user.Password = *upd.Password
			changes["password"] = *upd.Password
		}
		if upd.Email != nil {
			user.Email = *upd.Email
			changes["email"] = *upd.Email
		}
		if upd.Phone != nil {
			user.Phone = *upd.Phone
			changes["phone"] = *upd.Phone
		}
		if upd.Role != nil {
			user.Role = *upd.Role
			changes["role"] = *upd.Role
		}
		if upd.Bio != nil {
			user.Bio = *upd.Bio
			changes["bio"] = *upd.Bio
		}
		if upd.SocialMedia != nil {
			user.SocialMedia = *upd.SocialMedia
			changes["social_media"] = *upd.SocialMedia
		}
		if upd.ProfilePicture != nil {
			user.ProfilePicture = *upd.ProfilePicture
			changes["profile_picture"] = *upd.ProfilePicture
		}
		if upd.Designation != nil {
			user.Designation = *upd.Designation
			changes["designation"] = *upd.Designation
		}
		if len(changes) == 0 {
			return nil
		}

		if err := checkStruct(&user); err != nil {
			return err
		}
		if upd.Email != nil {
			var n int64
			if err := tx.Model(&models.User{}).Where("email = ? AND id <> ?", *upd.Email, id).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return &UniquenessConflict{Entity: "user", Field: "email", Value: *upd.Email}
			}
		}
		return tx.Model(&user).Updates(changes).Error
	})
	if err != nil {
		return nil, s.wrap(err)
	}
	return &user, nil
}

// DeleteUser removes a user. Restrict policy: live enrollments,
// reports, testimonials, watches or taught courses block the delete.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.exists(ctx, tx, "user", &models.User{}, id); err != nil {
			return err
		}
		dependents := []struct {
			name  string
			model interface{}
			query string
		}{
			{"enrollment", &models.Enrollment{}, "student_id = ?"},
			{"report", &models.Report{}, "student_id = ?"},
			{"testimonial", &models.Testimonial{}, "user_id = ?"},
			{"watch", &models.Watch{}, "user_id = ?"},
			{"course", &models.Course{}, "instructor_id = ?"},
		}
		for _, d := range dependents {
			n, err := s.countWhere(ctx, tx, d.model, d.query, id)
			if err != nil {
				return err
			}
			if n > 0 {
				return &ReferentialIntegrityError{Entity: "user", ID: id, Dependent: d.name, Count: n}
			}
		}
		return s.deleteByID(ctx, tx, "user", &models.User{}, id)
	})
	return s.wrap(err)
}

// Relation traversal.

func (s *Store) TaughtCourses(ctx context.Context, userID string) ([]models.Course, error) {
	var courses []models.Course
	if err := s.db.WithContext(ctx).Where("instructor_id = ?", userID).Find(&courses).Error; err != nil {
		return nil, s.wrap(err)
	}
	return courses, nil
}

func (s *Store) UserEnrollments(ctx context.Context, userID string) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := s.db.WithContext(ctx).Where("student_id = ?", userID).Find(&enrollments).Error; err != nil {
		return nil, s.wrap(err)
	}
	return enrollments, nil
}

func (s *Store) UserReports(ctx context.Context, userID string) ([]models.Report, error) {
	var reports []models.Report
	if err := s.db.WithContext(ctx).Where("student_id = ?", userID).Find(&reports).Error; err != nil {
		return nil, s.wrap(err)
	}
	return reports, nil
}

func (s *Store) UserTestimonials(ctx context.Context, userID string) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&testimonials).Error; err != nil {
		return nil, s.wrap(err)
	}
	return testimonials, nil
}

func (s *Store) UserWatches(ctx context.Context, userID string) ([]models.Watch, error) {
	var watches []models.Watch
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&watches).Error; err != nil {
		return nil, s.wrap(err)
	}
	return watches, nil
}
