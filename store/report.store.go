package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"elearn/models"
)

// CreateReport inserts a new report. Course and student must exist,
// the completed-id lists must be subsets of the course's own modules
// and lessons, and at most one report may link to any assessment.
func (s *Store) CreateReport(ctx context.Context, report *models.Report) error {
	if err := checkStruct(report); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.exists(ctx, tx, "course", &models.Course{}, report.CourseID); err != nil {
			return err
		}
		if err := s.exists(ctx, tx, "user", &models.User{}, report.StudentID); err != nil {
			return err
		}
		if report.QuizAssessmentID != nil {
			if err := s.exists(ctx, tx, "assessment", &models.Assessment{}, *report.QuizAssessmentID); err != nil {
				return err
			}
			var n int64
			if err := tx.Model(&models.Report{}).Where("quiz_assessment_id = ?", *report.QuizAssessmentID).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return &UniquenessConflict{Entity: "report", Field: "quizAssessmentId", Value: *report.QuizAssessmentID}
			}
		}
		if err := s.checkCompletionSubsets(ctx, tx, report.CourseID, report.TotalCompletedModules, report.TotalCompletedLessons); err != nil {
			return err
		}
		return tx.Create(report).Error
	})
	return s.wrap(err)
}

func (s *Store) GetReport(ctx context.Context, id string, preloads ...string) (*models.Report, error) {
	var report models.Report
	if err := s.firstByID(ctx, "report", &report, id, preloads...); err != nil {
		return nil, err
	}
	return &report, nil
}

// ReportUpdate carries the partial field set for UpdateReport. The
// assessment link clears when set to an empty string.
type ReportUpdate struct {
	TotalCompletedLessons *[]string
	TotalCompletedModules *[]string
	CompletionDate        *time.Time
	QuizAssessmentID      *string
}

func (s *Store) UpdateReport(ctx context.Context, id string, upd ReportUpdate) (*models.Report, error) {
	var report models.Report
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&report).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "report", ID: id}
			}
			return err
		}
		changes := map[string]interface{}{}
		if upd.TotalCompletedLessons != nil {
			report.TotalCompletedLessons = datatypes.JSONSlice[string](*upd.TotalCompletedLessons)
			changes["total_completed_lessons"] = report.TotalCompletedLessons
		}
		if upd.TotalCompletedModules != nil {
			report.TotalCompletedModules = datatypes.JSONSlice[string](*upd.TotalCompletedModules)
			changes["total_completed_modules"] = report.TotalCompletedModules
		}
		if upd.CompletionDate != nil {
			report.CompletionDate = upd.CompletionDate
			changes["completion_date"] = *upd.CompletionDate
		}
		if upd.QuizAssessmentID != nil {
			if *upd.QuizAssessmentID == "" {
				report.QuizAssessmentID = nil
				changes["quiz_assessment_id"] = nil
			} else {
				if err := s.exists(ctx, tx, "assessment", &models.Assessment{}, *upd.QuizAssessmentID); err != nil {
					return err
				}
				var n int64
				if err := tx.Model(&models.Report{}).Where("quiz_assessment_id = ? AND id <> ?", *upd.QuizAssessmentID, id).Count(&n).Error; err != nil {
					return err
				}
				if n > 0 {
					return &UniquenessConflict{Entity: "report", Field: "quizAssessmentId", Value: *upd.QuizAssessmentID}
				}
				report.QuizAssessmentID = upd.QuizAssessmentID
				changes["quiz_assessment_id"] = *upd.QuizAssessmentID
			}
		}
		if len(changes) == 0 {
			return nil
		}
		if upd.TotalCompletedLessons != nil || upd.TotalCompletedModules != nil {
			if err := s.checkCompletionSubsets(ctx, tx, report.CourseID, report.TotalCompletedModules, report.TotalCompletedLessons); err != nil {
				return err
			}
		}
		if err := checkStruct(&report); err != nil {
			return err
		}
		return tx.Model(&report).Updates(changes).Error
	})
	if err != nil {
		return nil, s.wrap(err)
	}
	return &report, nil
}

func (s *Store) DeleteReport(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.deleteByID(ctx, tx, "report", &models.Report{}, id)
	})
	return s.wrap(err)
}

// checkCompletionSubsets verifies the completed-id lists only contain
// modules and lessons that belong to the given course.
func (s *Store) checkCompletionSubsets(ctx context.Context, tx *gorm.DB, courseID string, moduleIDs, lessonIDs []string) error {
	if len(moduleIDs) > 0 {
		var n int64
		if err := tx.WithContext(ctx).Model(&models.Module{}).
			Where("course_id = ? AND id IN ?", courseID, moduleIDs).Count(&n).Error; err != nil {
			return err
		}
		if n != int64(len(moduleIDs)) {
			return validationErr("totalCompletedModules", "totalCompletedModules must only contain modules of the report's course!")
		}
	}
	if len(lessonIDs) > 0 {
		var n int64
		if err := tx.WithContext(ctx).Model(&models.Lesson{}).
			Where("id IN ? AND module_id IN (?)", lessonIDs,
				tx.Session(&gorm.Session{NewDB: true}).Model(&models.Module{}).Select("id").Where("course_id = ?", courseID)).
			Count(&n).Error; err != nil {
			return err
		}
		if n != int64(len(lessonIDs)) {
			return validationErr("totalCompletedLessons", "totalCompletedLessons must only contain lessons of the report's course!")
		}
	}
	return nil
}
