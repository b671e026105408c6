package store

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"elearn/models"
)

func (s *Store) CreateAssessment(ctx context.Context, assessment *models.Assessment) error {
	if err := checkStruct(assessment); err != nil {
		return err
	}
	return s.wrap(s.db.WithContext(ctx).Create(assessment).Error)
}

func (s *Store) GetAssessment(ctx context.Context, id string, preloads ...string) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := s.firstByID(ctx, "assessment", &assessment, id, preloads...); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// AssessmentUpdate carries the partial field set for UpdateAssessment.
type AssessmentUpdate struct {
	Assessments *datatypes.JSON
	OtherMarks  *float64
}

func (s *Store) UpdateAssessment(ctx context.Context, id string, upd AssessmentUpdate) (*models.Assessment, error) {
	var assessment models.Assessment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&assessment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "assessment", ID: id}
			}
			return err
		}
		changes := map[string]interface{}{}
		if upd.Assessments != nil {
			assessment.Assessments = *upd.Assessments
			changes["assessments"] = *upd.Assessments
		}
		if upd.OtherMarks != nil {
			assessment.OtherMarks = *upd.OtherMarks
			changes["other_marks"] = *upd.OtherMarks
		}
		if len(changes) == 0 {
			return nil
		}
		return tx.Model(&assessment).Updates(changes).Error
	})
	if err != nil {
		return nil, s.wrap(err)
	}
	return &assessment, nil
}

// DeleteAssessment removes an assessment. A report linked to it
// blocks the delete.
func (s *Store) DeleteAssessment(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.exists(ctx, tx, "assessment", &models.Assessment{}, id); err != nil {
			return err
		}
		n, err := s.countWhere(ctx, tx, &models.Report{}, "quiz_assessment_id = ?", id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &ReferentialIntegrityError{Entity: "assessment", ID: id, Dependent: "report", Count: n}
		}
		return s.deleteByID(ctx, tx, "assessment", &models.Assessment{}, id)
	})
	return s.wrap(err)
}

// AssessmentReport resolves the zero-or-one back-relation to the
// report linked to this assessment. Returns nil with no error when no
// report links back.
func (s *Store) AssessmentReport(ctx context.Context, assessmentID string) (*models.Report, error) {
	var report models.Report
	err := s.db.WithContext(ctx).Where("quiz_assessment_id = ?", assessmentID).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, s.wrap(err)
	}
	return &report, nil
}
