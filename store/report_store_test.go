package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elearn/models"
	"elearn/store"
)

func TestCreateReportSubsetRule(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	course, module, lesson := seedCourseTree(t, s)
	_, foreignModule, foreignLesson := seedCourseTree(t, s)
	student := seedUser(t, s, models.RoleStudent)

	report := &models.Report{
		CourseID:              course.ID,
		StudentID:             student.ID,
		TotalCompletedModules: []string{module.ID},
		TotalCompletedLessons: []string{lesson.ID},
	}
	require.NoError(t, s.CreateReport(ctx, report))

	// Ids from another course's tree are out of bounds.
	err := s.CreateReport(ctx, &models.Report{
		CourseID:              course.ID,
		StudentID:             student.ID,
		TotalCompletedModules: []string{foreignModule.ID},
	})
	assert.ErrorIs(t, err, store.ErrValidation)

	err = s.CreateReport(ctx, &models.Report{
		CourseID:              course.ID,
		StudentID:             student.ID,
		TotalCompletedLessons: []string{foreignLesson.ID},
	})
	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestReportAssessmentUniqueness(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	course := seedCourse(t, s)
	student := seedUser(t, s, models.RoleStudent)

	assessment := &models.Assessment{OtherMarks: 7.5}
	require.NoError(t, s.CreateAssessment(ctx, assessment))

	first := &models.Report{
		CourseID:         course.ID,
		StudentID:        student.ID,
		QuizAssessmentID: &assessment.ID,
	}
	require.NoError(t, s.CreateReport(ctx, first))

	second := &models.Report{
		CourseID:         course.ID,
		StudentID:        student.ID,
		QuizAssessmentID: &assessment.ID,
	}
	err := s.CreateReport(ctx, second)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrUniquenessConflict)

	// Reports without an assessment link never conflict.
	require.NoError(t, s.CreateReport(ctx, &models.Report{
		CourseID:  course.ID,
		StudentID: student.ID,
	}))
	require.NoError(t, s.CreateReport(ctx, &models.Report{
		CourseID:  course.ID,
		StudentID: student.ID,
	}))
}

func TestDeleteAssessmentRestrictedByReport(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	course := seedCourse(t, s)
	student := seedUser(t, s, models.RoleStudent)

	assessment := &models.Assessment{}
	require.NoError(t, s.CreateAssessment(ctx, assessment))
	require.NoError(t, s.CreateReport(ctx, &models.Report{
		CourseID:         course.ID,
		StudentID:        student.ID,
		QuizAssessmentID: &assessment.ID,
	}))

	err := s.DeleteAssessment(ctx, assessment.ID)
	assert.ErrorIs(t, err, store.ErrReferentialIntegrity)

	// An unlinked assessment deletes cleanly.
	loner := &models.Assessment{}
	require.NoError(t, s.CreateAssessment(ctx, loner))
	require.NoError(t, s.DeleteAssessment(ctx, loner.ID))
}

func TestAssessmentReportBackRelation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	course := seedCourse(t, s)
	student := seedUser(t, s, models.RoleStudent)

	assessment := &models.Assessment{Assessments: []byte(`[{"quizId":"q1","given":1}]`)}
	require.NoError(t, s.CreateAssessment(ctx, assessment))

	// No report yet: nil without error.
	report, err := s.AssessmentReport(ctx, assessment.ID)
	require.NoError(t, err)
	assert.Nil(t, report)

	created := &models.Report{
		CourseID:         course.ID,
		StudentID:        student.ID,
		QuizAssessmentID: &assessment.ID,
	}
	require.NoError(t, s.CreateReport(ctx, created))

	report, err = s.AssessmentReport(ctx, assessment.ID)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, created.ID, report.ID)
}

func TestUpdateReportClearAssessmentLink(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	course := seedCourse(t, s)
	student := seedUser(t, s, models.RoleStudent)
	assessment := &models.Assessment{}
	require.NoError(t, s.CreateAssessment(ctx, assessment))

	report := &models.Report{
		CourseID:         course.ID,
		StudentID:        student.ID,
		QuizAssessmentID: &assessment.ID,
	}
	require.NoError(t, s.CreateReport(ctx, report))

	clear := ""
	updated, err := s.UpdateReport(ctx, report.ID, store.ReportUpdate{QuizAssessmentID: &clear})
	require.NoError(t, err)
	assert.Nil(t, updated.QuizAssessmentID)

	// The assessment is now free for another report.
	other := &models.Report{
		CourseID:         course.ID,
		StudentID:        student.ID,
		QuizAssessmentID: &assessment.ID,
	}
	require.NoError(t, s.CreateReport(ctx, other))
}
