package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elearn/models"
	"elearn/store"
)

func TestCourseRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	course := &models.Course{
		Title:       "Intro to Go",
		Description: "A first course on Go.",
		Price:       49.99,
		Active:      true,
		Learning:    []string{"basics", "channels"},
	}
	require.NoError(t, s.CreateCourse(ctx, course))
	require.NotEmpty(t, course.ID)

	got, err := s.GetCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Intro to Go", got.Title)
	assert.Equal(t, 49.99, got.Price)
	assert.True(t, got.Active)
	assert.Equal(t, []string{"basics", "channels"}, []string(got.Learning))
	assert.False(t, got.CreatedOn.IsZero())
	assert.True(t, got.CreatedOn.Equal(got.ModifiedOn), "createdOn and modifiedOn must match on a fresh course")
}

func TestCreateCourseValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.CreateCourse(ctx, &models.Course{Description: "no title"})
	assert.ErrorIs(t, err, store.ErrValidation)

	err = s.CreateCourse(ctx, &models.Course{Title: "t", Description: "d", Price: -1})
	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestCreateCourseUnknownReferences(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	missing := "missing-id"
	err := s.CreateCourse(ctx, &models.Course{Title: "t", Description: "d", CategoryID: &missing})
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.CreateCourse(ctx, &models.Course{Title: "t", Description: "d", InstructorID: &missing})
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.CreateCourse(ctx, &models.Course{Title: "t", Description: "d", QuizsetID: &missing})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// Timestamps are store-managed; values smuggled in on create must be
// replaced with the insert time.
func TestCreateCourseIgnoresCallerTimestamps(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	stale := time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC)
	course := &models.Course{
		Title:       "t",
		Description: "d",
		CreatedOn:   stale,
		ModifiedOn:  stale,
	}
	require.NoError(t, s.CreateCourse(ctx, course))

	got, err := s.GetCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.True(t, got.CreatedOn.After(stale))
	assert.True(t, got.CreatedOn.Equal(got.ModifiedOn))
}

func TestUpdateCourseAdvancesModifiedOn(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	course := seedCourse(t, s)
	created := course.CreatedOn

	title := "Renamed"
	updated, err := s.UpdateCourse(ctx, course.ID, store.CourseUpdate{Title: &title})
	require.NoError(t, err)

	got, err := s.GetCourse(ctx, updated.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.True(t, got.CreatedOn.Equal(created))
	assert.False(t, got.ModifiedOn.Before(created))
}

func TestUpdateCourseDetachCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	category := &models.Category{Title: "Programming", Thumbnail: "p.png"}
	require.NoError(t, s.CreateCategory(ctx, category))

	course := seedCourse(t, s)
	_, err := s.UpdateCourse(ctx, course.ID, store.CourseUpdate{CategoryID: &category.ID})
	require.NoError(t, err)

	clear := ""
	got, err := s.UpdateCourse(ctx, course.ID, store.CourseUpdate{CategoryID: &clear})
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
}

func TestDeleteCourseCascadesContent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	course, module, lesson := seedCourseTree(t, s)
	user := seedUser(t, s, models.RoleStudent)
	watch := &models.Watch{LessonID: lesson.ID, UserID: user.ID, ModuleID: module.ID}
	require.NoError(t, s.CreateWatch(ctx, watch))

	require.NoError(t, s.DeleteCourse(ctx, course.ID))

	_, err := s.GetModule(ctx, module.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetLesson(ctx, lesson.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetWatch(ctx, watch.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteCourseRestrictedByEnrollment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	course := seedCourse(t, s)
	student := seedUser(t, s, models.RoleStudent)
	require.NoError(t, s.CreateEnrollment(ctx, &models.Enrollment{
		CourseID:  course.ID,
		StudentID: student.ID,
		Method:    "self-signup",
	}))

	err := s.DeleteCourse(ctx, course.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrReferentialIntegrity)

	// The course and its enrollment must both survive the refusal.
	_, err = s.GetCourse(ctx, course.ID)
	assert.NoError(t, err)
}

func TestCourseModulesOrdered(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	course := seedCourse(t, s)
	for _, title := range []string{"First", "Second", "Third"} {
		require.NoError(t, s.CreateModule(ctx, &models.Module{
			Title:    title,
			Slug:     title,
			CourseID: course.ID,
		}))
	}

	modules, err := s.CourseModules(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, modules, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{modules[0].Order, modules[1].Order, modules[2].Order})
	assert.Equal(t, "First", modules[0].Title)
	assert.Equal(t, "Third", modules[2].Title)
}

func TestDeleteCategoryDetachesCourses(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	category := &models.Category{Title: "Programming", Thumbnail: "p.png"}
	require.NoError(t, s.CreateCategory(ctx, category))

	course := &models.Course{Title: "t", Description: "d", CategoryID: &category.ID}
	require.NoError(t, s.CreateCourse(ctx, course))

	require.NoError(t, s.DeleteCategory(ctx, category.ID))

	got, err := s.GetCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
}

func TestGetCourseEagerLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	course, module, _ := seedCourseTree(t, s)

	got, err := s.GetCourse(ctx, course.ID, "Modules", "Modules.Lessons")
	require.NoError(t, err)
	require.Len(t, got.Modules, 1)
	assert.Equal(t, module.ID, got.Modules[0].ID)
	require.Len(t, got.Modules[0].Lessons, 1)
}
