package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elearn/models"
	"elearn/store"
)

func TestCreateModuleRequiresCourse(t *testing.T) {
	s := newTestStore(t)

	err := s.CreateModule(context.Background(), &models.Module{
		Title:    "Orphan",
		Slug:     "orphan",
		CourseID: "missing-course",
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestModuleLessonsOrdered(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, module, _ := seedCourseTree(t, s)
	for _, title := range []string{"Second", "Third"} {
		require.NoError(t, s.CreateLesson(ctx, &models.Lesson{
			Title:    title,
			Slug:     title,
			ModuleID: module.ID,
		}))
	}

	lessons, err := s.ModuleLessons(ctx, module.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{lessons[0].Order, lessons[1].Order, lessons[2].Order})
	assert.Equal(t, "Second", lessons[1].Title)
}

func TestDeleteModuleCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	course, module, lesson := seedCourseTree(t, s)
	user := seedUser(t, s, models.RoleStudent)
	watch := &models.Watch{LessonID: lesson.ID, UserID: user.ID, ModuleID: module.ID}
	require.NoError(t, s.CreateWatch(ctx, watch))

	require.NoError(t, s.DeleteModule(ctx, module.ID))

	_, err := s.GetLesson(ctx, lesson.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetWatch(ctx, watch.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// The owning course survives.
	_, err = s.GetCourse(ctx, course.ID)
	assert.NoError(t, err)
}

func TestDeleteLessonCascadesWatches(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, module, lesson := seedCourseTree(t, s)
	user := seedUser(t, s, models.RoleStudent)
	watch := &models.Watch{LessonID: lesson.ID, UserID: user.ID, ModuleID: module.ID}
	require.NoError(t, s.CreateWatch(ctx, watch))

	require.NoError(t, s.DeleteLesson(ctx, lesson.ID))

	_, err := s.GetWatch(ctx, watch.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetModule(ctx, module.ID)
	assert.NoError(t, err)
}

func TestUpdateModuleMoveBetweenCourses(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, module, _ := seedCourseTree(t, s)
	target := seedCourse(t, s)

	updated, err := s.UpdateModule(ctx, module.ID, store.ModuleUpdate{CourseID: &target.ID})
	require.NoError(t, err)
	assert.Equal(t, target.ID, updated.CourseID)

	missing := "missing-course"
	_, err = s.UpdateModule(ctx, module.ID, store.ModuleUpdate{CourseID: &missing})
	assert.ErrorIs(t, err, store.ErrNotFound)
}
