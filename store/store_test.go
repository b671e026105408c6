package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"elearn/database"
	"elearn/logger"
	"elearn/models"
	"elearn/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return store.New(db, logger.Nop())
}

func seedUser(t *testing.T, s *store.Store, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		FirstName: "Test",
		LastName:  "User",
		Password:  "hashed-secret",
		Email:     uuid.NewString() + "@example.com",
		Role:      role,
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func seedCourse(t *testing.T, s *store.Store) *models.Course {
	t.Helper()
	course := &models.Course{
		Title:       "Course " + uuid.NewString()[:8],
		Description: "A test course.",
		Active:      true,
	}
	require.NoError(t, s.CreateCourse(context.Background(), course))
	return course
}

// seedCourseTree creates a course with one module and one lesson.
func seedCourseTree(t *testing.T, s *store.Store) (*models.Course, *models.Module, *models.Lesson) {
	t.Helper()
	course := seedCourse(t, s)
	module := &models.Module{
		Title:    "Module One",
		Slug:     "module-one",
		CourseID: course.ID,
	}
	require.NoError(t, s.CreateModule(context.Background(), module))
	lesson := &models.Lesson{
		Title:    "Lesson One",
		Slug:     "lesson-one",
		Duration: 300,
		ModuleID: module.ID,
	}
	require.NoError(t, s.CreateLesson(context.Background(), lesson))
	return course, module, lesson
}
