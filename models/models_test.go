package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "users", User{}.TableName())
	assert.Equal(t, "categories", Category{}.TableName())
	assert.Equal(t, "courses", Course{}.TableName())
	assert.Equal(t, "modules", Module{}.TableName())
	assert.Equal(t, "lessons", Lesson{}.TableName())
	assert.Equal(t, "quizsets", Quizset{}.TableName())
	assert.Equal(t, "quizzes", Quiz{}.TableName())
	assert.Equal(t, "assessments", Assessment{}.TableName())
	assert.Equal(t, "enrollments", Enrollment{}.TableName())
	assert.Equal(t, "reports", Report{}.TableName())
	assert.Equal(t, "testimonials", Testimonial{}.TableName())
	assert.Equal(t, "watches", Watch{}.TableName())
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, RoleStudent.IsValid())
	assert.True(t, RoleInstructor.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("superuser").IsValid())

	assert.True(t, AccessPrivate.IsValid())
	assert.True(t, AccessPublic.IsValid())
	assert.False(t, Access("hidden").IsValid())

	assert.True(t, EnrollmentActive.IsValid())
	assert.True(t, EnrollmentCompleted.IsValid())
	assert.True(t, EnrollmentCancelled.IsValid())
	assert.False(t, EnrollmentStatus("paused").IsValid())

	assert.True(t, WatchStarted.IsValid())
	assert.True(t, WatchCompleted.IsValid())
	assert.True(t, WatchPaused.IsValid())
	assert.False(t, WatchState("rewinding").IsValid())
}

// Password must never leak through JSON, and the foreign-key fields use
// camelCase names on the wire.
func TestUserJSONShape(t *testing.T) {
	u := User{
		ID:        "u1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "hashed-secret",
		Email:     "ada@example.com",
		Role:      RoleStudent,
		SocialMedia: map[string]interface{}{
			"github": "https://github.com/ada",
		},
	}
	raw, err := json.Marshal(u)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "password")
	assert.Equal(t, "ada@example.com", decoded["email"])

	social, ok := decoded["socialMedia"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "https://github.com/ada", social["github"])
}

func TestForeignKeyJSONNames(t *testing.T) {
	raw, err := json.Marshal(Watch{ID: "w1", LessonID: "l1", UserID: "u1", ModuleID: "m1"})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "l1", decoded["lessonId"])
	assert.Equal(t, "u1", decoded["userId"])
	assert.Equal(t, "m1", decoded["moduleId"])
}
