package main

import (
	"context"
	"log"
	"strings"

	"elearn/config"
	"elearn/database"
	"elearn/logger"
	"elearn/models"
	"elearn/store"
)

// Seeds a small demo catalog: one category, one instructor, one course
// with two modules and lessons, and a quiz set. Safe to re-run; it
// bails out when the instructor already exists.
func main() {
	config.LoadConfig()

	appLog, err := logger.New(config.AppConfig.LogMode)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer appLog.Sync()

	db, err := database.ConnectDb(config.AppConfig, appLog)
	if err != nil {
		appLog.Fatal("Failed to connect to database", "error", err)
	}

	s := store.New(db, appLog)
	ctx := context.Background()

	const instructorEmail = "jane.doe@elearn.local"
	if _, err := s.GetUserByEmail(ctx, instructorEmail); err == nil {
		appLog.Info("Seed data already present, nothing to do", "email", instructorEmail)
		return
	}

	instructor := &models.User{
		FirstName:   "Jane",
		LastName:    "Doe",
		Password:    "$2a$10$seededhashplaceholderseededhashplaceholder",
		Email:       instructorEmail,
		Role:        models.RoleInstructor,
		Designation: "Senior Go Engineer",
	}
	if err := s.CreateUser(ctx, instructor); err != nil {
		appLog.Fatal("Failed to seed instructor", "error", err)
	}

	category := &models.Category{
		Title:     "Programming",
		Thumbnail: "/static/categories/programming.png",
	}
	if err := s.CreateCategory(ctx, category); err != nil {
		appLog.Fatal("Failed to seed category", "error", err)
	}

	quizset := &models.Quizset{Title: "Go Fundamentals Quizzes", Active: true}
	if err := s.CreateQuizset(ctx, quizset); err != nil {
		appLog.Fatal("Failed to seed quizset", "error", err)
	}
	quiz := &models.Quiz{
		Title:     "Channels",
		Options:   []byte(`["A buffered channel blocks when full","A nil channel always panics","close() may be called twice"]`),
		QuizsetID: quizset.ID,
	}
	if err := s.CreateQuiz(ctx, quiz); err != nil {
		appLog.Fatal("Failed to seed quiz", "error", err)
	}

	course := &models.Course{
		Title:        "Intro to Go",
		Description:  "A first course on the Go programming language.",
		Price:        49.99,
		Active:       true,
		Learning:     []string{"basics", "channels"},
		CategoryID:   &category.ID,
		InstructorID: &instructor.ID,
		QuizsetID:    &quizset.ID,
	}
	if err := s.CreateCourse(ctx, course); err != nil {
		appLog.Fatal("Failed to seed course", "error", err)
	}

	moduleTitles := []string{"Getting Started", "Concurrency"}
	for _, title := range moduleTitles {
		module := &models.Module{
			Title:    title,
			Slug:     slugify(title),
			Active:   true,
			CourseID: course.ID,
		}
		if err := s.CreateModule(ctx, module); err != nil {
			appLog.Fatal("Failed to seed module", "title", title, "error", err)
		}
		lesson := &models.Lesson{
			Title:    title + ": Overview",
			Slug:     slugify(title) + "-overview",
			Duration: 540,
			Active:   true,
			ModuleID: module.ID,
		}
		if err := s.CreateLesson(ctx, lesson); err != nil {
			appLog.Fatal("Failed to seed lesson", "title", lesson.Title, "error", err)
		}
	}

	appLog.Info("Seed completed", "course", course.ID)
}

func slugify(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}
