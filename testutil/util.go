// Package testutil holds helpers shared by the tests.
package testutil

import (
	"context"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/academia/apps/shared"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/faculty"
	"github.com/trezcool/academia/core/grade"
	"github.com/trezcool/academia/core/student"
	inmemdb "github.com/trezcool/academia/storage/database/inmem"
	"github.com/trezcool/academia/storage/seed"
)

// Services are the core services on top of an in-memory store.
type Services struct {
	DB       *inmemdb.DB
	Validate *validator.Validate
	Student  *student.Service
	Course   *course.Service
	Faculty  *faculty.Service
	Grade    *grade.Service
}

func NewValidator() (*validator.Validate, ut.Translator) {
	return shared.NewValidator()
}

// NewServices opens an in-memory store, loaded with fixture if not nil.
func NewServices(t *testing.T, fixture *seed.Fixture) *Services {
	t.Helper()
	db, err := inmemdb.Open(context.Background(), fixture)
	if err != nil {
		t.Fatalf("inmemdb.Open(): %v", err)
	}
	repos := db.Repositories()
	validate, _ := NewValidator()

	svcs := &Services{
		DB:       db,
		Validate: validate,
		Student:  student.NewService(repos.Students),
		Course:   course.NewService(repos.Courses),
		Faculty:  faculty.NewService(repos.Faculty),
	}
	svcs.Grade = grade.NewService(repos.Grades, validate, svcs.Student, svcs.Course)
	return svcs
}

func CreateStudent(t *testing.T, repo student.Repository, first, last, email, year string, createdAt ...time.Time) student.Student {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	s, err := repo.CreateStudent(context.Background(), student.Student{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Year:      year,
		Major:     "Undeclared",
		CreatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return s
}

func CreateCourse(t *testing.T, repo course.Repository, code, title, department string, credits int, facultyIDs ...int) course.Course {
	t.Helper()
	c, err := repo.CreateCourse(context.Background(), course.Course{
		Code:       code,
		Title:      title,
		Department: department,
		Credits:    credits,
		FacultyIDs: facultyIDs,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return c
}

func CreateGrade(t *testing.T, repo grade.Repository, studentID, courseID int, score float64, createdAt ...time.Time) grade.Grade {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	letter, err := grade.ScoreToLetter(score)
	if err != nil {
		t.Fatalf("CreateGrade() failed: %v", err)
	}
	g, err := repo.CreateGrade(context.Background(), grade.Grade{
		StudentID: studentID,
		CourseID:  courseID,
		Score:     score,
		Letter:    letter,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateGrade() failed: %v", err)
	}
	return g
}
