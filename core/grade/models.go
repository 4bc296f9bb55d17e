package grade

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
)

// Grade is a student's enrollment in a course together with its current score.
type Grade struct {
	ID        int       `json:"id" db:"id"`
	StudentID int       `json:"student_id" db:"student_id"`
	CourseID  int       `json:"course_id" db:"course_id"`
	Score     float64   `json:"score" db:"score"`
	Letter    string    `json:"letter" db:"letter"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// GPA returns the GPA points of the grade's score (0 for a corrupted score).
func (g Grade) GPA() float64 {
	gpa, _ := ScoreToGPA(g.Score)
	return gpa
}

// NewGrade contains information needed to enroll a student in a course.
type NewGrade struct {
	StudentID int     `json:"student_id" yaml:"student_id" validate:"required,min=1"`
	CourseID  int     `json:"course_id" yaml:"course_id" validate:"required,min=1"`
	Score     float64 `json:"score" yaml:"score" validate:"gte=0,lte=100"`
}

func (ng *NewGrade) Validate(ctx context.Context, validate *validator.Validate, svc *Service) error {
	if err := validate.Struct(ng); err != nil {
		return err
	}
	if err := svc.checkReferences(ctx, ng.StudentID, ng.CourseID); err != nil {
		return err
	}
	return svc.checkUniqueness(ctx, ng.StudentID, ng.CourseID)
}

// UpdateGrade defines what information may be provided to modify an existing Grade.
type UpdateGrade struct {
	Score *float64 `json:"score" validate:"required,gte=0,lte=100"`
}

func (ug *UpdateGrade) Validate(validate *validator.Validate) error {
	return validate.Struct(ug)
}

// EnrollmentScore sets the score of the grade identified by its (student, course) pair.
type EnrollmentScore struct {
	StudentID int     `json:"student_id" validate:"required,min=1"`
	CourseID  int     `json:"course_id" validate:"required,min=1"`
	Score     float64 `json:"score" validate:"gte=0,lte=100"`
}

func (es *EnrollmentScore) Validate(validate *validator.Validate) error {
	return validate.Struct(es)
}

type QueryFilter struct {
	StudentID int `query:"student_id"`
	CourseID  int `query:"course_id"`
}

func (qf QueryFilter) IsEmpty() bool {
	return qf.StudentID == 0 && qf.CourseID == 0
}

// Match reports whether g satisfies every set field of the filter.
func (qf QueryFilter) Match(g Grade) bool {
	return (qf.StudentID == 0 || g.StudentID == qf.StudentID) &&
		(qf.CourseID == 0 || g.CourseID == qf.CourseID)
}
