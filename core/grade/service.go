package grade

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/bulk"
)

var (
	// errors
	ErrNotFound           = errors.New("grade not found")
	ErrEnrollmentExists   = errors.New("this student is already enrolled in this course")
	ErrEnrollmentNotFound = errors.New("no existing enrollment found for this student and course")
	ErrStudentNotFound    = errors.New("student not found")
	ErrCourseNotFound     = errors.New("course not found")
)

type (
	Repository interface {
		CreateGrade(ctx context.Context, g Grade) (Grade, error)
		// QueryGrades returns the grades matching filter, ordered by ID.
		QueryGrades(ctx context.Context, filter QueryFilter) ([]Grade, error)
		GetGradeByID(ctx context.Context, id int) (Grade, error)
		// UpdateGrade saves Score, Letter & UpdatedAt.
		UpdateGrade(ctx context.Context, g Grade) (Grade, error)
		DeleteGradesByID(ctx context.Context, ids ...int) error
	}

	// Lookup tells whether an entity referenced by a grade exists.
	Lookup interface {
		Exists(ctx context.Context, id int) (bool, error)
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
		students Lookup
		courses  Lookup

		// serializes uniqueness checks with inserts
		createMu sync.Mutex
	}
)

func NewService(repo Repository, validate *validator.Validate, students, courses Lookup) *Service {
	return &Service{
		repo:     repo,
		validate: validate,
		students: students,
		courses:  courses,
	}
}

func (svc *Service) checkReferences(ctx context.Context, studentID, courseID int) error {
	var flds []core.FieldError
	if ok, err := svc.students.Exists(ctx, studentID); err != nil {
		return errors.Wrap(err, "checking student")
	} else if !ok {
		flds = append(flds, core.FieldError{Field: "student_id", Error: ErrStudentNotFound.Error()})
	}
	if ok, err := svc.courses.Exists(ctx, courseID); err != nil {
		return errors.Wrap(err, "checking course")
	} else if !ok {
		flds = append(flds, core.FieldError{Field: "course_id", Error: ErrCourseNotFound.Error()})
	}
	if flds != nil {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

func (svc *Service) checkUniqueness(ctx context.Context, studentID, courseID int) error {
	grades, err := svc.repo.QueryGrades(ctx, QueryFilter{StudentID: studentID, CourseID: courseID})
	if err != nil {
		return errors.Wrap(err, "querying enrollment")
	}
	if len(grades) > 0 {
		return core.NewValidationError(ErrEnrollmentExists, core.FieldError{Field: "course_id", Error: ErrEnrollmentExists.Error()})
	}
	return nil
}

// Create enrolls a student; ng must have been validated.
func (svc *Service) Create(ctx context.Context, ng NewGrade) (Grade, error) {
	letter, err := ScoreToLetter(ng.Score)
	if err != nil {
		return Grade{}, err
	}

	svc.createMu.Lock()
	defer svc.createMu.Unlock()

	if err = svc.checkUniqueness(ctx, ng.StudentID, ng.CourseID); err != nil {
		return Grade{}, err
	}
	now := core.NowFunc()
	g := Grade{
		StudentID: ng.StudentID,
		CourseID:  ng.CourseID,
		Score:     ng.Score,
		Letter:    letter,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateGrade(ctx, g)
}

// BulkCreate validates and creates every grade concurrently.
// The result lists created grades and the rows that failed; nothing is rolled back.
func (svc *Service) BulkCreate(ctx context.Context, grades []NewGrade, concurrency int) bulk.Result[NewGrade, Grade] {
	return bulk.Run(ctx, grades, concurrency, func(ctx context.Context, ng NewGrade) (Grade, error) {
		if err := ng.Validate(ctx, svc.validate, svc); err != nil {
			return Grade{}, err
		}
		return svc.Create(ctx, ng)
	})
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Grade, error) {
	return svc.repo.QueryGrades(ctx, filter)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Grade, error) {
	return svc.repo.GetGradeByID(ctx, id)
}

// Update sets a new score on the grade, recomputing its letter.
func (svc *Service) Update(ctx context.Context, id int, ug UpdateGrade) (Grade, error) {
	g, err := svc.repo.GetGradeByID(ctx, id)
	if err != nil {
		return Grade{}, err
	}
	if ug.Score == nil {
		return g, nil
	}
	return svc.rescore(ctx, g, *ug.Score)
}

// UpdateByEnrollment sets the score of the grade of the (student, course) pair.
// With duplicate pairs in the store, the oldest one is updated.
func (svc *Service) UpdateByEnrollment(ctx context.Context, es EnrollmentScore) (Grade, error) {
	grades, err := svc.repo.QueryGrades(ctx, QueryFilter{StudentID: es.StudentID, CourseID: es.CourseID})
	if err != nil {
		return Grade{}, errors.Wrap(err, "querying enrollment")
	}
	if len(grades) == 0 {
		return Grade{}, ErrEnrollmentNotFound
	}
	return svc.rescore(ctx, grades[0], es.Score)
}

func (svc *Service) rescore(ctx context.Context, g Grade, score float64) (Grade, error) {
	letter, err := ScoreToLetter(score)
	if err != nil {
		return Grade{}, err
	}
	g.Score = score
	g.Letter = letter
	g.UpdatedAt = core.NowFunc()
	return svc.repo.UpdateGrade(ctx, g)
}

func (svc *Service) Delete(ctx context.Context, ids ...int) error {
	return svc.repo.DeleteGradesByID(ctx, ids...)
}
