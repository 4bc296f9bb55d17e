package student

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
)

var (
	// errors
	ErrNotFound    = errors.New("student not found")
	ErrEmailExists = errors.New("a student with this email already exists")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excluded ...Student) error
		CreateStudent(ctx context.Context, s Student) (Student, error)
		// QueryStudents applies AND operation on available QueryFilter fields. Default ordering is by ID.
		QueryStudents(ctx context.Context, filter QueryFilter) ([]Student, error)
		GetStudentByID(ctx context.Context, id int) (Student, error)
		UpdateStudent(ctx context.Context, s Student) (Student, error)
		DeleteStudentsByID(ctx context.Context, ids ...int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(ctx context.Context, email string, excluded ...Student) error {
	if err := svc.repo.CheckEmailUniqueness(ctx, email, excluded...); err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return core.NewFieldValidationError("email", ErrEmailExists)
		}
		return err
	}
	return nil
}

// Create saves a new student; ns must have been validated.
func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	s := Student{
		FirstName:  ns.FirstName,
		LastName:   ns.LastName,
		Email:      ns.Email,
		Year:       ns.Year,
		Major:      ns.Major,
		Notes:      ns.Notes,
		Attributes: core.CleanKeyValues(ns.Attributes),
		CreatedAt:  core.NowFunc(),
	}
	return svc.repo.CreateStudent(ctx, s)
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Student, error) {
	return svc.repo.QueryStudents(ctx, filter)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) Exists(ctx context.Context, id int) (bool, error) {
	if _, err := svc.repo.GetStudentByID(ctx, id); err != nil {
		if errors.Cause(err) == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Update applies us to the student; us must have been validated.
func (svc *Service) Update(ctx context.Context, orig Student, us UpdateStudent) (Student, error) {
	return svc.repo.UpdateStudent(ctx, us.Apply(orig))
}

// Delete removes the students only. Their grades must be deleted by the caller.
func (svc *Service) Delete(ctx context.Context, ids ...int) error {
	return svc.repo.DeleteStudentsByID(ctx, ids...)
}
