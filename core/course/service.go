package course

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
)

var (
	// errors
	ErrNotFound   = errors.New("course not found")
	ErrCodeExists = errors.New("a course with this code already exists")
)

type (
	Repository interface {
		CheckCodeUniqueness(ctx context.Context, code string, excluded ...Course) error
		CreateCourse(ctx context.Context, c Course) (Course, error)
		// QueryCourses applies AND operation on available QueryFilter fields. Default ordering is by ID.
		QueryCourses(ctx context.Context, filter QueryFilter) ([]Course, error)
		GetCourseByID(ctx context.Context, id int) (Course, error)
		UpdateCourse(ctx context.Context, c Course) (Course, error)
		DeleteCoursesByID(ctx context.Context, ids ...int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(ctx context.Context, code string, excluded ...Course) error {
	if err := svc.repo.CheckCodeUniqueness(ctx, code, excluded...); err != nil {
		if errors.Cause(err) == ErrCodeExists {
			return core.NewFieldValidationError("code", ErrCodeExists)
		}
		return err
	}
	return nil
}

// Create saves a new course; nc must have been validated.
func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	c := Course{
		Code:        nc.Code,
		Title:       nc.Title,
		Department:  nc.Department,
		Credits:     nc.Credits,
		Description: nc.Description,
		FacultyIDs:  uniqueIDs(nc.FacultyIDs),
		Metadata:    core.CleanKeyValues(nc.Metadata),
		CreatedAt:   core.NowFunc(),
	}
	return svc.repo.CreateCourse(ctx, c)
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Course, error) {
	return svc.repo.QueryCourses(ctx, filter)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *Service) Exists(ctx context.Context, id int) (bool, error) {
	if _, err := svc.repo.GetCourseByID(ctx, id); err != nil {
		if errors.Cause(err) == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Update applies uc to the course; uc must have been validated.
func (svc *Service) Update(ctx context.Context, orig Course, uc UpdateCourse) (Course, error) {
	return svc.repo.UpdateCourse(ctx, uc.Apply(orig))
}

// Delete removes the courses only. Their grades must be deleted by the caller.
func (svc *Service) Delete(ctx context.Context, ids ...int) error {
	return svc.repo.DeleteCoursesByID(ctx, ids...)
}
