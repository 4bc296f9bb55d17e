package faculty

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("faculty not found")

type (
	Repository interface {
		// CreateFaculty is used for seeding only.
		CreateFaculty(ctx context.Context, f Faculty) (Faculty, error)
		QueryFaculty(ctx context.Context, filter QueryFilter) ([]Faculty, error)
		GetFacultyByID(ctx context.Context, id int) (Faculty, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Faculty, error) {
	return svc.repo.QueryFaculty(ctx, filter)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Faculty, error) {
	return svc.repo.GetFacultyByID(ctx, id)
}
