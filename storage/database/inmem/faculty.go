package inmemdb

import (
	"context"

	"github.com/trezcool/academia/core/faculty"
)

type facultyRepository struct {
	db *table[faculty.Faculty]
}

var _ faculty.Repository = (*facultyRepository)(nil) // interface compliance check

func NewFacultyRepository(db *DB) faculty.Repository {
	return &facultyRepository{db: db.faculty}
}

func (repo *facultyRepository) CreateFaculty(ctx context.Context, f faculty.Faculty) (faculty.Faculty, error) {
	if err := ctx.Err(); err != nil {
		return faculty.Faculty{}, err
	}
	return repo.db.insert(f), nil
}

func (repo *facultyRepository) QueryFaculty(ctx context.Context, filter faculty.QueryFilter) ([]faculty.Faculty, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return repo.db.filter(filter.Match), nil
}

func (repo *facultyRepository) GetFacultyByID(ctx context.Context, id int) (faculty.Faculty, error) {
	if err := ctx.Err(); err != nil {
		return faculty.Faculty{}, err
	}
	if f, ok := repo.db.get(id); ok {
		return f, nil
	}
	return faculty.Faculty{}, faculty.ErrNotFound
}
