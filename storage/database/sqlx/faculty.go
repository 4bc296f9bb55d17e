package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/faculty"
)

type facultyRepository struct {
	db *sqlx.DB
}

var _ faculty.Repository = (*facultyRepository)(nil) // interface compliance check

const facultyColumns = "id, name, email, department, title"

func NewFacultyRepository(db *sqlx.DB) faculty.Repository {
	return &facultyRepository{db: db}
}

func (repo *facultyRepository) CreateFaculty(ctx context.Context, f faculty.Faculty) (faculty.Faculty, error) {
	q := "INSERT INTO faculty (name, email, department, title) VALUES ($1, $2, $3, $4) RETURNING " + facultyColumns
	var saved faculty.Faculty
	if err := repo.db.QueryRowxContext(ctx, q, f.Name, f.Email, f.Department, f.Title).StructScan(&saved); err != nil {
		return faculty.Faculty{}, errors.Wrap(err, "inserting faculty")
	}
	return saved, nil
}

func (repo *facultyRepository) QueryFaculty(ctx context.Context, filter faculty.QueryFilter) ([]faculty.Faculty, error) {
	var w where
	if filter.Department != "" {
		w.add("department = ?", filter.Department)
	}
	if filter.Search != "" {
		w.add("(name ILIKE ? OR email ILIKE ?)", likePattern(filter.Search))
	}
	fclty := []faculty.Faculty{}
	q := "SELECT " + facultyColumns + " FROM faculty" + w.String() + " ORDER BY id"
	if err := repo.db.SelectContext(ctx, &fclty, q, w.args...); err != nil {
		return nil, errors.Wrap(err, "querying faculty")
	}
	return fclty, nil
}

func (repo *facultyRepository) GetFacultyByID(ctx context.Context, id int) (faculty.Faculty, error) {
	var f faculty.Faculty
	if err := repo.db.GetContext(ctx, &f, "SELECT "+facultyColumns+" FROM faculty WHERE id = $1", id); err != nil {
		return faculty.Faculty{}, notFound(err, faculty.ErrNotFound)
	}
	return f, nil
}
