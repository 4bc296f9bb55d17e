package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/grade"
)

type gradeRepository struct {
	db *sqlx.DB
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

const gradeColumns = "id, student_id, course_id, score, letter, created_at, updated_at"

func NewGradeRepository(db *sqlx.DB) grade.Repository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) CreateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	q := `INSERT INTO grade (student_id, course_id, score, letter, created_at, updated_at)
		VALUES (:student_id, :course_id, :score, :letter, :created_at, :updated_at) RETURNING id`
	rows, err := repo.db.NamedQueryContext(ctx, q, g)
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "inserting grade")
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		if err = rows.Scan(&g.ID); err != nil {
			return grade.Grade{}, errors.Wrap(err, "inserting grade")
		}
	}
	return g, errors.Wrap(rows.Err(), "inserting grade")
}

func (repo *gradeRepository) QueryGrades(ctx context.Context, filter grade.QueryFilter) ([]grade.Grade, error) {
	var w where
	if filter.StudentID != 0 {
		w.add("student_id = ?", filter.StudentID)
	}
	if filter.CourseID != 0 {
		w.add("course_id = ?", filter.CourseID)
	}
	var grades []grade.Grade
	q := "SELECT " + gradeColumns + " FROM grade" + w.String() + " ORDER BY id"
	if err := repo.db.SelectContext(ctx, &grades, q, w.args...); err != nil {
		return nil, errors.Wrap(err, "querying grades")
	}
	for i := range grades {
		grades[i].CreatedAt = grades[i].CreatedAt.UTC()
		grades[i].UpdatedAt = grades[i].UpdatedAt.UTC()
	}
	return grades, nil
}

func (repo *gradeRepository) GetGradeByID(ctx context.Context, id int) (grade.Grade, error) {
	var g grade.Grade
	if err := repo.db.GetContext(ctx, &g, "SELECT "+gradeColumns+" FROM grade WHERE id = $1", id); err != nil {
		return grade.Grade{}, notFound(err, grade.ErrNotFound)
	}
	g.CreatedAt = g.CreatedAt.UTC()
	g.UpdatedAt = g.UpdatedAt.UTC()
	return g, nil
}

// UpdateGrade only saves the score fields.
func (repo *gradeRepository) UpdateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	q := "UPDATE grade SET score = $2, letter = $3, updated_at = $4 WHERE id = $1 RETURNING " + gradeColumns
	var saved grade.Grade
	if err := repo.db.GetContext(ctx, &saved, q, g.ID, g.Score, g.Letter, g.UpdatedAt); err != nil {
		return grade.Grade{}, notFound(err, grade.ErrNotFound)
	}
	saved.CreatedAt = saved.CreatedAt.UTC()
	saved.UpdatedAt = saved.UpdatedAt.UTC()
	return saved, nil
}

func (repo *gradeRepository) DeleteGradesByID(ctx context.Context, ids ...int) error {
	_, err := repo.db.ExecContext(ctx, "DELETE FROM grade WHERE id = ANY($1)", pq.Array(ids))
	return errors.Wrap(err, "deleting grades")
}
