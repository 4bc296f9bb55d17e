package inmemdb

import (
	"context"

	"github.com/trezcool/academia/core/grade"
)

type gradeRepository struct {
	db *table[grade.Grade]
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db.grade}
}

func (repo *gradeRepository) CreateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	if err := ctx.Err(); err != nil {
		return grade.Grade{}, err
	}
	return repo.db.insert(g), nil
}

func (repo *gradeRepository) QueryGrades(ctx context.Context, filter grade.QueryFilter) ([]grade.Grade, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return repo.db.filter(filter.Match), nil
}

func (repo *gradeRepository) GetGradeByID(ctx context.Context, id int) (grade.Grade, error) {
	if err := ctx.Err(); err != nil {
		return grade.Grade{}, err
	}
	if g, ok := repo.db.get(id); ok {
		return g, nil
	}
	return grade.Grade{}, grade.ErrNotFound
}

func (repo *gradeRepository) UpdateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	if err := ctx.Err(); err != nil {
		return grade.Grade{}, err
	}

	// only save the score fields
	repo.db.Lock()
	defer repo.db.Unlock()
	orig, ok := repo.db.rows[g.ID]
	if !ok {
		return grade.Grade{}, grade.ErrNotFound
	}
	orig.Score = g.Score
	orig.Letter = g.Letter
	orig.UpdatedAt = g.UpdatedAt
	repo.db.rows[g.ID] = orig
	return orig, nil
}

func (repo *gradeRepository) DeleteGradesByID(ctx context.Context, ids ...int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	repo.db.delete(ids...)
	return nil
}
