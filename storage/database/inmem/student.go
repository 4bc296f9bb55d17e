package inmemdb

import (
	"context"
	"strings"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/student"
)

type studentRepository struct {
	db *table[student.Student]
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

var studentOrderings = map[string]func(a, b student.Student) bool{
	"id":         func(a, b student.Student) bool { return a.ID < b.ID },
	"first_name": func(a, b student.Student) bool { return strings.ToLower(a.FirstName) < strings.ToLower(b.FirstName) },
	"last_name":  func(a, b student.Student) bool { return strings.ToLower(a.LastName) < strings.ToLower(b.LastName) },
	"email":      func(a, b student.Student) bool { return a.Email < b.Email },
	"year":       func(a, b student.Student) bool { return student.YearRank(a.Year) < student.YearRank(b.Year) },
	"created_at": func(a, b student.Student) bool { return a.CreatedAt.Before(b.CreatedAt) },
}

func (repo *studentRepository) CheckEmailUniqueness(ctx context.Context, email string, excluded ...student.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	taken := repo.db.filter(func(s student.Student) bool {
		return strings.EqualFold(s.Email, email) && !isExcluded(s.ID, excluded, func(s student.Student) int { return s.ID })
	})
	if len(taken) > 0 {
		return student.ErrEmailExists
	}
	return nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	if err := ctx.Err(); err != nil {
		return student.Student{}, err
	}
	s.Attributes = core.CleanKeyValues(append([]core.KeyValue(nil), s.Attributes...))
	return repo.db.insert(s), nil
}

func (repo *studentRepository) QueryStudents(ctx context.Context, filter student.QueryFilter) ([]student.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	students := repo.db.filter(filter.Match)
	orderBy(students, filter.Orderings, studentOrderings)
	return students, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id int) (student.Student, error) {
	if err := ctx.Err(); err != nil {
		return student.Student{}, err
	}
	if s, ok := repo.db.get(id); ok {
		return s, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	if err := ctx.Err(); err != nil {
		return student.Student{}, err
	}
	if !repo.db.replace(s) {
		return student.Student{}, student.ErrNotFound
	}
	return s, nil
}

func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	repo.db.delete(ids...)
	return nil
}

func isExcluded[T any](id int, excluded []T, getID func(T) int) bool {
	for _, e := range excluded {
		if getID(e) == id {
			return true
		}
	}
	return false
}
