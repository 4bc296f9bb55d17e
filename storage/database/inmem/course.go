package inmemdb

import (
	"context"
	"strings"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
)

type courseRepository struct {
	db *table[course.Course]
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db.course}
}

var courseOrderings = map[string]func(a, b course.Course) bool{
	"id":         func(a, b course.Course) bool { return a.ID < b.ID },
	"code":       func(a, b course.Course) bool { return a.Code < b.Code },
	"title":      func(a, b course.Course) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) },
	"department": func(a, b course.Course) bool { return a.Department < b.Department },
	"credits":    func(a, b course.Course) bool { return a.Credits < b.Credits },
	"created_at": func(a, b course.Course) bool { return a.CreatedAt.Before(b.CreatedAt) },
}

func (repo *courseRepository) CheckCodeUniqueness(ctx context.Context, code string, excluded ...course.Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	taken := repo.db.filter(func(c course.Course) bool {
		return strings.EqualFold(c.Code, code) && !isExcluded(c.ID, excluded, func(c course.Course) int { return c.ID })
	})
	if len(taken) > 0 {
		return course.ErrCodeExists
	}
	return nil
}

func (repo *courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	if err := ctx.Err(); err != nil {
		return course.Course{}, err
	}
	c.FacultyIDs = append([]int{}, c.FacultyIDs...)
	c.Metadata = core.CleanKeyValues(append([]core.KeyValue(nil), c.Metadata...))
	return repo.db.insert(c), nil
}

func (repo *courseRepository) QueryCourses(ctx context.Context, filter course.QueryFilter) ([]course.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	courses := repo.db.filter(filter.Match)
	orderBy(courses, filter.Orderings, courseOrderings)
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id int) (course.Course, error) {
	if err := ctx.Err(); err != nil {
		return course.Course{}, err
	}
	if c, ok := repo.db.get(id); ok {
		return c, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	if err := ctx.Err(); err != nil {
		return course.Course{}, err
	}
	if !repo.db.replace(c) {
		return course.Course{}, course.ErrNotFound
	}
	return c, nil
}

func (repo *courseRepository) DeleteCoursesByID(ctx context.Context, ids ...int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	repo.db.delete(ids...)
	return nil
}
