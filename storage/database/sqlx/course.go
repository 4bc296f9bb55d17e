package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
)

type (
	courseRepository struct {
		db *sqlx.DB
	}

	courseRow struct {
		ID          int           `db:"id"`
		Code        string        `db:"code"`
		Title       string        `db:"title"`
		Department  string        `db:"department"`
		Credits     int           `db:"credits"`
		Description null.String   `db:"description"`
		FacultyIDs  pq.Int64Array `db:"faculty_ids"`
		Metadata    null.JSON     `db:"metadata"`
		CreatedAt   time.Time     `db:"created_at"`
	}
)

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

const courseColumns = "id, code, title, department, credits, description, faculty_ids, metadata, created_at"

var courseOrderColumns = map[string]string{
	"title": "lower(title)",
}

func NewCourseRepository(db *sqlx.DB) course.Repository {
	return &courseRepository{db: db}
}

func newCourseRow(c course.Course) (courseRow, error) {
	row := courseRow{
		ID:          c.ID,
		Code:        c.Code,
		Title:       c.Title,
		Department:  c.Department,
		Credits:     c.Credits,
		Description: null.NewString(c.Description, c.Description != ""),
		FacultyIDs:  make(pq.Int64Array, 0, len(c.FacultyIDs)),
		CreatedAt:   c.CreatedAt,
	}
	for _, id := range c.FacultyIDs {
		row.FacultyIDs = append(row.FacultyIDs, int64(id))
	}
	if err := row.Metadata.Marshal(core.CleanKeyValues(c.Metadata)); err != nil {
		return row, errors.Wrap(err, "encoding metadata")
	}
	return row, nil
}

func (row courseRow) course() (course.Course, error) {
	c := course.Course{
		ID:          row.ID,
		Code:        row.Code,
		Title:       row.Title,
		Department:  row.Department,
		Credits:     row.Credits,
		Description: row.Description.String,
		FacultyIDs:  make([]int, 0, len(row.FacultyIDs)),
		Metadata:    []core.KeyValue{},
		CreatedAt:   row.CreatedAt.UTC(),
	}
	for _, id := range row.FacultyIDs {
		c.FacultyIDs = append(c.FacultyIDs, int(id))
	}
	if row.Metadata.Valid {
		if err := row.Metadata.Unmarshal(&c.Metadata); err != nil {
			return c, errors.Wrap(err, "decoding metadata")
		}
	}
	return c, nil
}

func (repo *courseRepository) CheckCodeUniqueness(ctx context.Context, code string, excluded ...course.Course) error {
	var ids []int
	if err := repo.db.SelectContext(ctx, &ids, "SELECT id FROM course WHERE upper(code) = upper($1)", code); err != nil {
		return errors.Wrap(err, "checking code")
	}
	skip := excludedIDs(excluded, func(c course.Course) int { return c.ID })
	for _, id := range ids {
		if !skip[id] {
			return course.ErrCodeExists
		}
	}
	return nil
}

func (repo *courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	row, err := newCourseRow(c)
	if err != nil {
		return course.Course{}, err
	}
	q := `INSERT INTO course (code, title, department, credits, description, faculty_ids, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING ` + courseColumns
	var saved courseRow
	err = repo.db.QueryRowxContext(ctx, q,
		row.Code, row.Title, row.Department, row.Credits, row.Description, row.FacultyIDs, row.Metadata, row.CreatedAt,
	).StructScan(&saved)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return saved.course()
}

func (repo *courseRepository) QueryCourses(ctx context.Context, filter course.QueryFilter) ([]course.Course, error) {
	var w where
	if filter.Department != "" {
		w.add("lower(department) = lower(?)", filter.Department)
	}
	if filter.FacultyID != 0 {
		w.add("? = ANY(faculty_ids)", filter.FacultyID)
	}
	if filter.Search != "" {
		w.add("(title ILIKE ? OR code ILIKE ? OR department ILIKE ?)", likePattern(filter.Search))
	}
	q := "SELECT " + courseColumns + " FROM course" + w.String() + orderBy(filter.Orderings, courseOrderColumns)

	var rows []courseRow
	if err := repo.db.SelectContext(ctx, &rows, q, w.args...); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		c, err := row.course()
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id int) (course.Course, error) {
	var row courseRow
	if err := repo.db.GetContext(ctx, &row, "SELECT "+courseColumns+" FROM course WHERE id = $1", id); err != nil {
		return course.Course{}, notFound(err, course.ErrNotFound)
	}
	return row.course()
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	row, err := newCourseRow(c)
	if err != nil {
		return course.Course{}, err
	}
	q := `UPDATE course SET code = :code, title = :title, department = :department, credits = :credits,
		description = :description, faculty_ids = :faculty_ids, metadata = :metadata WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, row)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if err = checkAffected(res, course.ErrNotFound); err != nil {
		return course.Course{}, err
	}
	return c, nil
}

func (repo *courseRepository) DeleteCoursesByID(ctx context.Context, ids ...int) error {
	_, err := repo.db.ExecContext(ctx, "DELETE FROM course WHERE id = ANY($1)", pq.Array(ids))
	return errors.Wrap(err, "deleting courses")
}
