package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/student"
)

type (
	studentRepository struct {
		db *sqlx.DB
	}

	studentRow struct {
		ID         int         `db:"id"`
		FirstName  string      `db:"first_name"`
		LastName   string      `db:"last_name"`
		Email      string      `db:"email"`
		Year       string      `db:"year"`
		Major      string      `db:"major"`
		Notes      null.String `db:"notes"`
		Attributes null.JSON   `db:"attributes"`
		CreatedAt  time.Time   `db:"created_at"`
	}
)

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

const studentColumns = "id, first_name, last_name, email, year, major, notes, attributes, created_at"

var studentOrderColumns = map[string]string{
	"first_name": "lower(first_name)",
	"last_name":  "lower(last_name)",
	"year":       "array_position(ARRAY['Freshman','Sophomore','Junior','Senior','Graduate'], year)",
}

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func newStudentRow(s student.Student) (studentRow, error) {
	row := studentRow{
		ID:        s.ID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Email:     s.Email,
		Year:      s.Year,
		Major:     s.Major,
		Notes:     null.NewString(s.Notes, s.Notes != ""),
		CreatedAt: s.CreatedAt,
	}
	if err := row.Attributes.Marshal(core.CleanKeyValues(s.Attributes)); err != nil {
		return row, errors.Wrap(err, "encoding attributes")
	}
	return row, nil
}

func (row studentRow) student() (student.Student, error) {
	s := student.Student{
		ID:         row.ID,
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		Email:      row.Email,
		Year:       row.Year,
		Major:      row.Major,
		Notes:      row.Notes.String,
		Attributes: []core.KeyValue{},
		CreatedAt:  row.CreatedAt.UTC(),
	}
	if row.Attributes.Valid {
		if err := row.Attributes.Unmarshal(&s.Attributes); err != nil {
			return s, errors.Wrap(err, "decoding attributes")
		}
	}
	return s, nil
}

func (repo *studentRepository) CheckEmailUniqueness(ctx context.Context, email string, excluded ...student.Student) error {
	var ids []int
	if err := repo.db.SelectContext(ctx, &ids, "SELECT id FROM student WHERE lower(email) = lower($1)", email); err != nil {
		return errors.Wrap(err, "checking email")
	}
	skip := excludedIDs(excluded, func(s student.Student) int { return s.ID })
	for _, id := range ids {
		if !skip[id] {
			return student.ErrEmailExists
		}
	}
	return nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	row, err := newStudentRow(s)
	if err != nil {
		return student.Student{}, err
	}
	q := `INSERT INTO student (first_name, last_name, email, year, major, notes, attributes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING ` + studentColumns
	var saved studentRow
	err = repo.db.QueryRowxContext(ctx, q,
		row.FirstName, row.LastName, row.Email, row.Year, row.Major, row.Notes, row.Attributes, row.CreatedAt,
	).StructScan(&saved)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return saved.student()
}

func (repo *studentRepository) QueryStudents(ctx context.Context, filter student.QueryFilter) ([]student.Student, error) {
	var w where
	if filter.Year != "" {
		w.add("year = ?", filter.Year)
	}
	if filter.Search != "" {
		w.add("(first_name || ' ' || last_name ILIKE ? OR email ILIKE ?)", likePattern(filter.Search))
	}
	q := "SELECT " + studentColumns + " FROM student" + w.String() + orderBy(filter.Orderings, studentOrderColumns)

	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, q, w.args...); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	students := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		s, err := row.student()
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id int) (student.Student, error) {
	var row studentRow
	if err := repo.db.GetContext(ctx, &row, "SELECT "+studentColumns+" FROM student WHERE id = $1", id); err != nil {
		return student.Student{}, notFound(err, student.ErrNotFound)
	}
	return row.student()
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	row, err := newStudentRow(s)
	if err != nil {
		return student.Student{}, err
	}
	q := `UPDATE student SET first_name = :first_name, last_name = :last_name, email = :email, year = :year,
		major = :major, notes = :notes, attributes = :attributes WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, row)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if err = checkAffected(res, student.ErrNotFound); err != nil {
		return student.Student{}, err
	}
	return s, nil
}

func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...int) error {
	_, err := repo.db.ExecContext(ctx, "DELETE FROM student WHERE id = ANY($1)", pq.Array(ids))
	return errors.Wrap(err, "deleting students")
}
