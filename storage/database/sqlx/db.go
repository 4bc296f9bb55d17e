// Package sqlxrepos implements the repositories on PostgreSQL.
package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/storage/database"
	"github.com/trezcool/academia/storage/seed"
)

// Store groups the repositories sharing one connection pool.
type Store struct {
	db      *sqlx.DB
	fixture *seed.Fixture
}

// NewStore returns a Store on db. If fixture is not nil, it is used by Reset.
func NewStore(db *sqlx.DB, fixture *seed.Fixture) *Store {
	return &Store{db: db, fixture: fixture}
}

func (st *Store) Repositories() seed.Repositories {
	return seed.Repositories{
		Students: NewStudentRepository(st.db),
		Courses:  NewCourseRepository(st.db),
		Faculty:  NewFacultyRepository(st.db),
		Grades:   NewGradeRepository(st.db),
	}
}

// Reset empties every table and reloads the seed data, if any.
func (st *Store) Reset(ctx context.Context) error {
	if err := database.Truncate(ctx, st.db); err != nil {
		return err
	}
	if st.fixture == nil {
		return nil
	}
	return errors.Wrap(st.fixture.Load(ctx, st.Repositories()), "reloading seed")
}

// where accumulates AND-ed conditions with their positional args.
type where struct {
	conds []string
	args  []interface{}
}

// add appends cond; every "?" in cond refers to arg.
func (w *where) add(cond string, arg interface{}) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// orderBy renders orderings with columns, which maps cleaned field names to SQL expressions.
// Rows are always ordered by ID last.
func orderBy(orderings []core.DBOrdering, columns map[string]string) string {
	terms := make([]string, 0, len(orderings)+1)
	for _, ord := range orderings {
		col, ok := columns[ord.Field]
		if !ok {
			col = ord.Field
		}
		terms = append(terms, core.DBOrdering{Field: col, Ascending: ord.Ascending}.String())
	}
	terms = append(terms, "id ASC")
	return " ORDER BY " + strings.Join(terms, ", ")
}

func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	return "%" + r.Replace(search) + "%"
}

// notFound translates sql.ErrNoRows into errNotFound.
func notFound(err, errNotFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errNotFound
	}
	return err
}

// checkAffected returns errNotFound if res affected no row.
func checkAffected(res sql.Result, errNotFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errNotFound
	}
	return nil
}

func excludedIDs[T any](excluded []T, getID func(T) int) map[int]bool {
	ids := make(map[int]bool, len(excluded))
	for _, e := range excluded {
		ids[getID(e)] = true
	}
	return ids
}
