// Package inmemdb is an ephemeral store kept in memory. It can be reset to its seed data.
package inmemdb

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/faculty"
	"github.com/trezcool/academia/core/grade"
	"github.com/trezcool/academia/core/student"
	"github.com/trezcool/academia/storage/seed"
)

type (
	DB struct {
		student *table[student.Student]
		course  *table[course.Course]
		faculty *table[faculty.Faculty]
		grade   *table[grade.Grade]

		fixture *seed.Fixture
		resetMu sync.Mutex
	}

	table[T any] struct {
		sync.RWMutex
		rows  map[int]T
		pkSeq int
		setID func(*T, int)
		getID func(T) int
	}
)

func newTable[T any](getID func(T) int, setID func(*T, int)) *table[T] {
	return &table[T]{rows: make(map[int]T), getID: getID, setID: setID}
}

// Open returns an empty DB. If fixture is not nil, it is loaded and used by Reset.
func Open(ctx context.Context, fixture *seed.Fixture) (*DB, error) {
	db := &DB{
		student: newTable(func(s student.Student) int { return s.ID }, func(s *student.Student, id int) { s.ID = id }),
		course:  newTable(func(c course.Course) int { return c.ID }, func(c *course.Course, id int) { c.ID = id }),
		faculty: newTable(func(f faculty.Faculty) int { return f.ID }, func(f *faculty.Faculty, id int) { f.ID = id }),
		grade:   newTable(func(g grade.Grade) int { return g.ID }, func(g *grade.Grade, id int) { g.ID = id }),
		fixture: fixture,
	}
	if fixture != nil {
		if err := fixture.Load(ctx, db.Repositories()); err != nil {
			return nil, errors.Wrap(err, "loading seed")
		}
	}
	return db, nil
}

func (db *DB) Repositories() seed.Repositories {
	return seed.Repositories{
		Students: NewStudentRepository(db),
		Courses:  NewCourseRepository(db),
		Faculty:  NewFacultyRepository(db),
		Grades:   NewGradeRepository(db),
	}
}

// Reset empties every table, restarts the IDs and reloads the seed data, if any.
// The seed is loaded aside, then swapped in with every table locked: readers see the
// store either before or after the reset.
func (db *DB) Reset(ctx context.Context) error {
	db.resetMu.Lock()
	defer db.resetMu.Unlock()

	fresh, err := Open(ctx, db.fixture)
	if err != nil {
		return errors.Wrap(err, "reloading seed")
	}

	// fixed order
	locks := []sync.Locker{db.student, db.course, db.faculty, db.grade}
	for _, l := range locks {
		l.Lock()
	}
	db.student.swap(fresh.student)
	db.course.swap(fresh.course)
	db.faculty.swap(fresh.faculty)
	db.grade.swap(fresh.grade)
	for i := len(locks) - 1; i >= 0; i-- {
		locks[i].Unlock()
	}
	return nil
}

// swap takes the rows and ID sequence of from. Callers must hold the lock.
func (t *table[T]) swap(from *table[T]) {
	t.rows, t.pkSeq = from.rows, from.pkSeq
}

// all returns the rows ordered by ID. Callers must hold the lock.
func (t *table[T]) all() []T {
	rows := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return t.getID(rows[i]) < t.getID(rows[j]) })
	return rows
}

func (t *table[T]) insert(row T) T {
	t.Lock()
	defer t.Unlock()
	t.pkSeq++
	t.setID(&row, t.pkSeq)
	t.rows[t.pkSeq] = row
	return row
}

func (t *table[T]) get(id int) (T, bool) {
	t.RLock()
	defer t.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

// replace saves row if a row with the same ID exists.
func (t *table[T]) replace(row T) bool {
	t.Lock()
	defer t.Unlock()
	id := t.getID(row)
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = row
	return true
}

func (t *table[T]) delete(ids ...int) {
	t.Lock()
	defer t.Unlock()
	for _, id := range ids {
		delete(t.rows, id)
	}
}

// filter returns the rows matching match, ordered by ID.
func (t *table[T]) filter(match func(T) bool) []T {
	t.RLock()
	defer t.RUnlock()
	var rows []T
	for _, row := range t.all() {
		if match(row) {
			rows = append(rows, row)
		}
	}
	return rows
}
