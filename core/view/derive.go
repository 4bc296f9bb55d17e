package view

import (
	"sync"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/student"
)

type PageSizes struct {
	Students int
	Courses  int
	Roster   int
}

// Derived is the view state computed from a State.
type Derived struct {
	Students  Page[student.Student]
	Courses   Page[course.Course]
	Roster    Page[Row]
	JoinStats JoinStats
}

// Derive computes the derived view state of s.
func Derive(s State, sizes PageSizes) Derived {
	rows, stats := JoinWithStats(s.Grades, s.Students, s.Courses)
	return paginateAll(s, sizes, filterStudents(s), filterCourses(s), Filter(rows, RosterSearch(s.RosterQuery)), stats)
}

func filterStudents(s State) []student.Student {
	return Filter(s.Students, s.StudentFilter.Predicate(s.Grades))
}

func filterCourses(s State) []course.Course {
	return Filter(s.Courses, CourseSearch(s.CourseQuery))
}

func paginateAll(s State, sizes PageSizes, students []student.Student, courses []course.Course, rows []Row, stats JoinStats) Derived {
	return Derived{
		Students:  Paginate(students, sizes.Students, s.StudentPage),
		Courses:   Paginate(courses, sizes.Courses, s.CoursePage),
		Roster:    Paginate(rows, sizes.Roster, s.RosterPage),
		JoinStats: stats,
	}
}

type (
	studentsKey struct {
		students, grades uint64
		filter           StudentFilter
	}
	coursesKey struct {
		courses uint64
		query   string
	}
	rosterKey struct {
		students, courses, grades uint64
		query                     string
	}
)

// Memo is Derive memoized by input identity: a filtered list is only recomputed when
// one of the collection revisions or the filter it depends on changes. Safe for concurrent use.
type Memo struct {
	sizes PageSizes

	mu          sync.Mutex
	studentsKey studentsKey
	students    []student.Student
	coursesKey  coursesKey
	courses     []course.Course
	rosterKey   rosterKey
	roster      []Row
	stats       JoinStats
	primed      [3]bool
}

func NewMemo(sizes PageSizes) *Memo {
	return &Memo{sizes: sizes}
}

func (m *Memo) Derive(s State) Derived {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sk := (studentsKey{s.Rev.Students, s.Rev.Grades, s.StudentFilter}); !m.primed[0] || sk != m.studentsKey {
		m.students, m.studentsKey, m.primed[0] = filterStudents(s), sk, true
	}
	if ck := (coursesKey{s.Rev.Courses, s.CourseQuery}); !m.primed[1] || ck != m.coursesKey {
		m.courses, m.coursesKey, m.primed[1] = filterCourses(s), ck, true
	}
	if rk := (rosterKey{s.Rev.Students, s.Rev.Courses, s.Rev.Grades, s.RosterQuery}); !m.primed[2] || rk != m.rosterKey {
		rows, stats := JoinWithStats(s.Grades, s.Students, s.Courses)
		m.roster, m.stats, m.rosterKey, m.primed[2] = Filter(rows, RosterSearch(s.RosterQuery)), stats, rk, true
	}
	return paginateAll(s, m.sizes, m.students, m.courses, m.roster, m.stats)
}
