package view

import (
	"sync/atomic"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/faculty"
	"github.com/trezcool/academia/core/grade"
	"github.com/trezcool/academia/core/student"
)

var revCounter uint64

func nextRev() uint64 {
	return atomic.AddUint64(&revCounter, 1)
}

// Revisions identify collection snapshots: a collection gets a new, process-wide unique revision
// every time it is replaced.
type Revisions struct {
	Students uint64
	Courses  uint64
	Faculty  uint64
	Grades   uint64
}

// State is the dashboard application state. It is only changed through Reduce;
// slices are never modified in place, so a State value is an immutable snapshot.
type State struct {
	Students []student.Student
	Courses  []course.Course
	Faculty  []faculty.Faculty
	Grades   []grade.Grade
	Rev      Revisions

	Loaded  bool
	LoadErr error

	StudentFilter StudentFilter
	CourseQuery   string
	RosterQuery   string

	StudentPage int
	CoursePage  int
	RosterPage  int
}

func NewState() State {
	return State{StudentPage: 1, CoursePage: 1, RosterPage: 1}
}

// Action is a state transition handled by Reduce.
type Action interface {
	isAction()
}

type (
	// Loaded replaces every collection.
	Loaded struct {
		Students []student.Student
		Courses  []course.Course
		Faculty  []faculty.Faculty
		Grades   []grade.Grade
	}
	// LoadFailed keeps the previous collections.
	LoadFailed struct{ Err error }

	SetStudentSearch struct{ Query string }
	SetStudentYear   struct{ Year string }
	SetStudentCourse struct{ CourseID int }
	SetCourseSearch  struct{ Query string }
	SetRosterSearch  struct{ Query string }
	SetStudentPage   struct{ Page int }
	SetCoursePage    struct{ Page int }
	SetRosterPage    struct{ Page int }

	// StudentAdded, CourseAdded and GradesAdded replace the items already held under the same ID,
	// so an add racing with a reload that already fetched the item keeps a single copy.
	StudentAdded   struct{ Student student.Student }
	StudentUpdated struct{ Student student.Student }
	// StudentRemoved removes the student and its grades.
	StudentRemoved struct{ ID int }
	CourseAdded    struct{ Course course.Course }
	CourseUpdated  struct{ Course course.Course }
	// CourseRemoved removes the course and its grades.
	CourseRemoved struct{ ID int }
	GradesAdded   struct{ Grades []grade.Grade }
	// GradeUpdated replaces the grade with the same ID.
	GradeUpdated  struct{ Grade grade.Grade }
	GradesRemoved struct{ IDs []int }

	// Batch applies its actions in order.
	Batch []Action
)

func (Loaded) isAction()           {}
func (LoadFailed) isAction()       {}
func (SetStudentSearch) isAction() {}
func (SetStudentYear) isAction()   {}
func (SetStudentCourse) isAction() {}
func (SetCourseSearch) isAction()  {}
func (SetRosterSearch) isAction()  {}
func (SetStudentPage) isAction()   {}
func (SetCoursePage) isAction()    {}
func (SetRosterPage) isAction()    {}
func (StudentAdded) isAction()     {}
func (StudentUpdated) isAction()   {}
func (StudentRemoved) isAction()   {}
func (CourseAdded) isAction()      {}
func (CourseUpdated) isAction()    {}
func (CourseRemoved) isAction()    {}
func (GradesAdded) isAction()      {}
func (GradeUpdated) isAction()     {}
func (GradesRemoved) isAction()    {}
func (Batch) isAction()            {}

// Reduce returns the state following a. Changing a filter resets its list to page 1.
// Page numbers are stored as requested and clamped when paginating.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Loaded:
		s.Students, s.Courses, s.Faculty, s.Grades = a.Students, a.Courses, a.Faculty, a.Grades
		s.Rev.Students = nextRev()
		s.Rev.Courses = nextRev()
		s.Rev.Faculty = nextRev()
		s.Rev.Grades = nextRev()
		s.Loaded = true
		s.LoadErr = nil
	case LoadFailed:
		s.LoadErr = a.Err

	case SetStudentSearch:
		if s.StudentFilter.Search != a.Query {
			s.StudentFilter.Search = a.Query
			s.StudentPage = 1
		}
	case SetStudentYear:
		if s.StudentFilter.Year != a.Year {
			s.StudentFilter.Year = a.Year
			s.StudentPage = 1
		}
	case SetStudentCourse:
		if s.StudentFilter.CourseID != a.CourseID {
			s.StudentFilter.CourseID = a.CourseID
			s.StudentPage = 1
		}
	case SetCourseSearch:
		if s.CourseQuery != a.Query {
			s.CourseQuery = a.Query
			s.CoursePage = 1
		}
	case SetRosterSearch:
		if s.RosterQuery != a.Query {
			s.RosterQuery = a.Query
			s.RosterPage = 1
		}
	case SetStudentPage:
		s.StudentPage = a.Page
	case SetCoursePage:
		s.CoursePage = a.Page
	case SetRosterPage:
		s.RosterPage = a.Page

	case StudentAdded:
		s.Students = upsert(s.Students, studentID, a.Student)
		s.Rev.Students = nextRev()
	case StudentUpdated:
		s.Students = replaceWhere(s.Students, a.Student, func(st student.Student) bool { return st.ID == a.Student.ID })
		s.Rev.Students = nextRev()
	case StudentRemoved:
		s.Students = Filter(s.Students, func(st student.Student) bool { return st.ID != a.ID })
		s.Grades = Filter(s.Grades, func(g grade.Grade) bool { return g.StudentID != a.ID })
		s.Rev.Students = nextRev()
		s.Rev.Grades = nextRev()
	case CourseAdded:
		s.Courses = upsert(s.Courses, courseID, a.Course)
		s.Rev.Courses = nextRev()
	case CourseUpdated:
		s.Courses = replaceWhere(s.Courses, a.Course, func(c course.Course) bool { return c.ID == a.Course.ID })
		s.Rev.Courses = nextRev()
	case CourseRemoved:
		s.Courses = Filter(s.Courses, func(c course.Course) bool { return c.ID != a.ID })
		s.Grades = Filter(s.Grades, func(g grade.Grade) bool { return g.CourseID != a.ID })
		s.Rev.Courses = nextRev()
		s.Rev.Grades = nextRev()
	case GradesAdded:
		s.Grades = upsert(s.Grades, gradeID, a.Grades...)
		s.Rev.Grades = nextRev()
	case GradeUpdated:
		s.Grades = replaceWhere(s.Grades, a.Grade, func(g grade.Grade) bool { return g.ID == a.Grade.ID })
		s.Rev.Grades = nextRev()
	case GradesRemoved:
		ids := make(map[int]bool, len(a.IDs))
		for _, id := range a.IDs {
			ids[id] = true
		}
		s.Grades = Filter(s.Grades, func(g grade.Grade) bool { return !ids[g.ID] })
		s.Rev.Grades = nextRev()

	case Batch:
		for _, sub := range a {
			s = Reduce(s, sub)
		}
	}
	return s
}

func studentID(s student.Student) int { return s.ID }
func courseID(c course.Course) int    { return c.ID }
func gradeID(g grade.Grade) int       { return g.ID }

// upsert returns a copy of items where every item of more replaces the one with the same ID,
// or is appended when there is none.
func upsert[T any](items []T, id func(T) int, more ...T) []T {
	out := make([]T, len(items), len(items)+len(more))
	copy(out, items)
	at := make(map[int]int, len(out))
	for i, it := range out {
		at[id(it)] = i
	}
	for _, it := range more {
		if i, ok := at[id(it)]; ok {
			out[i] = it
			continue
		}
		at[id(it)] = len(out)
		out = append(out, it)
	}
	return out
}

func replaceWhere[T any](items []T, item T, match func(T) bool) []T {
	out := make([]T, len(items))
	for i, it := range items {
		if match(it) {
			out[i] = item
		} else {
			out[i] = it
		}
	}
	return out
}
