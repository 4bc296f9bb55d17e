package view

import (
	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/grade"
	"github.com/trezcool/academia/core/student"
)

// Filter returns the items matching pred, in their original order.
func Filter[T any](items []T, pred func(T) bool) []T {
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// All matches everything.
func All[T any](T) bool { return true }

// And combines predicates; an empty list matches everything.
func And[T any](preds ...func(T) bool) func(T) bool {
	return func(item T) bool {
		for _, pred := range preds {
			if !pred(item) {
				return false
			}
		}
		return true
	}
}

// RosterSearch matches rows whose student name, course code or course title contains q, ignoring case.
func RosterSearch(q string) func(Row) bool {
	q = core.CleanString(q)
	if q == "" {
		return All[Row]
	}
	return func(r Row) bool {
		return core.ContainsFold(r.Student.FullName(), q) ||
			core.ContainsFold(r.Course.Code, q) ||
			core.ContainsFold(r.Course.Title, q)
	}
}

// CourseSearch matches courses whose title, code or department contains q, ignoring case.
func CourseSearch(q string) func(course.Course) bool {
	qf := course.QueryFilter{Search: q}
	qf.Clean()
	return func(c course.Course) bool { return qf.Match(c) }
}

// ByYear matches students of the year level; "" and "all" match every student.
func ByYear(year string) func(student.Student) bool {
	if year == "" || year == "all" {
		return All[student.Student]
	}
	return func(s student.Student) bool { return s.Year == year }
}

// ByCourse matches students having a grade in the course; 0 matches every student.
func ByCourse(courseID int, grades []grade.Grade) func(student.Student) bool {
	if courseID == 0 {
		return All[student.Student]
	}
	enrolled := make(map[int]bool)
	for _, g := range grades {
		if g.CourseID == courseID {
			enrolled[g.StudentID] = true
		}
	}
	return func(s student.Student) bool { return enrolled[s.ID] }
}

// StudentFilter is the student list filter: text search on name or email, year level and course.
type StudentFilter struct {
	Search   string
	Year     string
	CourseID int
}

func (sf StudentFilter) IsEmpty() bool {
	return core.CleanString(sf.Search) == "" && (sf.Year == "" || sf.Year == "all") && sf.CourseID == 0
}

// Predicate returns the filter as a predicate; grades are needed for the course criterion.
func (sf StudentFilter) Predicate(grades []grade.Grade) func(student.Student) bool {
	qf := student.QueryFilter{Search: sf.Search}
	qf.Clean()
	return And(
		func(s student.Student) bool { return qf.Match(s) },
		ByYear(sf.Year),
		ByCourse(sf.CourseID, grades),
	)
}
