package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/academia/core/grade"
	"github.com/trezcool/academia/core/student"
)

func loadedState() State {
	students, courses, grades := fixtures()
	return Reduce(NewState(), Loaded{Students: students, Courses: courses, Grades: grades})
}

func TestReduce_filterChangeResetsPage(t *testing.T) {
	s := loadedState()
	s = Reduce(s, Batch{SetStudentPage{Page: 3}, SetCoursePage{Page: 3}, SetRosterPage{Page: 3}})

	tests := []struct {
		name   string
		action Action
		page   func(State) int
		want   int
	}{
		{name: "student search", action: SetStudentSearch{Query: "ada"}, page: func(s State) int { return s.StudentPage }, want: 1},
		{name: "student year", action: SetStudentYear{Year: "Senior"}, page: func(s State) int { return s.StudentPage }, want: 1},
		{name: "student course", action: SetStudentCourse{CourseID: 10}, page: func(s State) int { return s.StudentPage }, want: 1},
		{name: "same student search keeps page", action: SetStudentSearch{Query: ""}, page: func(s State) int { return s.StudentPage }, want: 3},
		{name: "course search", action: SetCourseSearch{Query: "cs"}, page: func(s State) int { return s.CoursePage }, want: 1},
		{name: "roster search", action: SetRosterSearch{Query: "ada"}, page: func(s State) int { return s.RosterPage }, want: 1},
		{name: "other list keeps page", action: SetRosterSearch{Query: "ada"}, page: func(s State) int { return s.StudentPage }, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page(Reduce(s, tt.action)); got != tt.want {
				t.Errorf("page = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReduce_filterChangeRecomputesFirstPage(t *testing.T) {
	s := loadedState()
	sizes := PageSizes{Students: 1, Courses: 1, Roster: 1}

	s = Reduce(s, SetStudentPage{Page: 3})
	assert.Equal(t, 3, Derive(s, sizes).Students.CurrentPage)

	s = Reduce(s, SetStudentCourse{CourseID: ma201.ID})
	d := Derive(s, sizes)
	assert.Equal(t, 1, d.Students.CurrentPage)
	assert.Equal(t, 2, d.Students.TotalPages)
	assert.Equal(t, []int{ada.ID}, studentIDs(d.Students.Items))
}

func TestReduce_doesNotMutatePreviousState(t *testing.T) {
	prev := loadedState()
	prevGrades := append([]grade.Grade{}, prev.Grades...)
	prevStudents := append([]student.Student{}, prev.Students...)

	next := Reduce(prev, StudentRemoved{ID: ada.ID})
	assert.Equal(t, prevGrades, prev.Grades)
	assert.Equal(t, prevStudents, prev.Students)

	assert.Equal(t, []int{alan.ID, grace.ID}, studentIDs(next.Students))
	for _, g := range next.Grades {
		assert.NotEqual(t, ada.ID, g.StudentID)
	}
	assert.NotEqual(t, prev.Rev.Students, next.Rev.Students)
	assert.NotEqual(t, prev.Rev.Grades, next.Rev.Grades)
	assert.Equal(t, prev.Rev.Courses, next.Rev.Courses)
}

func TestReduce_mutations(t *testing.T) {
	s := loadedState()

	s = Reduce(s, CourseRemoved{ID: ma201.ID})
	assert.Len(t, s.Courses, 1)
	for _, g := range s.Grades {
		assert.NotEqual(t, ma201.ID, g.CourseID)
	}

	added := mkGrade(42, alan.ID, ma201.ID, 80)
	s = Reduce(s, GradesAdded{Grades: []grade.Grade{added}})
	assert.Equal(t, added, s.Grades[len(s.Grades)-1])

	added.Score, added.Letter = 99, "A"
	s = Reduce(s, GradeUpdated{Grade: added})
	assert.Equal(t, 99.0, s.Grades[len(s.Grades)-1].Score)

	s = Reduce(s, GradesRemoved{IDs: []int{42, 1}})
	for _, g := range s.Grades {
		assert.NotContains(t, []int{42, 1}, g.ID)
	}

	renamed := alan
	renamed.FirstName = "A."
	s = Reduce(s, StudentUpdated{Student: renamed})
	assert.Equal(t, "A.", s.Students[1].FirstName)
}

func TestReduce_loadFailedKeepsCollections(t *testing.T) {
	s := loadedState()
	errBoom := errors.New("boom")
	next := Reduce(s, LoadFailed{Err: errBoom})
	assert.Equal(t, s.Students, next.Students)
	assert.Equal(t, s.Rev, next.Rev)
	assert.Equal(t, errBoom, next.LoadErr)
	assert.True(t, next.Loaded)
}

func TestReduce_addsReplaceSameID(t *testing.T) {
	s := loadedState()
	prev := s.Grades

	rescored := mkGrade(2, alan.ID, cs101.ID, 60)
	s = Reduce(s, GradesAdded{Grades: []grade.Grade{rescored, mkGrade(7, alan.ID, ma201.ID, 80), mkGrade(7, alan.ID, ma201.ID, 81)}})
	ids := make([]int, len(s.Grades))
	for i, g := range s.Grades {
		ids[i] = g.ID
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, ids)
	assert.Equal(t, rescored, s.Grades[1])
	assert.Equal(t, 81.0, s.Grades[6].Score)
	assert.Equal(t, 88.0, prev[1].Score, "previous state untouched")

	s = Reduce(s, Batch{StudentAdded{Student: ada}, CourseAdded{Course: cs101}})
	assert.Len(t, s.Students, 3)
	assert.Len(t, s.Courses, 2)
}
