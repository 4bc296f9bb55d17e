package dashboard_test

import (
	"context"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/bulk"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/dashboard"
	"github.com/trezcool/academia/core/faculty"
	"github.com/trezcool/academia/core/grade"
	"github.com/trezcool/academia/core/student"
	"github.com/trezcool/academia/core/view"
)

var errBoom = errors.New("boom")

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

// fakeFacade is an in-memory store; fail* make the matching calls fail.
type fakeFacade struct {
	mu       sync.Mutex
	lastID   int
	students []student.Student
	courses  []course.Course
	grades   []grade.Grade

	failListGrades   error
	failGradeDeletes map[int]bool
	failCreateGrade  map[int]bool // by course ID
}

var _ dashboard.Facade = (*fakeFacade)(nil)

func (f *fakeFacade) nextID() int {
	f.lastID++
	return f.lastID
}

func (f *fakeFacade) ListStudents(context.Context) ([]student.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]student.Student{}, f.students...), nil
}

func (f *fakeFacade) CreateStudent(_ context.Context, ns student.NewStudent) (student.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := student.Student{ID: f.nextID(), FirstName: ns.FirstName, LastName: ns.LastName, Email: ns.Email, Year: ns.Year, Major: ns.Major}
	f.students = append(f.students, s)
	return s, nil
}

func (f *fakeFacade) UpdateStudent(_ context.Context, id int, us student.UpdateStudent) (student.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.students {
		if s.ID == id {
			f.students[i] = us.Apply(s)
			return f.students[i], nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (f *fakeFacade) DeleteStudent(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.students = view.Filter(f.students, func(s student.Student) bool { return s.ID != id })
	return nil
}

func (f *fakeFacade) ListCourses(context.Context) ([]course.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]course.Course{}, f.courses...), nil
}

func (f *fakeFacade) CreateCourse(_ context.Context, nc course.NewCourse) (course.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := course.Course{ID: f.nextID(), Code: nc.Code, Title: nc.Title, Department: nc.Department, Credits: nc.Credits}
	f.courses = append(f.courses, c)
	return c, nil
}

func (f *fakeFacade) UpdateCourse(_ context.Context, id int, uc course.UpdateCourse) (course.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.courses {
		if c.ID == id {
			f.courses[i] = uc.Apply(c)
			return f.courses[i], nil
		}
	}
	return course.Course{}, course.ErrNotFound
}

func (f *fakeFacade) DeleteCourse(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.courses = view.Filter(f.courses, func(c course.Course) bool { return c.ID != id })
	return nil
}

func (f *fakeFacade) ListFaculty(context.Context) ([]faculty.Faculty, error) {
	return []faculty.Faculty{{ID: 1, Name: "Dr. Who"}}, nil
}

func (f *fakeFacade) ListGrades(_ context.Context, filter grade.QueryFilter) ([]grade.Grade, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failListGrades != nil {
		return nil, f.failListGrades
	}
	return view.Filter(f.grades, filter.Match), nil
}

func (f *fakeFacade) CreateGrade(_ context.Context, ng grade.NewGrade) (grade.Grade, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreateGrade[ng.CourseID] {
		return grade.Grade{}, core.NewFieldValidationError("course_id", grade.ErrCourseNotFound)
	}
	letter, err := grade.ScoreToLetter(ng.Score)
	if err != nil {
		return grade.Grade{}, err
	}
	now := core.NowFunc()
	g := grade.Grade{ID: f.nextID(), StudentID: ng.StudentID, CourseID: ng.CourseID, Score: ng.Score, Letter: letter, CreatedAt: now, UpdatedAt: now}
	f.grades = append(f.grades, g)
	return g, nil
}

func (f *fakeFacade) UpdateGradeByEnrollment(_ context.Context, es grade.EnrollmentScore) (grade.Grade, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, g := range f.grades {
		if g.StudentID == es.StudentID && g.CourseID == es.CourseID {
			g.Score = es.Score
			g.Letter, _ = grade.ScoreToLetter(es.Score)
			f.grades[i] = g
			return g, nil
		}
	}
	return grade.Grade{}, grade.ErrEnrollmentNotFound
}

func (f *fakeFacade) DeleteGrade(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGradeDeletes[id] {
		return errBoom
	}
	f.grades = view.Filter(f.grades, func(g grade.Grade) bool { return g.ID != id })
	return nil
}

// newFacade returns a store of 2 students (1, 2), 2 courses (3, 4) & 3 grades (5, 6, 7).
func newFacade() *fakeFacade {
	f := new(fakeFacade)
	ctx := context.Background()
	ada, _ := f.CreateStudent(ctx, student.NewStudent{FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.io", Year: student.YearSenior})
	alan, _ := f.CreateStudent(ctx, student.NewStudent{FirstName: "Alan", LastName: "Turing", Email: "alan@x.io", Year: student.YearJunior})
	cs, _ := f.CreateCourse(ctx, course.NewCourse{Code: "CS101", Title: "Programming", Department: "CS", Credits: 4})
	ma, _ := f.CreateCourse(ctx, course.NewCourse{Code: "MA201", Title: "Algebra", Department: "Math", Credits: 3})
	_, _ = f.CreateGrade(ctx, grade.NewGrade{StudentID: ada.ID, CourseID: cs.ID, Score: 95})
	_, _ = f.CreateGrade(ctx, grade.NewGrade{StudentID: ada.ID, CourseID: ma.ID, Score: 72})
	_, _ = f.CreateGrade(ctx, grade.NewGrade{StudentID: alan.ID, CourseID: cs.ID, Score: 85})
	return f
}

func newController(t *testing.T, f *fakeFacade) *dashboard.Controller {
	t.Helper()
	conf := core.NewConfig()
	conf.ExportDir = t.TempDir()
	conf.Dashboard.StudentPageSize = 1
	c := dashboard.NewController(f, nopLogger{}, conf)
	require.NoError(t, c.Load(context.Background()))
	return c
}

func gradeIDs(grades []grade.Grade) []int {
	ids := make([]int, len(grades))
	for i, g := range grades {
		ids[i] = g.ID
	}
	sort.Ints(ids)
	return ids
}

func TestController_Load(t *testing.T) {
	f := newFacade()
	c := newController(t, f)

	s := c.State()
	assert.True(t, s.Loaded)
	assert.Len(t, s.Students, 2)
	assert.Len(t, s.Faculty, 1)
	assert.Equal(t, []int{5, 6, 7}, gradeIDs(s.Grades))

	d := c.View()
	assert.Equal(t, 2, d.Students.TotalPages)
	assert.Equal(t, 3, d.Roster.TotalItems)

	t.Run("failure keeps the previous collections", func(t *testing.T) {
		f.failListGrades = errBoom
		defer func() { f.failListGrades = nil }()

		err := c.Load(context.Background())
		assert.ErrorIs(t, err, errBoom)
		s := c.State()
		assert.ErrorIs(t, s.LoadErr, errBoom)
		assert.Len(t, s.Grades, 3)
	})
}

func TestController_Dispatch(t *testing.T) {
	c := newController(t, newFacade())

	d := c.Dispatch(view.SetStudentPage{Page: 2})
	assert.Equal(t, 2, d.Students.CurrentPage)
	assert.Equal(t, "Alan", d.Students.Items[0].FirstName)

	d = c.Dispatch(view.SetStudentCourse{CourseID: 4})
	assert.Equal(t, 1, d.Students.CurrentPage)
	assert.Equal(t, 1, d.Students.TotalItems)
	assert.Equal(t, "Ada", d.Students.Items[0].FirstName)

	d = c.Dispatch(view.SetStudentCourse{CourseID: 0}, view.SetRosterSearch{Query: "turing"})
	assert.Equal(t, 2, d.Students.TotalItems)
	assert.Equal(t, 1, d.Roster.TotalItems)
}

func TestController_DeleteStudent(t *testing.T) {
	t.Run("cascades", func(t *testing.T) {
		f := newFacade()
		c := newController(t, f)

		require.NoError(t, c.DeleteStudent(context.Background(), 1))
		s := c.State()
		assert.Len(t, s.Students, 1)
		assert.Equal(t, []int{7}, gradeIDs(s.Grades))
		assert.Len(t, f.students, 1)
		assert.Equal(t, []int{7}, gradeIDs(f.grades))
	})

	t.Run("partial failure restores the rest", func(t *testing.T) {
		f := newFacade()
		f.failGradeDeletes = map[int]bool{6: true}
		c := newController(t, f)

		err := c.DeleteStudent(context.Background(), 1)
		var perr *bulk.PartialFailureError
		require.True(t, errors.As(err, &perr), "err = %v", err)
		assert.Equal(t, 1, perr.Succeeded)

		s := c.State()
		assert.Len(t, s.Students, 2)
		assert.Equal(t, []int{6, 7}, gradeIDs(s.Grades))
		assert.Len(t, f.students, 2)
	})

	t.Run("course", func(t *testing.T) {
		f := newFacade()
		c := newController(t, f)

		require.NoError(t, c.DeleteCourse(context.Background(), 3))
		assert.Len(t, c.State().Courses, 1)
		assert.Equal(t, []int{6}, gradeIDs(c.State().Grades))
	})
}

func TestController_AssignGrade(t *testing.T) {
	f := newFacade()
	c := newController(t, f)

	g, err := c.AssignGrade(context.Background(), grade.NewGrade{StudentID: 2, CourseID: 4, Score: 88})
	require.NoError(t, err)
	assert.Equal(t, "B+", g.Letter)
	assert.Equal(t, []int{5, 6, 7, g.ID}, gradeIDs(c.State().Grades))

	t.Run("rejected", func(t *testing.T) {
		f.failCreateGrade = map[int]bool{3: true}
		before := gradeIDs(c.State().Grades)

		_, err := c.AssignGrade(context.Background(), grade.NewGrade{StudentID: 2, CourseID: 3, Score: 50})
		assert.True(t, core.IsValidationError(err), "err = %v", err)
		assert.Equal(t, before, gradeIDs(c.State().Grades))
	})

	t.Run("invalid score", func(t *testing.T) {
		_, err := c.AssignGrade(context.Background(), grade.NewGrade{StudentID: 2, CourseID: 3, Score: 101})
		assert.True(t, core.IsValidationError(err))
	})
}

// reloadingFacade reloads the dashboard once a grade is created, before answering.
type reloadingFacade struct {
	*fakeFacade
	ctrl *dashboard.Controller
}

func (f *reloadingFacade) CreateGrade(ctx context.Context, ng grade.NewGrade) (grade.Grade, error) {
	g, err := f.fakeFacade.CreateGrade(ctx, ng)
	if err == nil {
		err = f.ctrl.Load(ctx)
	}
	return g, err
}

func TestController_AssignGrade_reloadedMeanwhile(t *testing.T) {
	f := &reloadingFacade{fakeFacade: newFacade()}
	conf := core.NewConfig()
	f.ctrl = dashboard.NewController(f, nopLogger{}, conf)
	require.NoError(t, f.ctrl.Load(context.Background()))

	g, err := f.ctrl.AssignGrade(context.Background(), grade.NewGrade{StudentID: 2, CourseID: 4, Score: 88})
	require.NoError(t, err)
	assert.Equal(t, 8, g.ID)

	s := f.ctrl.State()
	assert.Equal(t, []int{5, 6, 7, 8}, gradeIDs(s.Grades))
	assert.Equal(t, 4, f.ctrl.View().Roster.TotalItems)
	p, err := f.ctrl.Profile(2)
	require.NoError(t, err)
	assert.Len(t, p.Courses, 2)
}

func TestController_UpdateGrade(t *testing.T) {
	c := newController(t, newFacade())

	g, err := c.UpdateGrade(context.Background(), grade.EnrollmentScore{StudentID: 2, CourseID: 3, Score: 59})
	require.NoError(t, err)
	assert.Equal(t, "F", g.Letter)
	for _, sg := range c.State().Grades {
		if sg.ID == g.ID {
			assert.Equal(t, 59.0, sg.Score)
		}
	}

	_, err = c.UpdateGrade(context.Background(), grade.EnrollmentScore{StudentID: 2, CourseID: 4, Score: 59})
	assert.Equal(t, grade.ErrEnrollmentNotFound, errors.Cause(err))
}

func TestController_CreateStudent(t *testing.T) {
	f := newFacade()
	f.failCreateGrade = map[int]bool{4: true}
	c := newController(t, f)

	s, err := c.CreateStudent(context.Background(),
		student.NewStudent{FirstName: "Grace", LastName: "Hopper", Email: "grace@x.io", Year: student.YearGraduate},
		dashboard.InitialGrade{CourseID: 3, Score: 91},
		dashboard.InitialGrade{CourseID: 4, Score: 80},
	)
	var perr *bulk.PartialFailureError
	require.True(t, errors.As(err, &perr), "err = %v", err)
	require.Len(t, perr.Failures, 1)
	assert.Equal(t, 1, perr.Failures[0].Index)

	p, err := c.Profile(s.ID)
	require.NoError(t, err)
	require.Len(t, p.Courses, 1)
	assert.Equal(t, "CS101", p.Courses[0].Course.Code)
	assert.Equal(t, 3.7, p.GPA)

	_, err = c.Profile(404)
	assert.Equal(t, student.ErrNotFound, err)
}

func TestController_DeleteGrades(t *testing.T) {
	f := newFacade()
	f.failGradeDeletes = map[int]bool{7: true}
	c := newController(t, f)

	err := c.DeleteGrades(context.Background(), 5, 7)
	require.Error(t, err)
	assert.Equal(t, []int{6, 7}, gradeIDs(c.State().Grades))
}

func TestController_reports(t *testing.T) {
	c := newController(t, newFacade())

	sum := c.Summary()
	assert.Equal(t, 2, sum.Counts.Students)
	assert.Equal(t, 3, sum.Counts.Grades)
	assert.Equal(t, 84, sum.Counts.AverageScore)

	rows, err := c.Records(dashboard.ReportPopularCourses, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	code, _ := rows[0].Get("Code")
	assert.Equal(t, "CS101", code)

	_, err = c.Records("nope", 0)
	assert.Equal(t, dashboard.ErrUnknownReport, errors.Cause(err))

	t.Run("export", func(t *testing.T) {
		path, err := c.Export(dashboard.ReportTopByCourse, 0, "")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(path, "top-students-by-course.csv"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(string(data), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, `"Course","Code","Top Student","Top Score"`, lines[0])
		assert.Equal(t, `"Programming","CS101","Ada Lovelace","95"`, lines[1])
	})

	t.Run("export xlsx", func(t *testing.T) {
		path, err := c.Export(dashboard.ReportEnrollments, 0, "months.xlsx")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(path, "months.xlsx"))
	})
}

func TestController_reportsWithOutOfRangeScore(t *testing.T) {
	f := newFacade()
	f.grades = append(f.grades, grade.Grade{ID: 99, StudentID: 2, CourseID: 4, Score: 140})
	c := newController(t, f)

	sum := c.Summary()
	assert.Equal(t, 4, sum.Counts.Grades)
	require.NotEmpty(t, sum.TopStudents)
	assert.Equal(t, "Alan", sum.TopStudents[0].Student.FirstName)

	rows, err := c.Records(dashboard.ReportLeaderboard, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	p, err := c.Profile(2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, p.GPA)
}
