// Package dashboard keeps the dashboard state in sync with the store and derives its views.
package dashboard

import (
	"context"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/bulk"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/faculty"
	"github.com/trezcool/academia/core/grade"
	"github.com/trezcool/academia/core/report"
	"github.com/trezcool/academia/core/student"
	"github.com/trezcool/academia/core/view"
)

type Controller struct {
	facade    Facade
	logger    core.Logger
	store     *view.Store
	memo      *view.Memo
	conf      core.DashboardConfig
	bulkLimit int
	exportDir string

	// IDs of optimistic grades, until the store assigns the real ones
	tempID int64
}

func NewController(facade Facade, logger core.Logger, conf *core.Config) *Controller {
	return &Controller{
		facade: facade,
		logger: logger,
		store:  view.NewStore(view.NewState()),
		memo: view.NewMemo(view.PageSizes{
			Students: conf.Dashboard.StudentPageSize,
			Courses:  conf.Dashboard.CoursePageSize,
			Roster:   conf.Dashboard.RosterPageSize,
		}),
		conf:      conf.Dashboard,
		bulkLimit: conf.Client.BulkConcurrency,
		exportDir: conf.ExportDir,
	}
}

// Load fetches every collection concurrently. They are committed together once all fetches
// succeeded; on failure, the previous collections are kept and the error is recorded in the state.
func (c *Controller) Load(ctx context.Context) error {
	var (
		students []student.Student
		courses  []course.Course
		fclty    []faculty.Faculty
		grades   []grade.Grade
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		students, err = c.facade.ListStudents(gctx)
		return errors.Wrap(err, "fetching students")
	})
	g.Go(func() (err error) {
		courses, err = c.facade.ListCourses(gctx)
		return errors.Wrap(err, "fetching courses")
	})
	g.Go(func() (err error) {
		fclty, err = c.facade.ListFaculty(gctx)
		return errors.Wrap(err, "fetching faculty")
	})
	g.Go(func() (err error) {
		grades, err = c.facade.ListGrades(gctx, grade.QueryFilter{})
		return errors.Wrap(err, "fetching grades")
	})
	if err := g.Wait(); err != nil {
		c.store.Dispatch(view.LoadFailed{Err: err})
		return err
	}

	c.store.Dispatch(view.Loaded{Students: students, Courses: courses, Faculty: fclty, Grades: grades})
	if _, stats := view.JoinWithStats(grades, students, courses); stats.Dropped() > 0 {
		c.logger.Warn("referential gap: grades left out of the roster", core.LogFields{
			"missing_students": stats.MissingStudents,
			"missing_courses":  stats.MissingCourses,
		})
	}
	if corrupt := report.CorruptGrades(grades); len(corrupt) > 0 {
		c.logger.Warn("grades with an out of range score left out of GPAs", core.LogFields{
			"count":    len(corrupt),
			"first_id": corrupt[0].ID,
		})
	}
	return nil
}

func (c *Controller) State() view.State {
	return c.store.State()
}

// View returns the derived view of the current state.
func (c *Controller) View() view.Derived {
	return c.memo.Derive(c.store.State())
}

// Dispatch applies filter & page actions, and returns the new view.
func (c *Controller) Dispatch(actions ...view.Action) view.Derived {
	return c.memo.Derive(c.store.Dispatch(actions...))
}

// Students

// InitialGrade is a grade to assign to a student on creation.
type InitialGrade struct {
	CourseID int     `json:"course_id" yaml:"course_id"`
	Score    float64 `json:"score" yaml:"score"`
}

// CreateStudent creates the student, then enrolls it in bulk. The student is kept even if some
// grades failed; their failures are reported by a *bulk.PartialFailureError.
func (c *Controller) CreateStudent(ctx context.Context, ns student.NewStudent, grades ...InitialGrade) (student.Student, error) {
	s, err := c.facade.CreateStudent(ctx, ns)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "creating student")
	}
	c.store.Dispatch(view.StudentAdded{Student: s})
	if len(grades) == 0 {
		return s, nil
	}

	ngs := make([]grade.NewGrade, len(grades))
	for i, ig := range grades {
		ngs[i] = grade.NewGrade{StudentID: s.ID, CourseID: ig.CourseID, Score: ig.Score}
	}
	return s, c.BulkEnroll(ctx, ngs).Err()
}

func (c *Controller) UpdateStudent(ctx context.Context, id int, us student.UpdateStudent) (student.Student, error) {
	s, err := c.facade.UpdateStudent(ctx, id, us)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	c.store.Dispatch(view.StudentUpdated{Student: s})
	return s, nil
}

// DeleteStudent removes the student and its grades from the view at once, then deletes
// the grades and the student from the store. See cascadeDelete.
func (c *Controller) DeleteStudent(ctx context.Context, id int) error {
	return c.cascadeDelete(ctx, "deleting student", view.StudentRemoved{ID: id}, grade.QueryFilter{StudentID: id},
		func(ctx context.Context) error { return c.facade.DeleteStudent(ctx, id) })
}

// Courses

func (c *Controller) CreateCourse(ctx context.Context, nc course.NewCourse) (course.Course, error) {
	crs, err := c.facade.CreateCourse(ctx, nc)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "creating course")
	}
	c.store.Dispatch(view.CourseAdded{Course: crs})
	return crs, nil
}

func (c *Controller) UpdateCourse(ctx context.Context, id int, uc course.UpdateCourse) (course.Course, error) {
	crs, err := c.facade.UpdateCourse(ctx, id, uc)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	c.store.Dispatch(view.CourseUpdated{Course: crs})
	return crs, nil
}

func (c *Controller) DeleteCourse(ctx context.Context, id int) error {
	return c.cascadeDelete(ctx, "deleting course", view.CourseRemoved{ID: id}, grade.QueryFilter{CourseID: id},
		func(ctx context.Context) error { return c.facade.DeleteCourse(ctx, id) })
}

// cascadeDelete optimistically applies remove, then deletes the grades matching filter and,
// only if they all went, the entity itself. On failure the state is restored, minus the grades
// that were deleted.
func (c *Controller) cascadeDelete(
	ctx context.Context,
	name string,
	remove view.Action,
	filter grade.QueryFilter,
	deleteEntity func(context.Context) error,
) error {
	var deleted []int
	return c.store.Run(ctx, view.Optimistic{
		Name:  name,
		Apply: remove,
		Call: func(ctx context.Context) error {
			grades, err := c.facade.ListGrades(ctx, filter)
			if err != nil {
				return errors.Wrap(err, "fetching grades")
			}
			ids := make([]int, len(grades))
			for i, g := range grades {
				ids[i] = g.ID
			}
			res := c.deleteGrades(ctx, ids)
			for _, s := range res.Succeeded {
				deleted = append(deleted, s.Item)
			}
			if err = res.Err(); err != nil {
				return errors.Wrap(err, "deleting grades")
			}
			return deleteEntity(ctx)
		},
		Reconcile: func(error) []view.Action {
			if len(deleted) == 0 {
				return nil
			}
			return []view.Action{view.GradesRemoved{IDs: deleted}}
		},
	})
}

// Grades

// AssignGrade enrolls a student in a course. The grade shows in the view before the store
// confirms it, and is withdrawn if the store rejects it.
func (c *Controller) AssignGrade(ctx context.Context, ng grade.NewGrade) (grade.Grade, error) {
	letter, err := grade.ScoreToLetter(ng.Score)
	if err != nil {
		return grade.Grade{}, err
	}
	now := core.NowFunc()
	tmp := grade.Grade{
		ID:        int(atomic.AddInt64(&c.tempID, -1)),
		StudentID: ng.StudentID,
		CourseID:  ng.CourseID,
		Score:     ng.Score,
		Letter:    letter,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var created grade.Grade
	err = c.store.Run(ctx, view.Optimistic{
		Name:  "assigning grade",
		Apply: view.GradesAdded{Grades: []grade.Grade{tmp}},
		Call: func(ctx context.Context) (err error) {
			created, err = c.facade.CreateGrade(ctx, ng)
			return err
		},
	})
	if err != nil {
		return grade.Grade{}, err
	}
	c.store.Dispatch(view.Batch{
		view.GradesRemoved{IDs: []int{tmp.ID}},
		view.GradesAdded{Grades: []grade.Grade{created}},
	})
	return created, nil
}

// UpdateGrade sets the score of the grade of the (student, course) pair.
func (c *Controller) UpdateGrade(ctx context.Context, es grade.EnrollmentScore) (grade.Grade, error) {
	if err := grade.CheckScore(es.Score); err != nil {
		return grade.Grade{}, err
	}
	g, err := c.facade.UpdateGradeByEnrollment(ctx, es)
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "updating grade")
	}
	c.store.Dispatch(view.GradeUpdated{Grade: g})
	return g, nil
}

// BulkEnroll creates every grade concurrently and adds the created ones to the view.
// Nothing is rolled back.
func (c *Controller) BulkEnroll(ctx context.Context, ngs []grade.NewGrade) bulk.Result[grade.NewGrade, grade.Grade] {
	res := bulk.Run(ctx, ngs, c.bulkLimit, c.facade.CreateGrade)
	if created := res.Values(); len(created) > 0 {
		c.store.Dispatch(view.GradesAdded{Grades: created})
	}
	if len(res.Failed) > 0 {
		c.logger.Warn("bulk enrollment partially failed", core.LogFields{
			"total":  res.Total(),
			"failed": len(res.Failed),
		})
	}
	return res
}

// DeleteGrades optimistically removes the grades, then deletes them from the store.
// The grades whose delete failed are restored.
func (c *Controller) DeleteGrades(ctx context.Context, ids ...int) error {
	var deleted []int
	return c.store.Run(ctx, view.Optimistic{
		Name:  "deleting grades",
		Apply: view.GradesRemoved{IDs: ids},
		Call: func(ctx context.Context) error {
			res := c.deleteGrades(ctx, ids)
			for _, s := range res.Succeeded {
				deleted = append(deleted, s.Item)
			}
			return res.Err()
		},
		Reconcile: func(error) []view.Action {
			return []view.Action{view.GradesRemoved{IDs: deleted}}
		},
	})
}

func (c *Controller) deleteGrades(ctx context.Context, ids []int) bulk.Result[int, struct{}] {
	return bulk.Run(ctx, ids, c.bulkLimit, func(ctx context.Context, id int) (struct{}, error) {
		return struct{}{}, c.facade.DeleteGrade(ctx, id)
	})
}
