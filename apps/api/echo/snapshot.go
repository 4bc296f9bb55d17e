package echoapi

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/faculty"
	"github.com/trezcool/academia/core/grade"
	"github.com/trezcool/academia/core/student"
)

// snapshot holds every collection, as read by the aggregate endpoints.
type snapshot struct {
	Students []student.Student
	Courses  []course.Course
	Faculty  []faculty.Faculty
	Grades   []grade.Grade
}

// loadSnapshot queries the collections concurrently. Faculty are only loaded if withFaculty.
func loadSnapshot(ctx context.Context, deps ServerDeps, withFaculty bool) (snapshot, error) {
	var snap snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Students, err = deps.StudentSvc.Query(ctx, student.QueryFilter{})
		return errors.Wrap(err, "querying students")
	})
	g.Go(func() (err error) {
		snap.Courses, err = deps.CourseSvc.Query(ctx, course.QueryFilter{})
		return errors.Wrap(err, "querying courses")
	})
	g.Go(func() (err error) {
		snap.Grades, err = deps.GradeSvc.Query(ctx, grade.QueryFilter{})
		return errors.Wrap(err, "querying grades")
	})
	if withFaculty {
		g.Go(func() (err error) {
			snap.Faculty, err = deps.FacultySvc.Query(ctx, faculty.QueryFilter{})
			return errors.Wrap(err, "querying faculty")
		})
	}
	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}
