package dashboard

import (
	"context"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/faculty"
	"github.com/trezcool/academia/core/grade"
	"github.com/trezcool/academia/core/student"
)

// Facade is the data access layer of the dashboard: one call per store operation.
// Deletes do not cascade.
type Facade interface {
	ListStudents(ctx context.Context) ([]student.Student, error)
	CreateStudent(ctx context.Context, ns student.NewStudent) (student.Student, error)
	UpdateStudent(ctx context.Context, id int, us student.UpdateStudent) (student.Student, error)
	DeleteStudent(ctx context.Context, id int) error

	ListCourses(ctx context.Context) ([]course.Course, error)
	CreateCourse(ctx context.Context, nc course.NewCourse) (course.Course, error)
	UpdateCourse(ctx context.Context, id int, uc course.UpdateCourse) (course.Course, error)
	DeleteCourse(ctx context.Context, id int) error

	ListFaculty(ctx context.Context) ([]faculty.Faculty, error)

	ListGrades(ctx context.Context, filter grade.QueryFilter) ([]grade.Grade, error)
	CreateGrade(ctx context.Context, ng grade.NewGrade) (grade.Grade, error)
	UpdateGradeByEnrollment(ctx context.Context, es grade.EnrollmentScore) (grade.Grade, error)
	DeleteGrade(ctx context.Context, id int) error
}
