package academicsvc

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/faculty"
	"github.com/trezcool/academia/core/grade"
	"github.com/trezcool/academia/core/student"
)

const (
	studentsPath = "/v1/students"
	coursesPath  = "/v1/courses"
	facultyPath  = "/v1/faculty"
	gradesPath   = "/v1/grades"
)

// Students

func (c *Client) ListStudents(ctx context.Context) ([]student.Student, error) {
	var students []student.Student
	err := c.do(ctx, http.MethodGet, studentsPath, nil, nil, &students)
	return students, errors.Wrap(err, "listing students")
}

func (c *Client) GetStudent(ctx context.Context, id int) (student.Student, error) {
	var s student.Student
	err := c.do(ctx, http.MethodGet, idPath(studentsPath, id), nil, nil, &s)
	return s, errors.Wrap(err, "getting student")
}

func (c *Client) CreateStudent(ctx context.Context, ns student.NewStudent) (student.Student, error) {
	var s student.Student
	err := c.do(ctx, http.MethodPost, studentsPath, nil, ns, &s)
	return s, errors.Wrap(err, "creating student")
}

func (c *Client) UpdateStudent(ctx context.Context, id int, us student.UpdateStudent) (student.Student, error) {
	var s student.Student
	err := c.do(ctx, http.MethodPatch, idPath(studentsPath, id), nil, us, &s)
	return s, errors.Wrap(err, "updating student")
}

// DeleteStudent deletes the student only; its grades are left in place.
func (c *Client) DeleteStudent(ctx context.Context, id int) error {
	return errors.Wrap(c.do(ctx, http.MethodDelete, idPath(studentsPath, id), nil, nil, nil), "deleting student")
}

// Courses

func (c *Client) ListCourses(ctx context.Context) ([]course.Course, error) {
	var courses []course.Course
	err := c.do(ctx, http.MethodGet, coursesPath, nil, nil, &courses)
	return courses, errors.Wrap(err, "listing courses")
}

func (c *Client) CreateCourse(ctx context.Context, nc course.NewCourse) (course.Course, error) {
	var crs course.Course
	err := c.do(ctx, http.MethodPost, coursesPath, nil, nc, &crs)
	return crs, errors.Wrap(err, "creating course")
}

func (c *Client) UpdateCourse(ctx context.Context, id int, uc course.UpdateCourse) (course.Course, error) {
	var crs course.Course
	err := c.do(ctx, http.MethodPatch, idPath(coursesPath, id), nil, uc, &crs)
	return crs, errors.Wrap(err, "updating course")
}

func (c *Client) DeleteCourse(ctx context.Context, id int) error {
	return errors.Wrap(c.do(ctx, http.MethodDelete, idPath(coursesPath, id), nil, nil, nil), "deleting course")
}

// Faculty

func (c *Client) ListFaculty(ctx context.Context) ([]faculty.Faculty, error) {
	var fclty []faculty.Faculty
	err := c.do(ctx, http.MethodGet, facultyPath, nil, nil, &fclty)
	return fclty, errors.Wrap(err, "listing faculty")
}

// Grades

func (c *Client) ListGrades(ctx context.Context, filter grade.QueryFilter) ([]grade.Grade, error) {
	query := make(url.Values)
	if filter.StudentID != 0 {
		query.Set("student_id", strconv.Itoa(filter.StudentID))
	}
	if filter.CourseID != 0 {
		query.Set("course_id", strconv.Itoa(filter.CourseID))
	}
	var grades []grade.Grade
	err := c.do(ctx, http.MethodGet, gradesPath, query, nil, &grades)
	return grades, errors.Wrap(err, "listing grades")
}

func (c *Client) CreateGrade(ctx context.Context, ng grade.NewGrade) (grade.Grade, error) {
	var g grade.Grade
	err := c.do(ctx, http.MethodPost, gradesPath, nil, ng, &g)
	return g, errors.Wrap(err, "creating grade")
}

func (c *Client) UpdateGrade(ctx context.Context, id int, score float64) (grade.Grade, error) {
	var g grade.Grade
	err := c.do(ctx, http.MethodPatch, idPath(gradesPath, id), nil, grade.UpdateGrade{Score: &score}, &g)
	return g, errors.Wrap(err, "updating grade")
}

func (c *Client) UpdateGradeByEnrollment(ctx context.Context, es grade.EnrollmentScore) (grade.Grade, error) {
	var g grade.Grade
	err := c.do(ctx, http.MethodPatch, gradesPath+"/enrollment", nil, es, &g)
	return g, errors.Wrap(err, "updating enrollment")
}

func (c *Client) DeleteGrade(ctx context.Context, id int) error {
	return errors.Wrap(c.do(ctx, http.MethodDelete, idPath(gradesPath, id), nil, nil, nil), "deleting grade")
}
