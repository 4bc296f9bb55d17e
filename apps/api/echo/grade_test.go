package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/academia/apps/api/echo"
	"github.com/trezcool/academia/core/grade"
	"github.com/trezcool/academia/core/student"
	"github.com/trezcool/academia/testutil"
)

func Test_gradeApi_create(t *testing.T) {
	server, svcs := newServer(t, nil)
	repos := svcs.DB.Repositories()
	ada := testutil.CreateStudent(t, repos.Students, "Ada", "Lovelace", "ada@x.io", student.YearSenior)
	cs := testutil.CreateCourse(t, repos.Courses, "CS101", "Programming", "CS", 4)
	testutil.CreateGrade(t, repos.Grades, ada.ID, cs.ID, 80)

	runHTTPTests(t, server, []httpTest{
		{
			name:     "duplicate enrollment",
			method:   http.MethodPost,
			path:     "/v1/grades",
			body:     []byte(`{"student_id": 1, "course_id": 1, "score": 90}`),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"course_id": grade.ErrEnrollmentExists.Error()}),
		},
		{
			name:     "unknown references",
			method:   http.MethodPost,
			path:     "/v1/grades",
			body:     []byte(`{"student_id": 7, "course_id": 8, "score": 90}`),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{
				"student_id": grade.ErrStudentNotFound.Error(),
				"course_id":  grade.ErrCourseNotFound.Error(),
			}),
		},
		{
			name:     "score out of range",
			method:   http.MethodPost,
			path:     "/v1/grades",
			body:     []byte(`{"student_id": 1, "course_id": 1, "score": 100.5}`),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"score": "score must be 100 or less"}),
		},
	})

	ma := testutil.CreateCourse(t, repos.Courses, "MA201", "Algebra", "Math", 3)
	rec := serve(server, http.MethodPost, "/v1/grades", marshalObj(t, grade.NewGrade{StudentID: ada.ID, CourseID: ma.ID, Score: 86.9}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var g grade.Grade
	unmarshal(t, rec, &g)
	assert.Equal(t, "B", g.Letter)
	assert.Equal(t, g.CreatedAt, g.UpdatedAt)
}

func Test_gradeApi_bulk(t *testing.T) {
	server, svcs := newServer(t, nil)
	repos := svcs.DB.Repositories()
	ada := testutil.CreateStudent(t, repos.Students, "Ada", "Lovelace", "ada@x.io", student.YearSenior)
	cs := testutil.CreateCourse(t, repos.Courses, "CS101", "Programming", "CS", 4)
	ma := testutil.CreateCourse(t, repos.Courses, "MA201", "Algebra", "Math", 3)

	tests := []struct {
		name        string
		grades      []grade.NewGrade
		wantCode    int
		wantCreated int
		wantFailed  []int
	}{
		{name: "empty", wantCode: http.StatusCreated},
		{
			name:        "all created",
			grades:      []grade.NewGrade{{StudentID: ada.ID, CourseID: cs.ID, Score: 70}},
			wantCode:    http.StatusCreated,
			wantCreated: 1,
		},
		{
			name: "partial",
			grades: []grade.NewGrade{
				{StudentID: ada.ID, CourseID: ma.ID, Score: 70},
				{StudentID: ada.ID, CourseID: cs.ID, Score: 70}, // already enrolled above
				{StudentID: 404, CourseID: cs.ID, Score: 70},
			},
			wantCode:    http.StatusMultiStatus,
			wantCreated: 1,
			wantFailed:  []int{1, 2},
		},
		{
			name:       "all failed",
			grades:     []grade.NewGrade{{StudentID: ada.ID, CourseID: ma.ID, Score: 70}},
			wantCode:   http.StatusBadRequest,
			wantFailed: []int{0},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(server, http.MethodPost, "/v1/grades/bulk", marshalObj(t, echoapi.BulkGradesRequest{Grades: tc.grades}))
			require.Equal(t, tc.wantCode, rec.Code, rec.Body.String())

			var resp echoapi.BulkGradesResponse
			unmarshal(t, rec, &resp)
			assert.Len(t, resp.Created, tc.wantCreated)
			var failed []int
			for _, f := range resp.Failed {
				failed = append(failed, f.Index)
				assert.NotNil(t, f.Error)
			}
			assert.Equal(t, tc.wantFailed, failed)
		})
	}
}

func Test_gradeApi_queryAndUpdate(t *testing.T) {
	server, svcs := newServer(t, nil)
	repos := svcs.DB.Repositories()
	ada := testutil.CreateStudent(t, repos.Students, "Ada", "Lovelace", "ada@x.io", student.YearSenior)
	alan := testutil.CreateStudent(t, repos.Students, "Alan", "Turing", "alan@x.io", student.YearJunior)
	cs := testutil.CreateCourse(t, repos.Courses, "CS101", "Programming", "CS", 4)
	g1 := testutil.CreateGrade(t, repos.Grades, ada.ID, cs.ID, 80)
	g2 := testutil.CreateGrade(t, repos.Grades, alan.ID, cs.ID, 60)

	runHTTPTests(t, server, []httpTest{
		{name: "all", method: http.MethodGet, path: "/v1/grades", wantCode: http.StatusOK, wantData: marshalObj(t, []grade.Grade{g1, g2})},
		{name: "by student", method: http.MethodGet, path: "/v1/grades?student_id=2", wantCode: http.StatusOK, wantData: marshalObj(t, []grade.Grade{g2})},
		{name: "by pair", method: http.MethodGet, path: "/v1/grades?student_id=2&course_id=1", wantCode: http.StatusOK, wantData: marshalObj(t, []grade.Grade{g2})},
		{name: "none", method: http.MethodGet, path: "/v1/grades?course_id=9", wantCode: http.StatusOK, wantData: []byte(`[]`)},
		{name: "retrieve", method: http.MethodGet, path: "/v1/grades/1", wantCode: http.StatusOK, wantData: marshalObj(t, g1)},
		{
			name:     "update without score",
			method:   http.MethodPatch,
			path:     "/v1/grades/1",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"score": "this field is required"}),
		},
		{
			name:     "unknown enrollment",
			method:   http.MethodPatch,
			path:     "/v1/grades/enrollment",
			body:     []byte(`{"student_id": 1, "course_id": 2, "score": 50}`),
			wantCode: http.StatusNotFound,
			wantData: marshalObj(t, httpErr{Error: grade.ErrEnrollmentNotFound.Error()}),
		},
	})

	t.Run("update", func(t *testing.T) {
		rec := serve(server, http.MethodPatch, "/v1/grades/1", []byte(`{"score": 93}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var g grade.Grade
		unmarshal(t, rec, &g)
		assert.Equal(t, 93.0, g.Score)
		assert.Equal(t, "A", g.Letter)
	})

	t.Run("update by enrollment", func(t *testing.T) {
		rec := serve(server, http.MethodPatch, "/v1/grades/enrollment", []byte(`{"student_id": 2, "course_id": 1, "score": 59.9}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var g grade.Grade
		unmarshal(t, rec, &g)
		assert.Equal(t, g2.ID, g.ID)
		assert.Equal(t, "F", g.Letter)
	})

	t.Run("delete", func(t *testing.T) {
		rec := serve(server, http.MethodDelete, "/v1/grades?id=1&id=2")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		rec = serve(server, http.MethodGet, "/v1/grades")
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}
