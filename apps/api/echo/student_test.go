package echoapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/academia/core/grade"
	"github.com/trezcool/academia/core/report"
	"github.com/trezcool/academia/core/student"
	"github.com/trezcool/academia/testutil"
)

func Test_home(t *testing.T) {
	server, _ := newServer(t, nil)
	rec := serve(server, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Academia API!", rec.Body.String())
}

func Test_studentApi_create(t *testing.T) {
	server, svcs := newServer(t, nil)
	testutil.CreateStudent(t, svcs.DB.Repositories().Students, "Ada", "Lovelace", "ada@x.io", student.YearSenior)

	tests := []httpTest{
		{
			name:     "missing fields",
			method:   http.MethodPost,
			path:     "/v1/students",
			body:     []byte(`{"email": "nope", "year": "Fifth"}`),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{
				"first_name": "this field is required",
				"last_name":  "this field is required",
				"email":      "email must be a valid email address",
				"year":       "year must be one of Freshman, Sophomore, Junior, Senior or Graduate",
				"major":      "this field is required",
			}),
		},
		{
			name:     "email taken",
			method:   http.MethodPost,
			path:     "/v1/students",
			body:     []byte(`{"first_name": "A", "last_name": "B", "email": "ADA@x.io", "year": "Junior", "major": "Math"}`),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"email": student.ErrEmailExists.Error()}),
		},
		{
			name:     "malformed body",
			method:   http.MethodPost,
			path:     "/v1/students",
			body:     []byte(`{"first_name": `),
			wantCode: http.StatusBadRequest,
		},
	}
	runHTTPTests(t, server, tests)

	t.Run("created", func(t *testing.T) {
		rec := serve(server, http.MethodPost, "/v1/students", []byte(`{
			"first_name": " Grace ", "last_name": "Hopper", "email": "Grace@x.io", "year": "Graduate", "major": "CS",
			"attributes": [{"key": "Advisor", "value": "Dr. Who"}]
		}`))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var s student.Student
		unmarshal(t, rec, &s)
		assert.Equal(t, 2, s.ID)
		assert.Equal(t, "Grace", s.FirstName)
		assert.Equal(t, "grace@x.io", s.Email)
		assert.Len(t, s.Attributes, 1)
		assert.False(t, s.CreatedAt.IsZero())
	})
}

func Test_studentApi_queryAndDetail(t *testing.T) {
	server, svcs := newServer(t, nil)
	repo := svcs.DB.Repositories().Students
	ada := testutil.CreateStudent(t, repo, "Ada", "Lovelace", "ada@x.io", student.YearSenior)
	alan := testutil.CreateStudent(t, repo, "Alan", "Turing", "alan@x.io", student.YearJunior)

	tests := []httpTest{
		{name: "all", method: http.MethodGet, path: "/v1/students", wantCode: http.StatusOK, wantData: marshalObj(t, []student.Student{ada, alan})},
		{name: "search", method: http.MethodGet, path: "/v1/students?search=turing", wantCode: http.StatusOK, wantData: marshalObj(t, []student.Student{alan})},
		{name: "year", method: http.MethodGet, path: "/v1/students?year=Senior", wantCode: http.StatusOK, wantData: marshalObj(t, []student.Student{ada})},
		{name: "all years", method: http.MethodGet, path: "/v1/students?year=all", wantCode: http.StatusOK, wantData: marshalObj(t, []student.Student{ada, alan})},
		{name: "ordering", method: http.MethodGet, path: "/v1/students?ordering=-first_name", wantCode: http.StatusOK, wantData: marshalObj(t, []student.Student{alan, ada})},
		{name: "no match", method: http.MethodGet, path: "/v1/students?search=nobody", wantCode: http.StatusOK, wantData: []byte(`[]`)},
		{name: "years", method: http.MethodGet, path: "/v1/students/years", wantCode: http.StatusOK, wantData: marshalObj(t, student.Years)},
		{name: "retrieve", method: http.MethodGet, path: "/v1/students/1", wantCode: http.StatusOK, wantData: marshalObj(t, ada)},
		{name: "not found", method: http.MethodGet, path: "/v1/students/404", wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Error: "not found"})},
		{name: "bad id", method: http.MethodGet, path: "/v1/students/abc", wantCode: http.StatusNotFound},
	}
	runHTTPTests(t, server, tests)
}

func Test_studentApi_update(t *testing.T) {
	server, svcs := newServer(t, nil)
	repo := svcs.DB.Repositories().Students
	ada := testutil.CreateStudent(t, repo, "Ada", "Lovelace", "ada@x.io", student.YearSenior)
	testutil.CreateStudent(t, repo, "Alan", "Turing", "alan@x.io", student.YearJunior)

	runHTTPTests(t, server, []httpTest{
		{
			name:     "email taken",
			method:   http.MethodPatch,
			path:     "/v1/students/1",
			body:     []byte(`{"email": "alan@x.io"}`),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"email": student.ErrEmailExists.Error()}),
		},
		{
			name:     "blank name",
			method:   http.MethodPatch,
			path:     "/v1/students/1",
			body:     []byte(`{"first_name": "  "}`),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"first_name": "this field cannot be blank"}),
		},
	})

	rec := serve(server, http.MethodPatch, "/v1/students/1", []byte(`{"major": "Poetry", "year": "Graduate"}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	want := ada
	want.Major = "Poetry"
	want.Year = student.YearGraduate
	var got student.Student
	unmarshal(t, rec, &got)
	assert.Equal(t, want.Major, got.Major)
	assert.Equal(t, want.Year, got.Year)
	assert.Equal(t, want.Email, got.Email)
}

func Test_studentApi_destroy(t *testing.T) {
	server, svcs := newServer(t, nil)
	repos := svcs.DB.Repositories()
	ada := testutil.CreateStudent(t, repos.Students, "Ada", "Lovelace", "ada@x.io", student.YearSenior)
	testutil.CreateStudent(t, repos.Students, "Alan", "Turing", "alan@x.io", student.YearJunior)
	grace := testutil.CreateStudent(t, repos.Students, "Grace", "Hopper", "grace@x.io", student.YearGraduate)
	cs := testutil.CreateCourse(t, repos.Courses, "CS101", "Programming", "CS", 4)
	testutil.CreateGrade(t, repos.Grades, ada.ID, cs.ID, 90)

	runHTTPTests(t, server, []httpTest{
		{name: "single", method: http.MethodDelete, path: "/v1/students/1", wantCode: http.StatusNoContent},
		{name: "gone", method: http.MethodDelete, path: "/v1/students/1", wantCode: http.StatusNotFound},
		{name: "multiple", method: http.MethodDelete, path: "/v1/students?id=2&id=404", wantCode: http.StatusNoContent},
		{name: "remaining", method: http.MethodGet, path: "/v1/students", wantCode: http.StatusOK, wantData: marshalObj(t, []student.Student{grace})},
		{name: "grades are left to the client", method: http.MethodGet, path: "/v1/grades?student_id=1", wantCode: http.StatusOK},
	})

	grades, err := repos.Grades.QueryGrades(context.Background(), grade.QueryFilter{StudentID: ada.ID})
	require.NoError(t, err)
	assert.Len(t, grades, 1)
}

func Test_studentApi_profile(t *testing.T) {
	server, svcs := newServer(t, nil)
	repos := svcs.DB.Repositories()
	ada := testutil.CreateStudent(t, repos.Students, "Ada", "Lovelace", "ada@x.io", student.YearSenior)
	cs := testutil.CreateCourse(t, repos.Courses, "CS101", "Programming", "CS", 4)
	ma := testutil.CreateCourse(t, repos.Courses, "MA201", "Algebra", "Math", 3)
	testutil.CreateGrade(t, repos.Grades, ada.ID, cs.ID, 95)
	testutil.CreateGrade(t, repos.Grades, ada.ID, ma.ID, 85)
	testutil.CreateGrade(t, repos.Grades, ada.ID, 404, 50) // orphan

	rec := serve(server, http.MethodGet, "/v1/students/1/profile")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var p report.Profile
	unmarshal(t, rec, &p)
	assert.Equal(t, ada.ID, p.Student.ID)
	assert.Len(t, p.Courses, 2)
	assert.Equal(t, 2.33, p.GPA)        // (4.0 + 3.0 + 0.0) / 3
	assert.Equal(t, 77, p.AverageScore) // (95 + 85 + 50) / 3
}
