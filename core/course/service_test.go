package course_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/testutil"
)

func TestNewCourse_Validate(t *testing.T) {
	ctx := context.Background()
	svcs := testutil.NewServices(t, nil)
	testutil.CreateCourse(t, svcs.DB.Repositories().Courses, "CS101", "Programming", "CS", 4)

	tests := []struct {
		name      string
		nc        course.NewCourse
		wantErr   bool
		wantField string
	}{
		{name: "valid", nc: course.NewCourse{Code: " ma201 ", Title: "Algebra", Department: "Math", Credits: 3, FacultyIDs: []int{2, 2, 1}}},
		{name: "bad code", nc: course.NewCourse{Code: "#CS", Title: "X", Department: "CS", Credits: 3}, wantErr: true, wantField: "code"},
		{name: "too many credits", nc: course.NewCourse{Code: "CS9", Title: "X", Department: "CS", Credits: 11}, wantErr: true, wantField: "credits"},
		{name: "no credits", nc: course.NewCourse{Code: "CS9", Title: "X", Department: "CS"}, wantErr: true, wantField: "credits"},
		{name: "bad faculty", nc: course.NewCourse{Code: "CS9", Title: "X", Department: "CS", Credits: 2, FacultyIDs: []int{0}}, wantErr: true, wantField: "faculty_ids[0]"},
		{name: "code taken", nc: course.NewCourse{Code: "cs101", Title: "X", Department: "CS", Credits: 2}, wantErr: true, wantField: "code"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.nc.Validate(ctx, svcs.Validate, svcs.Course)
			if !tc.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "MA201", tc.nc.Code)
				assert.Equal(t, []int{2, 1}, tc.nc.FacultyIDs)
				return
			}
			require.Error(t, err)
			var verrs validator.ValidationErrors
			var cerr *core.ValidationError
			switch {
			case errors.As(err, &verrs):
				assert.Equal(t, tc.wantField, verrs[0].Field())
			case errors.As(err, &cerr):
				assert.Equal(t, tc.wantField, cerr.Fields[0].Field)
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestService_CRUD(t *testing.T) {
	ctx := context.Background()
	svcs := testutil.NewServices(t, nil)
	svc := svcs.Course

	nc := course.NewCourse{Code: "phys150", Title: "Mechanics", Department: "Physics", Credits: 4, FacultyIDs: []int{3}}
	require.NoError(t, nc.Validate(ctx, svcs.Validate, svc))
	c, err := svc.Create(ctx, nc)
	require.NoError(t, err)
	assert.Equal(t, "PHYS150", c.Code)
	assert.True(t, c.HasFaculty(3))
	assert.NotNil(t, c.Metadata)

	credits := 5
	uc := course.UpdateCourse{Credits: &credits, FacultyIDs: &[]int{}}
	require.NoError(t, uc.Validate(ctx, c, svcs.Validate, svc))
	updated, err := svc.Update(ctx, c, uc)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Credits)
	assert.Empty(t, updated.FacultyIDs)
	assert.Equal(t, c.Title, updated.Title)

	qf := course.QueryFilter{Search: "mech"}
	qf.Clean()
	courses, err := svc.Query(ctx, qf)
	require.NoError(t, err)
	require.Len(t, courses, 1)

	ok, err := svc.Exists(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.Delete(ctx, c.ID))
	ok, err = svc.Exists(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
