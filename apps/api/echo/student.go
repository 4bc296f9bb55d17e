package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/grade"
	"github.com/trezcool/academia/core/report"
	"github.com/trezcool/academia/core/student"
)

type studentApi struct {
	svc       *student.Service
	courseSvc *course.Service
	gradeSvc  *grade.Service
	validate  *validator.Validate
}

func registerStudentAPI(g *echo.Group, deps ServerDeps) {
	api := studentApi{
		svc:       deps.StudentSvc,
		courseSvc: deps.CourseSvc,
		gradeSvc:  deps.GradeSvc,
		validate:  deps.Validate,
	}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.DELETE("", api.destroyMultiple)
	sg.GET("/years", api.queryYears)

	// detail endpoints
	dg := sg.Group("/:id", objectMiddleware("student", func(ctx context.Context, id int) (interface{}, error) {
		return api.svc.GetByID(ctx, id)
	}))
	dg.GET("", api.retrieve)
	dg.PATCH("", api.update)
	dg.DELETE("", api.destroy)
	dg.GET("/profile", api.profile)
}

// Handlers

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	reqCtx := ctx.Request().Context()
	if err := data.Validate(reqCtx, api.validate, api.svc); err != nil {
		return err
	}

	s, err := api.svc.Create(reqCtx, data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *studentApi) query(ctx echo.Context) error {
	filter := new(student.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []student.Student{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)
	filter.Orderings = ordering.Orderings
	filter.Clean()

	students, err := api.svc.Query(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) queryYears(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, student.Years)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	s, err := contextObject[student.Student](ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) update(ctx echo.Context) error {
	s, err := contextObject[student.Student](ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}

	var data student.UpdateStudent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	reqCtx := ctx.Request().Context()
	if err = data.Validate(reqCtx, s, api.validate, api.svc); err != nil {
		return err
	}

	s, err = api.svc.Update(reqCtx, s, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, s)
}

// destroy only deletes the student: clients remove its grades first.
func (api *studentApi) destroy(ctx echo.Context) error {
	s, err := contextObject[student.Student](ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}
	if err = api.svc.Delete(ctx.Request().Context(), s.ID); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) profile(ctx echo.Context) error {
	s, err := contextObject[student.Student](ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}
	reqCtx := ctx.Request().Context()

	grades, err := api.gradeSvc.Query(reqCtx, grade.QueryFilter{StudentID: s.ID})
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	courses, err := api.courseSvc.Query(reqCtx, course.QueryFilter{})
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}

	return ctx.JSON(http.StatusOK, report.NewProfile(s, courses, grades))
}
