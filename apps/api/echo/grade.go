package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/bulk"
	"github.com/trezcool/academia/core/grade"
)

type gradeApi struct {
	svc             *grade.Service
	validate        *validator.Validate
	translator      ut.Translator
	logger          core.Logger
	bulkConcurrency int
}

func registerGradeAPI(g *echo.Group, deps ServerDeps) {
	api := gradeApi{
		svc:             deps.GradeSvc,
		validate:        deps.Validate,
		translator:      deps.Translator,
		logger:          deps.Logger,
		bulkConcurrency: deps.Conf.Client.BulkConcurrency,
	}

	gg := g.Group("/grades")
	gg.GET("", api.query)
	gg.POST("", api.create)
	gg.POST("/bulk", api.createMultiple)
	gg.PATCH("/enrollment", api.updateByEnrollment)
	gg.DELETE("", api.destroyMultiple)

	// detail endpoints
	dg := gg.Group("/:id", objectMiddleware("grade", func(ctx context.Context, id int) (interface{}, error) {
		return api.svc.GetByID(ctx, id)
	}))
	dg.GET("", api.retrieve)
	dg.PATCH("", api.update)
	dg.DELETE("", api.destroy)
}

type (
	BulkGradesRequest struct {
		Grades []grade.NewGrade `json:"grades"`
	}

	BulkFailure struct {
		Index int            `json:"index"`
		Item  grade.NewGrade `json:"item"`
		Error interface{}    `json:"error"`
	}

	BulkGradesResponse struct {
		Created []grade.Grade `json:"created"`
		Failed  []BulkFailure `json:"failed"`
	}
)

// Handlers

func (api *gradeApi) create(ctx echo.Context) error {
	var data grade.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	reqCtx := ctx.Request().Context()
	if err := data.Validate(reqCtx, api.validate, api.svc); err != nil {
		return err
	}

	g, err := api.svc.Create(reqCtx, data)
	if err != nil {
		return errors.Wrap(err, "creating grade")
	}
	return ctx.JSON(http.StatusCreated, g)
}

// createMultiple enrolls every item it can. It answers 201 if all items were created,
// 207 if only some were and 400 if none was.
func (api *gradeApi) createMultiple(ctx echo.Context) error {
	var data BulkGradesRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to BulkGradesRequest")
	}

	res := api.svc.BulkCreate(ctx.Request().Context(), data.Grades, api.bulkConcurrency)
	resp := BulkGradesResponse{
		Created: res.Values(),
		Failed:  make([]BulkFailure, 0, len(res.Failed)),
	}
	for _, f := range res.Failed {
		msg, ok := validationMessage(f.Err, api.translator)
		if !ok {
			api.logger.Error("bulk grade creation", errors.Wrapf(f.Err, "creating grade #%d", f.Index), core.LogFields{
				"request_id": requestID(ctx),
			})
			msg = http.StatusText(http.StatusInternalServerError)
		}
		resp.Failed = append(resp.Failed, BulkFailure{Index: f.Index, Item: f.Item, Error: msg})
	}

	code := http.StatusCreated
	var perr *bulk.PartialFailureError
	if errors.As(res.Err(), &perr) {
		code = http.StatusMultiStatus
		if perr.AllFailed() {
			code = http.StatusBadRequest
		}
	}
	return ctx.JSON(code, resp)
}

func (api *gradeApi) query(ctx echo.Context) error {
	filter := new(grade.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []grade.Grade{})
	}

	grades, err := api.svc.Query(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	if grades == nil {
		grades = []grade.Grade{}
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *gradeApi) retrieve(ctx echo.Context) error {
	g, err := contextObject[grade.Grade](ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *gradeApi) update(ctx echo.Context) error {
	g, err := contextObject[grade.Grade](ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}

	var data grade.UpdateGrade
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateGrade")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	g, err = api.svc.Update(ctx.Request().Context(), g.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating grade")
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *gradeApi) updateByEnrollment(ctx echo.Context) error {
	var data grade.EnrollmentScore
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to EnrollmentScore")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	g, err := api.svc.UpdateByEnrollment(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "updating enrollment")
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *gradeApi) destroy(ctx echo.Context) error {
	g, err := contextObject[grade.Grade](ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}
	if err = api.svc.Delete(ctx.Request().Context(), g.ID); err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *gradeApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting grades")
	}
	return ctx.NoContent(http.StatusNoContent)
}
