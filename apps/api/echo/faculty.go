package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/faculty"
)

type facultyApi struct {
	svc *faculty.Service
}

// Faculty are read-only.
func registerFacultyAPI(g *echo.Group, deps ServerDeps) {
	api := facultyApi{svc: deps.FacultySvc}

	fg := g.Group("/faculty")
	fg.GET("", api.query)
	fg.GET("/:id", api.retrieve, objectMiddleware("faculty", func(ctx context.Context, id int) (interface{}, error) {
		return api.svc.GetByID(ctx, id)
	}))
}

func (api *facultyApi) query(ctx echo.Context) error {
	filter := new(faculty.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []faculty.Faculty{})
	}
	filter.Clean()

	fclty, err := api.svc.Query(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying faculty")
	}
	if fclty == nil {
		fclty = []faculty.Faculty{}
	}
	return ctx.JSON(http.StatusOK, fclty)
}

func (api *facultyApi) retrieve(ctx echo.Context) error {
	f, err := contextObject[faculty.Faculty](ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, f)
}
