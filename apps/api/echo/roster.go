package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/view"
)

type rosterApi struct {
	deps     ServerDeps
	pageSize int
}

func registerRosterAPI(g *echo.Group, deps ServerDeps) {
	api := rosterApi{deps: deps, pageSize: deps.Conf.Dashboard.RosterPageSize}
	g.GET("/roster", api.query)
}

type (
	RosterRequest struct {
		PageRequest
		Search string `query:"search"`
	}

	RosterResponse struct {
		view.Page[view.Row]
		Stats view.JoinStats `json:"stats"`
	}
)

// query returns a page of grades joined with their student and course, orphans excluded.
func (api *rosterApi) query(ctx echo.Context) error {
	var req RosterRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to RosterRequest")
	}
	if req.PageSize < 1 {
		req.PageSize = api.pageSize
	}

	snap, err := loadSnapshot(ctx.Request().Context(), api.deps, false)
	if err != nil {
		return err
	}
	rows, stats := view.JoinWithStats(snap.Grades, snap.Students, snap.Courses)
	rows = view.Filter(rows, view.RosterSearch(req.Search))

	return ctx.JSON(http.StatusOK, RosterResponse{
		Page:  view.Paginate(rows, req.PageSize, req.Page),
		Stats: stats,
	})
}
