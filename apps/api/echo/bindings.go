package echoapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/export"
)

var (
	orderingParam = "ordering"
	formatParam   = "format"
	objectKey     = "object"
)

type Ordering struct {
	Orderings []core.DBOrdering
}

// Bind reads ?ordering=field,-other (a leading "-" orders descending).
func (ord *Ordering) Bind(ctx echo.Context) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}
	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field != "" {
			ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
		}
	}
}

type (
	PageRequest struct {
		Page     int `query:"page"`
		PageSize int `query:"page_size"`
	}

	LimitRequest struct {
		Limit int `query:"limit"`
	}

	DestroyMultipleRequest struct {
		IDs []int `query:"id"`
	}
)

func (lr LimitRequest) Or(def int) int {
	if lr.Limit > 0 {
		return lr.Limit
	}
	return def
}

// intParam parses the path param name as a positive int.
func intParam(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id < 1 {
		return 0, errInvalidID
	}
	return id, nil
}

// exportFormat returns the requested ?format=, "" when the client wants JSON.
func exportFormat(ctx echo.Context) (string, error) {
	format := strings.ToLower(ctx.QueryParam(formatParam))
	if format == "" || format == "json" {
		return "", nil
	}
	if _, err := export.FormatOf("report." + format); err != nil {
		return "", err
	}
	return format, nil
}

func requestID(ctx echo.Context) string {
	return ctx.Response().Header().Get(echo.HeaderXRequestID)
}
