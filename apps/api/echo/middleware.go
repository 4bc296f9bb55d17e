package echoapi

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// objectMiddleware loads the object identified by the :id path param into the echo.Context.
func objectMiddleware(name string, get func(ctx context.Context, id int) (interface{}, error)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, err := intParam(ctx, "id")
			if err != nil {
				return errHttpNotFound
			}
			obj, err := get(ctx.Request().Context(), id)
			if err != nil {
				if isNotFound(errors.Cause(err)) {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding "+name+" by ID")
			}
			ctx.Set(objectKey, obj)
			return next(ctx)
		}
	}
}

// contextObject returns the object set by objectMiddleware.
func contextObject[T any](ctx echo.Context) (T, error) {
	obj, ok := ctx.Get(objectKey).(T)
	if !ok {
		return obj, errors.New("object not found in echo.Context")
	}
	return obj, nil
}
