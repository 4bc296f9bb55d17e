// Package bulk runs N independent sub-operations concurrently and reports which ones succeeded.
// Nothing is rolled back: callers reconcile using the returned Result.
package bulk

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

type (
	Success[T, R any] struct {
		Index int
		Item  T
		Value R
	}

	Failure[T any] struct {
		Index int
		Item  T
		Err   error
	}

	Result[T, R any] struct {
		Succeeded []Success[T, R]
		Failed    []Failure[T]
	}
)

// Run calls fn for every item with at most limit calls in flight (no limit if limit < 1).
// A failing call does not cancel the others. Items not started before ctx is done fail with ctx.Err().
// Succeeded and Failed are in input order.
func Run[T, R any](ctx context.Context, items []T, limit int, fn func(context.Context, T) (R, error)) Result[T, R] {
	values := make([]R, len(items))
	errs := make([]error, len(items))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := range items {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			values[i], errs[i] = fn(ctx, items[i])
			return nil
		})
	}
	_ = g.Wait()

	var res Result[T, R]
	for i, item := range items {
		if errs[i] != nil {
			res.Failed = append(res.Failed, Failure[T]{Index: i, Item: item, Err: errs[i]})
		} else {
			res.Succeeded = append(res.Succeeded, Success[T, R]{Index: i, Item: item, Value: values[i]})
		}
	}
	return res
}

func (r Result[T, R]) Total() int {
	return len(r.Succeeded) + len(r.Failed)
}

// Values returns the values of the successful calls.
func (r Result[T, R]) Values() []R {
	vals := make([]R, len(r.Succeeded))
	for i, s := range r.Succeeded {
		vals[i] = s.Value
	}
	return vals
}

// FailedItems returns the items whose call failed.
func (r Result[T, R]) FailedItems() []T {
	items := make([]T, len(r.Failed))
	for i, f := range r.Failed {
		items[i] = f.Item
	}
	return items
}

// Err returns a *PartialFailureError if any call failed, nil otherwise.
func (r Result[T, R]) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	perr := &PartialFailureError{Total: r.Total(), Succeeded: len(r.Succeeded)}
	for _, f := range r.Failed {
		perr.Failures = append(perr.Failures, ItemError{Index: f.Index, Err: f.Err})
	}
	return perr
}

type ItemError struct {
	Index int
	Err   error
}

// PartialFailureError is returned when fewer than Total sub-operations succeeded.
type PartialFailureError struct {
	Total     int
	Succeeded int
	Failures  []ItemError
}

func (e *PartialFailureError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, fmt.Sprintf("#%d: %v", f.Index, f.Err))
	}
	return fmt.Sprintf("%d of %d operations failed (%s)", len(e.Failures), e.Total, strings.Join(msgs, "; "))
}

// AllFailed reports whether no sub-operation succeeded.
func (e *PartialFailureError) AllFailed() bool {
	return e.Succeeded == 0
}
