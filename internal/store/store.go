// Package store provides narrow, ownership-scoped persistence operations over
// the relational database. Scoped mutations that match no existing row report
// ErrNotFound explicitly; callers never have to infer absence from a silent
// zero-rows-affected result.
package store

import (
	"context"
	"errors"
)

// ErrNotFound indicates that no record matched the supplied identity (and,
// for scoped operations, owner) constraints.
var ErrNotFound = errors.New("store: record not found")

func ensuredContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
