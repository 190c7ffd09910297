package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/iliyamo/office-seating/internal/repository"
)

// inUnit runs fn in its own unit of work and returns its result once the
// unit has committed.
func inUnit[T any](ctx context.Context, store repository.Store, fn func(uow repository.UnitOfWork) (T, error)) (T, error) {
	var out T
	err := repository.Within(ctx, store, func(uow repository.UnitOfWork) error {
		v, err := fn(uow)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// deleteIn reports whether fn removed the row. Failures are logged, not
// returned: a missing id and a constraint violation both read as false.
func deleteIn(ctx context.Context, store repository.Store, log *zap.Logger, entity string, id any,
	fn func(uow repository.UnitOfWork) error) bool {
	err := repository.Within(ctx, store, fn)
	if err == nil {
		return true
	}
	if !errors.Is(err, repository.ErrNotFound) {
		log.Warn("delete failed", zap.String("entity", entity), zap.Any("id", id), zap.Error(err))
	}
	return false
}

// mapSlice applies f to every element of in.
func mapSlice[E, D any](in []E, f func(E) D) []D {
	out := make([]D, 0, len(in))
	for _, e := range in {
		out = append(out, f(e))
	}
	return out
}

// requireLayout turns a missing parent layout into a validation error.
func requireLayout(ctx context.Context, uow repository.UnitOfWork, layoutID uint64) error {
	if _, err := uow.Layouts().Get(ctx, layoutID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrValidation, "Layout %d does not exist", layoutID)
		}
		return err
	}
	return nil
}
