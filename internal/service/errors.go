// Package service implements the floor plan, seat assignment, user and
// authentication use cases on top of repository units of work.
package service

import (
	"errors"
	"fmt"

	"github.com/iliyamo/office-seating/internal/repository"
)

// Error kinds. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
)

// Error pairs a kind with a message that is safe to show to clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// fromRepo turns repository sentinels into service errors. what names the
// entity for not-found messages ("Seat", "Layout").
func fromRepo(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return newError(ErrNotFound, "%s not found", what)
	case errors.Is(err, repository.ErrDuplicate):
		return newError(ErrConflict, "%s already exists", what)
	case errors.Is(err, repository.ErrConstraint):
		return newError(ErrValidation, "%s references a missing or dependent record", what)
	}
	return err
}
