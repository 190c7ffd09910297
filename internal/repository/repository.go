package repository

import (
	"context"

	"github.com/iliyamo/office-seating/internal/model"
)

// Repository is the capability set shared by every entity repository.
// K is the primary key type: uint64 for auto-increment tables, string for
// users. Add fills the key and timestamps; Update refreshes UpdatedAt.
type Repository[T any, K comparable] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id K) (*T, error)
	Add(ctx context.Context, e *T) error
	Update(ctx context.Context, e *T) error
	Delete(ctx context.Context, id K) error
}

type BuildingRepository interface {
	Repository[model.Building, uint64]
}

type LayoutRepository interface {
	Repository[model.Layout, uint64]
	ListByBuilding(ctx context.Context, buildingID uint64) ([]model.Layout, error)
}

type WallRepository interface {
	Repository[model.Wall, uint64]
	ListByLayout(ctx context.Context, layoutID uint64) ([]model.Wall, error)
}

type FurnitureRepository interface {
	Repository[model.Furniture, uint64]
	ListByLayout(ctx context.Context, layoutID uint64) ([]model.Furniture, error)
}

type SeatRepository interface {
	Repository[model.Seat, uint64]
	ListByLayout(ctx context.Context, layoutID uint64) ([]model.Seat, error)
	// GetByAssignedUser returns the seat currently held by userID.
	GetByAssignedUser(ctx context.Context, userID string) (*model.Seat, error)
	LocationByUser(ctx context.Context, userID string) (*model.SeatLocation, error)
	// AssignedLocations maps every seated user id to their seat.
	AssignedLocations(ctx context.Context) (map[string]model.SeatLocation, error)
}

type AssignmentRepository interface {
	Repository[model.SeatAssignment, uint64]
	// OpenForSeat returns the assignment of seatID whose end date is null.
	OpenForSeat(ctx context.Context, seatID uint64) (*model.SeatAssignment, error)
	// HistoryForSeat lists all assignments of a seat, newest start first,
	// with seat identifier and user display name resolved.
	HistoryForSeat(ctx context.Context, seatID uint64) ([]model.SeatAssignment, error)
}

// UserFilter narrows a user search. Zero values do not filter.
type UserFilter struct {
	Term       string // substring of name, email, department or job title
	Department string // exact department
	HasSeat    *bool
}

type UserRepository interface {
	Repository[model.User, string]
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Search(ctx context.Context, f UserFilter) ([]model.User, error)
	Roles(ctx context.Context, userID string) ([]string, error)
	RolesByUser(ctx context.Context) (map[string][]string, error)
	AddRole(ctx context.Context, userID string, roleID uint64) error
	RemoveRole(ctx context.Context, userID string, roleID uint64) error
}

type RoleRepository interface {
	Repository[model.Role, uint64]
	GetByName(ctx context.Context, name string) (*model.Role, error)
}

// TokenRepository persists refresh token hashes.
type TokenRepository interface {
	StoreRefresh(ctx context.Context, t *model.RefreshToken) error
	// ValidateRefresh returns the owner of a non-revoked, unexpired token.
	ValidateRefresh(ctx context.Context, tokenHash string) (string, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}

// UnitOfWork groups one repository per entity type over a single
// transaction. Nothing is visible to other units until Commit.
type UnitOfWork interface {
	Buildings() BuildingRepository
	Layouts() LayoutRepository
	Walls() WallRepository
	Furniture() FurnitureRepository
	Seats() SeatRepository
	Assignments() AssignmentRepository
	Users() UserRepository
	Roles() RoleRepository
	Tokens() TokenRepository
	Commit() error
	Rollback() error
}

// Store opens units of work.
type Store interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

// Within runs fn in a fresh unit of work and commits it when fn succeeds.
// The unit is rolled back on error or panic.
func Within(ctx context.Context, s Store, fn func(uow UnitOfWork) error) (err error) {
	uow, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = uow.Rollback()
		}
	}()
	if err = fn(uow); err != nil {
		return err
	}
	if err = uow.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
