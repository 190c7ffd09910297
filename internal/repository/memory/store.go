// Package memory is an in-process implementation of repository.Store used
// for local development (DB_DRIVER=memory) and tests. It mirrors the MySQL
// schema: foreign keys, unique keys and cascades behave the same way.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/office-seating/internal/model"
	"github.com/iliyamo/office-seating/internal/repository"
)

// Store keeps all tables in memory. A unit of work holds the store lock
// from Begin until Commit or Rollback and works on a private copy, so
// units are serialized and a rollback simply drops the copy.
type Store struct {
	mu   sync.Mutex
	data *tables
	now  repository.Clock
}

// NewStore returns an empty store with the Admin, Manager and User roles.
func NewStore() *Store {
	return NewStoreWithClock(repository.SystemClock)
}

func NewStoreWithClock(now repository.Clock) *Store {
	s := &Store{data: newTables(), now: now}
	ts := now()
	for _, r := range []model.Role{
		{Name: model.RoleAdmin, Description: "Administrator with full access"},
		{Name: model.RoleManager, Description: "Manager with elevated access"},
		{Name: model.RoleUser, Description: "Regular user"},
	} {
		s.data.seq["roles"]++
		r.ID = s.data.seq["roles"]
		r.CreatedAt, r.UpdatedAt = ts, ts
		s.data.roles[r.ID] = r
	}
	return s
}

func (s *Store) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	return &unit{store: s, data: s.data.clone()}, nil
}

type unit struct {
	store *Store
	data  *tables
	done  bool
}

func (u *unit) Buildings() repository.BuildingRepository     { return buildings{u} }
func (u *unit) Layouts() repository.LayoutRepository         { return layouts{u} }
func (u *unit) Walls() repository.WallRepository             { return walls{u} }
func (u *unit) Furniture() repository.FurnitureRepository    { return furniture{u} }
func (u *unit) Seats() repository.SeatRepository             { return seats{u} }
func (u *unit) Assignments() repository.AssignmentRepository { return assignments{u} }
func (u *unit) Users() repository.UserRepository             { return users{u} }
func (u *unit) Roles() repository.RoleRepository             { return roles{u} }
func (u *unit) Tokens() repository.TokenRepository           { return tokens{u} }

func (u *unit) Commit() error {
	if u.done {
		return errUnitDone
	}
	u.store.data = u.data
	u.finish()
	return nil
}

func (u *unit) Rollback() error {
	if !u.done {
		u.finish()
	}
	return nil
}

func (u *unit) finish() {
	u.done = true
	u.store.mu.Unlock()
}

func (u *unit) now() time.Time { return u.store.now() }

func (u *unit) nextID(table string) uint64 {
	u.data.seq[table]++
	return u.data.seq[table]
}
