package repository

import (
	"context"
	"database/sql"
)

// SQLStore opens units of work backed by MySQL transactions.
type SQLStore struct {
	db  *sql.DB
	now Clock
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: SystemClock}
}

func (s *SQLStore) Begin(ctx context.Context) (UnitOfWork, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqlUnit{
		tx:          tx,
		buildings:   newBuildingRepo(tx, s.now),
		layouts:     newLayoutRepo(tx, s.now),
		walls:       newWallRepo(tx, s.now),
		furniture:   newFurnitureRepo(tx, s.now),
		seats:       newSeatRepo(tx, s.now),
		assignments: newAssignmentRepo(tx, s.now),
		users:       newUserRepo(tx, s.now),
		roles:       newRoleRepo(tx, s.now),
		tokens:      &tokenRepo{q: tx, now: s.now},
	}, nil
}

type sqlUnit struct {
	tx          *sql.Tx
	buildings   *buildingRepo
	layouts     *layoutRepo
	walls       *wallRepo
	furniture   *furnitureRepo
	seats       *seatRepo
	assignments *assignmentRepo
	users       *userRepo
	roles       *roleRepo
	tokens      *tokenRepo
}

func (u *sqlUnit) Buildings() BuildingRepository     { return u.buildings }
func (u *sqlUnit) Layouts() LayoutRepository         { return u.layouts }
func (u *sqlUnit) Walls() WallRepository             { return u.walls }
func (u *sqlUnit) Furniture() FurnitureRepository    { return u.furniture }
func (u *sqlUnit) Seats() SeatRepository             { return u.seats }
func (u *sqlUnit) Assignments() AssignmentRepository { return u.assignments }
func (u *sqlUnit) Users() UserRepository             { return u.users }
func (u *sqlUnit) Roles() RoleRepository             { return u.roles }
func (u *sqlUnit) Tokens() TokenRepository           { return u.tokens }

func (u *sqlUnit) Commit() error { return u.tx.Commit() }

func (u *sqlUnit) Rollback() error {
	if err := u.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return err
	}
	return nil
}
