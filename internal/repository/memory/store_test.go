package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/office-seating/internal/model"
	"github.com/iliyamo/office-seating/internal/repository"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func within(t *testing.T, s *Store, fn func(uow repository.UnitOfWork) error) {
	t.Helper()
	require.NoError(t, repository.Within(context.Background(), s, fn))
}

// floor creates a building with one layout and returns their ids.
func floor(t *testing.T, s *Store) (uint64, uint64) {
	t.Helper()
	ctx := context.Background()
	var bID, lID uint64
	within(t, s, func(uow repository.UnitOfWork) error {
		b := &model.Building{Name: "HQ", IsActive: true}
		require.NoError(t, uow.Buildings().Add(ctx, b))
		l := &model.Layout{BuildingID: b.ID, Name: "Main Floor", FloorNumber: 1}
		require.NoError(t, uow.Layouts().Add(ctx, l))
		bID, lID = b.ID, l.ID
		return nil
	})
	return bID, lID
}

func TestRolesSeeded(t *testing.T) {
	s := NewStore()
	within(t, s, func(uow repository.UnitOfWork) error {
		roles, err := uow.Roles().List(context.Background())
		require.NoError(t, err)
		require.Len(t, roles, 3)
		r, err := uow.Roles().GetByName(context.Background(), "manager")
		require.NoError(t, err)
		assert.Equal(t, model.RoleManager, r.Name)
		return nil
	})
}

func TestRollbackDiscardsChanges(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := repository.Within(ctx, s, func(uow repository.UnitOfWork) error {
		require.NoError(t, uow.Buildings().Add(ctx, &model.Building{Name: "Ghost"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	within(t, s, func(uow repository.UnitOfWork) error {
		list, err := uow.Buildings().List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
		return nil
	})
}

func TestDeleteBuildingCascades(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	bID, lID := floor(t, s)

	within(t, s, func(uow repository.UnitOfWork) error {
		usr := &model.User{Email: "u@example.com", DisplayName: "U"}
		require.NoError(t, uow.Users().Add(ctx, usr))
		require.NoError(t, uow.Walls().Add(ctx, &model.Wall{LayoutID: lID, EndX: 10}))
		require.NoError(t, uow.Furniture().Add(ctx, &model.Furniture{LayoutID: lID, Type: "desk"}))
		seat := &model.Seat{LayoutID: lID, Identifier: "A101", Status: model.SeatOccupied, AssignedUserID: &usr.ID}
		require.NoError(t, uow.Seats().Add(ctx, seat))
		return uow.Assignments().Add(ctx, &model.SeatAssignment{SeatID: seat.ID, UserID: usr.ID, StartDate: t0})
	})

	within(t, s, func(uow repository.UnitOfWork) error {
		return uow.Buildings().Delete(ctx, bID)
	})

	within(t, s, func(uow repository.UnitOfWork) error {
		ls, _ := uow.Layouts().List(ctx)
		ws, _ := uow.Walls().List(ctx)
		fs, _ := uow.Furniture().List(ctx)
		ss, _ := uow.Seats().List(ctx)
		as, _ := uow.Assignments().List(ctx)
		assert.Empty(t, ls)
		assert.Empty(t, ws)
		assert.Empty(t, fs)
		assert.Empty(t, ss)
		assert.Empty(t, as)
		return nil
	})
}

func TestForeignKeysEnforced(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	err := repository.Within(ctx, s, func(uow repository.UnitOfWork) error {
		return uow.Layouts().Add(ctx, &model.Layout{BuildingID: 42, Name: "Orphan"})
	})
	assert.ErrorIs(t, err, repository.ErrConstraint)

	err = repository.Within(ctx, s, func(uow repository.UnitOfWork) error {
		return uow.Seats().Add(ctx, &model.Seat{LayoutID: 42, Identifier: "X"})
	})
	assert.ErrorIs(t, err, repository.ErrConstraint)
}

func TestUserHoldsAtMostOneSeat(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, lID := floor(t, s)

	err := repository.Within(ctx, s, func(uow repository.UnitOfWork) error {
		usr := &model.User{Email: "u@example.com"}
		require.NoError(t, uow.Users().Add(ctx, usr))
		require.NoError(t, uow.Seats().Add(ctx, &model.Seat{LayoutID: lID, Identifier: "A1", AssignedUserID: &usr.ID}))
		return uow.Seats().Add(ctx, &model.Seat{LayoutID: lID, Identifier: "A2", AssignedUserID: &usr.ID})
	})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserDeleteRules(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, lID := floor(t, s)

	var withHistory, seatedOnly string
	var seatID uint64
	within(t, s, func(uow repository.UnitOfWork) error {
		a := &model.User{Email: "a@example.com"}
		b := &model.User{Email: "b@example.com"}
		require.NoError(t, uow.Users().Add(ctx, a))
		require.NoError(t, uow.Users().Add(ctx, b))
		s1 := &model.Seat{LayoutID: lID, Identifier: "A1"}
		require.NoError(t, uow.Seats().Add(ctx, s1))
		s2 := &model.Seat{LayoutID: lID, Identifier: "A2", Status: model.SeatOccupied, AssignedUserID: &b.ID}
		require.NoError(t, uow.Seats().Add(ctx, s2))
		require.NoError(t, uow.Assignments().Add(ctx, &model.SeatAssignment{SeatID: s1.ID, UserID: a.ID, StartDate: t0}))
		withHistory, seatedOnly, seatID = a.ID, b.ID, s2.ID
		return nil
	})

	err := repository.Within(ctx, s, func(uow repository.UnitOfWork) error {
		return uow.Users().Delete(ctx, withHistory)
	})
	assert.ErrorIs(t, err, repository.ErrConstraint)

	within(t, s, func(uow repository.UnitOfWork) error {
		return uow.Users().Delete(ctx, seatedOnly)
	})
	within(t, s, func(uow repository.UnitOfWork) error {
		seat, err := uow.Seats().Get(ctx, seatID)
		require.NoError(t, err)
		assert.Nil(t, seat.AssignedUserID)
		return nil
	})
}

func TestDuplicateEmailRejected(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	within(t, s, func(uow repository.UnitOfWork) error {
		return uow.Users().Add(ctx, &model.User{Email: "dup@example.com"})
	})
	err := repository.Within(ctx, s, func(uow repository.UnitOfWork) error {
		return uow.Users().Add(ctx, &model.User{Email: " DUP@example.com"})
	})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestHistoryResolvesNamesNewestFirst(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, lID := floor(t, s)

	within(t, s, func(uow repository.UnitOfWork) error {
		a := &model.User{Email: "a@example.com", DisplayName: "Alice"}
		b := &model.User{Email: "b@example.com", DisplayName: "Bob"}
		require.NoError(t, uow.Users().Add(ctx, a))
		require.NoError(t, uow.Users().Add(ctx, b))
		seat := &model.Seat{LayoutID: lID, Identifier: "A101"}
		require.NoError(t, uow.Seats().Add(ctx, seat))
		end := t0.Add(time.Hour)
		require.NoError(t, uow.Assignments().Add(ctx, &model.SeatAssignment{SeatID: seat.ID, UserID: a.ID, StartDate: t0, EndDate: &end}))
		require.NoError(t, uow.Assignments().Add(ctx, &model.SeatAssignment{SeatID: seat.ID, UserID: b.ID, StartDate: end}))

		hist, err := uow.Assignments().HistoryForSeat(ctx, seat.ID)
		require.NoError(t, err)
		require.Len(t, hist, 2)
		assert.Equal(t, "Bob", hist[0].UserDisplayName)
		assert.Equal(t, "A101", hist[0].SeatIdentifier)
		assert.Equal(t, "Alice", hist[1].UserDisplayName)

		open, err := uow.Assignments().OpenForSeat(ctx, seat.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, open.UserID)
		return nil
	})
}

func TestSearchFilters(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, lID := floor(t, s)

	within(t, s, func(uow repository.UnitOfWork) error {
		eng := &model.User{Email: "eng@example.com", FirstName: "Erin", Department: "Engineering"}
		ops := &model.User{Email: "ops@example.com", FirstName: "Oscar", Department: "Operations"}
		require.NoError(t, uow.Users().Add(ctx, eng))
		require.NoError(t, uow.Users().Add(ctx, ops))
		require.NoError(t, uow.Seats().Add(ctx, &model.Seat{LayoutID: lID, Identifier: "A1", AssignedUserID: &eng.ID, Status: model.SeatOccupied}))

		seated := true
		got, err := uow.Users().Search(ctx, repository.UserFilter{HasSeat: &seated})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, eng.ID, got[0].ID)

		got, err = uow.Users().Search(ctx, repository.UserFilter{Term: "OSC"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, ops.ID, got[0].ID)

		got, err = uow.Users().Search(ctx, repository.UserFilter{Department: "engineering"})
		require.NoError(t, err)
		assert.Len(t, got, 1)
		return nil
	})
}
