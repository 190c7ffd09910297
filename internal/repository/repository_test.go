package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/office-seating/internal/model"
)

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestBuildingAddStampsAndSetsID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := newBuildingRepo(db, fixedClock)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO buildings (name, address, city, state, zip_code, country, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)")).
		WithArgs("Headquarters", "123 Main Street", "New York", "NY", "10001", "USA", true, fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(7, 1))

	b := &model.Building{Name: "Headquarters", Address: "123 Main Street", City: "New York",
		State: "NY", ZipCode: "10001", Country: "USA", IsActive: true}
	require.NoError(t, repo.Add(context.Background(), b))

	assert.Equal(t, uint64(7), b.ID)
	assert.Equal(t, fixedNow, b.CreatedAt)
	assert.Equal(t, fixedNow, b.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildingGetNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := newBuildingRepo(db, fixedClock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM buildings WHERE id = ? LIMIT 1")).
		WithArgs(uint64(9)).
		WillReturnError(sql.ErrNoRows)

	b, err := repo.Get(context.Background(), 9)
	assert.Nil(t, b)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAndDeleteReportMissingRows(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := newWallRepo(db, fixedClock)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE walls SET layout_id = ?, start_x = ?, start_y = ?, end_x = ?, end_y = ?, thickness = ?, color = ?, updated_at = ? WHERE id = ?")).
		WithArgs(uint64(1), 0.0, 0.0, 100.0, 0.0, 10.0, "#34495e", fixedNow, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM walls WHERE id = ?")).
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := &model.Wall{ID: 3, LayoutID: 1, EndX: 100, Thickness: 10, Color: "#34495e"}
	assert.ErrorIs(t, repo.Update(context.Background(), w), ErrNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), 3), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLayoutReadsFlattenBuildingName(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := newLayoutRepo(db, fixedClock)

	rows := sqlmock.NewRows([]string{"id", "building_id", "name", "description", "floor_number", "width", "height",
		"is_active", "created_at", "updated_at", "name"}).
		AddRow(1, 4, "Main Floor", "Ground", 1, 2000, 1500, true, fixedNow, fixedNow, "Headquarters").
		AddRow(2, 4, "Second Floor", "", 2, 2000, 1500, true, fixedNow, fixedNow, "Headquarters")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE l.building_id = ? ORDER BY l.building_id, l.floor_number, l.id")).
		WithArgs(uint64(4)).
		WillReturnRows(rows)

	layouts, err := repo.ListByBuilding(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, layouts, 2)
	assert.Equal(t, "Headquarters", layouts[0].BuildingName)
	assert.Equal(t, "Second Floor", layouts[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatScanDecodesNullableColumns(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := newSeatRepo(db, fixedClock)

	cols := []string{"id", "layout_id", "identifier", "position_x", "position_y", "rotation", "status",
		"assigned_user_id", "properties_json", "created_at", "updated_at"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM seats WHERE id = ? LIMIT 1")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(5, 1, "A101", 410.0, 370.0, nil, int64(1), "u-1", `{"monitor":2}`, fixedNow, fixedNow))

	s, err := repo.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, s.Rotation)
	assert.Equal(t, model.SeatOccupied, s.Status)
	require.NotNil(t, s.AssignedUserID)
	assert.Equal(t, "u-1", *s.AssignedUserID)
	assert.Equal(t, float64(2), s.Properties["monitor"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatUpdateWritesNullUser(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := newSeatRepo(db, fixedClock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE seats SET layout_id = ?")).
		WithArgs(uint64(1), "A101", 410.0, 370.0, nil, int8(0), nil, "{}", fixedNow, uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := &model.Seat{ID: 5, LayoutID: 1, Identifier: "A101", PositionX: 410, PositionY: 370}
	require.NoError(t, repo.Update(context.Background(), s))
	assert.Equal(t, fixedNow, s.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentHistoryOrderedNewestFirst(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := newAssignmentRepo(db, fixedClock)

	ended := fixedNow.Add(-time.Hour)
	rows := sqlmock.NewRows([]string{"id", "seat_id", "user_id", "start_date", "end_date", "created_at", "updated_at",
		"identifier", "display_name"}).
		AddRow(2, 5, "u-2", fixedNow.Add(-time.Hour), nil, fixedNow, fixedNow, "A101", "Bob Manager").
		AddRow(1, 5, "u-1", fixedNow.Add(-2*time.Hour), ended, fixedNow, fixedNow, "A101", "Alice Admin")
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY a.start_date DESC, a.id DESC")).
		WithArgs(uint64(5)).
		WillReturnRows(rows)

	hist, err := repo.HistoryForSeat(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.True(t, hist[0].Open())
	assert.Equal(t, "Bob Manager", hist[0].UserDisplayName)
	require.NotNil(t, hist[1].EndDate)
	assert.Equal(t, ended, *hist[1].EndDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenForSeatMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := newAssignmentRepo(db, fixedClock)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE seat_id = ? AND end_date IS NULL")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.OpenForSeat(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserAddDuplicateEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := newUserRepo(db, fixedClock)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (id, email, user_name")).
		WithArgs(sqlmock.AnyArg(), "admin@example.com", "admin@example.com", "hash", "", "", "", "", "", "", "", true, fixedNow, fixedNow).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'admin@example.com'"})

	u := &model.User{Email: "  Admin@Example.com ", PasswordHash: "hash", IsActive: true}
	err := repo.Add(context.Background(), u)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NotEmpty(t, u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDeleteReferencedByHistory(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := newUserRepo(db, fixedClock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = ?")).
		WithArgs("u-1").
		WillReturnError(&mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"})

	assert.ErrorIs(t, repo.Delete(context.Background(), "u-1"), ErrConstraint)
}

func TestUserSearchBuildsFilters(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := newUserRepo(db, fixedClock)

	noSeat := false
	mock.ExpectQuery(`LIKE \? OR job_title LIKE \?\) AND department = \? AND NOT EXISTS \(SELECT 1 FROM seats s`).
		WithArgs(`%50\%%`, `%50\%%`, `%50\%%`, `%50\%%`, `%50\%%`, `%50\%%`, "Engineering").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	users, err := repo.Search(context.Background(), UserFilter{Term: " 50% ", Department: "Engineering", HasSeat: &noSeat})
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRolesByUserGroupsNames(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := newUserRepo(db, fixedClock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT ur.user_id, r.name FROM user_roles ur")).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name"}).
			AddRow("u-1", "Admin").AddRow("u-1", "User").AddRow("u-2", "User"))

	got, err := repo.RolesByUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"u-1": {"Admin", "User"}, "u-2": {"User"}}, got)
}

func TestValidateRefreshRejectsRevokedAndExpired(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := &tokenRepo{q: db, now: fixedClock}
	q := regexp.QuoteMeta("SELECT user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash = ?")

	mock.ExpectQuery(q).WithArgs("live").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).AddRow("u-1", fixedNow.Add(time.Hour), nil))
	mock.ExpectQuery(q).WithArgs("revoked").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).AddRow("u-1", fixedNow.Add(time.Hour), fixedNow))
	mock.ExpectQuery(q).WithArgs("expired").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).AddRow("u-1", fixedNow, nil))

	uid, err := repo.ValidateRefresh(context.Background(), "live")
	require.NoError(t, err)
	assert.Equal(t, "u-1", uid)
	_, err = repo.ValidateRefresh(context.Background(), "revoked")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.ValidateRefresh(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinCommitsOnSuccess(t *testing.T) {
	db, mock := setupMockDB(t)
	store := &SQLStore{db: db, now: fixedClock}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM buildings WHERE id = ?")).
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := Within(context.Background(), store, func(uow UnitOfWork) error {
		return uow.Buildings().Delete(context.Background(), 1)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinRollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	store := &SQLStore{db: db, now: fixedClock}
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := Within(context.Background(), store, func(UnitOfWork) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
