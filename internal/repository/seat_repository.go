package repository

import (
	"context"
	"time"

	"github.com/iliyamo/office-seating/internal/model"
)

type seatRepo struct {
	*table[model.Seat, uint64]
}

func newSeatRepo(q querier, now Clock) *seatRepo {
	return &seatRepo{&table[model.Seat, uint64]{
		q:       q,
		now:     now,
		name:    "seats",
		columns: []string{"layout_id", "identifier", "position_x", "position_y", "rotation", "status", "assigned_user_id", "properties_json"},
		selectSQL: `SELECT id, layout_id, identifier, position_x, position_y, rotation, status, assigned_user_id,
       properties_json, created_at, updated_at FROM seats`,
		idColumn: "id",
		orderBy:  "identifier, id",
		scan: func(r rowScanner, s *model.Seat) error {
			return r.Scan(&s.ID, &s.LayoutID, &s.Identifier, &s.PositionX, &s.PositionY, &s.Rotation,
				&s.Status, &s.AssignedUserID, &s.Properties, &s.CreatedAt, &s.UpdatedAt)
		},
		values: func(s *model.Seat) []any {
			return []any{s.LayoutID, s.Identifier, s.PositionX, s.PositionY, s.Rotation, int8(s.Status), s.AssignedUserID, s.Properties}
		},
		key:    func(s *model.Seat) uint64 { return s.ID },
		setKey: func(s *model.Seat, id int64) { s.ID = uint64(id) },
		stamps: func(s *model.Seat) (*time.Time, *time.Time) { return &s.CreatedAt, &s.UpdatedAt },
	}}
}

func (r *seatRepo) ListByLayout(ctx context.Context, layoutID uint64) ([]model.Seat, error) {
	return r.where(ctx, "layout_id = ?", layoutID)
}

func (r *seatRepo) GetByAssignedUser(ctx context.Context, userID string) (*model.Seat, error) {
	var s model.Seat
	row := r.q.QueryRowContext(ctx, r.selectSQL+" WHERE assigned_user_id = ? LIMIT 1", userID)
	if err := r.scan(row, &s); err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

const seatLocationSQL = `SELECT s.assigned_user_id, s.id, s.identifier, l.id, l.name, l.floor_number, b.name
FROM seats s
JOIN layouts l ON l.id = s.layout_id
JOIN buildings b ON b.id = l.building_id`

func scanLocation(r rowScanner) (string, model.SeatLocation, error) {
	var (
		userID string
		loc    model.SeatLocation
	)
	err := r.Scan(&userID, &loc.SeatID, &loc.Identifier, &loc.LayoutID, &loc.LayoutName, &loc.FloorNumber, &loc.BuildingName)
	return userID, loc, err
}

func (r *seatRepo) LocationByUser(ctx context.Context, userID string) (*model.SeatLocation, error) {
	row := r.q.QueryRowContext(ctx, seatLocationSQL+" WHERE s.assigned_user_id = ? LIMIT 1", userID)
	_, loc, err := scanLocation(row)
	if err != nil {
		return nil, translate(err)
	}
	return &loc, nil
}

func (r *seatRepo) AssignedLocations(ctx context.Context) (map[string]model.SeatLocation, error) {
	rows, err := r.q.QueryContext(ctx, seatLocationSQL+" WHERE s.assigned_user_id IS NOT NULL")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]model.SeatLocation{}
	for rows.Next() {
		userID, loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		out[userID] = loc
	}
	return out, rows.Err()
}
