package repository

import (
	"context"
	"time"

	"github.com/iliyamo/office-seating/internal/model"
)

type assignmentRepo struct {
	*table[model.SeatAssignment, uint64]
}

func newAssignmentRepo(q querier, now Clock) *assignmentRepo {
	return &assignmentRepo{&table[model.SeatAssignment, uint64]{
		q:         q,
		now:       now,
		name:      "seat_assignments",
		columns:   []string{"seat_id", "user_id", "start_date", "end_date"},
		selectSQL: "SELECT id, seat_id, user_id, start_date, end_date, created_at, updated_at FROM seat_assignments",
		idColumn:  "id",
		orderBy:   "start_date DESC, id DESC",
		scan: func(r rowScanner, a *model.SeatAssignment) error {
			return r.Scan(&a.ID, &a.SeatID, &a.UserID, &a.StartDate, &a.EndDate, &a.CreatedAt, &a.UpdatedAt)
		},
		values: func(a *model.SeatAssignment) []any {
			return []any{a.SeatID, a.UserID, a.StartDate, a.EndDate}
		},
		key:    func(a *model.SeatAssignment) uint64 { return a.ID },
		setKey: func(a *model.SeatAssignment, id int64) { a.ID = uint64(id) },
		stamps: func(a *model.SeatAssignment) (*time.Time, *time.Time) { return &a.CreatedAt, &a.UpdatedAt },
	}}
}

func (r *assignmentRepo) OpenForSeat(ctx context.Context, seatID uint64) (*model.SeatAssignment, error) {
	var a model.SeatAssignment
	row := r.q.QueryRowContext(ctx,
		r.selectSQL+" WHERE seat_id = ? AND end_date IS NULL ORDER BY start_date DESC, id DESC LIMIT 1", seatID)
	if err := r.scan(row, &a); err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

const historySQL = `SELECT a.id, a.seat_id, a.user_id, a.start_date, a.end_date, a.created_at, a.updated_at,
       s.identifier, u.display_name
FROM seat_assignments a
JOIN seats s ON s.id = a.seat_id
JOIN users u ON u.id = a.user_id
WHERE a.seat_id = ?
ORDER BY a.start_date DESC, a.id DESC`

func (r *assignmentRepo) HistoryForSeat(ctx context.Context, seatID uint64) ([]model.SeatAssignment, error) {
	rows, err := r.q.QueryContext(ctx, historySQL, seatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.SeatAssignment{}
	for rows.Next() {
		var a model.SeatAssignment
		if err := rows.Scan(&a.ID, &a.SeatID, &a.UserID, &a.StartDate, &a.EndDate, &a.CreatedAt, &a.UpdatedAt,
			&a.SeatIdentifier, &a.UserDisplayName); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
