package repository

import (
	"context"
	"time"

	"github.com/iliyamo/office-seating/internal/model"
)

type wallRepo struct {
	*table[model.Wall, uint64]
}

func newWallRepo(q querier, now Clock) *wallRepo {
	return &wallRepo{&table[model.Wall, uint64]{
		q:         q,
		now:       now,
		name:      "walls",
		columns:   []string{"layout_id", "start_x", "start_y", "end_x", "end_y", "thickness", "color"},
		selectSQL: "SELECT id, layout_id, start_x, start_y, end_x, end_y, thickness, color, created_at, updated_at FROM walls",
		idColumn:  "id",
		orderBy:   "id",
		scan: func(r rowScanner, w *model.Wall) error {
			return r.Scan(&w.ID, &w.LayoutID, &w.StartX, &w.StartY, &w.EndX, &w.EndY, &w.Thickness, &w.Color,
				&w.CreatedAt, &w.UpdatedAt)
		},
		values: func(w *model.Wall) []any {
			return []any{w.LayoutID, w.StartX, w.StartY, w.EndX, w.EndY, w.Thickness, w.Color}
		},
		key:    func(w *model.Wall) uint64 { return w.ID },
		setKey: func(w *model.Wall, id int64) { w.ID = uint64(id) },
		stamps: func(w *model.Wall) (*time.Time, *time.Time) { return &w.CreatedAt, &w.UpdatedAt },
	}}
}

func (r *wallRepo) ListByLayout(ctx context.Context, layoutID uint64) ([]model.Wall, error) {
	return r.where(ctx, "layout_id = ?", layoutID)
}
