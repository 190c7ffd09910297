package repository

import (
	"context"
	"time"

	"github.com/iliyamo/office-seating/internal/model"
)

type furnitureRepo struct {
	*table[model.Furniture, uint64]
}

func newFurnitureRepo(q querier, now Clock) *furnitureRepo {
	return &furnitureRepo{&table[model.Furniture, uint64]{
		q:       q,
		now:     now,
		name:    "furniture",
		columns: []string{"layout_id", "type", "position_x", "position_y", "width", "height", "rotation", "color", "properties_json"},
		selectSQL: `SELECT id, layout_id, type, position_x, position_y, width, height, rotation, color,
       properties_json, created_at, updated_at FROM furniture`,
		idColumn: "id",
		orderBy:  "id",
		scan: func(r rowScanner, f *model.Furniture) error {
			return r.Scan(&f.ID, &f.LayoutID, &f.Type, &f.PositionX, &f.PositionY, &f.Width, &f.Height,
				&f.Rotation, &f.Color, &f.Properties, &f.CreatedAt, &f.UpdatedAt)
		},
		values: func(f *model.Furniture) []any {
			return []any{f.LayoutID, f.Type, f.PositionX, f.PositionY, f.Width, f.Height, f.Rotation, f.Color, f.Properties}
		},
		key:    func(f *model.Furniture) uint64 { return f.ID },
		setKey: func(f *model.Furniture, id int64) { f.ID = uint64(id) },
		stamps: func(f *model.Furniture) (*time.Time, *time.Time) { return &f.CreatedAt, &f.UpdatedAt },
	}}
}

func (r *furnitureRepo) ListByLayout(ctx context.Context, layoutID uint64) ([]model.Furniture, error) {
	return r.where(ctx, "layout_id = ?", layoutID)
}
