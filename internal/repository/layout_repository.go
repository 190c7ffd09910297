package repository

import (
	"context"
	"time"

	"github.com/iliyamo/office-seating/internal/model"
)

// layoutRepo reads layouts joined with their building so BuildingName is
// always populated.
type layoutRepo struct {
	*table[model.Layout, uint64]
}

func newLayoutRepo(q querier, now Clock) *layoutRepo {
	return &layoutRepo{&table[model.Layout, uint64]{
		q:       q,
		now:     now,
		name:    "layouts",
		columns: []string{"building_id", "name", "description", "floor_number", "width", "height", "is_active"},
		selectSQL: `SELECT l.id, l.building_id, l.name, l.description, l.floor_number, l.width, l.height,
       l.is_active, l.created_at, l.updated_at, b.name
FROM layouts l JOIN buildings b ON b.id = l.building_id`,
		idColumn: "l.id",
		orderBy:  "l.building_id, l.floor_number, l.id",
		scan: func(r rowScanner, l *model.Layout) error {
			return r.Scan(&l.ID, &l.BuildingID, &l.Name, &l.Description, &l.FloorNumber, &l.Width, &l.Height,
				&l.IsActive, &l.CreatedAt, &l.UpdatedAt, &l.BuildingName)
		},
		values: func(l *model.Layout) []any {
			return []any{l.BuildingID, l.Name, l.Description, l.FloorNumber, l.Width, l.Height, l.IsActive}
		},
		key:    func(l *model.Layout) uint64 { return l.ID },
		setKey: func(l *model.Layout, id int64) { l.ID = uint64(id) },
		stamps: func(l *model.Layout) (*time.Time, *time.Time) { return &l.CreatedAt, &l.UpdatedAt },
	}}
}

func (r *layoutRepo) ListByBuilding(ctx context.Context, buildingID uint64) ([]model.Layout, error) {
	return r.where(ctx, "l.building_id = ?", buildingID)
}
