package repository

import (
	"time"

	"github.com/iliyamo/office-seating/internal/model"
)

type buildingRepo struct {
	*table[model.Building, uint64]
}

func newBuildingRepo(q querier, now Clock) *buildingRepo {
	return &buildingRepo{&table[model.Building, uint64]{
		q:         q,
		now:       now,
		name:      "buildings",
		columns:   []string{"name", "address", "city", "state", "zip_code", "country", "is_active"},
		selectSQL: "SELECT id, name, address, city, state, zip_code, country, is_active, created_at, updated_at FROM buildings",
		idColumn:  "id",
		orderBy:   "name, id",
		scan: func(r rowScanner, b *model.Building) error {
			return r.Scan(&b.ID, &b.Name, &b.Address, &b.City, &b.State, &b.ZipCode, &b.Country,
				&b.IsActive, &b.CreatedAt, &b.UpdatedAt)
		},
		values: func(b *model.Building) []any {
			return []any{b.Name, b.Address, b.City, b.State, b.ZipCode, b.Country, b.IsActive}
		},
		key:    func(b *model.Building) uint64 { return b.ID },
		setKey: func(b *model.Building, id int64) { b.ID = uint64(id) },
		stamps: func(b *model.Building) (*time.Time, *time.Time) { return &b.CreatedAt, &b.UpdatedAt },
	}}
}
