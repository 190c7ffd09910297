package repository

import (
	"context"
	"time"

	"github.com/iliyamo/office-seating/internal/model"
)

type roleRepo struct {
	*table[model.Role, uint64]
}

func newRoleRepo(q querier, now Clock) *roleRepo {
	return &roleRepo{&table[model.Role, uint64]{
		q:         q,
		now:       now,
		name:      "roles",
		columns:   []string{"name", "description"},
		selectSQL: "SELECT id, name, description, created_at, updated_at FROM roles",
		idColumn:  "id",
		orderBy:   "name",
		scan: func(r rowScanner, ro *model.Role) error {
			return r.Scan(&ro.ID, &ro.Name, &ro.Description, &ro.CreatedAt, &ro.UpdatedAt)
		},
		values: func(ro *model.Role) []any { return []any{ro.Name, ro.Description} },
		key:    func(ro *model.Role) uint64 { return ro.ID },
		setKey: func(ro *model.Role, id int64) { ro.ID = uint64(id) },
		stamps: func(ro *model.Role) (*time.Time, *time.Time) { return &ro.CreatedAt, &ro.UpdatedAt },
	}}
}

// GetByName matches using the column collation, so "admin" finds "Admin".
func (r *roleRepo) GetByName(ctx context.Context, name string) (*model.Role, error) {
	var ro model.Role
	row := r.q.QueryRowContext(ctx, r.selectSQL+" WHERE name = ? LIMIT 1", name)
	if err := r.scan(row, &ro); err != nil {
		return nil, translate(err)
	}
	return &ro, nil
}
