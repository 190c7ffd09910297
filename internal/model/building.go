package model

import "time"

// Building is a physical site that owns one or more floor layouts.
// Deleting a building removes its layouts (and everything on them).
type Building struct {
	ID        uint64    // buildings.id
	Name      string    // buildings.name
	Address   string    // buildings.address
	City      string    // buildings.city
	State     string    // buildings.state
	ZipCode   string    // buildings.zip_code
	Country   string    // buildings.country
	IsActive  bool      // buildings.is_active
	CreatedAt time.Time // buildings.created_at
	UpdatedAt time.Time // buildings.updated_at
}
