package model

import "time"

const (
	DefaultLayoutWidth  = 2000
	DefaultLayoutHeight = 1500
)

// Layout is one floor plan of a building. Width and Height are the canvas
// size in plan units; walls, furniture and seats are positioned on it.
type Layout struct {
	ID          uint64    // layouts.id
	BuildingID  uint64    // layouts.building_id
	Name        string    // layouts.name
	Description string    // layouts.description
	FloorNumber int       // layouts.floor_number
	Width       int       // layouts.width
	Height      int       // layouts.height
	IsActive    bool      // layouts.is_active
	CreatedAt   time.Time // layouts.created_at
	UpdatedAt   time.Time // layouts.updated_at

	// BuildingName is filled by reads that join buildings; it is not persisted.
	BuildingName string
}
