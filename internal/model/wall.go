package model

import "time"

const (
	DefaultWallThickness = 10
	DefaultWallColor     = "#000000"
)

// Wall is a straight segment drawn on a layout.
type Wall struct {
	ID        uint64    // walls.id
	LayoutID  uint64    // walls.layout_id
	StartX    float64   // walls.start_x
	StartY    float64   // walls.start_y
	EndX      float64   // walls.end_x
	EndY      float64   // walls.end_y
	Thickness float64   // walls.thickness
	Color     string    // walls.color
	CreatedAt time.Time // walls.created_at
	UpdatedAt time.Time // walls.updated_at
}
