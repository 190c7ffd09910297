package model

import "time"

// Furniture is a desk, table or any other object placed on a layout.
// Properties holds free-form rendering hints.
type Furniture struct {
	ID         uint64      // furniture.id
	LayoutID   uint64      // furniture.layout_id
	Type       string      // furniture.type
	PositionX  float64     // furniture.position_x
	PositionY  float64     // furniture.position_y
	Width      float64     // furniture.width
	Height     float64     // furniture.height
	Rotation   *float64    // furniture.rotation (nullable)
	Color      string      // furniture.color
	Properties PropertyBag // furniture.properties_json
	CreatedAt  time.Time   // furniture.created_at
	UpdatedAt  time.Time   // furniture.updated_at
}
