// Package dto holds the JSON shapes exchanged with API clients.
package dto

import "time"

type BuildingDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name" validate:"required,max=100"`
	Address   string    `json:"address" validate:"max=200"`
	City      string    `json:"city" validate:"max=100"`
	State     string    `json:"state" validate:"max=50"`
	ZipCode   string    `json:"zipCode" validate:"max=20"`
	Country   string    `json:"country" validate:"max=100"`
	IsActive  *bool     `json:"isActive,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LayoutDTO carries the parent building's name for display; it is ignored
// on input.
type LayoutDTO struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name" validate:"required,max=100"`
	Description  string    `json:"description" validate:"max=500"`
	FloorNumber  int       `json:"floorNumber"`
	BuildingID   uint64    `json:"buildingId" validate:"required"`
	BuildingName string    `json:"buildingName"`
	Width        int       `json:"width" validate:"gte=0"`
	Height       int       `json:"height" validate:"gte=0"`
	IsActive     *bool     `json:"isActive,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type WallDTO struct {
	ID        uint64    `json:"id"`
	LayoutID  uint64    `json:"layoutId" validate:"required"`
	StartX    float64   `json:"startX"`
	StartY    float64   `json:"startY"`
	EndX      float64   `json:"endX"`
	EndY      float64   `json:"endY"`
	Thickness float64   `json:"thickness" validate:"gte=0"`
	Color     string    `json:"color" validate:"max=20"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type FurnitureDTO struct {
	ID         uint64         `json:"id"`
	LayoutID   uint64         `json:"layoutId" validate:"required"`
	Type       string         `json:"type" validate:"required,max=50"`
	PositionX  float64        `json:"positionX"`
	PositionY  float64        `json:"positionY"`
	Width      float64        `json:"width" validate:"gte=0"`
	Height     float64        `json:"height" validate:"gte=0"`
	Rotation   *float64       `json:"rotation"`
	Color      string         `json:"color" validate:"max=20"`
	Properties map[string]any `json:"properties"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// SeatDTO exposes the status by name. AssignedUserID and AssignedUser are
// read-only: only the assign/unassign endpoints change them.
type SeatDTO struct {
	ID             uint64         `json:"id"`
	LayoutID       uint64         `json:"layoutId" validate:"required"`
	Identifier     string         `json:"identifier" validate:"required,max=50"`
	PositionX      float64        `json:"positionX"`
	PositionY      float64        `json:"positionY"`
	Rotation       *float64       `json:"rotation"`
	Status         string         `json:"status"`
	AssignedUserID *string        `json:"assignedUserId"`
	AssignedUser   *UserBasicDTO  `json:"assignedUser"`
	Properties     map[string]any `json:"properties"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type SeatAssignmentDTO struct {
	ID              uint64     `json:"id"`
	SeatID          uint64     `json:"seatId"`
	SeatIdentifier  string     `json:"seatIdentifier"`
	UserID          string     `json:"userId"`
	UserDisplayName string     `json:"userDisplayName"`
	StartDate       time.Time  `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
}

type AssignSeatDTO struct {
	SeatID uint64 `json:"seatId" validate:"required"`
	UserID string `json:"userId" validate:"required"`
}

// SeatBasicDTO locates a seat for display on a user profile.
type SeatBasicDTO struct {
	ID           uint64 `json:"id"`
	Identifier   string `json:"identifier"`
	LayoutID     uint64 `json:"layoutId"`
	LayoutName   string `json:"layoutName"`
	FloorNumber  int    `json:"floorNumber"`
	BuildingName string `json:"buildingName"`
}
