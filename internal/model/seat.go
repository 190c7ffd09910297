package model

import (
	"fmt"
	"strings"
	"time"
)

// SeatStatus is stored as a small integer in seats.status.
type SeatStatus int8

const (
	SeatAvailable SeatStatus = iota
	SeatOccupied
	SeatReserved
	SeatDisabled
)

var seatStatusNames = [...]string{"Available", "Occupied", "Reserved", "Disabled"}

func (s SeatStatus) String() string {
	if s < 0 || int(s) >= len(seatStatusNames) {
		return fmt.Sprintf("SeatStatus(%d)", int8(s))
	}
	return seatStatusNames[s]
}

// Valid reports whether s is one of the declared statuses.
func (s SeatStatus) Valid() bool { return s >= 0 && int(s) < len(seatStatusNames) }

// ParseSeatStatus accepts the status name in any letter case.
func ParseSeatStatus(name string) (SeatStatus, error) {
	for i, n := range seatStatusNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return SeatStatus(i), nil
		}
	}
	return SeatAvailable, fmt.Errorf("unknown seat status %q", name)
}

// Seat is a single workplace on a layout. AssignedUserID is set exactly
// when Status is SeatOccupied; only the assignment workflow changes it.
type Seat struct {
	ID             uint64      // seats.id
	LayoutID       uint64      // seats.layout_id
	Identifier     string      // seats.identifier, e.g. A101
	PositionX      float64     // seats.position_x
	PositionY      float64     // seats.position_y
	Rotation       *float64    // seats.rotation (nullable)
	Status         SeatStatus  // seats.status
	AssignedUserID *string     // seats.assigned_user_id (nullable)
	Properties     PropertyBag // seats.properties_json
	CreatedAt      time.Time   // seats.created_at
	UpdatedAt      time.Time   // seats.updated_at
}

// SeatAssignment is one row of a seat's occupancy history. EndDate is nil
// while the assignment is open.
type SeatAssignment struct {
	ID        uint64     // seat_assignments.id
	SeatID    uint64     // seat_assignments.seat_id
	UserID    string     // seat_assignments.user_id
	StartDate time.Time  // seat_assignments.start_date
	EndDate   *time.Time // seat_assignments.end_date (nullable)
	CreatedAt time.Time  // seat_assignments.created_at
	UpdatedAt time.Time  // seat_assignments.updated_at

	// Resolved by history reads.
	SeatIdentifier  string
	UserDisplayName string
}

// Open reports whether the assignment is still active.
func (a SeatAssignment) Open() bool { return a.EndDate == nil }

// SeatLocation is a seat resolved with its layout and building, as shown on
// a user profile.
type SeatLocation struct {
	SeatID       uint64
	Identifier   string
	LayoutID     uint64
	LayoutName   string
	FloorNumber  int
	BuildingName string
}
