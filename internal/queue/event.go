// Package queue carries seat assignment events over RabbitMQ.
package queue

import "time"

const (
	EventSeatAssigned   = "seat.assigned"
	EventSeatUnassigned = "seat.unassigned"
)

// SeatEvent is published after an assignment change has been committed.
// PreviousUserID is set when an assign replaced another occupant and on
// unassign.
type SeatEvent struct {
	Type           string    `json:"type"`
	SeatID         uint64    `json:"seat_id"`
	SeatIdentifier string    `json:"seat_identifier"`
	LayoutID       uint64    `json:"layout_id"`
	UserID         string    `json:"user_id,omitempty"`
	PreviousUserID string    `json:"previous_user_id,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
