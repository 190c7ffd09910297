package memory

import (
	"errors"
	"time"

	"github.com/iliyamo/office-seating/internal/model"
)

var errUnitDone = errors.New("memory: unit of work already finished")

type tables struct {
	buildings   map[uint64]model.Building
	layouts     map[uint64]model.Layout
	walls       map[uint64]model.Wall
	furniture   map[uint64]model.Furniture
	seats       map[uint64]model.Seat
	assignments map[uint64]model.SeatAssignment
	users       map[string]model.User
	roles       map[uint64]model.Role
	userRoles   map[string]map[uint64]bool
	tokens      map[string]model.RefreshToken // keyed by hash
	seq         map[string]uint64
}

func newTables() *tables {
	return &tables{
		buildings:   map[uint64]model.Building{},
		layouts:     map[uint64]model.Layout{},
		walls:       map[uint64]model.Wall{},
		furniture:   map[uint64]model.Furniture{},
		seats:       map[uint64]model.Seat{},
		assignments: map[uint64]model.SeatAssignment{},
		users:       map[string]model.User{},
		roles:       map[uint64]model.Role{},
		userRoles:   map[string]map[uint64]bool{},
		tokens:      map[string]model.RefreshToken{},
		seq:         map[string]uint64{},
	}
}

func (t *tables) clone() *tables {
	c := newTables()
	for k, v := range t.buildings {
		c.buildings[k] = v
	}
	for k, v := range t.layouts {
		c.layouts[k] = v
	}
	for k, v := range t.walls {
		c.walls[k] = v
	}
	for k, v := range t.furniture {
		c.furniture[k] = copyFurniture(v)
	}
	for k, v := range t.seats {
		c.seats[k] = copySeat(v)
	}
	for k, v := range t.assignments {
		c.assignments[k] = copyAssignment(v)
	}
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.roles {
		c.roles[k] = v
	}
	for k, set := range t.userRoles {
		cs := make(map[uint64]bool, len(set))
		for id := range set {
			cs[id] = true
		}
		c.userRoles[k] = cs
	}
	for k, v := range t.tokens {
		v.RevokedAt = copyTime(v.RevokedAt)
		c.tokens[k] = v
	}
	for k, v := range t.seq {
		c.seq[k] = v
	}
	return c
}

func copyFurniture(f model.Furniture) model.Furniture {
	f.Rotation = copyFloat(f.Rotation)
	f.Properties = f.Properties.Clone()
	return f
}

func copySeat(s model.Seat) model.Seat {
	s.Rotation = copyFloat(s.Rotation)
	if s.AssignedUserID != nil {
		id := *s.AssignedUserID
		s.AssignedUserID = &id
	}
	s.Properties = s.Properties.Clone()
	return s
}

func copyAssignment(a model.SeatAssignment) model.SeatAssignment {
	a.EndDate = copyTime(a.EndDate)
	return a
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
