package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PropertyBag is an open set of key/value pairs (strings, numbers, bools,
// nested maps and lists) persisted as JSON text.
type PropertyBag map[string]any

// Value implements driver.Valuer. A nil bag is stored as "{}".
func (p PropertyBag) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]any(p))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner. NULL and empty text decode to an empty bag.
func (p *PropertyBag) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("property bag: unsupported source %T", src)
	}
	bag := PropertyBag{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &bag); err != nil {
			return fmt.Errorf("property bag: %w", err)
		}
	}
	*p = bag
	return nil
}

// Clone returns a deep copy via a JSON round trip.
func (p PropertyBag) Clone() PropertyBag {
	if p == nil {
		return PropertyBag{}
	}
	v, err := p.Value()
	if err != nil {
		return PropertyBag{}
	}
	var out PropertyBag
	_ = out.Scan(v)
	return out
}
