package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeatStatus(t *testing.T) {
	cases := map[string]SeatStatus{
		"Available": SeatAvailable,
		"occupied":  SeatOccupied,
		" RESERVED": SeatReserved,
		"disabled":  SeatDisabled,
	}
	for in, want := range cases {
		got, err := ParseSeatStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
		assert.True(t, got.Valid())
	}

	_, err := ParseSeatStatus("broken")
	assert.Error(t, err)
	assert.False(t, SeatStatus(9).Valid())
	assert.Equal(t, "SeatStatus(9)", SeatStatus(9).String())
}

func TestPropertyBagScan(t *testing.T) {
	var bag PropertyBag
	require.NoError(t, bag.Scan([]byte(`{"monitor":2,"standing":true,"dock":{"ports":["usb-c"]}}`)))
	assert.Equal(t, float64(2), bag["monitor"])
	assert.Equal(t, true, bag["standing"])
	assert.Equal(t, []any{"usb-c"}, bag["dock"].(map[string]any)["ports"])

	require.NoError(t, bag.Scan(nil))
	assert.Empty(t, bag)

	assert.Error(t, bag.Scan(42))
	assert.Error(t, bag.Scan("not json"))
}

func TestPropertyBagValue(t *testing.T) {
	v, err := PropertyBag(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	v, err = PropertyBag{"color": "red"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"color":"red"}`, v.(string))
}

func TestPropertyBagCloneIsDeep(t *testing.T) {
	orig := PropertyBag{"nested": map[string]any{"a": 1}}
	cp := orig.Clone()
	cp["nested"].(map[string]any)["a"] = 2
	assert.Equal(t, 1, orig["nested"].(map[string]any)["a"])
}
