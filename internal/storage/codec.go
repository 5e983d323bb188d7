// Package storage persists the machine's ingredient levels.
package storage

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/hammamikhairi/ottobrew/internal/domain"
)

// record is the on-disk shape of a snapshot.
type record struct {
	Water  float64 `json:"water"`
	Milk   float64 `json:"milk"`
	Coffee float64 `json:"coffee"`
	Sugar  float64 `json:"sugar"`
}

// Encode serializes inv as a flat JSON object.
func Encode(inv domain.Inventory) ([]byte, error) {
	return json.Marshal(record{
		Water:  inv.Water,
		Milk:   inv.Milk,
		Coffee: inv.Coffee,
		Sugar:  inv.Sugar,
	})
}

// Decode parses a snapshot. Each field that is missing, not a number,
// negative or non-finite falls back to its default level; every field is
// clamped to its container's capacity. If data is not a JSON object at
// all, Decode returns the default inventory and an error wrapping
// domain.ErrCorruptSnapshot.
func Decode(data []byte) (domain.Inventory, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return domain.DefaultInventory(), fmt.Errorf("%w: %v", domain.ErrCorruptSnapshot, err)
	}
	if fields == nil {
		return domain.DefaultInventory(), fmt.Errorf("%w: null record", domain.ErrCorruptSnapshot)
	}

	inv := domain.DefaultInventory()
	for _, ing := range domain.Ingredients {
		raw, ok := fields[ing.String()]
		if !ok {
			continue
		}
		var n *float64
		if err := json.Unmarshal(raw, &n); err != nil || n == nil {
			continue
		}
		v := *n
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		inv = inv.WithLevel(ing, math.Min(v, ing.Capacity()))
	}
	return inv, nil
}
