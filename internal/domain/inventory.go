package domain

import (
	"fmt"
	"math"
)

// Inventory holds the current level of every container.
// Levels are millilitres for water and milk, grams for coffee and sugar.
type Inventory struct {
	Water  float64
	Milk   float64
	Coffee float64
	Sugar  float64
}

// DefaultInventory returns the levels of a fresh machine.
func DefaultInventory() Inventory {
	return Inventory{
		Water:  Water.DefaultLevel(),
		Milk:   Milk.DefaultLevel(),
		Coffee: Coffee.DefaultLevel(),
		Sugar:  Sugar.DefaultLevel(),
	}
}

// Level returns the level of one container.
func (inv Inventory) Level(i Ingredient) float64 {
	switch i {
	case Water:
		return inv.Water
	case Milk:
		return inv.Milk
	case Coffee:
		return inv.Coffee
	case Sugar:
		return inv.Sugar
	default:
		return 0
	}
}

// WithLevel returns a copy of inv with one container set to v.
func (inv Inventory) WithLevel(i Ingredient, v float64) Inventory {
	switch i {
	case Water:
		inv.Water = v
	case Milk:
		inv.Milk = v
	case Coffee:
		inv.Coffee = v
	case Sugar:
		inv.Sugar = v
	}
	return inv
}

// Percent returns how full a container is, from 0 to 100.
func (inv Inventory) Percent(i Ingredient) float64 {
	c := i.Capacity()
	if c == 0 {
		return 0
	}
	return inv.Level(i) / c * 100
}

// Clamp returns a copy with every level forced into [0, capacity].
func (inv Inventory) Clamp() Inventory {
	for _, ing := range Ingredients {
		v := inv.Level(ing)
		v = math.Max(0, math.Min(v, ing.Capacity()))
		inv = inv.WithLevel(ing, v)
	}
	return inv
}

// Covers reports whether every level meets the recipe's requirement.
func (inv Inventory) Covers(r Recipe) bool {
	return len(inv.Shortages(r)) == 0
}

// Shortages lists the ingredients the recipe needs more of than is available.
func (inv Inventory) Shortages(r Recipe) []Ingredient {
	var short []Ingredient
	for _, ing := range Ingredients {
		if inv.Level(ing) < r.Requirement(ing) {
			short = append(short, ing)
		}
	}
	return short
}

// Minus returns the levels left after brewing r. It does not check Covers.
func (inv Inventory) Minus(r Recipe) Inventory {
	return Inventory{
		Water:  inv.Water - r.Water,
		Milk:   inv.Milk - r.Milk,
		Coffee: inv.Coffee - r.Coffee,
		Sugar:  inv.Sugar - r.Sugar,
	}
}

// String renders the levels as "water=400ml milk=350ml ...".
func (inv Inventory) String() string {
	return fmt.Sprintf("water=%gml milk=%gml coffee=%gg sugar=%gg",
		inv.Water, inv.Milk, inv.Coffee, inv.Sugar)
}
