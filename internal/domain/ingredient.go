package domain

import (
	"fmt"
	"strings"
)

// Ingredient identifies one of the machine's four containers.
type Ingredient int

const (
	Water Ingredient = iota
	Milk
	Coffee
	Sugar
)

// Ingredients lists every container in display order.
var Ingredients = []Ingredient{Water, Milk, Coffee, Sugar}

// String returns the lowercase ingredient name.
func (i Ingredient) String() string {
	switch i {
	case Water:
		return "water"
	case Milk:
		return "milk"
	case Coffee:
		return "coffee"
	case Sugar:
		return "sugar"
	default:
		return "unknown"
	}
}

// Unit is "ml" for liquids and "g" for solids.
func (i Ingredient) Unit() string {
	switch i {
	case Water, Milk:
		return "ml"
	default:
		return "g"
	}
}

// Capacity is the most the container can hold.
func (i Ingredient) Capacity() float64 {
	switch i {
	case Water, Milk:
		return 500
	case Coffee, Sugar:
		return 200
	default:
		return 0
	}
}

// DefaultLevel is the level of a fresh machine.
func (i Ingredient) DefaultLevel() float64 {
	switch i {
	case Water:
		return 400
	case Milk:
		return 350
	case Coffee:
		return 150
	case Sugar:
		return 180
	default:
		return 0
	}
}

// RefillStep is the amount a single refill adds.
func (i Ingredient) RefillStep() float64 {
	switch i {
	case Water, Milk:
		return 100
	case Coffee, Sugar:
		return 50
	default:
		return 0
	}
}

// Valid reports whether i is one of the four known containers.
func (i Ingredient) Valid() bool {
	return i >= Water && i <= Sugar
}

// ParseIngredient converts a name like "Water" or "milk" to an Ingredient.
func ParseIngredient(name string) (Ingredient, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, ing := range Ingredients {
		if ing.String() == n {
			return ing, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownIngredient, name)
}
