// Package domain defines the core types and interfaces for the coffee machine.
// All other packages depend on domain; domain depends on nothing.
package domain

import "time"

// RecipeID enumerates the drinks the machine knows how to brew.
type RecipeID int

const (
	Americano RecipeID = iota
	Cappuccino
	Espresso
	Latte
	Mocachino
)

// RecipeIDs lists every drink in menu order.
var RecipeIDs = []RecipeID{Americano, Cappuccino, Espresso, Latte, Mocachino}

// String returns the lowercase key of the drink.
func (id RecipeID) String() string {
	switch id {
	case Americano:
		return "americano"
	case Cappuccino:
		return "cappuccino"
	case Espresso:
		return "espresso"
	case Latte:
		return "latte"
	case Mocachino:
		return "mocachino"
	default:
		return "unknown"
	}
}

// Valid reports whether id is a known drink.
func (id RecipeID) Valid() bool {
	return id >= Americano && id <= Mocachino
}

// Recipe is the fixed amount of each ingredient one drink consumes.
type Recipe struct {
	ID          RecipeID
	Name        string
	Description string
	Water       float64 // ml
	Milk        float64 // ml
	Coffee      float64 // g
	Sugar       float64 // g
}

// Requirement returns how much of one ingredient the recipe needs.
func (r Recipe) Requirement(i Ingredient) float64 {
	switch i {
	case Water:
		return r.Water
	case Milk:
		return r.Milk
	case Coffee:
		return r.Coffee
	case Sugar:
		return r.Sugar
	default:
		return 0
	}
}

// BrewPlan describes a brew that has just been started.
type BrewPlan struct {
	SessionID string
	Recipe    Recipe
	BoilTime  time.Duration // formula output before clamping
	Duration  time.Duration // how long until the drink is ready
	StartedAt time.Time
}

// ReadyAt returns the time the brew is due to finish.
func (p BrewPlan) ReadyAt() time.Time {
	return p.StartedAt.Add(p.Duration)
}
