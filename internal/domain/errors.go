package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across layers.
var (
	ErrNotFound                = errors.New("not found")
	ErrUnknownIngredient       = errors.New("unknown ingredient")
	ErrInvalidAmount           = errors.New("amount must not be negative")
	ErrInsufficientIngredients = errors.New("insufficient ingredients")
	ErrBrewInProgress          = errors.New("a brew is already in progress")
	ErrCorruptSnapshot         = errors.New("corrupt snapshot")
)

// ShortageError names the ingredients a recipe needs more of. It matches
// ErrInsufficientIngredients with errors.Is.
type ShortageError struct {
	Recipe      string
	Ingredients []Ingredient
}

func (e *ShortageError) Error() string {
	return fmt.Sprintf("%s for %s: need more %s", ErrInsufficientIngredients, e.Recipe, JoinIngredients(e.Ingredients))
}

func (e *ShortageError) Unwrap() error { return ErrInsufficientIngredients }

// JoinIngredients renders ingredients as "milk, coffee".
func JoinIngredients(ings []Ingredient) string {
	names := make([]string, len(ings))
	for i, ing := range ings {
		names[i] = ing.String()
	}
	return strings.Join(names, ", ")
}
