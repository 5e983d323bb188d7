// Package recipe provides the built-in drink menu.
package recipe

import (
	"context"
	"fmt"
	"strings"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeSource = (*Catalog)(nil)

// builtin is the fixed menu, indexed by RecipeID.
var builtin = [...]domain.Recipe{
	domain.Americano: {
		ID: domain.Americano, Name: "AMERICANO",
		Water: 150, Milk: 0, Coffee: 20, Sugar: 5,
	},
	domain.Cappuccino: {
		ID: domain.Cappuccino, Name: "CAPPUCCINO",
		Water: 30, Milk: 120, Coffee: 20, Sugar: 10,
	},
	domain.Espresso: {
		ID: domain.Espresso, Name: "ESPRESSO",
		Water: 30, Milk: 0, Coffee: 20, Sugar: 5,
	},
	domain.Latte: {
		ID: domain.Latte, Name: "LATTE",
		Water: 50, Milk: 150, Coffee: 20, Sugar: 10,
	},
	domain.Mocachino: {
		ID: domain.Mocachino, Name: "MOCACHINO",
		Water: 30, Milk: 100, Coffee: 20, Sugar: 15,
	},
}

// Catalog is the read-only drink menu. It never changes after
// construction, so it needs no locking.
type Catalog struct {
	recipes []domain.Recipe
	log     *logger.Logger
}

// NewCatalog creates the built-in menu.
func NewCatalog(log *logger.Logger) *Catalog {
	c := &Catalog{
		recipes: make([]domain.Recipe, len(builtin)),
		log:     log,
	}
	for i, r := range builtin {
		r.Description = Describe(r)
		c.recipes[i] = r
	}
	return c
}

// List returns every drink in menu order.
func (c *Catalog) List(ctx context.Context) ([]domain.Recipe, error) {
	out := make([]domain.Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out, nil
}

// Get returns a drink by ID.
func (c *Catalog) Get(ctx context.Context, id domain.RecipeID) (domain.Recipe, error) {
	if !id.Valid() {
		c.log.Debug("recipe not found: %d", id)
		return domain.Recipe{}, domain.ErrNotFound
	}
	return c.recipes[id], nil
}

// Lookup finds a drink by key ("latte") or display name ("LATTE"),
// ignoring case and surrounding spaces.
func (c *Catalog) Lookup(ctx context.Context, name string) (domain.Recipe, error) {
	q := strings.ToLower(strings.TrimSpace(name))
	for _, r := range c.recipes {
		if r.ID.String() == q || strings.ToLower(r.Name) == q {
			return r, nil
		}
	}
	c.log.Debug("no recipe matches %q", name)
	return domain.Recipe{}, fmt.Errorf("recipe %q: %w", name, domain.ErrNotFound)
}

// Describe renders the ingredient line shown under a drink's name,
// e.g. "150ml water · 20g coffee · 5g sugar". Zero amounts are left out.
func Describe(r domain.Recipe) string {
	var parts []string
	for _, ing := range domain.Ingredients {
		amount := r.Requirement(ing)
		if amount == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%g%s %s", amount, ing.Unit(), ing))
	}
	return strings.Join(parts, " · ")
}
