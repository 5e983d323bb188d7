// Package conversation provides intent parsing and user notification implementations.
package conversation

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches user input to intents using keywords and simple patterns.
type KeywordParser struct {
	log      *logger.Logger
	recipes  domain.RecipeSource
	patterns []patternRule
	add      *regexp.Regexp
	sel      *regexp.Regexp
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// NewKeywordParser creates a keyword-based intent parser. Recipe names are
// resolved through recipes.
func NewKeywordParser(recipes domain.RecipeSource, log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log, recipes: recipes}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(brew|make|go|start|b)$`), domain.IntentBrew},
		{regexp.MustCompile(`(?i)^(cancel|stop|abort|c)$`), domain.IntentCancel},
		{regexp.MustCompile(`(?i)^(status|levels|info|s)$`), domain.IntentStatus},
		{regexp.MustCompile(`(?i)^(list|menu|recipes|drinks|l)$`), domain.IntentListRecipes},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.IntentHelp},
		{regexp.MustCompile(`(?i)^(quit|exit|q)$`), domain.IntentQuit},
	}
	// "add water", "fill milk 50", "+coffee", "refill sugar 20g"
	p.add = regexp.MustCompile(`(?i)^(?:add|fill|refill|\+)\s*([a-z]+)(?:\s+([0-9]+(?:\.[0-9]+)?)\s*(?:ml|g)?)?$`)
	// "select latte", "pick 2", "choose mocachino"
	p.sel = regexp.MustCompile(`(?i)^(?:select|pick|choose)\s+(.+)$`)
	return p
}

// Parse converts user input into an intent.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched intent: %s", rule.intent)
			return &domain.Intent{Type: rule.intent}, nil
		}
	}

	if m := p.add.FindStringSubmatch(trimmed); m != nil {
		ing, err := domain.ParseIngredient(m[1])
		if err == nil {
			intent := &domain.Intent{Type: domain.IntentAddIngredient, Ingredient: ing}
			if m[2] != "" {
				amount, err := strconv.ParseFloat(m[2], 64)
				if err == nil {
					intent.Amount = amount
					intent.HasAmount = true
				}
			}
			return intent, nil
		}
	}

	name := trimmed
	if m := p.sel.FindStringSubmatch(trimmed); m != nil {
		name = strings.TrimSpace(m[1])
	}
	if r, ok := p.resolveRecipe(ctx, name); ok {
		return &domain.Intent{Type: domain.IntentSelectRecipe, Recipe: r.ID}, nil
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}, nil
}

// resolveRecipe accepts a menu number (1-based) or a drink name.
func (p *KeywordParser) resolveRecipe(ctx context.Context, name string) (domain.Recipe, bool) {
	if n, err := strconv.Atoi(name); err == nil {
		id := domain.RecipeID(n - 1)
		r, err := p.recipes.Get(ctx, id)
		return r, err == nil
	}
	r, err := p.recipes.Lookup(ctx, name)
	return r, err == nil
}
