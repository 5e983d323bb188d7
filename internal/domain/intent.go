package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentListRecipes
	IntentSelectRecipe
	IntentAddIngredient
	IntentBrew
	IntentCancel
	IntentStatus
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentListRecipes:
		return "list_recipes"
	case IntentSelectRecipe:
		return "select_recipe"
	case IntentAddIngredient:
		return "add_ingredient"
	case IntentBrew:
		return "brew"
	case IntentCancel:
		return "cancel"
	case IntentStatus:
		return "status"
	case IntentHelp:
		return "help"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent represents a parsed user action.
type Intent struct {
	Type       IntentType
	Recipe     RecipeID   // set for IntentSelectRecipe
	Ingredient Ingredient // set for IntentAddIngredient
	Amount     float64    // only meaningful when HasAmount is set
	HasAmount  bool       // false means "add one refill step"
	Payload    string     // raw input, kept for unknown intents
}
