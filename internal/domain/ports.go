package domain

import "context"

// RecipeSource provides the drink menu.
type RecipeSource interface {
	List(ctx context.Context) ([]Recipe, error)
	Get(ctx context.Context, id RecipeID) (Recipe, error)
	Lookup(ctx context.Context, name string) (Recipe, error)
}

// SnapshotStore persists the ingredient levels between runs. Load returns
// the defaults when nothing has been saved yet.
type SnapshotStore interface {
	Load(ctx context.Context) (Inventory, error)
	Save(ctx context.Context, inv Inventory) error
}

// BrewObserver is told about every change the engine makes.
// Calls happen outside the engine's lock and may arrive from the timer
// goroutine.
type BrewObserver interface {
	StateChanged(ctx context.Context, inv Inventory)
	BrewCompleted(ctx context.Context, sessionID string)
}

// IntentParser converts raw user input into structured intents.
type IntentParser interface {
	Parse(ctx context.Context, input string) (*Intent, error)
}

// Notifier delivers messages to the user.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

// Cue names a short sound effect.
type Cue int

const (
	CueClick Cue = iota
	CueFill
	CueBrew
	CueDone
	CueAlert
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueClick:
		return "click"
	case CueFill:
		return "fill"
	case CueBrew:
		return "brew"
	case CueDone:
		return "done"
	case CueAlert:
		return "alert"
	default:
		return "unknown"
	}
}

// SoundPlayer plays cues without blocking the caller. Stop interrupts
// whatever is playing.
type SoundPlayer interface {
	Play(cue Cue)
	Stop()
}
