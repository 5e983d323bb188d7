package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hammamikhairi/ottobrew/internal/display"
	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/engine"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

var _ domain.BrewObserver = (*app)(nil)

// panel is the part of display.UI the app drives.
type panel interface {
	SetInventory(inv domain.Inventory)
	SetSelected(r domain.Recipe)
	SetCup(state display.CupState)
	SetProgress(pct float64)
	PrintChat(text string)
	PrintLine(text string)
	PrintHint(text string)
}

// ticker animates the brew progress bar.
type ticker interface {
	Start(ctx context.Context)
	Stop()
}

type app struct {
	engine   *engine.Engine
	parser   domain.IntentParser
	notifier domain.Notifier
	player   domain.SoundPlayer
	progress ticker
	ui       panel
	log      *logger.Logger

	selected domain.Recipe // drink the next brew will make; owned by run

	// cupMu orders the brewing and ready updates of the cup, since the
	// completion can fire before brew has finished drawing.
	cupMu sync.Mutex
}

func newApp(
	eng *engine.Engine,
	parser domain.IntentParser,
	notifier domain.Notifier,
	player domain.SoundPlayer,
	progress ticker,
	ui panel,
	log *logger.Logger,
) *app {
	return &app{
		engine:   eng,
		parser:   parser,
		notifier: notifier,
		player:   player,
		progress: progress,
		ui:       ui,
		log:      log,
	}
}

// StateChanged redraws the gauges whenever the levels move.
func (a *app) StateChanged(ctx context.Context, inv domain.Inventory) {
	a.ui.SetInventory(inv)
}

// BrewCompleted fills the cup and tells the user.
func (a *app) BrewCompleted(ctx context.Context, sessionID string) {
	a.cupMu.Lock()
	defer a.cupMu.Unlock()

	a.progress.Stop()
	a.player.Stop()
	a.notifier.Notify(ctx, "Your coffee is ready!")
	a.ui.SetProgress(100)
	a.ui.SetCup(display.CupReady)
}

// selectDefault picks the first drink on the menu.
func (a *app) selectDefault(ctx context.Context) {
	r, err := a.engine.Recipe(ctx, domain.Americano)
	if err != nil {
		a.log.Error("default drink: %v", err)
		return
	}
	a.selected = r
	a.ui.SetSelected(r)
}

func (a *app) run(ctx context.Context, input <-chan string) {
	a.ui.PrintChat("Hello! Pick a drink, then type 'brew'.")
	a.showRecipes(ctx)

	for {
		var line string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case line, ok = <-input:
			if !ok {
				return
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		intent, err := a.parser.Parse(ctx, line)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}

		a.log.Debug("intent: %s (payload=%q)", intent.Type, intent.Payload)
		if !a.handleIntent(ctx, intent) {
			return
		}
	}
}

// handleIntent dispatches one command. It returns false on quit.
func (a *app) handleIntent(ctx context.Context, intent *domain.Intent) bool {
	switch intent.Type {
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentListRecipes:
		a.showRecipes(ctx)
	case domain.IntentSelectRecipe:
		a.selectRecipe(ctx, intent.Recipe)
	case domain.IntentAddIngredient:
		a.addIngredient(ctx, intent)
	case domain.IntentBrew:
		a.brew(ctx)
	case domain.IntentCancel:
		a.cancel(ctx)
	case domain.IntentStatus:
		a.status()
	case domain.IntentQuit:
		a.ui.PrintChat("Bye!")
		return false
	default:
		a.ui.PrintHint(fmt.Sprintf("I didn't catch %q. Type 'help' for commands.", intent.Payload))
	}
	return true
}

func (a *app) showHelp() {
	a.ui.PrintLine("Commands:")
	a.ui.PrintHint("list                 show the menu")
	a.ui.PrintHint("<drink> | <number>   select a drink (select latte, 2, ...)")
	a.ui.PrintHint("add <ingredient> [n] top up water, milk, coffee or sugar")
	a.ui.PrintHint("brew                 make the selected drink")
	a.ui.PrintHint("cancel               stop the current brew")
	a.ui.PrintHint("status               show levels and brew state")
	a.ui.PrintHint("quit                 exit")
}

func (a *app) showRecipes(ctx context.Context) {
	recipes, err := a.engine.Recipes(ctx)
	if err != nil {
		a.log.Error("listing recipes: %v", err)
		return
	}
	for i, r := range recipes {
		marker := "  "
		if r.ID == a.selected.ID && a.selected.Name != "" {
			marker = "> "
		}
		a.ui.PrintLine(fmt.Sprintf("%s%d. %-11s %s", marker, i+1, r.Name, r.Description))
	}
}

func (a *app) selectRecipe(ctx context.Context, id domain.RecipeID) {
	if _, brewing := a.engine.Brewing(); brewing {
		a.ui.PrintHint("Wait for the current drink to finish.")
		return
	}
	r, err := a.engine.Recipe(ctx, id)
	if err != nil {
		a.log.Error("selecting recipe: %v", err)
		return
	}
	a.player.Play(domain.CueClick)
	a.selected = r
	a.ui.SetSelected(r)

	if !a.engine.CanBrew(ctx, id) {
		a.ui.PrintHint(r.Name + " selected, but the machine needs a refill first.")
		return
	}
	a.ui.PrintChat(r.Name + " selected.")
}

// addIngredient tops up by the typed amount, or by one refill step when
// no amount was given.
func (a *app) addIngredient(ctx context.Context, intent *domain.Intent) {
	ing := intent.Ingredient

	var inv domain.Inventory
	var err error
	if intent.HasAmount {
		inv, err = a.engine.AddIngredient(ctx, ing, intent.Amount)
	} else {
		inv, err = a.engine.Refill(ctx, ing)
	}
	switch {
	case errors.Is(err, domain.ErrBrewInProgress):
		a.ui.PrintHint("Can't add " + ing.String() + " while brewing.")
		return
	case err != nil:
		a.notifier.NotifyUrgent(ctx, err.Error())
		return
	}
	a.player.Play(domain.CueFill)
	a.ui.PrintChat(fmt.Sprintf("%s: %s", ing, display.FormatLevel(ing, inv.Level(ing))))
}

func (a *app) brew(ctx context.Context) {
	a.cupMu.Lock()
	defer a.cupMu.Unlock()

	plan, err := a.engine.StartBrew(ctx, a.selected.ID)
	var short *domain.ShortageError
	switch {
	case errors.Is(err, domain.ErrBrewInProgress):
		a.ui.PrintHint("Already brewing, hang on.")
		return
	case errors.As(err, &short):
		a.notifier.NotifyUrgent(ctx, "Not enough ingredients! Top up: "+domain.JoinIngredients(short.Ingredients)+".")
		return
	case err != nil:
		a.log.Error("starting brew: %v", err)
		a.notifier.NotifyUrgent(ctx, err.Error())
		return
	}

	a.player.Play(domain.CueClick)
	a.player.Play(domain.CueBrew)
	a.ui.SetCup(display.CupBrewing)
	a.progress.Start(ctx)
	a.ui.PrintChat(fmt.Sprintf("Brewing %s, ready in %s.", plan.Recipe.Name, plan.Duration.Round(100*time.Millisecond)))
}

func (a *app) cancel(ctx context.Context) {
	a.cupMu.Lock()
	defer a.cupMu.Unlock()

	if !a.engine.CancelBrew(ctx) {
		a.ui.PrintHint("Nothing is brewing.")
		return
	}
	a.progress.Stop()
	a.player.Stop()
	a.ui.SetCup(display.CupEmpty)
	a.ui.PrintChat("Brew cancelled. The used ingredients are gone.")
}

func (a *app) status() {
	inv := a.engine.Inventory()
	for _, ing := range domain.Ingredients {
		a.ui.PrintLine(fmt.Sprintf("%-7s %s / %s", ing,
			display.FormatLevel(ing, inv.Level(ing)),
			display.FormatLevel(ing, ing.Capacity())))
	}
	if plan, ok := a.engine.Brewing(); ok {
		a.ui.PrintHint(fmt.Sprintf("Brewing %s, %s left.", plan.Recipe.Name, a.engine.Remaining().Round(100*time.Millisecond)))
		return
	}
	a.ui.PrintHint("Idle. Selected: " + a.selected.Name)
}
