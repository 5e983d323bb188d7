// Package engine implements the coffee machine: ingredient levels, recipe
// validation and the single timed brew session.
package engine

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
	"github.com/hammamikhairi/ottobrew/internal/timer"
)

// Option configures the engine.
type Option func(*Engine)

// WithPower sets the heating power in watts. Non-positive values are
// ignored with a warning.
func WithPower(watts float64) Option {
	return func(e *Engine) {
		if watts <= 0 || math.IsNaN(watts) || math.IsInf(watts, 0) {
			e.log.Warn("ignoring invalid power %g W, using %d W", watts, DefaultPower)
			return
		}
		e.power = watts
	}
}

// WithBrewBounds sets the shortest and longest brew. Invalid bounds are
// ignored with a warning.
func WithBrewBounds(min, max time.Duration) Option {
	return func(e *Engine) {
		if min <= 0 || max < min {
			e.log.Warn("ignoring invalid brew bounds [%s, %s]", min, max)
			return
		}
		e.minBrew = min
		e.maxBrew = max
	}
}

// WithClock replaces the system clock, mostly for tests.
func WithClock(c timer.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithInventory sets the starting levels. They are clamped to capacity.
func WithInventory(inv domain.Inventory) Option {
	return func(e *Engine) {
		e.inv = inv.Clamp()
	}
}

// WithRefillStep sets how much Refill adds per ingredient. Steps that are
// not positive fall back to the ingredient's default.
func WithRefillStep(step func(domain.Ingredient) float64) Option {
	return func(e *Engine) {
		e.refillStep = step
	}
}

// WithObserver registers an observer at construction time.
func WithObserver(obs domain.BrewObserver) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, obs)
	}
}

// Engine owns the machine state. All methods are safe for concurrent use;
// the brew timer completes on its own goroutine.
type Engine struct {
	recipes    domain.RecipeSource
	store      domain.SnapshotStore
	log        *logger.Logger
	clock      timer.Clock
	power      float64
	minBrew    time.Duration
	maxBrew    time.Duration
	refillStep func(domain.Ingredient) float64

	mu        sync.Mutex
	inv       domain.Inventory
	session   *session // nil when idle
	observers []domain.BrewObserver
}

// session is the brew currently in progress.
type session struct {
	plan   domain.BrewPlan
	handle timer.Handle
}

// New creates an engine with default levels. Call Restore to pick up the
// levels saved by a previous run.
func New(recipes domain.RecipeSource, store domain.SnapshotStore, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		recipes: recipes,
		store:   store,
		log:     log,
		clock:   timer.System,
		power:   DefaultPower,
		minBrew: DefaultMinBrew,
		maxBrew: DefaultMaxBrew,
		inv:     domain.DefaultInventory(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Subscribe adds an observer. Observers are called in registration order.
func (e *Engine) Subscribe(obs domain.BrewObserver) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, obs)
}

// Restore replaces the current levels with the stored snapshot.
// It is refused while a brew is running.
func (e *Engine) Restore(ctx context.Context) (domain.Inventory, error) {
	loaded, err := e.store.Load(ctx)
	if err != nil {
		return e.Inventory(), fmt.Errorf("loading snapshot: %w", err)
	}

	e.mu.Lock()
	if e.session != nil {
		e.mu.Unlock()
		return loaded, domain.ErrBrewInProgress
	}
	e.inv = loaded.Clamp()
	inv := e.inv
	e.mu.Unlock()

	e.log.Info("restored levels: %s", inv)
	e.notifyState(ctx, inv)
	return inv, nil
}

// Power returns the heating power in watts.
func (e *Engine) Power() float64 { return e.power }

// Inventory returns the current levels.
func (e *Engine) Inventory() domain.Inventory {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inv
}

// Brewing returns the active brew, if any.
func (e *Engine) Brewing() (domain.BrewPlan, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return domain.BrewPlan{}, false
	}
	return e.session.plan, true
}

// Remaining returns how long until the active brew finishes, 0 when idle.
func (e *Engine) Remaining() time.Duration {
	plan, ok := e.Brewing()
	if !ok {
		return 0
	}
	left := plan.ReadyAt().Sub(e.clock.Now())
	if left < 0 {
		return 0
	}
	return left
}

// Recipes returns the drink menu.
func (e *Engine) Recipes(ctx context.Context) ([]domain.Recipe, error) {
	return e.recipes.List(ctx)
}

// Recipe returns one drink by ID.
func (e *Engine) Recipe(ctx context.Context, id domain.RecipeID) (domain.Recipe, error) {
	return e.recipes.Get(ctx, id)
}

// PlanFor returns the boil time and clamped duration a recipe would take
// on this machine, without touching any state.
func (e *Engine) PlanFor(r domain.Recipe) (boil, duration time.Duration) {
	boil = BoilTime(r, e.power)
	return boil, ClampDuration(boil, e.minBrew, e.maxBrew)
}

// AddIngredient tops up one container by amount, stopping at its
// capacity, and returns the new levels. Adding is refused while a brew is
// running. A zero amount changes nothing.
func (e *Engine) AddIngredient(ctx context.Context, kind domain.Ingredient, amount float64) (domain.Inventory, error) {
	if !kind.Valid() {
		return e.Inventory(), fmt.Errorf("%w: %d", domain.ErrUnknownIngredient, kind)
	}
	if amount < 0 || math.IsNaN(amount) {
		return e.Inventory(), fmt.Errorf("%w: %g", domain.ErrInvalidAmount, amount)
	}

	e.mu.Lock()
	if e.session != nil {
		e.mu.Unlock()
		return e.Inventory(), domain.ErrBrewInProgress
	}
	if amount == 0 {
		inv := e.inv
		e.mu.Unlock()
		return inv, nil
	}

	before := e.inv.Level(kind)
	after := math.Min(before+amount, kind.Capacity())
	e.inv = e.inv.WithLevel(kind, after)
	inv := e.inv
	e.saveLocked(ctx, inv)
	e.mu.Unlock()

	e.log.Debug("added %g%s %s: %g -> %g", amount, kind.Unit(), kind, before, after)
	e.notifyState(ctx, inv)
	return inv, nil
}

// Refill adds one refill step of an ingredient.
func (e *Engine) Refill(ctx context.Context, kind domain.Ingredient) (domain.Inventory, error) {
	step := kind.RefillStep()
	if e.refillStep != nil {
		if s := e.refillStep(kind); s > 0 {
			step = s
		}
	}
	return e.AddIngredient(ctx, kind, step)
}

// CanBrew reports whether the current levels cover the recipe.
// Unknown recipes cannot be brewed.
func (e *Engine) CanBrew(ctx context.Context, id domain.RecipeID) bool {
	r, err := e.recipes.Get(ctx, id)
	if err != nil {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inv.Covers(r)
}

// StartBrew checks and deducts the recipe's ingredients in one step,
// schedules the completion and returns immediately. It fails with
// domain.ErrBrewInProgress if a brew is running and with
// a *domain.ShortageError (matching domain.ErrInsufficientIngredients)
// if any level is too low; in both
// cases nothing changes.
func (e *Engine) StartBrew(ctx context.Context, id domain.RecipeID) (domain.BrewPlan, error) {
	r, err := e.recipes.Get(ctx, id)
	if err != nil {
		return domain.BrewPlan{}, fmt.Errorf("getting recipe: %w", err)
	}

	e.mu.Lock()
	if e.session != nil {
		e.mu.Unlock()
		return domain.BrewPlan{}, domain.ErrBrewInProgress
	}
	if short := e.inv.Shortages(r); len(short) > 0 {
		e.mu.Unlock()
		return domain.BrewPlan{}, &domain.ShortageError{Recipe: r.Name, Ingredients: short}
	}

	boil, duration := e.PlanFor(r)
	plan := domain.BrewPlan{
		SessionID: generateID(),
		Recipe:    r,
		BoilTime:  boil,
		Duration:  duration,
		StartedAt: e.clock.Now(),
	}

	e.inv = e.inv.Minus(r)
	inv := e.inv

	doneCtx := context.WithoutCancel(ctx)
	sess := &session{plan: plan}
	sess.handle = e.clock.AfterFunc(duration, func() {
		e.complete(doneCtx, plan.SessionID)
	})
	e.session = sess
	e.saveLocked(ctx, inv)
	e.mu.Unlock()

	e.log.Info("brewing %s (session %s): boil time %dms, ready in %s",
		r.Name, plan.SessionID, boil.Milliseconds(), duration)
	e.notifyState(ctx, inv)
	return plan, nil
}

// CancelBrew abandons the active brew. The ingredients already used are
// not returned. It reports whether there was a brew to cancel.
func (e *Engine) CancelBrew(ctx context.Context) bool {
	e.mu.Lock()
	if e.session == nil {
		e.mu.Unlock()
		return false
	}
	sess := e.session
	e.session = nil
	stopped := sess.handle.Stop()
	e.mu.Unlock()

	if !stopped {
		// The timer already fired; complete will find no session and drop it.
		e.log.Debug("session %s cancelled while completing", sess.plan.SessionID)
	}
	e.log.Info("cancelled %s (session %s)", sess.plan.Recipe.Name, sess.plan.SessionID)
	return true
}

// complete runs when the brew timer fires.
func (e *Engine) complete(ctx context.Context, sessionID string) {
	e.mu.Lock()
	if e.session == nil || e.session.plan.SessionID != sessionID {
		e.mu.Unlock()
		e.log.Debug("ignoring stale completion for session %s", sessionID)
		return
	}
	name := e.session.plan.Recipe.Name
	e.session = nil
	observers := e.observersLocked()
	e.mu.Unlock()

	e.log.Info("%s ready (session %s)", name, sessionID)
	for _, obs := range observers {
		obs.BrewCompleted(ctx, sessionID)
	}
}

// saveLocked persists inv. Failures are logged, never returned: the
// in-memory state stays authoritative. Caller must hold e.mu.
func (e *Engine) saveLocked(ctx context.Context, inv domain.Inventory) {
	if err := e.store.Save(ctx, inv); err != nil {
		e.log.Error("saving snapshot: %v", err)
	}
}

func (e *Engine) notifyState(ctx context.Context, inv domain.Inventory) {
	e.mu.Lock()
	observers := e.observersLocked()
	e.mu.Unlock()

	for _, obs := range observers {
		obs.StateChanged(ctx, inv)
	}
}

func (e *Engine) observersLocked() []domain.BrewObserver {
	out := make([]domain.BrewObserver, len(e.observers))
	copy(out, e.observers)
	return out
}
