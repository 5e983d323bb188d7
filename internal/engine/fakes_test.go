package engine

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/timer"
)

// fakeClock fires callbacks only when Advance moves time past them.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) timer.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward and runs every due callback.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []func()
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t.f)
		}
	}
	c.mu.Unlock()

	for _, f := range due {
		f()
	}
}

// pending counts timers that have neither fired nor been stopped.
func (c *fakeClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// mockObserver records engine notifications.
type mockObserver struct {
	mu        sync.Mutex
	states    []domain.Inventory
	completed []string
	done      chan string
}

func newMockObserver() *mockObserver {
	return &mockObserver{done: make(chan string, 8)}
}

func (m *mockObserver) StateChanged(_ context.Context, inv domain.Inventory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states = append(m.states, inv)
}

func (m *mockObserver) BrewCompleted(_ context.Context, sessionID string) {
	m.mu.Lock()
	m.completed = append(m.completed, sessionID)
	m.mu.Unlock()
	m.done <- sessionID
}

func (m *mockObserver) completedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.completed...)
}

func (m *mockObserver) stateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.states)
}

// failingStore refuses every save.
type failingStore struct{}

func (failingStore) Load(context.Context) (domain.Inventory, error) {
	return domain.DefaultInventory(), nil
}

func (failingStore) Save(context.Context, domain.Inventory) error {
	return errDiskFull
}
