package timer

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Option configures a Progress ticker.
type Option func(*Progress)

// WithTickInterval sets how often progress advances.
func WithTickInterval(d time.Duration) Option {
	return func(p *Progress) {
		p.tickInterval = d
	}
}

// WithStep sets how many percentage points each tick adds.
func WithStep(pct float64) Option {
	return func(p *Progress) {
		p.step = pct
	}
}

// Progress advances a percentage on a fixed cadence, independently of
// how long the brew actually takes, and reports each value to a sink.
// It stops on its own at 100%.
type Progress struct {
	log          *logger.Logger
	sink         func(pct float64)
	tickInterval time.Duration
	step         float64

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewProgress creates a ticker reporting to sink. The defaults advance
// 2% every 100ms, so a full bar takes five seconds.
func NewProgress(sink func(pct float64), log *logger.Logger, opts ...Option) *Progress {
	p := &Progress{
		log:          log,
		sink:         sink,
		tickInterval: 100 * time.Millisecond,
		step:         2,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start resets progress to 0% and begins ticking. Non-blocking. A
// running ticker is restarted.
func (p *Progress) Start(ctx context.Context) {
	p.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()

	childCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.running = true
	p.done = make(chan struct{})

	p.sink(0)
	go p.loop(childCtx, p.done)

	p.log.Debug("progress started (tick=%s, step=%g%%)", p.tickInterval, p.step)
}

// Stop halts the ticker and waits for its goroutine to exit. The last
// reported value stays where it was.
func (p *Progress) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.cancel()
	p.running = false
	done := p.done
	p.mu.Unlock()

	<-done
	p.log.Debug("progress stopped")
}

// Running reports whether the ticker is active.
func (p *Progress) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// loop is the main tick loop.
func (p *Progress) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.tickInterval)
	defer ticker.Stop()

	pct := 0.0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pct += p.step
			if pct >= 100 {
				p.sink(100)
				p.finish()
				return
			}
			p.sink(pct)
		}
	}
}

// finish marks the ticker idle after it reached 100% by itself.
func (p *Progress) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		p.cancel()
		p.running = false
	}
}
