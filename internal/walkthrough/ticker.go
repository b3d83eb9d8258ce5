package walkthrough

import (
	"sync"
	"time"
)

// Ticker drives an Engine with a real once-per-second pulse. It runs only
// while the engine is executing and stops itself as soon as the phase moves
// on, so no timer outlives the walkthrough. Callers stop it explicitly on
// pause or teardown; Stop is idempotent.
type Ticker struct {
	engine   *Engine
	interval time.Duration
	onTick   func(*Engine)

	stop    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewTicker creates a ticker for the engine. onTick runs after every pulse
// (for rendering) and may be nil.
func NewTicker(engine *Engine, interval time.Duration, onTick func(*Engine)) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{
		engine:   engine,
		interval: interval,
		onTick:   onTick,
		stop:     make(chan struct{}),
	}
}

// Run blocks, pulsing the engine until the execution phase ends or Stop is
// called. Typically invoked in its own goroutine.
func (t *Ticker) Run() {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			t.engine.Tick()
			if t.onTick != nil {
				t.onTick(t.engine)
			}
			if t.engine.Phase() != PhaseExecution {
				return
			}
		}
	}
}

// Stop halts the ticker. Safe to call more than once and after Run has
// already returned.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	close(t.stop)
}
