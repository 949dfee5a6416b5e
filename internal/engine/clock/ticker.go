// Package clock runs the viewer's background timers: the animation ticker
// and the shutdown countdown.
package clock

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Ticker defaults: a 10ms base interval, a tick every 5 counts and a
// toggle every 25 counts.
const (
	DefaultInterval    = 10 * time.Millisecond
	DefaultTickEvery   = 5
	DefaultToggleEvery = 25
)

// Snapshot is the ticker state read once per frame.
type Snapshot struct {
	Tick    uint64
	PhaseOn bool
}

// Ticker counts base intervals on its own goroutine. The render loop reads
// its state with Snapshot; only the ticker goroutine writes.
type Ticker struct {
	interval    time.Duration
	tickEvery   uint64
	toggleEvery uint64

	ticks atomic.Uint64
	phase atomic.Bool

	stop context.CancelFunc
	wg   sync.WaitGroup
}

// NewTicker creates a stopped ticker. Non-positive arguments take the defaults.
func NewTicker(interval time.Duration, tickEvery, toggleEvery int) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if tickEvery <= 0 {
		tickEvery = DefaultTickEvery
	}
	if toggleEvery <= 0 {
		toggleEvery = DefaultToggleEvery
	}
	return &Ticker{
		interval:    interval,
		tickEvery:   uint64(tickEvery),
		toggleEvery: uint64(toggleEvery),
	}
}

// Start runs the ticker until ctx is canceled or Stop is called.
func (t *Ticker) Start(ctx context.Context) {
	ctx, t.stop = context.WithCancel(ctx)
	t.wg.Add(1)
	go t.run(ctx)
}

func (t *Ticker) run(ctx context.Context) {
	defer t.wg.Done()

	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	var count uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			count++
			t.advance(count)
		}
	}
}

func (t *Ticker) advance(count uint64) {
	if count%t.tickEvery == 0 {
		t.ticks.Add(1)
	}
	if count%t.toggleEvery == 0 {
		t.phase.Store(!t.phase.Load())
	}
}

// Stop ends the goroutine and waits for it.
func (t *Ticker) Stop() {
	if t.stop != nil {
		t.stop()
	}
	t.wg.Wait()
}

// Snapshot returns the current tick count and blink phase.
func (t *Ticker) Snapshot() Snapshot {
	return Snapshot{Tick: t.ticks.Load(), PhaseOn: t.phase.Load()}
}
