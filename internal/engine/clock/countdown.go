package clock

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gizmo/internal/logger"
)

// Countdown closes Done after a number of steps unless held. Holding is
// permanent: the viewer then runs until closed.
type Countdown struct {
	step      time.Duration
	remaining atomic.Int64
	held      atomic.Bool
	done      chan struct{}
	log       *zap.Logger

	stop context.CancelFunc
	wg   sync.WaitGroup
}

// NewCountdown creates a countdown of n steps. A non-positive step means
// one second.
func NewCountdown(n int, step time.Duration) *Countdown {
	if step <= 0 {
		step = time.Second
	}
	c := &Countdown{
		step: step,
		done: make(chan struct{}),
		log:  logger.Named("countdown"),
	}
	c.remaining.Store(int64(n))
	return c
}

// Start begins counting. A countdown of zero or fewer steps never starts
// and never fires.
func (c *Countdown) Start(ctx context.Context) {
	if c.remaining.Load() <= 0 {
		return
	}
	ctx, c.stop = context.WithCancel(ctx)
	c.wg.Add(1)
	go c.run(ctx)
}

func (c *Countdown) run(ctx context.Context) {
	defer c.wg.Done()

	tk := time.NewTicker(c.step)
	defer tk.Stop()

	c.log.Info("Shutting down", zap.Int64("seconds", c.remaining.Load()))
	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
		}
		if c.held.Load() {
			c.log.Info("Countdown held, running until closed")
			return
		}
		left := c.remaining.Add(-1)
		if left <= 0 {
			close(c.done)
			return
		}
		c.log.Info("Shutting down", zap.Int64("seconds", left))
	}
}

// Hold cancels the shutdown for good.
func (c *Countdown) Hold() {
	c.held.Store(true)
}

// Held reports whether Hold was called.
func (c *Countdown) Held() bool {
	return c.held.Load()
}

// Remaining returns the steps left.
func (c *Countdown) Remaining() int {
	return int(c.remaining.Load())
}

// Active reports whether the countdown can still fire.
func (c *Countdown) Active() bool {
	return !c.held.Load() && c.remaining.Load() > 0
}

// Done is closed when the countdown expires.
func (c *Countdown) Done() <-chan struct{} {
	return c.done
}

// Stop ends the goroutine without firing.
func (c *Countdown) Stop() {
	if c.stop != nil {
		c.stop()
	}
	c.wg.Wait()
}
