package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/weft/core"
)

// Runner drives an Engine at a fixed tick interval for hosts that do
// not own a per-frame callback of their own. It is the only goroutine
// calling into the Engine, preserving the single-threaded contract;
// other goroutines reach the Engine through Do, which serializes their
// calls between ticks. Deadlines are drift-corrected; if the loop
// falls more than two intervals behind, the deadline resynchronizes
// instead of bursting.
type Runner struct {
	engine   *Engine
	interval time.Duration

	cmds     chan func()
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	tickCount atomic.Uint64
}

// NewRunner creates a runner ticking the engine every interval.
func NewRunner(engine *Engine, interval time.Duration) *Runner {
	return &Runner{
		engine:   engine,
		interval: interval,
		cmds:     make(chan func()),
		stopChan: make(chan struct{}),
	}
}

// Start launches the loop and arms the engine. Starting a running
// runner is a no-op.
func (r *Runner) Start() {
	if r.running.CompareAndSwap(false, true) {
		r.engine.Start()
		r.wg.Add(1)
		core.Go(r.loop)
	}
}

// Stop halts the loop and disarms the engine. Safe to call more than
// once.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		if r.running.CompareAndSwap(true, false) {
			close(r.stopChan)
			r.wg.Wait()
			r.engine.Stop()
		}
	})
}

// Do runs fn on the runner goroutine, never concurrently with a tick,
// and waits for it to finish. All Engine and World access from outside
// the loop goes through here while the runner is live. On a runner
// that is not running, fn executes on the caller's goroutine. Do must
// not race Stop; issue both from the same goroutine.
func (r *Runner) Do(fn func()) {
	if !r.running.Load() {
		fn()
		return
	}
	done := make(chan struct{})
	select {
	case r.cmds <- func() { fn(); close(done) }:
		<-done
	case <-r.stopChan:
		fn()
	}
}

// TickCount returns the number of loop iterations executed.
func (r *Runner) TickCount() uint64 {
	return r.tickCount.Load()
}

func (r *Runner) loop() {
	defer r.wg.Done()

	deadline := time.Now().Add(r.interval)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		now := time.Now()
		if !now.Before(deadline) {
			r.engine.Tick()
			r.tickCount.Add(1)

			deadline = deadline.Add(r.interval)
			if now.Sub(deadline) > 2*r.interval {
				deadline = now.Add(r.interval)
			}
		}

		sleep := deadline.Sub(time.Now())
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
		select {
		case <-timer.C:
		case fn := <-r.cmds:
			fn()
		case <-r.stopChan:
			return
		}
	}
}
