package engine

import "time"

const (
	// DefaultMaxDelta caps a single tick's delta time in seconds,
	// preventing a giant step after a stall.
	DefaultMaxDelta = 0.1
	// DefaultTimeScale is the neutral logical time multiplier.
	DefaultTimeScale = 1.0
)

// Engine owns one World and drives it from an externally supplied
// per-tick callback: the host invokes Tick with no arguments and the
// Engine derives delta time from its monotonic clock, clamps it to
// MaxDelta and scales it by TimeScale before updating the World.
//
// The Engine is single-threaded by contract; Tick, Step and the
// control methods must be called from the same goroutine. Runner
// honors this, and hosts driving an Engine through a Runner route
// their control calls through Runner.Do.
type Engine struct {
	world *World
	clock TimeProvider

	running bool
	paused  bool

	lastTime  time.Time
	maxDelta  float64
	timeScale float64

	elapsed    float64
	frameCount uint64

	fps       int
	fpsFrames int
	fpsWindow time.Time
}

// NewEngine creates an engine around the given world with the system
// clock and default clamp/scale.
func NewEngine(world *World) *Engine {
	return &Engine{
		world:     world,
		clock:     SystemClock{},
		maxDelta:  DefaultMaxDelta,
		timeScale: DefaultTimeScale,
	}
}

// SetTimeProvider substitutes the clock. Mainly for tests.
func (e *Engine) SetTimeProvider(tp TimeProvider) {
	if tp != nil {
		e.clock = tp
	}
}

// SetMaxDelta sets the per-tick delta clamp in seconds. Non-positive
// values disable clamping.
func (e *Engine) SetMaxDelta(seconds float64) {
	e.maxDelta = seconds
}

// SetTimeScale sets the logical time multiplier.
func (e *Engine) SetTimeScale(scale float64) {
	e.timeScale = scale
}

// TimeScale returns the current logical time multiplier.
func (e *Engine) TimeScale() float64 {
	return e.timeScale
}

// World returns the owned world.
func (e *Engine) World() *World {
	return e.world
}

// Running reports whether the engine accepts ticks.
func (e *Engine) Running() bool {
	return e.running
}

// Paused reports whether logical time is frozen.
func (e *Engine) Paused() bool {
	return e.paused
}

// Elapsed returns accumulated logical time in seconds.
func (e *Engine) Elapsed() float64 {
	return e.elapsed
}

// FrameCount returns the number of ticks advanced.
func (e *Engine) FrameCount() uint64 {
	return e.frameCount
}

// FPS returns the tick count of the last completed one-second window.
func (e *Engine) FPS() int {
	return e.fps
}

// Start arms the engine. Starting a running engine is a no-op.
func (e *Engine) Start() {
	if e.running {
		return
	}
	e.running = true
	now := e.clock.Now()
	e.lastTime = now
	e.fpsWindow = now
	e.fpsFrames = 0
}

// Stop disarms the engine. Stopping a stopped engine is a no-op.
func (e *Engine) Stop() {
	e.running = false
}

// Pause freezes logical time without stopping the tick source; Tick
// becomes a no-op until Resume.
func (e *Engine) Pause() {
	if e.paused {
		return
	}
	e.paused = true
}

// Resume unfreezes logical time. The paused interval is never counted
// as elapsed: lastTime is re-armed to now.
func (e *Engine) Resume() {
	if !e.paused {
		return
	}
	e.paused = false
	e.lastTime = e.clock.Now()
}

// Tick advances one frame. It is the host-facing per-frame callback:
// delta time is derived from the clock, clamped and scaled, then
// passed to World.Update. No-op while stopped or paused.
func (e *Engine) Tick() {
	if !e.running || e.paused {
		return
	}

	now := e.clock.Now()
	dt := now.Sub(e.lastTime).Seconds()
	e.lastTime = now

	if e.maxDelta > 0 && dt > e.maxDelta {
		dt = e.maxDelta
	}
	dt *= e.timeScale

	e.advance(dt)

	e.fpsFrames++
	if now.Sub(e.fpsWindow) >= time.Second {
		e.fps = e.fpsFrames
		e.fpsFrames = 0
		e.fpsWindow = now
	}
}

// Step advances exactly one frame by the given delta, bypassing the
// clock. Gated to work only while paused, for deterministic testing
// and debugging.
func (e *Engine) Step(dt float64) {
	if !e.paused {
		return
	}
	e.advance(dt)
}

func (e *Engine) advance(dt float64) {
	e.elapsed += dt
	e.frameCount++
	e.world.Update(dt)
}

// Reset stops the engine, clears the world, zeroes all timing state
// and restarts automatically if the engine had been running.
func (e *Engine) Reset() {
	wasRunning := e.running
	e.Stop()
	e.world.Clear()

	e.paused = false
	e.elapsed = 0
	e.frameCount = 0
	e.fps = 0
	e.fpsFrames = 0

	if wasRunning {
		e.Start()
	}
}
