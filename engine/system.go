package engine

// System is a per-frame logic unit. Any value implementing this
// interface may be registered with a World; the core is agnostic to
// what it does internally (render, step physics, read input, mix
// audio). Registration verifies the interface is satisfied at compile
// time, replacing the duck typing of looser runtimes.
type System interface {
	// Name is the unique lookup key within a World.
	Name() string
	// ComponentTypes drives the default entity query. Empty means
	// "all active entities".
	ComponentTypes() []string
	// Priority orders execution: higher runs earlier, ties keep
	// registration order.
	Priority() int
	// Enabled systems run each tick; disabled systems are skipped by
	// World.Update but still receive entity lifecycle notifications
	// so their internal caches stay correct for a re-enable.
	Enabled() bool
	// Init is called once when the system is registered.
	Init(w *World)
	// Update runs one frame of logic. dt is in seconds.
	Update(dt float64)
	// Destroy is called when the system is unregistered or the World
	// is destroyed. A destroyed system must not be reused.
	Destroy()
}

// EntityAddedHandler is an optional System hook, invoked during the
// queue flush for each newly promoted entity whose components match
// the system's required types.
type EntityAddedHandler interface {
	OnEntityAdded(e *Entity)
}

// EntityRemovedHandler is an optional System hook, invoked during the
// queue flush for every removed entity regardless of component match,
// so systems can drop stale references.
type EntityRemovedHandler interface {
	OnEntityRemoved(e *Entity)
}

// BaseSystem carries the bookkeeping shared by most systems: name,
// required component types, priority and the enabled flag. Embed it
// and implement Update; use Entities for the default query.
type BaseSystem struct {
	name     string
	types    []string
	priority int
	enabled  bool
	world    *World
}

// NewBaseSystem creates an enabled base with the given identity.
func NewBaseSystem(name string, types []string, priority int) BaseSystem {
	return BaseSystem{
		name:     name,
		types:    types,
		priority: priority,
		enabled:  true,
	}
}

// Name returns the system's unique name.
func (s *BaseSystem) Name() string {
	return s.name
}

// ComponentTypes returns the required component types.
func (s *BaseSystem) ComponentTypes() []string {
	return s.types
}

// Priority returns the execution priority (higher runs earlier).
func (s *BaseSystem) Priority() int {
	return s.priority
}

// Enabled reports whether the system runs during World.Update.
func (s *BaseSystem) Enabled() bool {
	return s.enabled
}

// SetEnabled toggles per-tick execution.
func (s *BaseSystem) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// Init stores the owning World.
func (s *BaseSystem) Init(w *World) {
	s.world = w
}

// Destroy disables the system and drops the World reference.
func (s *BaseSystem) Destroy() {
	s.enabled = false
	s.world = nil
}

// World returns the owning World, nil before Init or after Destroy.
func (s *BaseSystem) World() *World {
	return s.world
}

// Entities runs the default query for the system's component types.
// Order the types rarest-first when declaring them; the first type's
// index is the candidate pool.
func (s *BaseSystem) Entities() []*Entity {
	if s.world == nil {
		return nil
	}
	return s.world.EntitiesWith(s.types...)
}
