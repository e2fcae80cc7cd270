package engine

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
)

// idAllocator hands out World-local, monotonically increasing entity
// ids. Reserve lets a snapshot restore adopt an explicit id without
// risking collisions.
type idAllocator struct {
	last EntityID
}

func (a *idAllocator) next() EntityID {
	a.last++
	return a.last
}

func (a *idAllocator) reserve(id EntityID) {
	if id > a.last {
		a.last = id
	}
}

// World is the authoritative entity store. It owns the canonical
// entity map, one index set per component type and per tag, the
// priority-ordered system list, and the deferred add/remove queues
// that are the only path through which the canonical map changes.
type World struct {
	policy   Policy
	logf     func(format string, args ...any)
	registry *ComponentRegistry

	alloc    idAllocator
	entities map[EntityID]*Entity

	componentIndex map[string]map[EntityID]*Entity
	tagIndex       map[string]map[EntityID]*Entity

	systems []System

	toAdd         []*Entity
	toRemove      []*Entity
	pendingRemove map[EntityID]struct{}

	listeners map[EventType][]Listener
}

// NewWorld creates an empty world with its own component registry and
// the permissive policy.
func NewWorld() *World {
	return &World{
		logf:           log.Printf,
		registry:       NewComponentRegistry(),
		entities:       make(map[EntityID]*Entity),
		componentIndex: make(map[string]map[EntityID]*Entity),
		tagIndex:       make(map[string]map[EntityID]*Entity),
		pendingRemove:  make(map[EntityID]struct{}),
		listeners:      make(map[EventType][]Listener),
	}
}

// Registry returns the world's component registry for schema and
// factory registration.
func (w *World) Registry() *ComponentRegistry {
	return w.registry
}

// SetPolicy switches the world and its registry between permissive and
// strict handling.
func (w *World) SetPolicy(p Policy) {
	w.policy = p
	w.registry.SetPolicy(p)
}

// SetLogger redirects warning output for the world and its registry.
func (w *World) SetLogger(logf func(format string, args ...any)) {
	if logf != nil {
		w.logf = logf
		w.registry.SetLogger(logf)
	}
}

func (w *World) warnf(format string, args ...any) {
	w.logf(format, args...)
}

// CreateEntity allocates a new entity and queues it for promotion.
// The entity is not visible to any query until the next flush, which
// runs after all systems have executed.
func (w *World) CreateEntity() *Entity {
	e := newEntity(w, w.alloc.next())
	w.toAdd = append(w.toAdd, e)
	return e
}

// GetEntity returns the entity with the given id from the canonical
// store. Queued entities are not yet visible.
func (w *World) GetEntity(id EntityID) (*Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// EntityCount returns the number of entities in the canonical store.
func (w *World) EntityCount() int {
	return len(w.entities)
}

// RemoveEntity queues the entity for removal at the next flush.
// Duplicate requests before a flush collapse to one.
func (w *World) RemoveEntity(e *Entity) {
	if e == nil {
		return
	}
	if _, pending := w.pendingRemove[e.id]; pending {
		return
	}
	w.pendingRemove[e.id] = struct{}{}
	w.toRemove = append(w.toRemove, e)
}

// RemoveEntityByID resolves the id against the canonical store and the
// add queue, then queues the entity for removal.
func (w *World) RemoveEntityByID(id EntityID) {
	if e, ok := w.entities[id]; ok {
		w.RemoveEntity(e)
		return
	}
	for _, e := range w.toAdd {
		if e.id == id {
			w.RemoveEntity(e)
			return
		}
	}
}

// EntitiesWith returns active entities holding every listed component
// type. No types means all active entities. The first type's index is
// the candidate pool and the rest are membership filters, so callers
// should order types rarest-first for performance.
func (w *World) EntitiesWith(ctypes ...string) []*Entity {
	if len(ctypes) == 0 {
		result := make([]*Entity, 0, len(w.entities))
		for _, e := range w.entities {
			if e.active {
				result = append(result, e)
			}
		}
		return result
	}

	pool := w.componentIndex[ctypes[0]]
	if len(pool) == 0 {
		return nil
	}
	result := make([]*Entity, 0, len(pool))
	for id, e := range pool {
		if _, canonical := w.entities[id]; !canonical {
			continue
		}
		if !e.active {
			continue
		}
		if !e.HasComponents(ctypes[1:]...) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// EntitiesWithTag returns active entities carrying the given tag.
func (w *World) EntitiesWithTag(tag string) []*Entity {
	index := w.tagIndex[tag]
	if len(index) == 0 {
		return nil
	}
	result := make([]*Entity, 0, len(index))
	for id, e := range index {
		if _, canonical := w.entities[id]; !canonical {
			continue
		}
		if !e.active {
			continue
		}
		result = append(result, e)
	}
	return result
}

// Index-maintenance callbacks, invoked by Entity on every structural
// component/tag mutation. They tolerate entities that have not been
// flushed into the canonical map yet; queries filter on canonical
// membership instead.

func (w *World) onComponentAdded(e *Entity, ctype string) {
	index, ok := w.componentIndex[ctype]
	if !ok {
		index = make(map[EntityID]*Entity)
		w.componentIndex[ctype] = index
	}
	index[e.id] = e
}

func (w *World) onComponentRemoved(e *Entity, ctype string) {
	if index, ok := w.componentIndex[ctype]; ok {
		delete(index, e.id)
		if len(index) == 0 {
			delete(w.componentIndex, ctype)
		}
	}
}

func (w *World) onTagAdded(e *Entity, tag string) {
	index, ok := w.tagIndex[tag]
	if !ok {
		index = make(map[EntityID]*Entity)
		w.tagIndex[tag] = index
	}
	index[e.id] = e
}

func (w *World) onTagRemoved(e *Entity, tag string) {
	if index, ok := w.tagIndex[tag]; ok {
		delete(index, e.id)
		if len(index) == 0 {
			delete(w.tagIndex, tag)
		}
	}
}

// RegisterSystem initializes the system against this world, appends it
// and re-sorts the system list by priority (higher first, stable on
// ties). Nil systems and duplicate names are warnings and no-ops.
func (w *World) RegisterSystem(s System) {
	if s == nil {
		w.warnf("world: nil system registration ignored")
		return
	}
	if _, exists := w.System(s.Name()); exists {
		w.warnf("world: system %q already registered, ignored", s.Name())
		return
	}
	s.Init(w)
	w.systems = append(w.systems, s)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() > w.systems[j].Priority()
	})
}

// UnregisterSystem destroys the named system and removes it from the
// update order.
func (w *World) UnregisterSystem(name string) {
	for i, s := range w.systems {
		if s.Name() == name {
			s.Destroy()
			w.systems = append(w.systems[:i], w.systems[i+1:]...)
			return
		}
	}
}

// System looks up a registered system by name.
func (w *World) System(name string) (System, bool) {
	for _, s := range w.systems {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// Systems returns the systems in execution order.
func (w *World) Systems() []System {
	out := make([]System, len(w.systems))
	copy(out, w.systems)
	return out
}

// Update runs every enabled system in priority order, then flushes the
// deferred entity queues exactly once. Entities created during this
// tick become visible on the next one.
func (w *World) Update(dt float64) {
	for _, s := range w.systems {
		if s.Enabled() {
			s.Update(dt)
		}
	}
	w.processEntityQueue()
}

// processEntityQueue drains the add queue first, promoting entities
// into the canonical store and notifying listeners and matching
// systems, then drains the remove queue.
func (w *World) processEntityQueue() {
	adds := w.toAdd
	w.toAdd = nil
	for _, e := range adds {
		w.entities[e.id] = e
		w.emit(EventEntityAdded, e)
		for _, s := range w.systems {
			handler, ok := s.(EntityAddedHandler)
			if !ok {
				continue
			}
			if e.HasComponents(s.ComponentTypes()...) {
				handler.OnEntityAdded(e)
			}
		}
	}

	removes := w.toRemove
	w.toRemove = nil
	for _, e := range removes {
		delete(w.pendingRemove, e.id)
		if _, ok := w.entities[e.id]; !ok {
			continue
		}
		w.emit(EventEntityRemoved, e)
		for _, s := range w.systems {
			if handler, ok := s.(EntityRemovedHandler); ok {
				handler.OnEntityRemoved(e)
			}
		}
		e.destroyed = true
		e.active = false
		e.release()
		delete(w.entities, e.id)
		e.world = nil
	}
}

// Clear destroys every entity, flushes the queues and resets the id
// allocator. Registered systems and listeners survive; use Destroy for
// a full teardown. Entities still waiting in the add queue are dropped
// without ever being announced: a cleared world emits no birth events
// for entities it immediately retracts.
func (w *World) Clear() {
	adds := w.toAdd
	w.toAdd = nil
	for _, e := range adds {
		e.destroyed = true
		e.active = false
		e.release()
		e.world = nil
	}
	for _, e := range w.entities {
		w.RemoveEntity(e)
	}
	w.processEntityQueue()
	w.alloc = idAllocator{}
}

// Destroy clears all entities, destroys every registered system and
// drops all listeners. The world must not be used afterwards.
func (w *World) Destroy() {
	w.Clear()
	for _, s := range w.systems {
		s.Destroy()
	}
	w.systems = nil
	w.listeners = make(map[EventType][]Listener)
}

// RestoreEntity recreates an entity from a snapshot with a fresh id.
// Component data is adopted as-is; it was normalized when the snapshot
// was taken. The entity is queued like any new entity.
func (w *World) RestoreEntity(s Snapshot) *Entity {
	return w.restore(s, false)
}

// RestoreEntityWithID recreates an entity keeping the snapshot's id,
// reserving the allocator past it so future ids cannot collide.
// Restoring an id that is already live is a warning and returns nil.
func (w *World) RestoreEntityWithID(s Snapshot) *Entity {
	return w.restore(s, true)
}

func (w *World) restore(s Snapshot, keepID bool) *Entity {
	var e *Entity
	if keepID {
		if _, live := w.entities[s.ID]; live {
			w.warnf("world: entity id %d already live, restore ignored", s.ID)
			return nil
		}
		w.alloc.reserve(s.ID)
		e = newEntity(w, s.ID)
		w.toAdd = append(w.toAdd, e)
	} else {
		e = w.CreateEntity()
	}
	for ctype, data := range s.Components {
		e.setComponent(ctype, data)
	}
	for _, tag := range s.Tags {
		e.AddTag(tag)
	}
	e.active = s.Active
	return e
}

// DecodeEntity unmarshals a JSON snapshot and restores it with a fresh
// id.
func (w *World) DecodeEntity(data []byte) (*Entity, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("world: decode entity: %w", err)
	}
	return w.RestoreEntity(s), nil
}
