package engine

import (
	"encoding/json"
	"maps"
	"slices"
)

// EntityID is a World-unique, monotonically increasing identifier.
// IDs are never reused within a World.
type EntityID uint64

// Component is a type-tagged data record attached to an entity.
// Payloads are opaque to the core; normalization and validation are
// delegated to the ComponentRegistry at creation time.
type Component map[string]any

// Entity is a bag of typed components and tags. It carries no behavior
// of its own; systems query and mutate it through the World.
type Entity struct {
	id         EntityID
	world      *World
	components map[string]Component
	tags       map[string]struct{}
	active     bool
	destroyed  bool
}

func newEntity(w *World, id EntityID) *Entity {
	return &Entity{
		id:         id,
		world:      w,
		components: make(map[string]Component),
		tags:       make(map[string]struct{}),
		active:     true,
	}
}

// ID returns the entity's identifier.
func (e *Entity) ID() EntityID {
	return e.id
}

// Active reports whether the entity participates in queries.
func (e *Entity) Active() bool {
	return e.active
}

// SetActive toggles query visibility. Index membership is unaffected;
// queries filter on the flag at read time.
func (e *Entity) SetActive(active bool) {
	if e.destroyed {
		return
	}
	e.active = active
}

// AddComponent attaches component data of the given type. The data is
// normalized through the World's registry first; a schema violation is
// returned as a ValidationError. Adding a type the entity already holds
// is a warning and a no-op (one component per type).
func (e *Entity) AddComponent(ctype string, data Component) error {
	if e.destroyed {
		return nil
	}
	if _, exists := e.components[ctype]; exists {
		e.warnf("entity %d: component %q already present, add ignored", e.id, ctype)
		return nil
	}

	if e.world != nil {
		normalized, err := e.world.registry.Create(ctype, data)
		if err != nil {
			return err
		}
		data = normalized
	} else if data == nil {
		data = Component{}
	}

	e.components[ctype] = data
	if e.world != nil {
		e.world.onComponentAdded(e, ctype)
	}
	return nil
}

// setComponent attaches already-normalized data, bypassing the registry.
// Used by Clone and snapshot restore.
func (e *Entity) setComponent(ctype string, data Component) {
	if data == nil {
		data = Component{}
	}
	e.components[ctype] = data
	if e.world != nil {
		e.world.onComponentAdded(e, ctype)
	}
}

// GetComponent returns the data for the given type.
func (e *Entity) GetComponent(ctype string) (Component, bool) {
	data, ok := e.components[ctype]
	return data, ok
}

// HasComponent reports whether the entity holds data for the given type.
func (e *Entity) HasComponent(ctype string) bool {
	_, ok := e.components[ctype]
	return ok
}

// HasComponents reports whether the entity holds every listed type.
func (e *Entity) HasComponents(ctypes ...string) bool {
	for _, ctype := range ctypes {
		if _, ok := e.components[ctype]; !ok {
			return false
		}
	}
	return true
}

// RemoveComponent detaches the given type. Removing an absent type is a
// no-op.
func (e *Entity) RemoveComponent(ctype string) {
	if _, ok := e.components[ctype]; !ok {
		return
	}
	delete(e.components, ctype)
	if e.world != nil {
		e.world.onComponentRemoved(e, ctype)
	}
}

// UpdateComponent shallow-merges partial data into an existing
// component. Updating an absent type is a warning and a no-op; callers
// must add before they update.
func (e *Entity) UpdateComponent(ctype string, partial Component) {
	data, ok := e.components[ctype]
	if !ok {
		e.warnf("entity %d: component %q not present, update ignored", e.id, ctype)
		return
	}
	for k, v := range partial {
		data[k] = v
	}
}

// ComponentTypes returns the types currently attached, sorted for
// deterministic output.
func (e *Entity) ComponentTypes() []string {
	types := make([]string, 0, len(e.components))
	for ctype := range e.components {
		types = append(types, ctype)
	}
	slices.Sort(types)
	return types
}

// AddTag attaches a tag. Duplicate adds are no-ops.
func (e *Entity) AddTag(tag string) {
	if e.destroyed {
		return
	}
	if _, ok := e.tags[tag]; ok {
		return
	}
	e.tags[tag] = struct{}{}
	if e.world != nil {
		e.world.onTagAdded(e, tag)
	}
}

// RemoveTag detaches a tag. Removing an absent tag is a no-op.
func (e *Entity) RemoveTag(tag string) {
	if _, ok := e.tags[tag]; !ok {
		return
	}
	delete(e.tags, tag)
	if e.world != nil {
		e.world.onTagRemoved(e, tag)
	}
}

// HasTag reports whether the entity carries the given tag.
func (e *Entity) HasTag(tag string) bool {
	_, ok := e.tags[tag]
	return ok
}

// Tags returns the attached tags, sorted.
func (e *Entity) Tags() []string {
	tags := make([]string, 0, len(e.tags))
	for tag := range e.tags {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Destroy requests removal from the owning World, clears local
// component and tag storage, and deactivates the entity. Safe to call
// more than once; only the first call has effect.
func (e *Entity) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	e.active = false

	if e.world != nil {
		e.world.RemoveEntity(e)
	}
	e.release()
}

// release detaches every component and tag through the index-maintenance
// path, keeping the World's derived indices consistent.
func (e *Entity) release() {
	for ctype := range e.components {
		delete(e.components, ctype)
		if e.world != nil {
			e.world.onComponentRemoved(e, ctype)
		}
	}
	for tag := range e.tags {
		delete(e.tags, tag)
		if e.world != nil {
			e.world.onTagRemoved(e, tag)
		}
	}
}

// Clone creates a new entity in the same World with a fresh id, a
// shallow copy of each component's data, and the same tags. The clone
// is queued like any freshly created entity. Returns nil if the entity
// no longer belongs to a World.
func (e *Entity) Clone() *Entity {
	if e.world == nil || e.destroyed {
		return nil
	}
	clone := e.world.CreateEntity()
	for ctype, data := range e.components {
		clone.setComponent(ctype, maps.Clone(data))
	}
	for tag := range e.tags {
		clone.AddTag(tag)
	}
	clone.active = e.active
	return clone
}

// Snapshot is the serialized form of an entity. The id is recorded for
// reference but is not preserved by default on restore; see
// World.RestoreEntity.
type Snapshot struct {
	ID         EntityID             `json:"id"`
	Components map[string]Component `json:"components"`
	Tags       []string             `json:"tags"`
	Active     bool                 `json:"active"`
}

// Snapshot captures the entity's current components, tags and active
// flag.
func (e *Entity) Snapshot() Snapshot {
	components := make(map[string]Component, len(e.components))
	for ctype, data := range e.components {
		components[ctype] = maps.Clone(data)
	}
	return Snapshot{
		ID:         e.id,
		Components: components,
		Tags:       e.Tags(),
		Active:     e.active,
	}
}

// MarshalJSON encodes the entity as its Snapshot.
func (e *Entity) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Snapshot())
}

func (e *Entity) warnf(format string, args ...any) {
	if e.world != nil {
		e.world.warnf(format, args...)
	}
}
