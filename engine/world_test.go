package engine

import (
	"testing"
)

// recordSystem captures what a system observes each tick.
type recordSystem struct {
	BaseSystem

	seen    [][]EntityID
	deltas  []float64
	added   []EntityID
	removed []EntityID

	destroyed bool
	runOrder  *[]string
}

func newRecordSystem(name string, types []string, priority int) *recordSystem {
	return &recordSystem{BaseSystem: NewBaseSystem(name, types, priority)}
}

func (s *recordSystem) Update(dt float64) {
	if s.runOrder != nil {
		*s.runOrder = append(*s.runOrder, s.Name())
	}
	s.deltas = append(s.deltas, dt)
	ids := make([]EntityID, 0)
	for _, e := range s.Entities() {
		ids = append(ids, e.ID())
	}
	s.seen = append(s.seen, ids)
}

func (s *recordSystem) OnEntityAdded(e *Entity) {
	s.added = append(s.added, e.ID())
}

func (s *recordSystem) OnEntityRemoved(e *Entity) {
	s.removed = append(s.removed, e.ID())
}

func (s *recordSystem) Destroy() {
	s.destroyed = true
	s.BaseSystem.Destroy()
}

func TestEntityInvisibleUntilFlush(t *testing.T) {
	w := quietWorld()
	s := newRecordSystem("transforms", []string{"transform"}, 0)
	w.RegisterSystem(s)

	e1 := w.CreateEntity()
	if err := e1.AddComponent("transform", Component{"x": 1.0, "y": 2.0, "z": 3.0}); err != nil {
		t.Fatal(err)
	}

	w.Update(1.0 / 60.0)
	w.Update(1.0 / 60.0)

	if len(s.seen) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(s.seen))
	}
	if len(s.seen[0]) != 0 {
		t.Errorf("tick N must not see the freshly created entity, saw %v", s.seen[0])
	}
	if len(s.seen[1]) != 1 || s.seen[1][0] != e1.ID() {
		t.Errorf("tick N+1 must see the entity, saw %v", s.seen[1])
	}
	if len(s.added) != 1 || s.added[0] != e1.ID() {
		t.Errorf("expected one OnEntityAdded for %d, got %v", e1.ID(), s.added)
	}
}

func TestDoubleRemoveCollapses(t *testing.T) {
	w := quietWorld()
	s := newRecordSystem("all", nil, 0)
	w.RegisterSystem(s)

	e := w.CreateEntity()
	flush(w)

	var emissions int
	w.Subscribe(EventEntityRemoved, func(Event) { emissions++ })

	w.RemoveEntity(e)
	w.RemoveEntity(e)
	w.RemoveEntityByID(e.ID())
	flush(w)

	if emissions != 1 {
		t.Errorf("expected one entityRemoved emission, got %d", emissions)
	}
	if len(s.removed) != 1 {
		t.Errorf("expected one OnEntityRemoved, got %d", len(s.removed))
	}
	if w.EntityCount() != 0 {
		t.Errorf("expected empty world, got %d", w.EntityCount())
	}
}

func TestIndexConsistency(t *testing.T) {
	w := quietWorld()
	e := w.CreateEntity()

	check := func(stage string) {
		t.Helper()
		for ctype, index := range w.componentIndex {
			if _, inIndex := index[e.ID()]; inIndex != e.HasComponent(ctype) {
				t.Errorf("%s: index[%s] membership %v but HasComponent %v",
					stage, ctype, inIndex, e.HasComponent(ctype))
			}
		}
		for _, ctype := range []string{"a", "b", "c"} {
			if e.HasComponent(ctype) {
				if _, inIndex := w.componentIndex[ctype][e.ID()]; !inIndex {
					t.Errorf("%s: holds %s but missing from index", stage, ctype)
				}
			}
		}
	}

	if err := e.AddComponent("a", nil); err != nil {
		t.Fatal(err)
	}
	if err := e.AddComponent("b", Component{"v": 1}); err != nil {
		t.Fatal(err)
	}
	check("pre-flush")

	flush(w)
	check("post-flush")

	e.RemoveComponent("a")
	check("after remove")

	e.Destroy()
	flush(w)
	if len(w.componentIndex) != 0 {
		t.Errorf("expected empty indices after destroy, got %v", w.componentIndex)
	}
}

func TestSystemPriorityOrder(t *testing.T) {
	w := quietWorld()
	var order []string

	a := newRecordSystem("A", nil, 10)
	b := newRecordSystem("B", nil, 50)
	c := newRecordSystem("C", nil, 50)
	for _, s := range []*recordSystem{a, b, c} {
		s.runOrder = &order
	}

	w.RegisterSystem(a)
	w.RegisterSystem(b)
	w.RegisterSystem(c)
	w.Update(0)

	want := []string{"B", "C", "A"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected run order %v, got %v", want, order)
		}
	}
}

func TestQueries(t *testing.T) {
	w := quietWorld()

	moving := w.CreateEntity()
	_ = moving.AddComponent("transform", nil)
	_ = moving.AddComponent("velocity", nil)
	moving.AddTag("hero")

	still := w.CreateEntity()
	_ = still.AddComponent("transform", nil)

	hidden := w.CreateEntity()
	_ = hidden.AddComponent("transform", nil)
	hidden.SetActive(false)

	flush(w)

	if got := w.EntitiesWith(); len(got) != 2 {
		t.Errorf("empty query must return all active entities, got %d", len(got))
	}
	if got := w.EntitiesWith("transform"); len(got) != 2 {
		t.Errorf("expected 2 active transforms, got %d", len(got))
	}
	if got := w.EntitiesWith("transform", "velocity"); len(got) != 1 || got[0].ID() != moving.ID() {
		t.Errorf("multi-type query wrong: %v", got)
	}
	if got := w.EntitiesWith("nonexistent"); got != nil {
		t.Errorf("unknown type must return nothing, got %v", got)
	}
	if got := w.EntitiesWithTag("hero"); len(got) != 1 || got[0].ID() != moving.ID() {
		t.Errorf("tag query wrong: %v", got)
	}

	hidden.SetActive(true)
	if got := w.EntitiesWith("transform"); len(got) != 3 {
		t.Errorf("reactivated entity must reappear, got %d", len(got))
	}
}

func TestDisabledSystemSkippedButNotified(t *testing.T) {
	w := quietWorld()
	s := newRecordSystem("sleeper", nil, 0)
	w.RegisterSystem(s)
	s.SetEnabled(false)

	e := w.CreateEntity()
	w.Update(1)
	w.RemoveEntity(e)
	w.Update(1)

	if len(s.seen) != 0 {
		t.Errorf("disabled system must not run, ran %d times", len(s.seen))
	}
	if len(s.added) != 1 || len(s.removed) != 1 {
		t.Errorf("disabled system must still get lifecycle hooks, added=%d removed=%d",
			len(s.added), len(s.removed))
	}
}

func TestAddedHookMatchesComponentTypes(t *testing.T) {
	w := quietWorld()
	picky := newRecordSystem("picky", []string{"velocity"}, 0)
	w.RegisterSystem(picky)

	plain := w.CreateEntity()
	_ = plain.AddComponent("transform", nil)
	mover := w.CreateEntity()
	_ = mover.AddComponent("velocity", nil)
	flush(w)

	if len(picky.added) != 1 || picky.added[0] != mover.ID() {
		t.Errorf("OnEntityAdded must fire only for matching entities, got %v", picky.added)
	}

	w.RemoveEntity(plain)
	flush(w)
	if len(picky.removed) != 1 {
		t.Errorf("OnEntityRemoved must fire for every removal, got %v", picky.removed)
	}
}

func TestDuplicateSystemNameIgnored(t *testing.T) {
	var warnings int
	w := NewWorld()
	w.SetLogger(func(string, ...any) { warnings++ })

	first := newRecordSystem("dup", nil, 0)
	second := newRecordSystem("dup", nil, 99)
	w.RegisterSystem(first)
	w.RegisterSystem(second)

	if len(w.Systems()) != 1 {
		t.Fatalf("expected one system, got %d", len(w.Systems()))
	}
	if warnings != 1 {
		t.Errorf("expected one warning, got %d", warnings)
	}
	if second.World() != nil {
		t.Error("rejected system must not be initialized")
	}
}

func TestUnregisterSystem(t *testing.T) {
	w := quietWorld()
	s := newRecordSystem("gone", nil, 0)
	w.RegisterSystem(s)
	w.UnregisterSystem("gone")

	if !s.destroyed {
		t.Error("unregister must destroy the system")
	}
	if _, ok := w.System("gone"); ok {
		t.Error("system still registered after unregister")
	}
}

func TestClearKeepsSystems(t *testing.T) {
	w := quietWorld()
	s := newRecordSystem("survivor", nil, 0)
	w.RegisterSystem(s)

	w.CreateEntity()
	flush(w)
	first := w.CreateEntity()
	firstID := first.ID()
	flush(w)

	w.Clear()
	if w.EntityCount() != 0 {
		t.Errorf("clear must remove all entities, got %d", w.EntityCount())
	}
	if s.destroyed {
		t.Error("clear must not destroy systems")
	}

	// Allocator resets: ids restart from 1.
	if e := w.CreateEntity(); e.ID() >= firstID {
		t.Errorf("expected allocator reset, got id %d", e.ID())
	}
}

func TestClearRemovesQueuedEntities(t *testing.T) {
	w := quietWorld()
	w.CreateEntity() // still queued
	w.Clear()
	flush(w)
	if w.EntityCount() != 0 {
		t.Errorf("queued entity must not survive clear, got %d", w.EntityCount())
	}
}

func TestClearNeverAnnouncesQueuedEntities(t *testing.T) {
	w := quietWorld()
	s := newRecordSystem("watcher", nil, 0)
	w.RegisterSystem(s)

	var added, removed int
	w.Subscribe(EventEntityAdded, func(Event) { added++ })
	w.Subscribe(EventEntityRemoved, func(Event) { removed++ })

	e := w.CreateEntity() // still queued when the world clears
	if err := e.AddComponent("pos", Component{"x": 1.0}); err != nil {
		t.Fatal(err)
	}
	w.Clear()

	if added != 0 || len(s.added) != 0 {
		t.Errorf("cleared world announced a birth: %d events, %d hooks", added, len(s.added))
	}
	if removed != 0 || len(s.removed) != 0 {
		t.Errorf("never-promoted entity announced a removal: %d events, %d hooks", removed, len(s.removed))
	}
	if idx := w.componentIndex["pos"]; len(idx) != 0 {
		t.Errorf("queued entity left index entries behind: %v", idx)
	}
	if w.EntityCount() != 0 {
		t.Errorf("queued entity survived clear, got %d", w.EntityCount())
	}
}

func TestDestroyTearsDown(t *testing.T) {
	w := quietWorld()
	s := newRecordSystem("doomed", nil, 0)
	w.RegisterSystem(s)

	var fired int
	w.Subscribe(EventEntityAdded, func(Event) { fired++ })

	w.CreateEntity()
	w.Destroy()

	if !s.destroyed {
		t.Error("destroy must destroy systems")
	}
	if len(w.Systems()) != 0 {
		t.Error("destroy must drop systems")
	}

	before := fired
	w.CreateEntity()
	flush(w)
	if fired != before {
		t.Error("destroy must drop listeners")
	}
}

func TestListenerOrder(t *testing.T) {
	w := quietWorld()
	var order []string
	w.Subscribe(EventEntityAdded, func(Event) { order = append(order, "first") })
	w.Subscribe(EventEntityAdded, func(Event) { order = append(order, "second") })

	w.CreateEntity()
	flush(w)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("listeners must fire in registration order, got %v", order)
	}
}

func TestMutationDuringIteration(t *testing.T) {
	// A system that creates and destroys entities mid-frame must not
	// corrupt the canonical store: structural changes apply at the
	// flush, after all systems ran.
	w := quietWorld()

	var spawned *Entity
	churn := newRecordSystem("churn", nil, 0)
	w.RegisterSystem(churn)

	seed := w.CreateEntity()
	flush(w)

	mutator := &mutatorSystem{
		BaseSystem: NewBaseSystem("mutator", nil, 10),
		act: func(w *World) {
			spawned = w.CreateEntity()
			seed.Destroy()
		},
	}
	w.RegisterSystem(mutator)

	w.Update(1)

	if _, ok := w.GetEntity(seed.ID()); ok {
		t.Error("destroyed entity must be gone after the flush")
	}
	if _, ok := w.GetEntity(spawned.ID()); !ok {
		t.Error("spawned entity must be canonical after the flush")
	}
	// churn runs after mutator (lower priority) within the same tick:
	// the spawned entity is not canonical yet and the destroyed one is
	// already inactive, so it sees neither.
	last := churn.seen[len(churn.seen)-1]
	if len(last) != 0 {
		t.Errorf("in-flight iteration must not see structural changes, saw %v", last)
	}
}

type mutatorSystem struct {
	BaseSystem
	act func(w *World)
}

func (s *mutatorSystem) Update(float64) {
	if s.act != nil {
		s.act(s.World())
	}
}
