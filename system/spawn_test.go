package system

import (
	"testing"

	"github.com/lixenwraith/weft/component"
)

func TestSpawnerEmitsCompleteGlyphs(t *testing.T) {
	w := newTestWorld(t)
	spawner := NewSpawner(0.1, 5.0, 50, 80, 1)
	w.RegisterSystem(spawner)

	w.Update(0.55) // five intervals
	w.Update(0)    // make the spawns visible

	glyphs := w.EntitiesWith(component.Glyph)
	if len(glyphs) != 5 {
		t.Fatalf("expected 5 spawns, got %d", len(glyphs))
	}
	for _, e := range glyphs {
		if !e.HasComponents(component.Transform, component.Velocity,
			component.Lifetime, component.Sound) {
			t.Errorf("entity %d missing components: %v", e.ID(), e.ComponentTypes())
		}
		if !e.HasTag("glyph-rain") {
			t.Errorf("entity %d missing tag", e.ID())
		}
		glyph, _ := e.GetComponent(component.Glyph)
		if component.GlyphRune(glyph) == 0 {
			t.Errorf("entity %d has malformed glyph: %v", e.ID(), glyph)
		}
	}
}

func TestSpawnerRespectsBudget(t *testing.T) {
	w := newTestWorld(t)
	spawner := NewSpawner(0.01, 60.0, 3, 80, 1)
	w.RegisterSystem(spawner)

	for i := 0; i < 20; i++ {
		w.Update(0.05)
	}

	if got := len(w.EntitiesWith(component.Glyph)); got > 3 {
		t.Errorf("budget 3 exceeded: %d glyphs", got)
	}
}

func TestSpawnerRetune(t *testing.T) {
	w := newTestWorld(t)
	spawner := NewSpawner(100.0, 5.0, 50, 80, 1)
	w.RegisterSystem(spawner)

	w.Update(1.0)
	w.Update(0)
	if got := len(w.EntitiesWith(component.Glyph)); got != 0 {
		t.Fatalf("nothing should spawn at interval 100, got %d", got)
	}

	spawner.Retune(0.1, 5.0, 50)
	w.Update(1.0)
	w.Update(0)
	if got := len(w.EntitiesWith(component.Glyph)); got == 0 {
		t.Error("retuned spawner never spawned")
	}
}
