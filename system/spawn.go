package system

import (
	"log"
	"math/rand"

	"github.com/lixenwraith/weft/component"
	"github.com/lixenwraith/weft/engine"
)

var glyphColors = []string{"green", "yellow", "aqua", "fuchsia", "white"}

// Spawner emits falling glyph entities on a fixed interval. It
// declares no component types and does entity-independent per-frame
// work, overriding the default query path entirely.
type Spawner struct {
	engine.BaseSystem

	interval  float64
	lifetime  float64
	maxGlyphs int
	width     int

	accumulated float64
	rng         *rand.Rand
}

// NewSpawner creates the spawner for a playfield of the given width.
func NewSpawner(interval, lifetime float64, maxGlyphs, width int, seed int64) *Spawner {
	return &Spawner{
		BaseSystem: engine.NewBaseSystem("spawner", nil, PrioritySpawn),
		interval:   interval,
		lifetime:   lifetime,
		maxGlyphs:  maxGlyphs,
		width:      width,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// Retune applies new spawn tuning, used by config hot reload.
func (s *Spawner) Retune(interval, lifetime float64, maxGlyphs int) {
	s.interval = interval
	s.lifetime = lifetime
	s.maxGlyphs = maxGlyphs
}

// SetWidth follows terminal resizes.
func (s *Spawner) SetWidth(width int) {
	s.width = width
}

// Update accumulates time and spawns while the glyph budget allows.
func (s *Spawner) Update(dt float64) {
	w := s.World()
	if w == nil || s.interval <= 0 || s.width <= 0 {
		return
	}

	// Spawns from this tick are still queued, so budget them locally
	// against the canonical count.
	budget := s.maxGlyphs - len(w.EntitiesWith(component.Glyph))

	s.accumulated += dt
	for s.accumulated >= s.interval {
		s.accumulated -= s.interval
		if budget <= 0 {
			continue
		}
		s.spawn(w)
		budget--
	}
}

func (s *Spawner) spawn(w *engine.World) {
	e := w.CreateEntity()
	char := rune('!' + s.rng.Intn(94)) // printable ASCII
	color := glyphColors[s.rng.Intn(len(glyphColors))]

	for ctype, data := range map[string]engine.Component{
		component.Transform: component.NewTransform(float64(s.rng.Intn(s.width)), 0),
		component.Velocity:  component.NewVelocity(s.rng.Float64()*4-2, 1+s.rng.Float64()*3),
		component.Glyph:     component.NewGlyph(char, color),
		component.Lifetime:  component.NewLifetime(s.lifetime),
		component.Sound:     component.NewSound(component.CueSpawn),
	} {
		if err := e.AddComponent(ctype, data); err != nil {
			log.Printf("spawner: %v", err)
			e.Destroy()
			return
		}
	}
	e.AddTag("glyph-rain")
}
