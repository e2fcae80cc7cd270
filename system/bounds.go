package system

import (
	"github.com/lixenwraith/weft/component"
	"github.com/lixenwraith/weft/engine"
)

// Bounds destroys entities that leave the playfield. Horizontal
// escapes wrap instead, which keeps the rain dense on narrow
// terminals.
type Bounds struct {
	engine.BaseSystem

	width  int
	height int
}

// NewBounds creates the bounds system for the given playfield size.
func NewBounds(width, height int) *Bounds {
	return &Bounds{
		BaseSystem: engine.NewBaseSystem("bounds",
			[]string{component.Transform}, PriorityBounds),
		width:  width,
		height: height,
	}
}

// Resize follows terminal resizes.
func (s *Bounds) Resize(width, height int) {
	s.width = width
	s.height = height
}

// Update wraps or destroys out-of-bounds entities.
func (s *Bounds) Update(_ float64) {
	for _, e := range s.Entities() {
		pos, _ := e.GetComponent(component.Transform)
		x := component.Num(pos, "x")
		y := component.Num(pos, "y")

		if y > float64(s.height) {
			e.Destroy()
			continue
		}
		if s.width > 0 {
			switch {
			case x < 0:
				pos["x"] = x + float64(s.width)
			case x >= float64(s.width):
				pos["x"] = x - float64(s.width)
			}
		}
	}
}
