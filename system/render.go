package system

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/weft/component"
	"github.com/lixenwraith/weft/engine"
)

// Render draws every glyph entity onto a tcell screen, with a one-line
// HUD. It runs last so it observes the tick's final component state.
// Rendering stays outside the core; this system consumes the World
// purely through the query contract.
type Render struct {
	engine.BaseSystem

	screen tcell.Screen
	loop   *engine.Engine
}

// NewRender creates the renderer. loop may be nil; the HUD then omits
// timing stats.
func NewRender(screen tcell.Screen, loop *engine.Engine) *Render {
	return &Render{
		BaseSystem: engine.NewBaseSystem("render",
			[]string{component.Glyph, component.Transform}, PriorityRender),
		screen: screen,
		loop:   loop,
	}
}

// Update draws one frame.
func (s *Render) Update(_ float64) {
	s.screen.Clear()

	for _, e := range s.Entities() {
		pos, _ := e.GetComponent(component.Transform)
		glyph, _ := e.GetComponent(component.Glyph)

		char := component.GlyphRune(glyph)
		if char == 0 {
			continue
		}
		style := tcell.StyleDefault.Foreground(tcell.GetColor(component.Str(glyph, "color")))
		s.screen.SetContent(
			int(component.Num(pos, "x")),
			int(component.Num(pos, "y")),
			char, nil, style)
	}

	s.drawHUD()
	s.screen.Show()
}

func (s *Render) drawHUD() {
	w := s.World()
	if w == nil {
		return
	}
	hud := fmt.Sprintf(" entities %d ", w.EntityCount())
	if s.loop != nil {
		state := "run"
		if s.loop.Paused() {
			state = "pause"
		}
		hud = fmt.Sprintf(" %s | fps %d | x%.2g | t %.1fs |%s", state,
			s.loop.FPS(), s.loop.TimeScale(), s.loop.Elapsed(), hud)
	}
	_, height := s.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, r := range hud {
		s.screen.SetContent(i, height-1, r, nil, style)
	}
}
