package system

import (
	"github.com/lixenwraith/weft/component"
	"github.com/lixenwraith/weft/engine"
)

// Movement integrates velocity into position and applies gravity.
type Movement struct {
	engine.BaseSystem

	gravity float64
}

// NewMovement creates the movement system with the given gravity in
// cells per second squared.
func NewMovement(gravity float64) *Movement {
	return &Movement{
		BaseSystem: engine.NewBaseSystem("movement",
			[]string{component.Velocity, component.Transform}, PriorityMovement),
		gravity: gravity,
	}
}

// SetGravity retunes gravity, used by config hot reload.
func (s *Movement) SetGravity(gravity float64) {
	s.gravity = gravity
}

// Update advances every moving entity by dt seconds.
func (s *Movement) Update(dt float64) {
	for _, e := range s.Entities() {
		vel, _ := e.GetComponent(component.Velocity)
		pos, _ := e.GetComponent(component.Transform)

		vy := component.Num(vel, "vy") + s.gravity*dt
		vel["vy"] = vy

		pos["x"] = component.Num(pos, "x") + component.Num(vel, "vx")*dt
		pos["y"] = component.Num(pos, "y") + vy*dt
	}
}
