package system

import (
	"github.com/lixenwraith/weft/component"
	"github.com/lixenwraith/weft/engine"
)

// Lifetime counts down per-entity timers and destroys expired
// entities. Destruction goes through the deferred queue, so expired
// entities stay visible to lower-priority systems for the rest of the
// tick.
type Lifetime struct {
	engine.BaseSystem
}

// NewLifetime creates the lifetime system.
func NewLifetime() *Lifetime {
	return &Lifetime{
		BaseSystem: engine.NewBaseSystem("lifetime",
			[]string{component.Lifetime}, PriorityLifetime),
	}
}

// Update decrements timers and requests destruction on expiry.
func (s *Lifetime) Update(dt float64) {
	for _, e := range s.Entities() {
		data, _ := e.GetComponent(component.Lifetime)
		remaining := component.Num(data, "remaining") - dt
		if remaining <= 0 {
			e.Destroy()
			continue
		}
		data["remaining"] = remaining
	}
}
