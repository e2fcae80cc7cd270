package engine

import (
	"testing"
	"time"
)

func TestRunnerDrivesEngine(t *testing.T) {
	w := quietWorld()
	e := NewEngine(w)
	r := NewRunner(e, 5*time.Millisecond)

	r.Start()
	r.Start() // idempotent
	time.Sleep(60 * time.Millisecond)
	r.Stop()
	r.Stop() // idempotent

	if r.TickCount() == 0 {
		t.Fatal("runner never ticked")
	}
	if e.FrameCount() == 0 {
		t.Error("engine never advanced")
	}
	if e.Running() {
		t.Error("stop must disarm the engine")
	}

	// No ticks after stop.
	count := r.TickCount()
	time.Sleep(20 * time.Millisecond)
	if r.TickCount() != count {
		t.Error("runner ticked after stop")
	}
}

// churnSystem creates and destroys entities every tick so a control
// call landing mid-update would trip the race detector on the world's
// maps.
type churnSystem struct {
	BaseSystem
}

func (s *churnSystem) Update(float64) {
	w := s.World()
	w.CreateEntity()
	for _, e := range w.EntitiesWith() {
		if e.ID()%2 == 0 {
			e.Destroy()
		}
	}
}

func TestRunnerDoSerializesControl(t *testing.T) {
	w := quietWorld()
	w.RegisterSystem(&churnSystem{BaseSystem: NewBaseSystem("churn", nil, 0)})
	e := NewEngine(w)
	r := NewRunner(e, time.Millisecond)
	r.Start()

	// Hammer the control surface from this goroutine while the runner
	// ticks; Do lands every call between ticks.
	for i := 0; i < 25; i++ {
		r.Do(func() {
			if e.Paused() {
				e.Resume()
			} else {
				e.Pause()
			}
		})
		r.Do(func() { e.SetTimeScale(2.0) })
		r.Do(func() { e.Reset() })
		time.Sleep(time.Millisecond)
	}
	r.Stop()

	if e.TimeScale() != 2.0 {
		t.Errorf("control call lost: time scale %v", e.TimeScale())
	}
	if r.TickCount() == 0 {
		t.Error("runner never ticked around the control calls")
	}

	// On a stopped runner Do executes inline.
	ran := false
	r.Do(func() { ran = true })
	if !ran {
		t.Error("Do on a stopped runner must run the function")
	}
}
