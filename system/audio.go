package system

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/weft/component"
	"github.com/lixenwraith/weft/engine"
)

// Audio plays short synthesized cues for entities that carry a sound
// component, consuming them through the entity-added hook rather than
// a per-frame scan. Initialization failure (headless host, no output
// device) is non-fatal: the system disables itself and the game runs
// silent.
type Audio struct {
	engine.BaseSystem

	sampleRate beep.SampleRate
	ready      bool
}

// NewAudio creates the audio system at the given sample rate.
func NewAudio(sampleRate int) *Audio {
	return &Audio{
		BaseSystem: engine.NewBaseSystem("audio",
			[]string{component.Sound}, PriorityAudio),
		sampleRate: beep.SampleRate(sampleRate),
	}
}

// Init opens the speaker. On failure the system stays registered but
// disabled.
func (s *Audio) Init(w *engine.World) {
	s.BaseSystem.Init(w)
	if err := speaker.Init(s.sampleRate, s.sampleRate.N(time.Second/10)); err != nil {
		log.Printf("audio: speaker init failed, running silent: %v", err)
		s.SetEnabled(false)
		return
	}
	s.ready = true
}

// Update is a no-op; cue playback is driven by the lifecycle hook.
func (s *Audio) Update(_ float64) {}

// OnEntityAdded plays the entity's cue once. The hook fires even while
// the system is disabled, so the ready flag gates playback.
func (s *Audio) OnEntityAdded(e *engine.Entity) {
	if !s.ready || !s.Enabled() {
		return
	}
	data, ok := e.GetComponent(component.Sound)
	if !ok {
		return
	}
	s.play(component.Str(data, "cue"))
}

func (s *Audio) play(cue string) {
	var freq float64
	var dur time.Duration
	switch cue {
	case component.CueSpawn:
		freq, dur = 880, 40*time.Millisecond
	case component.CueExpire:
		freq, dur = 440, 60*time.Millisecond
	default:
		return
	}

	tone, err := generators.SineTone(s.sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(s.sampleRate.N(dur), tone))
}

// Destroy silences pending cues.
func (s *Audio) Destroy() {
	if s.ready {
		speaker.Clear()
	}
	s.ready = false
	s.BaseSystem.Destroy()
}
