package component

import "github.com/lixenwraith/weft/engine"

// Sound requests a one-shot audio cue when the entity is promoted into
// the world. The audio system consumes it through the entity-added
// hook.
const Sound = "sound"

// Cue names understood by the audio system.
const (
	CueSpawn  = "spawn"
	CueExpire = "expire"
)

func SoundSchema() engine.Schema {
	return engine.Schema{
		"cue": {Required: true, Kind: engine.KindString},
	}
}

// NewSound builds sound data for the given cue.
func NewSound(cue string) engine.Component {
	return engine.Component{"cue": cue}
}
