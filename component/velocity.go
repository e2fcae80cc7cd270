package component

import "github.com/lixenwraith/weft/engine"

// Velocity is a 2D velocity in cells per second.
const Velocity = "velocity"

func VelocitySchema() engine.Schema {
	return engine.Schema{
		"vx": {Kind: engine.KindNumber, Default: 0.0},
		"vy": {Kind: engine.KindNumber, Default: 0.0},
	}
}

// NewVelocity builds velocity data.
func NewVelocity(vx, vy float64) engine.Component {
	return engine.Component{"vx": vx, "vy": vy}
}
