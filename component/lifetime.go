package component

import "github.com/lixenwraith/weft/engine"

// Lifetime counts down to entity destruction.
const Lifetime = "lifetime"

func LifetimeSchema() engine.Schema {
	return engine.Schema{
		"remaining": {Required: true, Kind: engine.KindNumber},
	}
}

// NewLifetime builds lifetime data with the given seconds remaining.
func NewLifetime(seconds float64) engine.Component {
	return engine.Component{"remaining": seconds}
}
