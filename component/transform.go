package component

import "github.com/lixenwraith/weft/engine"

// Transform is a 2D position in cell coordinates.
const Transform = "transform"

func TransformSchema() engine.Schema {
	return engine.Schema{
		"x": {Kind: engine.KindNumber, Default: 0.0},
		"y": {Kind: engine.KindNumber, Default: 0.0},
	}
}

// NewTransform builds transform data at the given position.
func NewTransform(x, y float64) engine.Component {
	return engine.Component{"x": x, "y": y}
}
