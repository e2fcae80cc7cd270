// Package component defines the component types used by the reference
// systems and the demo: their type names, registry schemas and typed
// accessors over the dynamic records.
package component

import "github.com/lixenwraith/weft/engine"

// RegisterAll installs every demo component schema into the registry.
// Registration is idempotent, so calling it again after a hot reload
// is safe.
func RegisterAll(r *engine.ComponentRegistry) {
	r.Register(Transform, TransformSchema(), nil)
	r.Register(Velocity, VelocitySchema(), nil)
	r.Register(Glyph, GlyphSchema(), GlyphFactory)
	r.Register(Lifetime, LifetimeSchema(), nil)
	r.Register(Sound, SoundSchema(), nil)
}

// Num reads a numeric field from a component record, 0 if absent or
// non-numeric.
func Num(c engine.Component, key string) float64 {
	v, _ := engine.AsFloat(c[key])
	return v
}

// Str reads a string field from a component record.
func Str(c engine.Component, key string) string {
	s, _ := c[key].(string)
	return s
}
