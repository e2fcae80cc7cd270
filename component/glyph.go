package component

import (
	"errors"

	"github.com/lixenwraith/weft/engine"
)

// Glyph is a renderable character with a named color.
const Glyph = "glyph"

func GlyphSchema() engine.Schema {
	return engine.Schema{
		"char": {
			Required: true,
			Kind:     engine.KindString,
			Validate: func(v any) error {
				if s, _ := v.(string); len([]rune(s)) != 1 {
					return errors.New("must be a single rune")
				}
				return nil
			},
		},
		"color": {Kind: engine.KindString, Default: "white"},
	}
}

// GlyphFactory lowers missing colors to the default before validation.
func GlyphFactory(data engine.Component) engine.Component {
	if _, ok := data["color"].(string); !ok {
		data["color"] = "white"
	}
	return data
}

// NewGlyph builds glyph data.
func NewGlyph(char rune, color string) engine.Component {
	return engine.Component{"char": string(char), "color": color}
}

// GlyphRune extracts the glyph's rune, 0 if malformed.
func GlyphRune(c engine.Component) rune {
	runes := []rune(Str(c, "char"))
	if len(runes) != 1 {
		return 0
	}
	return runes[0]
}
