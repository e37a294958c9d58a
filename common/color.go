package common

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB-encoded colour with straight alpha, each channel in [0, 1].
type Color struct {
	R, G, B, A float32
}

// White is opaque white.
var White = Color{R: 1, G: 1, B: 1, A: 1}

func fromColorful(c colorful.Color) Color {
	c = c.Clamped()
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: 1}
}

// ColorFromHex builds a colour from a packed 0xRRGGBB value.
func ColorFromHex(hex uint32) Color {
	return Color{
		R: float32((hex>>16)&0xff) / 255,
		G: float32((hex>>8)&0xff) / 255,
		B: float32(hex&0xff) / 255,
		A: 1,
	}
}

// ColorFromHSL builds a colour from hue in degrees and saturation/lightness in [0, 1].
func ColorFromHSL(h, s, l float64) Color {
	return fromColorful(colorful.Hsl(h, s, l))
}

// ParseColor parses a colour in either "#rrggbb" or "hsl(h, s%, l%)" notation.
//
// Parameters:
//   - s: the colour string
//
// Returns:
//   - Color: the parsed colour, fully opaque
//   - error: error if the notation is not recognised
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("failed to parse hex colour %q: %w", s, err)
		}
		return fromColorful(c), nil
	case strings.HasPrefix(s, "hsl(") && strings.HasSuffix(s, ")"):
		parts := strings.Split(s[len("hsl("):len(s)-1], ",")
		if len(parts) != 3 {
			return Color{}, fmt.Errorf("hsl colour %q needs three components", s)
		}
		var v [3]float64
		for i, p := range parts {
			p = strings.TrimSuffix(strings.TrimSpace(p), "%")
			f, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return Color{}, fmt.Errorf("failed to parse hsl component %q: %w", p, err)
			}
			v[i] = f
		}
		return ColorFromHSL(v[0], v[1]/100, v[2]/100), nil
	}
	return Color{}, fmt.Errorf("unrecognised colour notation %q", s)
}

// Linear returns the colour converted to linear RGB, alpha unchanged, as shaders expect it.
func (c Color) Linear() [4]float32 {
	r, g, b := colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.LinearRgb()
	return [4]float32{float32(r), float32(g), float32(b), c.A}
}

// Hex formats the colour as "#rrggbb".
func (c Color) Hex() string {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.Clamped().Hex()
}
