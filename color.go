package pathfx

import (
	"fmt"
	"image/color"
	"strconv"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
//
// The engine never interprets colors; they travel with clock faces and
// scene layers so that the renderer can use them.
type RGBA struct {
	R, G, B, A float64
}

// RGBA implements color.Color.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA converts c to an 8-bit non-premultiplied color.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(c.R*255) + 0.5),
		G: uint8(clamp255(c.G*255) + 0.5),
		B: uint8(clamp255(c.B*255) + 0.5),
		A: uint8(clamp255(c.A*255) + 0.5),
	}
}

// WithAlpha returns c with its alpha replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// Hex creates a color from a hex string, or opaque black when s is not a
// valid hex color. See ParseHex.
func Hex(s string) RGBA {
	c, err := ParseHex(s)
	if err != nil {
		return Black
	}
	return c
}

// ParseHex parses "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA"; the leading
// '#' is optional.
func ParseHex(s string) (RGBA, error) {
	hex := s
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var digits int
	switch len(hex) {
	case 3, 4:
		digits = 1
	case 6, 8:
		digits = 2
	default:
		return RGBA{}, fmt.Errorf("pathfx: color %q: %w", s, ErrInvalidParameter)
	}

	ch := [4]float64{1, 1, 1, 1}
	for i := 0; i*digits < len(hex); i++ {
		v, err := strconv.ParseUint(hex[i*digits:(i+1)*digits], 16, 8)
		if err != nil {
			return RGBA{}, fmt.Errorf("pathfx: color %q: %w", s, ErrInvalidParameter)
		}
		if digits == 1 {
			v *= 17
		}
		ch[i] = float64(v) / 255
	}
	return RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = RGBA{}
)
