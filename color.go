package pixfill

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// ErrInvalidColor is returned when a fill color does not match the #RRGGBB notation.
var ErrInvalidColor = errors.New("invalid color")

// Color is a non-premultiplied RGBA color. Real colors have all the channels
// in the [0, 255] range, NoColor is the only value with negative channels.
type Color struct {
	R, G, B, A int16
}

// NoColor is returned for pixels outside of a buffer. It never equals a real color.
var NoColor = Color{R: -1, G: -1, B: -1, A: -1}

// NewColor returns the color with the given channel values.
func NewColor(r, g, b, a uint8) Color {
	return Color{R: int16(r), G: int16(g), B: int16(b), A: int16(a)}
}

// ColorFromNRGBA converts a color.NRGBA value.
func ColorFromNRGBA(c color.NRGBA) Color {
	return NewColor(c.R, c.G, c.B, c.A)
}

// Valid reports whether c is a real color.
func (c Color) Valid() bool {
	return inRange(c.R) && inRange(c.G) && inRange(c.B) && inRange(c.A)
}

func inRange(v int16) bool { return v >= 0 && v <= 0xff }

// NRGBA converts a valid color to color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: uint8(c.A)}
}

func (c Color) String() string {
	if !c.Valid() {
		return "none"
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseColor converts a hexadecimal color string of the form "#RRGGBB"
// (the leading # is optional and the digits are case-insensitive) to an opaque Color.
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return NoColor, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	var rgb [3]byte
	if _, err := hex.Decode(rgb[:], []byte(h)); err != nil {
		return NoColor, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return NewColor(rgb[0], rgb[1], rgb[2], 0xff), nil
}

// MustParseColor is like ParseColor but panics if s is not a valid color.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
