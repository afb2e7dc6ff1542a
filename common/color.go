package common

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is an RGB colour with components in [0, 1].
type Color [3]float32

// ColorFromHex builds a Color from a packed 0xRRGGBB integer.
//
// Parameters:
//   - hex: the packed colour
//
// Returns:
//   - Color: the unpacked colour
func ColorFromHex(hex uint32) Color {
	return Color{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

// Hex packs the colour back into a 0xRRGGBB integer.
//
// Returns:
//   - uint32: the packed colour
func (c Color) Hex() uint32 {
	r := uint32(Clamp(c[0], 0, 1)*255 + 0.5)
	g := uint32(Clamp(c[1], 0, 1)*255 + 0.5)
	b := uint32(Clamp(c[2], 0, 1)*255 + 0.5)
	return r<<16 | g<<8 | b
}

// String formats the colour as a CSS hex string.
func (c Color) String() string {
	return fmt.Sprintf("#%06x", c.Hex())
}

// MarshalJSON encodes the colour as its CSS hex string.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts either a packed integer (0x49ef4 written as 302836) or any
// string understood by ParseColor.
func (c *Color) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		if n < 0 || n > 0xffffff {
			return fmt.Errorf("colour %v out of range", n)
		}
		*c = ColorFromHex(uint32(n))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("colour must be a number or string: %w", err)
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor parses "#rgb", "#rrggbb", "0xrrggbb", "rrggbb" or an SVG/CSS colour name.
//
// Parameters:
//   - s: the colour text
//
// Returns:
//   - Color: the parsed colour
//   - error: error if the text is not a recognised colour
func ParseColor(s string) (Color, error) {
	text := strings.ToLower(strings.TrimSpace(s))
	if text == "" {
		return Color{}, fmt.Errorf("empty colour")
	}
	if named, ok := colornames.Map[text]; ok {
		return Color{float32(named.R) / 255, float32(named.G) / 255, float32(named.B) / 255}, nil
	}

	hex := strings.TrimPrefix(strings.TrimPrefix(text, "#"), "0x")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("unrecognised colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("unrecognised colour %q: %w", s, err)
	}
	return ColorFromHex(uint32(v)), nil
}

// MustParseColor is ParseColor for compile-time constants; it panics on bad input.
//
// Parameters:
//   - s: the colour text
//
// Returns:
//   - Color: the parsed colour
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
