package particle

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseValue parses a fixed numeric value. An empty string yields 0.
func ParseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return v, nil
}

// ParseRange parses a range string.
//   - Fixed value: "150" → def=150, max=0
//   - Range: "[150 160]" → def=150, max=160
//   - Single bracketed value: "[150]" → def=150, max=0
//
// A max of 0 means the value is not randomized.
func ParseRange(s string) (def, max float64, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, nil
	}

	if !strings.HasPrefix(s, "[") {
		def, err = ParseValue(s)
		return def, 0, err
	}

	if !strings.HasSuffix(s, "]") {
		return 0, 0, fmt.Errorf("invalid range %q: missing closing bracket", s)
	}

	parts := strings.Fields(strings.TrimSuffix(strings.TrimPrefix(s, "["), "]"))
	switch len(parts) {
	case 1:
		def, err = ParseValue(parts[0])
		return def, 0, err
	case 2:
		if def, err = ParseValue(parts[0]); err != nil {
			return 0, 0, err
		}
		if max, err = ParseValue(parts[1]); err != nil {
			return 0, 0, err
		}
		return def, max, nil
	}
	return 0, 0, fmt.Errorf("invalid range %q: want 1 or 2 values, got %d", s, len(parts))
}

// ParsePair parses "[a b]" into two values. A single value is used for both.
func ParsePair(s string) (a, b float64, err error) {
	a, b, err = ParseRange(s)
	if err != nil {
		return 0, 0, err
	}
	if !strings.Contains(strings.TrimSpace(s), " ") {
		b = a
	}
	return a, b, nil
}

// FormatRange is the inverse of ParseRange.
func FormatRange(def, max float64) string {
	if max == 0 {
		return FormatValue(def)
	}
	return "[" + FormatValue(def) + " " + FormatValue(max) + "]"
}

// FormatValue formats v with the fewest digits that round-trip.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa". An empty string yields
// opaque white.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, nil
	}
	hex := strings.TrimPrefix(s, "#")

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// FormatColor is the inverse of ParseColor. The alpha byte is omitted when
// the colour is opaque.
func FormatColor(c color.Color) string {
	r, g, b, a := c.RGBA()
	if a == 0xffff {
		return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r>>8, g>>8, b>>8, a>>8)
}
