package color

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidColor is returned when a string is not a 3 or 6 digit hex color.
var ErrInvalidColor = errors.New("invalid color")

var (
	shortHex = regexp.MustCompile(`(?i)^#?([0-9a-f])([0-9a-f])([0-9a-f])$`)
	fullHex  = regexp.MustCompile(`(?i)^#?([0-9a-f]{2})([0-9a-f]{2})([0-9a-f]{2})$`)
)

// HexToRGB decodes "#0033ff", "0033FF", "#03f" or "03F" into its three
// channels. ok is false for any other shape.
func HexToRGB(hex string) (rgb [3]uint8, ok bool) {
	if m := shortHex.FindStringSubmatch(hex); m != nil {
		hex = m[1] + m[1] + m[2] + m[2] + m[3] + m[3]
	}

	m := fullHex.FindStringSubmatch(hex)
	if m == nil {
		return rgb, false
	}
	for i := range rgb {
		v, err := strconv.ParseUint(m[i+1], 16, 8)
		if err != nil {
			return [3]uint8{}, false
		}
		rgb[i] = uint8(v)
	}
	return rgb, true
}

// ParseHex parses a hex color string like "#eb6f92" or "#03f" into a Color.
func ParseHex(s string) (*Color, error) {
	rgb, ok := HexToRGB(s)
	if !ok {
		return nil, fmt.Errorf("%w %q: must be 3 or 6 hex digits", ErrInvalidColor, s)
	}
	return New(float64(rgb[0]), float64(rgb[1]), float64(rgb[2])), nil
}
