package color

import (
	"fmt"
	"math"
)

// Color represents an RGB color with float64 channels. Every setter and
// transform clamps the channels to [0, 255]; rounding only happens when the
// color is rendered.
type Color struct {
	r, g, b float64
}

// New returns a Color with the given channels, clamped to [0, 255].
func New(r, g, b float64) *Color {
	c := &Color{}
	return c.Set(r, g, b)
}

// R returns the red channel.
func (c *Color) R() float64 { return c.r }

// G returns the green channel.
func (c *Color) G() float64 { return c.g }

// B returns the blue channel.
func (c *Color) B() float64 { return c.b }

// SetR sets the red channel.
func (c *Color) SetR(v float64) { c.r = clamp(v) }

// SetG sets the green channel.
func (c *Color) SetG(v float64) { c.g = clamp(v) }

// SetB sets the blue channel.
func (c *Color) SetB(v float64) { c.b = clamp(v) }

// Set replaces all three channels and returns the receiver.
func (c *Color) Set(r, g, b float64) *Color {
	c.r = clamp(r)
	c.g = clamp(g)
	c.b = clamp(b)
	return c
}

// Clone returns an independent copy of c.
func (c *Color) Clone() *Color {
	cp := *c
	return &cp
}

// String returns the color as an rgb() string, e.g. "rgb(235, 111, 146)".
func (c *Color) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", int(math.Round(c.r)), int(math.Round(c.g)), int(math.Round(c.b)))
}

// Hex returns the rounded color as a hex string with leading #, e.g. "#eb6f92".
func (c *Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", uint8(math.Round(c.r)), uint8(math.Round(c.g)), uint8(math.Round(c.b)))
}

// clamp limits v to [0, 255]. NaN maps to 0.
func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return v
}
