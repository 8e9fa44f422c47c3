// Package filter models the parameter vector of a CSS filter chain and
// renders it as CSS.
package filter

import (
	"fmt"
	"math"

	"github.com/jsvensson/hexfilter/internal/color"
)

// Indices into Values, in the order the chain is applied.
const (
	Invert = iota
	Sepia
	Saturate
	HueRotate
	Brightness
	Contrast
)

// Values holds the filter parameters in CSS units: percentages for every
// primitive except HueRotate, which is stored in hundredths of a turn.
type Values [6]float64

// Base is the color every chain is applied to.
func Base() *color.Color {
	return color.New(0, 0, 0)
}

// Apply runs the chain on c in place and returns c.
func (v Values) Apply(c *color.Color) *color.Color {
	return c.
		Invert(v[Invert] / 100).
		Sepia(v[Sepia] / 100).
		Saturate(v[Saturate] / 100).
		HueRotate(v[HueRotate] * 3.6).
		Brightness(v[Brightness] / 100).
		Contrast(v[Contrast] / 100)
}

// Render returns the color produced by applying the chain to Base.
func (v Values) Render() *color.Color {
	return v.Apply(Base())
}

// CSS returns the chain as a filter value, e.g.
// "invert(11%) sepia(93%) saturate(3%) hue-rotate(96deg) brightness(95%) contrast(88%)".
func (v Values) CSS() string {
	return fmt.Sprintf("invert(%d%%) sepia(%d%%) saturate(%d%%) hue-rotate(%ddeg) brightness(%d%%) contrast(%d%%)",
		round(v[Invert]),
		round(v[Sepia]),
		round(v[Saturate]),
		round(v[HueRotate]*3.6),
		round(v[Brightness]),
		round(v[Contrast]),
	)
}

// Declaration returns the chain as a complete CSS declaration.
func (v Values) Declaration() string {
	return "filter: " + v.CSS() + ";"
}

// Max returns the upper bound of parameter i.
func Max(i int) float64 {
	switch i {
	case Saturate:
		return 7500
	case Brightness, Contrast:
		return 200
	default:
		return 100
	}
}

// Fix brings value into the domain of parameter i. Hue wraps around, every
// other parameter is clamped to [0, Max(i)].
func Fix(i int, value float64) float64 {
	max := Max(i)
	if i == HueRotate {
		if value > max {
			return math.Mod(value, max)
		}
		if value < 0 {
			return max + math.Mod(value, max)
		}
		return value
	}
	if value < 0 {
		return 0
	}
	if value > max {
		return max
	}
	return value
}

func round(v float64) int {
	return int(math.Round(v))
}
