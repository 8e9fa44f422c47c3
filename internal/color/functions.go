package color

import "math"

// HSL is a hue/saturation/lightness view of a Color. All three components are
// scaled to [0, 100]; hue is expressed in hundredths of a full turn.
type HSL struct {
	H, S, L float64
}

// HSL returns the color in HSL space, each component in [0, 100].
func (c *Color) HSL() HSL {
	h, s, l := c.hsl()
	return HSL{H: h * 100, S: s * 100, L: l * 100}
}

// hsl returns the unit-scaled HSL components of c.
func (c *Color) hsl() (h, s, l float64) {
	r, g, b := c.r/255, c.g/255, c.b/255

	max := math.Max(math.Max(r, g), b)
	min := math.Min(math.Min(r, g), b)
	l = (max + min) / 2

	if max == min {
		return 0, 0, l // achromatic
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}
	return h / 6, s, l
}

// FromHSL builds a Color from unit-scaled hue, saturation and lightness.
func FromHSL(h, s, l float64) *Color {
	if s == 0 {
		return New(l*255, l*255, l*255)
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return New(
		hueToRGB(p, q, h+1.0/3.0)*255,
		hueToRGB(p, q, h)*255,
		hueToRGB(p, q, h-1.0/3.0)*255,
	)
}

// Brighten returns a copy of c with its HSL lightness raised by amount (0-1).
func Brighten(c *Color, amount float64) *Color {
	h, s, l := c.hsl()
	return FromHSL(h, s, math.Min(1, l+amount))
}

// Darken returns a copy of c with its HSL lightness lowered by amount (0-1).
func Darken(c *Color, amount float64) *Color {
	h, s, l := c.hsl()
	return FromHSL(h, s, math.Max(0, l-amount))
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
