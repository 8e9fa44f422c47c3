package color

import colorful "github.com/lucasb-eyer/go-colorful"

// Colorful converts c to a go-colorful color with unit channels.
func (c *Color) Colorful() colorful.Color {
	return colorful.Color{R: c.r / 255, G: c.g / 255, B: c.b / 255}
}

// DeltaE returns the CIEDE2000 distance between c and other on the usual
// 0-100 scale. Values below about 2 are hard to tell apart.
func (c *Color) DeltaE(other *Color) float64 {
	// go-colorful works with L in [0, 1].
	return c.Colorful().DistanceCIEDE2000(other.Colorful()) * 100
}
