package color

import "math"

// Neutral parameters for each filter primitive. Applying a primitive with its
// default is the same as the CSS function called without an argument.
const (
	DefaultHueRotate  = 0.0
	DefaultGrayscale  = 1.0
	DefaultSepia      = 1.0
	DefaultSaturate   = 1.0
	DefaultBrightness = 1.0
	DefaultContrast   = 1.0
	DefaultInvert     = 1.0
)

// Matrix is a row-major 3x3 linear map from (r, g, b) to (r', g', b').
type Matrix [9]float64

// Identity leaves every channel unchanged.
var Identity = Matrix{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}

// HueRotate rotates the hue by angle degrees.
func (c *Color) HueRotate(angle float64) *Color {
	angle = angle / 180 * math.Pi
	sin := math.Sin(angle)
	cos := math.Cos(angle)

	return c.Multiply(Matrix{
		0.213 + cos*0.787 - sin*0.213,
		0.715 - cos*0.715 - sin*0.715,
		0.072 - cos*0.072 + sin*0.928,
		0.213 - cos*0.213 + sin*0.143,
		0.715 + cos*0.285 + sin*0.14,
		0.072 - cos*0.072 - sin*0.283,
		0.213 - cos*0.213 - sin*0.787,
		0.715 - cos*0.715 + sin*0.715,
		0.072 + cos*0.928 + sin*0.072,
	})
}

// Grayscale moves the color toward its luminance. 0 is the identity and
// 1 is fully gray.
func (c *Color) Grayscale(value float64) *Color {
	inv := 1 - value
	return c.Multiply(Matrix{
		0.2126 + 0.7874*inv,
		0.7152 - 0.7152*inv,
		0.0722 - 0.0722*inv,
		0.2126 - 0.2126*inv,
		0.7152 + 0.2848*inv,
		0.0722 - 0.0722*inv,
		0.2126 - 0.2126*inv,
		0.7152 - 0.7152*inv,
		0.0722 + 0.9278*inv,
	})
}

// Sepia moves the color toward its sepia tone. 0 is the identity.
func (c *Color) Sepia(value float64) *Color {
	inv := 1 - value
	return c.Multiply(Matrix{
		0.393 + 0.607*inv,
		0.769 - 0.769*inv,
		0.189 - 0.189*inv,
		0.349 - 0.349*inv,
		0.686 + 0.314*inv,
		0.168 - 0.168*inv,
		0.272 - 0.272*inv,
		0.534 - 0.534*inv,
		0.131 + 0.869*inv,
	})
}

// Saturate scales the saturation. 1 is the identity, 0 removes all
// saturation and values above 1 oversaturate.
func (c *Color) Saturate(value float64) *Color {
	return c.Multiply(Matrix{
		0.213 + 0.787*value,
		0.715 - 0.715*value,
		0.072 - 0.072*value,
		0.213 - 0.213*value,
		0.715 + 0.285*value,
		0.072 - 0.072*value,
		0.213 - 0.213*value,
		0.715 - 0.715*value,
		0.072 + 0.928*value,
	})
}

// Multiply applies m to the color. All three output channels are computed
// from the channels as they were before the call.
func (c *Color) Multiply(m Matrix) *Color {
	r := clamp(c.r*m[0] + c.g*m[1] + c.b*m[2])
	g := clamp(c.r*m[3] + c.g*m[4] + c.b*m[5])
	b := clamp(c.r*m[6] + c.g*m[7] + c.b*m[8])
	c.r, c.g, c.b = r, g, b
	return c
}

// Brightness scales every channel by value.
func (c *Color) Brightness(value float64) *Color {
	return c.Linear(value, 0)
}

// Contrast scales every channel by value around the mid point.
func (c *Color) Contrast(value float64) *Color {
	return c.Linear(value, -(0.5*value)+0.5)
}

// Linear maps every channel to channel*slope + intercept*255.
func (c *Color) Linear(slope, intercept float64) *Color {
	c.r = clamp(c.r*slope + intercept*255)
	c.g = clamp(c.g*slope + intercept*255)
	c.b = clamp(c.b*slope + intercept*255)
	return c
}

// Invert blends every channel toward its inverse. 0 is the identity and
// 1 is the full negative.
func (c *Color) Invert(value float64) *Color {
	c.r = clamp((value + c.r/255*(1-2*value)) * 255)
	c.g = clamp((value + c.g/255*(1-2*value)) * 255)
	c.b = clamp((value + c.b/255*(1-2*value)) * 255)
	return c
}
