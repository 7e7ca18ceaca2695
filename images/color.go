// Package images - color space conversion and colorimetry helpers.
package images

import (
	"github.com/chewxy/math32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// BT.709 luma coefficients. The weights sum to 1.0 so a white pixel maps
// to full luminance and black to zero.
const (
	LumaR = 0.2126
	LumaG = 0.7152
	LumaB = 0.0722
)

// Luminance returns the BT.709 luminance of an 8-bit RGB triple, in the
// same [0, 255] scale as the inputs. Alpha is ignored.
func Luminance(r, g, b uint8) float32 {
	return LumaR*float32(r) + LumaG*float32(g) + LumaB*float32(b)
}

// Saturation returns the HSV saturation of an 8-bit RGB triple in [0, 1].
func Saturation(r, g, b uint8) float32 {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	_, s, _ := c.Hsv()
	return float32(s)
}

// SrgbToLinear converts an sRGB-encoded value in [0, 1] to linear light.
func SrgbToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}

// LinearToSrgb converts a linear-light value in [0, 1] to sRGB encoding.
func LinearToSrgb(v float32) float32 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math32.Pow(v, 1.0/2.4) - 0.055
}

// srgbLUT caches the 256 possible 8-bit decode results. Built once at
// package init; the encode direction stays analytic because its domain is
// continuous.
var srgbLUT [256]float32

func init() {
	for i := range srgbLUT {
		srgbLUT[i] = SrgbToLinear(float32(i) / 255.0)
	}
}

// SrgbByteToLinear decodes an 8-bit sRGB value to linear light in [0, 1].
func SrgbByteToLinear(v uint8) float32 {
	return srgbLUT[v]
}

// LinearToSrgbByte encodes a linear-light value in [0, 1] back to 8 bits.
func LinearToSrgbByte(v float32) uint8 {
	return ClampU8(LinearToSrgb(Clamp(v, 0, 1)) * 255.0)
}
