// Package kernels - stateless numeric image primitives operating on
// single-channel float maps or RGBA rasters.
//
// Every kernel is a pure function of (input, dimensions, parameters) and
// returns a freshly allocated output; inputs are never mutated. Sampling
// outside the image clamps coordinates to the valid range. The one
// exception is MakeSeamless, which deliberately wraps across opposite
// borders.
package kernels

import (
	"image"

	"github.com/texgen-ai/go-pbr/images"
)

// Grayscale converts an RGBA raster to a luminance float map using the
// BT.709 weights (0.2126, 0.7152, 0.0722). Alpha is ignored.
func Grayscale(img *image.RGBA) *images.FloatMap {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := images.NewFloatMap(w, h)
	images.Parallel(h, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			row := y * img.Stride
			for x := 0; x < w; x++ {
				o := row + x*4
				out.Pix[y*w+x] = images.Luminance(img.Pix[o], img.Pix[o+1], img.Pix[o+2])
			}
		}
	})
	return out
}

// Invert maps every value v to 255-v.
func Invert(src *images.FloatMap) *images.FloatMap {
	out := images.NewFloatMap(src.W, src.H)
	for i, v := range src.Pix {
		out.Pix[i] = 255 - v
	}
	return out
}

// Scale multiplies every value by factor.
func Scale(src *images.FloatMap, factor float32) *images.FloatMap {
	out := images.NewFloatMap(src.W, src.H)
	for i, v := range src.Pix {
		out.Pix[i] = v * factor
	}
	return out
}
