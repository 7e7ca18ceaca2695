// Package materials - the thirteen map synthesizers. Each is a pure
// function from (source raster, resolved parameters) to a new raster of
// the same dimensions, composed from the kernel library, with a shared
// common-adjustment stage applied last.
package materials

import (
	"image"

	"github.com/texgen-ai/go-pbr/images"
	"github.com/texgen-ai/go-pbr/images/kernels"
	"github.com/texgen-ai/go-pbr/params"
)

// adjust applies the common adjustments to a single-channel map in the
// fixed order: intensity, levels, brightness/contrast, blur, sharpen,
// invert.
func adjust(m *images.FloatMap, c params.Common) *images.FloatMap {
	out := m
	if c.Intensity != 1 {
		out = kernels.Scale(out, float32(c.Intensity))
	}
	out = kernels.Levels(out, float32(c.BlackPoint), float32(c.WhitePoint), float32(c.Gamma))
	out = kernels.BrightnessContrast(out, float32(c.Brightness), float32(c.Contrast))
	if c.BlurSigma > 0 {
		out = kernels.GaussianBlur(out, float32(c.BlurSigma))
	}
	if c.Sharpen > 0 {
		out = kernels.Sharpen(out, float32(c.Sharpen))
	}
	if c.Invert {
		out = kernels.Invert(out)
	}
	if out == m {
		out = m.Clone()
	}
	return out
}

// adjustRGBA applies the common adjustments per channel on a color
// raster. Alpha passes through unchanged.
func adjustRGBA(img *image.RGBA, c params.Common) *image.RGBA {
	r, g, b, a := images.SplitRGBA(img)
	return images.MergeRGBA(adjust(r, c), adjust(g, c), adjust(b, c), a)
}
