package kernels

import (
	"github.com/chewxy/math32"

	"github.com/texgen-ai/go-pbr/images"
)

// Gaussian1D builds a normalized 1-D Gaussian kernel of radius
// ceil(3*sigma). The radius captures 99.7% of the distribution; the
// weights are rescaled to sum to exactly 1.0 so convolution preserves
// overall brightness.
func Gaussian1D(sigma float32) []float32 {
	radius := int(math32.Ceil(sigma * 3.0))
	size := 2*radius + 1
	kernel := make([]float32, size)

	denom := 2.0 * sigma * sigma
	var sum float32
	for i := 0; i < size; i++ {
		x := float32(i - radius)
		kernel[i] = math32.Exp(-(x * x) / denom)
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// GaussianBlur applies a separable Gaussian blur with clamped borders.
// sigma <= 0 is a no-op and returns a copy of the input.
//
// Arguments:
// - src: The float map to blur.
// - sigma: Standard deviation of the Gaussian in pixels.
//
// Returns:
// - A new blurred float map with the same dimensions.
func GaussianBlur(src *images.FloatMap, sigma float32) *images.FloatMap {
	if sigma <= 0 {
		return src.Clone()
	}
	kernel := Gaussian1D(sigma)
	tmp := convolveH(src, kernel)
	return convolveV(tmp, kernel)
}

// convolveH runs the horizontal pass of a separable convolution, one row
// per work item.
func convolveH(src *images.FloatMap, kernel []float32) *images.FloatMap {
	w, h := src.W, src.H
	radius := len(kernel) / 2
	out := images.NewFloatMap(w, h)
	images.Parallel(h, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			row := y * w
			for x := 0; x < w; x++ {
				var acc float32
				for i, weight := range kernel {
					sx := x + i - radius
					if sx < 0 {
						sx = 0
					} else if sx >= w {
						sx = w - 1
					}
					acc += src.Pix[row+sx] * weight
				}
				out.Pix[row+x] = acc
			}
		}
	})
	return out
}

// convolveV runs the vertical pass of a separable convolution.
func convolveV(src *images.FloatMap, kernel []float32) *images.FloatMap {
	w, h := src.W, src.H
	radius := len(kernel) / 2
	out := images.NewFloatMap(w, h)
	images.Parallel(h, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < w; x++ {
				var acc float32
				for i, weight := range kernel {
					sy := y + i - radius
					if sy < 0 {
						sy = 0
					} else if sy >= h {
						sy = h - 1
					}
					acc += src.Pix[sy*w+x] * weight
				}
				out.Pix[y*w+x] = acc
			}
		}
	})
	return out
}

// Sharpen applies an unsharp mask: original + (original - blurred) scaled
// by amount/100*2, with a fixed sigma of 1.5 for the mask blur. Output is
// clamped to [0, 255]. amount <= 0 returns a copy.
func Sharpen(src *images.FloatMap, amount float32) *images.FloatMap {
	if amount <= 0 {
		return src.Clone()
	}
	blurred := GaussianBlur(src, 1.5)
	out := images.NewFloatMap(src.W, src.H)
	strength := amount / 100.0 * 2.0
	for i, v := range src.Pix {
		out.Pix[i] = images.Clamp(v+(v-blurred.Pix[i])*strength, 0, 255)
	}
	return out
}

// FrequencySeparation splits a map into a low-frequency band (Gaussian
// blur at sigma) and a mid-gray-centered high-frequency residual
// (input - low + 128).
func FrequencySeparation(src *images.FloatMap, sigma float32) (low, high *images.FloatMap) {
	low = GaussianBlur(src, sigma)
	high = images.NewFloatMap(src.W, src.H)
	for i, v := range src.Pix {
		high.Pix[i] = v - low.Pix[i] + 128
	}
	return low, high
}
