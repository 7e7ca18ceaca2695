package kernels

import (
	"image"
	"sort"

	"github.com/chewxy/math32"

	"github.com/texgen-ai/go-pbr/images"
)

// Bilateral applies an edge-preserving bilateral filter to a float map.
// Each neighbor within a radius of 2*spatialSigma is weighted by the
// product of a spatial Gaussian and a range Gaussian over the intensity
// difference; the output is the weighted average.
//
// Arguments:
// - src: The float map to filter.
// - spatialSigma: Standard deviation of the spatial Gaussian, in pixels.
// - rangeSigma: Standard deviation of the intensity-difference Gaussian.
//
// Returns:
// - A new filtered float map.
func Bilateral(src *images.FloatMap, spatialSigma, rangeSigma float32) *images.FloatMap {
	if spatialSigma <= 0 || rangeSigma <= 0 {
		return src.Clone()
	}
	w, h := src.W, src.H
	radius := int(math32.Ceil(spatialSigma * 2.0))
	spatialDenom := 2 * spatialSigma * spatialSigma
	rangeDenom := 2 * rangeSigma * rangeSigma

	// Spatial weights depend only on offsets; precompute the window.
	size := 2*radius + 1
	spatial := make([]float32, size*size)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := float32(dx*dx + dy*dy)
			spatial[(dy+radius)*size+(dx+radius)] = math32.Exp(-d2 / spatialDenom)
		}
	}

	out := images.NewFloatMap(w, h)
	images.Parallel(h, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < w; x++ {
				center := src.Pix[y*w+x]
				var sum, weightSum float32
				for dy := -radius; dy <= radius; dy++ {
					for dx := -radius; dx <= radius; dx++ {
						v := src.At(x+dx, y+dy)
						diff := v - center
						weight := spatial[(dy+radius)*size+(dx+radius)] * math32.Exp(-(diff*diff)/rangeDenom)
						sum += v * weight
						weightSum += weight
					}
				}
				out.Pix[y*w+x] = sum / weightSum
			}
		}
	})
	return out
}

// BilateralColor filters each RGB channel of a raster independently with
// the same spatial and range sigmas. Alpha passes through unchanged.
func BilateralColor(img *image.RGBA, spatialSigma, rangeSigma float32) *image.RGBA {
	r, g, b, a := images.SplitRGBA(img)
	return images.MergeRGBA(
		Bilateral(r, spatialSigma, rangeSigma),
		Bilateral(g, spatialSigma, rangeSigma),
		Bilateral(b, spatialSigma, rangeSigma),
		a)
}

// Median replaces each pixel with the median of a square window of the
// given radius, border-clamped.
func Median(src *images.FloatMap, radius int) *images.FloatMap {
	if radius < 1 {
		return src.Clone()
	}
	w, h := src.W, src.H
	out := images.NewFloatMap(w, h)
	n := (2*radius + 1) * (2*radius + 1)
	images.Parallel(h, func(partStart, partEnd int) {
		window := make([]float32, 0, n)
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < w; x++ {
				window = window[:0]
				for dy := -radius; dy <= radius; dy++ {
					for dx := -radius; dx <= radius; dx++ {
						window = append(window, src.At(x+dx, y+dy))
					}
				}
				sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })
				out.Pix[y*w+x] = window[len(window)/2]
			}
		}
	})
	return out
}

// MedianColor applies the median filter to each RGB channel independently.
// Alpha passes through unchanged.
func MedianColor(img *image.RGBA, radius int) *image.RGBA {
	r, g, b, a := images.SplitRGBA(img)
	return images.MergeRGBA(Median(r, radius), Median(g, radius), Median(b, radius), a)
}
