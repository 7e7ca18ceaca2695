package kernels

import (
	"github.com/chewxy/math32"

	"github.com/texgen-ai/go-pbr/images"
)

// Gradients holds per-pixel horizontal and vertical derivatives and the
// resulting magnitude.
type Gradients struct {
	GX, GY, Magnitude *images.FloatMap
}

// Sobel estimates gradients with the standard 3x3 Sobel operator.
//
// Arguments:
// - src: The float map to differentiate.
//
// Returns:
// - Gradients with GX, GY and sqrt(gx^2+gy^2) magnitude, border-clamped.
func Sobel(src *images.FloatMap) Gradients {
	return convolve3x3Pair(src,
		[9]float32{-1, 0, 1, -2, 0, 2, -1, 0, 1},
		[9]float32{-1, -2, -1, 0, 0, 0, 1, 2, 1})
}

// Scharr estimates gradients with the 3x3 Scharr operator, which has
// better rotational symmetry than Sobel and is used for higher-quality
// normal synthesis.
func Scharr(src *images.FloatMap) Gradients {
	return convolve3x3Pair(src,
		[9]float32{-3, 0, 3, -10, 0, 10, -3, 0, 3},
		[9]float32{-3, -10, -3, 0, 0, 0, 3, 10, 3})
}

func convolve3x3Pair(src *images.FloatMap, kx, ky [9]float32) Gradients {
	w, h := src.W, src.H
	gx := images.NewFloatMap(w, h)
	gy := images.NewFloatMap(w, h)
	mag := images.NewFloatMap(w, h)
	images.Parallel(h, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < w; x++ {
				var sx, sy float32
				k := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						v := src.At(x+dx, y+dy)
						sx += v * kx[k]
						sy += v * ky[k]
						k++
					}
				}
				i := y*w + x
				gx.Pix[i] = sx
				gy.Pix[i] = sy
				mag.Pix[i] = math32.Hypot(sx, sy)
			}
		}
	})
	return Gradients{GX: gx, GY: gy, Magnitude: mag}
}

// Laplacian computes the discrete 4-neighbor second derivative,
// 4*center - (left + right + up + down). Border pixels are left at 0.
func Laplacian(src *images.FloatMap) *images.FloatMap {
	w, h := src.W, src.H
	out := images.NewFloatMap(w, h)
	if w < 3 || h < 3 {
		return out
	}
	images.Parallel(h-2, func(partStart, partEnd int) {
		for y := partStart + 1; y < partEnd+1; y++ {
			row := y * w
			for x := 1; x < w-1; x++ {
				i := row + x
				out.Pix[i] = 4*src.Pix[i] - src.Pix[i-1] - src.Pix[i+1] - src.Pix[i-w] - src.Pix[i+w]
			}
		}
	})
	return out
}

// LocalVariance computes the variance of a sliding square window of the
// given radius around each pixel, as E[x^2] - E[x]^2, with border-clamped
// sampling.
func LocalVariance(src *images.FloatMap, radius int) *images.FloatMap {
	if radius < 1 {
		radius = 1
	}
	w, h := src.W, src.H
	out := images.NewFloatMap(w, h)
	n := float32((2*radius + 1) * (2*radius + 1))
	images.Parallel(h, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < w; x++ {
				var sum, sumSq float32
				for dy := -radius; dy <= radius; dy++ {
					for dx := -radius; dx <= radius; dx++ {
						v := src.At(x+dx, y+dy)
						sum += v
						sumSq += v * v
					}
				}
				mean := sum / n
				variance := sumSq/n - mean*mean
				if variance < 0 {
					variance = 0 // float rounding on flat regions
				}
				out.Pix[y*w+x] = variance
			}
		}
	})
	return out
}
