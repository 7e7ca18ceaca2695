package materials

import (
	"image"

	"github.com/chewxy/math32"

	"github.com/texgen-ai/go-pbr/images"
	"github.com/texgen-ai/go-pbr/images/kernels"
	"github.com/texgen-ai/go-pbr/params"
)

// varianceRadius is the sliding-window radius for the local-variance term
// of the roughness estimate.
const varianceRadius = 2

// roughnessCombination mixes three independently normalized micro-detail
// signals: local variance (0.4), gradient magnitude (0.3) and absolute
// Laplacian (0.3).
func roughnessCombination(src *image.RGBA) *images.FloatMap {
	gray := kernels.Grayscale(src)

	variance := kernels.Normalize(kernels.LocalVariance(gray, varianceRadius))
	edges := kernels.Normalize(kernels.Sobel(gray).Magnitude)

	lap := kernels.Laplacian(gray)
	absLap := images.NewFloatMap(lap.W, lap.H)
	for i, v := range lap.Pix {
		absLap.Pix[i] = math32.Abs(v)
	}
	absLap = kernels.Normalize(absLap)

	out := images.NewFloatMap(gray.W, gray.H)
	for i := range out.Pix {
		out.Pix[i] = 0.4*variance.Pix[i] + 0.3*edges.Pix[i] + 0.3*absLap.Pix[i]
	}
	return out
}

// SynthesizeRoughness builds the roughness map from the micro-detail
// combination, optionally floor-remapped so no region reaches 0.
func SynthesizeRoughness(src *image.RGBA, p params.RoughnessParams) *image.RGBA {
	combo := roughnessCombination(src)
	if p.Floor > 0 {
		floor := float32(p.Floor)
		scale := (255 - floor) / 255.0
		for i, v := range combo.Pix {
			combo.Pix[i] = floor + v*scale
		}
	}
	return images.ToRGBA(adjust(combo, p.Common))
}

// SynthesizeSmoothness is the complement of the roughness combination:
// 255 minus the combined micro-detail signal.
func SynthesizeSmoothness(src *image.RGBA, p params.SmoothnessParams) *image.RGBA {
	combo := roughnessCombination(src)
	return images.ToRGBA(adjust(kernels.Invert(combo), p.Common))
}

// AO sampling constants: three radii (2, R, 4R) with fixed weights, and
// 16 rays per pixel around the circle.
var aoScaleWeights = [3]float32{0.5, 0.3, 0.2}

const aoRays = 16

// SynthesizeAO estimates ambient occlusion by multi-scale horizon
// sampling over a pre-blurred, normalized height field. For each radius,
// 16 rays accumulate positive height differences (occluders above the
// pixel), weighted by the scale weight and the AO intensity; the
// per-pixel accumulation saturates at 255. The accumulated occlusion is
// rescaled so its image-wide maximum maps to 255, and AO is its
// complement. A flat field has no occluders anywhere and yields a
// uniformly white map.
func SynthesizeAO(src *image.RGBA, p params.AOParams) *image.RGBA {
	height := kernels.Normalize(kernels.GaussianBlur(kernels.Grayscale(src), 2))
	w, h := height.W, height.H

	radii := [3]float32{2, float32(p.Radius), float32(p.Radius) * 4}
	intensity := float32(p.Intensity)

	// Precompute the ray directions once.
	var dirX, dirY [aoRays]float32
	for r := 0; r < aoRays; r++ {
		angle := float32(r) / aoRays * 2 * math32.Pi
		dirX[r] = math32.Cos(angle)
		dirY[r] = math32.Sin(angle)
	}

	occlusion := images.NewFloatMap(w, h)
	images.Parallel(h, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				center := height.Pix[i]
				var occ float32
				for s, radius := range radii {
					weight := aoScaleWeights[s] * intensity
					for r := 0; r < aoRays; r++ {
						sx := x + int(math32.Round(dirX[r]*radius))
						sy := y + int(math32.Round(dirY[r]*radius))
						diff := height.At(sx, sy) - center
						if diff > 0 {
							occ += diff / aoRays * weight
						}
					}
				}
				if occ > 255 {
					occ = 255
				}
				occlusion.Pix[i] = occ
			}
		}
	})

	var maxOcc float32
	for _, v := range occlusion.Pix {
		if v > maxOcc {
			maxOcc = v
		}
	}

	out := images.NewFloatMap(w, h)
	if maxOcc == 0 {
		for i := range out.Pix {
			out.Pix[i] = 255
		}
	} else {
		scale := 255.0 / maxOcc
		for i, v := range occlusion.Pix {
			out.Pix[i] = 255 - v*scale
		}
	}
	return images.ToRGBA(adjust(out, p.Common))
}

// SynthesizeEdge runs Canny with the configured hysteresis thresholds and
// applies the common adjustments to the binary result.
func SynthesizeEdge(src *image.RGBA, p params.EdgeParams) *image.RGBA {
	edges := kernels.Canny(kernels.Grayscale(src), float32(p.LowThreshold), float32(p.HighThreshold))
	return images.ToRGBA(adjust(edges, p.Common))
}
