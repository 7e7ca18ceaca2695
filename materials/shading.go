package materials

import (
	"image"

	"github.com/texgen-ai/go-pbr/images"
	"github.com/texgen-ai/go-pbr/images/kernels"
	"github.com/texgen-ai/go-pbr/params"
)

// deLightSigmaFraction sets the illumination-estimate blur as a fraction
// of the larger image dimension.
const deLightSigmaFraction = 0.05

// SynthesizeDiffuse de-lights the source: a large-sigma blur of the
// grayscale estimates low-frequency illumination, and each pixel is
// divided by it in linear light (dividing in sRGB space leaves visible
// gamma artifacts around shadow boundaries). The correction factor is
// blended with identity by the de-light strength. Common adjustments are
// applied per channel afterwards.
func SynthesizeDiffuse(src *image.RGBA, p params.DiffuseParams) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	maxDim := w
	if h > maxDim {
		maxDim = h
	}
	sigma := float32(maxDim) * deLightSigmaFraction
	illumination := kernels.GaussianBlur(kernels.Grayscale(src), sigma)

	strength := float32(p.DeLightStrength)
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	images.Parallel(h, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				ill := illumination.Pix[i] / 255.0
				if ill < 0.01 {
					ill = 0.01
				}
				factor := (1-strength)*1 + strength*(1/ill)

				o := y*src.Stride + x*4
				do := i * 4
				for c := 0; c < 3; c++ {
					lin := images.SrgbByteToLinear(src.Pix[o+c])
					out.Pix[do+c] = images.LinearToSrgbByte(lin * factor)
				}
				out.Pix[do+3] = src.Pix[o+3]
			}
		}
	})
	return adjustRGBA(out, p.Common)
}

// metalnessScore is the hand-tuned metallic heuristic:
// 0.6*luminance + 0.2*(1-saturation) + 0.2 if luminance > 0.5, with
// luminance and saturation in [0, 1]. The constants are load-bearing;
// presets downstream were tuned against this exact formula.
func metalnessScore(r, g, b uint8) float32 {
	lum := images.Luminance(r, g, b) / 255.0
	sat := images.Saturation(r, g, b)
	score := 0.6*lum + 0.2*(1-sat)
	if lum > 0.5 {
		score += 0.2
	}
	return score
}

// SynthesizeMetallic scores each pixel with the metalness heuristic.
// Pixels above the threshold are rescaled into [0, 255] over the
// remaining score range; all others output 0. The result is deliberately
// not normalized globally, so an image with no metal-looking pixels stays
// black instead of being stretched into false positives.
func SynthesizeMetallic(src *image.RGBA, p params.MetallicParams) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	threshold := float32(p.Threshold)

	out := images.NewFloatMap(w, h)
	images.Parallel(h, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			row := y * src.Stride
			for x := 0; x < w; x++ {
				o := row + x*4
				score := metalnessScore(src.Pix[o], src.Pix[o+1], src.Pix[o+2])
				if score > threshold {
					rng := 1 - threshold
					if rng <= 0 {
						rng = 1
					}
					out.Pix[y*w+x] = images.Clamp((score-threshold)/rng, 0, 1) * 255.0
				}
			}
		}
	})
	return images.ToRGBA(adjust(out, p.Common))
}

// dielectricF0 is the base reflectance of a dielectric surface.
const dielectricF0 = 0.04

// SynthesizeSpecular blends the dielectric base reflectance with the
// pixel's own albedo by its metalness weight, per channel.
func SynthesizeSpecular(src *image.RGBA, p params.SpecularParams) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	images.Parallel(h, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			row := y * src.Stride
			for x := 0; x < w; x++ {
				o := row + x*4
				weight := images.Clamp(metalnessScore(src.Pix[o], src.Pix[o+1], src.Pix[o+2]), 0, 1)

				do := (y*w + x) * 4
				for c := 0; c < 3; c++ {
					albedo := float32(src.Pix[o+c]) / 255.0
					spec := dielectricF0*(1-weight) + albedo*weight
					out.Pix[do+c] = images.ClampU8(spec * 255.0)
				}
				out.Pix[do+3] = src.Pix[o+3]
			}
		}
	})
	return adjustRGBA(out, p.Common)
}

// SynthesizeEmissive keeps only pixels that are both bright and saturated
// enough to read as light sources. Emission ramps linearly from zero at
// the luminance threshold to full strength at maximum luminance, and the
// output is the albedo scaled by that strength.
func SynthesizeEmissive(src *image.RGBA, p params.EmissiveParams) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	threshold := float32(p.Threshold)
	satMin := float32(p.SatMin)

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	images.Parallel(h, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			row := y * src.Stride
			for x := 0; x < w; x++ {
				o := row + x*4
				lum := images.Luminance(src.Pix[o], src.Pix[o+1], src.Pix[o+2]) / 255.0
				sat := images.Saturation(src.Pix[o], src.Pix[o+1], src.Pix[o+2])

				var strength float32
				if lum > threshold && sat > satMin {
					rng := 1 - threshold
					if rng <= 0 {
						rng = 1
					}
					strength = images.Clamp((lum-threshold)/rng, 0, 1)
				}

				do := (y*w + x) * 4
				for c := 0; c < 3; c++ {
					out.Pix[do+c] = images.ClampU8(float32(src.Pix[o+c]) * strength)
				}
				out.Pix[do+3] = src.Pix[o+3]
			}
		}
	})
	return adjustRGBA(out, p.Common)
}

// SynthesizeOpacity uses the source alpha channel directly when the image
// has partial transparency; otherwise it binary-thresholds luminance.
func SynthesizeOpacity(src *image.RGBA, p params.OpacityParams) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := images.NewFloatMap(w, h)

	if images.HasPartialAlpha(src) {
		for y := 0; y < h; y++ {
			row := y * src.Stride
			for x := 0; x < w; x++ {
				out.Pix[y*w+x] = float32(src.Pix[row+x*4+3])
			}
		}
	} else {
		threshold := float32(p.Threshold)
		for y := 0; y < h; y++ {
			row := y * src.Stride
			for x := 0; x < w; x++ {
				o := row + x*4
				if images.Luminance(src.Pix[o], src.Pix[o+1], src.Pix[o+2]) > threshold {
					out.Pix[y*w+x] = 255
				}
			}
		}
	}
	return images.ToRGBA(adjust(out, p.Common))
}
