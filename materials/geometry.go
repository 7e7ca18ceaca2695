package materials

import (
	"image"

	"github.com/chewxy/math32"

	"github.com/texgen-ai/go-pbr/images"
	"github.com/texgen-ai/go-pbr/images/kernels"
	"github.com/texgen-ai/go-pbr/params"
)

// SynthesizeHeight builds the height map: grayscale, optional pre-blur,
// normalize, common adjustments.
func SynthesizeHeight(src *image.RGBA, p params.HeightParams) *image.RGBA {
	m := heightField(src, p.PreBlurSigma)
	return images.ToRGBA(adjust(m, p.Common))
}

// heightField is the shared grayscale/pre-blur/normalize front end of the
// geometry synthesizers.
func heightField(src *image.RGBA, preBlurSigma float64) *images.FloatMap {
	m := kernels.Grayscale(src)
	if preBlurSigma > 0 {
		m = kernels.GaussianBlur(m, float32(preBlurSigma))
	}
	return kernels.Normalize(m)
}

// SynthesizeNormal builds a tangent-space normal map. The common
// adjustments are applied to the height data before gradient computation,
// so blur, sharpen, contrast and invert shape the normals themselves
// rather than tinting the encoded image.
func SynthesizeNormal(src *image.RGBA, p params.NormalParams) *image.RGBA {
	height := heightField(src, p.PreBlurSigma)
	height = adjust(height, p.Common)

	var grad kernels.Gradients
	if p.UseScharr {
		grad = kernels.Scharr(height)
	} else {
		grad = kernels.Sobel(height)
	}

	w, h := height.W, height.H
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	strength := float32(p.Strength)
	images.Parallel(h, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				nx := -grad.GX.Pix[i] * strength / 255.0
				ny := -grad.GY.Pix[i] * strength / 255.0
				nz := float32(1.0)
				inv := 1.0 / math32.Sqrt(nx*nx+ny*ny+nz*nz)
				nx *= inv
				ny *= inv
				nz *= inv

				// Remap each unit component from [-1, 1] to [0, 255];
				// a flat pixel encodes as (128, 128, 255).
				o := i * 4
				out.Pix[o+0] = images.ClampU8((nx*0.5 + 0.5) * 255.0)
				out.Pix[o+1] = images.ClampU8((ny*0.5 + 0.5) * 255.0)
				out.Pix[o+2] = images.ClampU8((nz*0.5 + 0.5) * 255.0)
				out.Pix[o+3] = 255
			}
		}
	})
	return out
}

// SynthesizeDisplacement blends the raw grayscale (micro detail) with a
// sigma-3 blur of it (macro shape) by the detail fraction, then
// normalizes and applies the common adjustments.
func SynthesizeDisplacement(src *image.RGBA, p params.DisplacementParams) *image.RGBA {
	gray := kernels.Grayscale(src)
	macro := kernels.GaussianBlur(gray, 3)

	detail := float32(p.Detail)
	mixed := images.NewFloatMap(gray.W, gray.H)
	for i, v := range gray.Pix {
		mixed.Pix[i] = v*detail + macro.Pix[i]*(1-detail)
	}
	return images.ToRGBA(adjust(kernels.Normalize(mixed), p.Common))
}

// SynthesizeCurvature encodes the Laplacian of the height field centered
// at mid-gray: convex regions lighter, concave darker.
func SynthesizeCurvature(src *image.RGBA, p params.CurvatureParams) *image.RGBA {
	height := heightField(src, p.PreBlurSigma)
	lap := kernels.Laplacian(height)

	mult := float32(p.Multiplier)
	out := images.NewFloatMap(lap.W, lap.H)
	for i, v := range lap.Pix {
		out.Pix[i] = images.Clamp(128+v*mult, 0, 255)
	}
	return images.ToRGBA(adjust(out, p.Common))
}
