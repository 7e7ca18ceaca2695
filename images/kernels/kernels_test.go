// Package kernels - tests for the numeric image primitives.
package kernels

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texgen-ai/go-pbr/images"
)

// fillRGBA builds a solid-color test raster.
func fillRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

// ramp builds a horizontal gradient float map.
func ramp(w, h int) *images.FloatMap {
	m := images.NewFloatMap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Pix[y*w+x] = float32(x) / float32(w-1) * 255.0
		}
	}
	return m
}

func TestGrayscaleWeights(t *testing.T) {
	tests := []struct {
		name     string
		in       color.RGBA
		expected float32
	}{
		{"white", color.RGBA{255, 255, 255, 255}, 255},
		{"black", color.RGBA{0, 0, 0, 255}, 0},
		{"pure red", color.RGBA{255, 0, 0, 255}, 0.2126 * 255},
		{"pure green", color.RGBA{0, 255, 0, 255}, 0.7152 * 255},
		{"pure blue", color.RGBA{0, 0, 255, 255}, 0.0722 * 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gray := Grayscale(fillRGBA(4, 4, tt.in))
			assert.InDelta(t, tt.expected, gray.Pix[0], 0.01)
		})
	}
}

func TestGrayscaleIgnoresAlpha(t *testing.T) {
	img := fillRGBA(2, 2, color.RGBA{100, 100, 100, 0})
	gray := Grayscale(img)
	assert.InDelta(t, 100, gray.Pix[0], 0.01)
}

func TestGaussianBlurZeroSigmaIsIdentity(t *testing.T) {
	src := ramp(16, 9)
	out := GaussianBlur(src, 0)
	assert.Equal(t, src.Pix, out.Pix)

	// And it must be a copy, not an alias.
	out.Pix[0] = 999
	assert.NotEqual(t, src.Pix[0], out.Pix[0])
}

func TestGaussianBlurPreservesConstant(t *testing.T) {
	src := images.NewFloatMap(20, 20)
	for i := range src.Pix {
		src.Pix[i] = 77
	}
	out := GaussianBlur(src, 2.5)
	for _, v := range out.Pix {
		assert.InDelta(t, 77, v, 0.01)
	}
}

func TestGaussianBlurDoesNotMutateInput(t *testing.T) {
	src := ramp(16, 16)
	before := append([]float32(nil), src.Pix...)
	GaussianBlur(src, 3)
	assert.Equal(t, before, src.Pix)
}

func TestGaussian1DNormalized(t *testing.T) {
	kernel := Gaussian1D(1.5)
	require.Len(t, kernel, 2*5+1) // radius = ceil(4.5) = 5

	var sum float32
	for _, w := range kernel {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-5)

	// Symmetric around the center.
	for i := 0; i < len(kernel)/2; i++ {
		assert.InDelta(t, kernel[i], kernel[len(kernel)-1-i], 1e-6)
	}
}

func TestNormalize(t *testing.T) {
	src := images.NewFloatMap(2, 2)
	src.Pix = []float32{10, 20, 30, 40}

	out := Normalize(src)
	min, max := out.Pix[0], out.Pix[0]
	for _, v := range out.Pix {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	assert.Equal(t, float32(0), min)
	assert.Equal(t, float32(255), max)
}

func TestNormalizeConstantInput(t *testing.T) {
	src := images.NewFloatMap(3, 3)
	for i := range src.Pix {
		src.Pix[i] = 42
	}
	out := Normalize(src)
	for _, v := range out.Pix {
		assert.Equal(t, float32(0), v)
	}
}

func TestLevelsGuards(t *testing.T) {
	src := images.NewFloatMap(1, 1)
	src.Pix[0] = 128

	// white <= black must not divide by zero.
	out := Levels(src, 100, 50, 1)
	assert.False(t, out.Pix[0] != out.Pix[0], "NaN output") // NaN check

	// gamma <= 0 forced to 0.01.
	out = Levels(src, 0, 255, -5)
	assert.False(t, out.Pix[0] != out.Pix[0], "NaN output")
}

func TestLevelsIdentityDefaults(t *testing.T) {
	src := ramp(8, 1)
	out := Levels(src, 0, 255, 1)
	for i := range src.Pix {
		assert.InDelta(t, src.Pix[i], out.Pix[i], 0.01)
	}
}

func TestBrightnessContrast(t *testing.T) {
	src := images.NewFloatMap(1, 3)
	src.Pix = []float32{0, 128, 255}

	tests := []struct {
		name                 string
		brightness, contrast float32
		expected             []float32
	}{
		{"neutral", 0, 100, []float32{0, 128, 255}},
		{"brighter", 50, 100, []float32{50, 178, 255}},
		{"half contrast", 0, 50, []float32{64, 128, 191.5}},
		{"zero contrast collapses to mid", 0, 0, []float32{128, 128, 128}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := BrightnessContrast(src, tt.brightness, tt.contrast)
			for i, want := range tt.expected {
				assert.InDelta(t, want, out.Pix[i], 0.01)
			}
		})
	}
}

func TestInvert(t *testing.T) {
	src := ramp(8, 2)
	out := Invert(src)
	for i := range src.Pix {
		assert.InDelta(t, 255-src.Pix[i], out.Pix[i], 1e-4)
	}
}

func TestSharpenIncreasesLocalContrast(t *testing.T) {
	// A step edge: sharpening must push values apart at the boundary.
	src := images.NewFloatMap(16, 8)
	for y := 0; y < 8; y++ {
		for x := 8; x < 16; x++ {
			src.Pix[y*16+x] = 200
		}
	}
	out := Sharpen(src, 50)

	// Just left of the edge gets darker, just right gets brighter,
	// both staying within [0, 255].
	assert.LessOrEqual(t, out.Pix[4*16+7], src.Pix[4*16+7])
	assert.GreaterOrEqual(t, out.Pix[4*16+8], src.Pix[4*16+8])
	for _, v := range out.Pix {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(255))
	}
}

func TestFrequencySeparation(t *testing.T) {
	src := ramp(32, 8)
	low, high := FrequencySeparation(src, 2)

	// low + (high - 128) reconstructs the input.
	for i := range src.Pix {
		assert.InDelta(t, src.Pix[i], low.Pix[i]+high.Pix[i]-128, 0.01)
	}
}

func TestHistogramEqualizeSpreadsRange(t *testing.T) {
	// A low-contrast input occupying [100, 150] must be stretched to
	// reach 255.
	src := images.NewFloatMap(16, 16)
	for i := range src.Pix {
		src.Pix[i] = 100 + float32(i%51)
	}
	out := HistogramEqualize(src)

	var max float32
	for _, v := range out.Pix {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(255))
		if v > max {
			max = v
		}
	}
	assert.InDelta(t, 255, max, 0.5)
}

func TestCLAHEStaysInRange(t *testing.T) {
	src := ramp(64, 64)
	out := CLAHE(src, 16, 2)
	for _, v := range out.Pix {
		assert.GreaterOrEqual(t, v, float32(-0.001))
		assert.LessOrEqual(t, v, float32(255.001))
	}
}

func TestCLAHEConstantInput(t *testing.T) {
	src := images.NewFloatMap(32, 32)
	for i := range src.Pix {
		src.Pix[i] = 90
	}
	out := CLAHE(src, 8, 2)

	// A constant tile maps its single occupied bin to the top of the
	// CDF; the point is that every pixel agrees.
	for _, v := range out.Pix {
		assert.InDelta(t, out.Pix[0], v, 0.01)
	}
}

func TestCLAHERaggedTilesAgreeOnConstantInput(t *testing.T) {
	// 20 is not a multiple of the tile size, so the right and bottom
	// tiles are smaller. Their centers must still interpolate to the
	// same mapping everywhere on a constant field.
	src := images.NewFloatMap(20, 20)
	for i := range src.Pix {
		src.Pix[i] = 90
	}
	out := CLAHE(src, 8, 2)

	for _, v := range out.Pix {
		assert.InDelta(t, out.Pix[0], v, 0.01)
	}
}

func TestCLAHEAxisUsesActualTileCenters(t *testing.T) {
	// Tiles [0,8), [8,16), [16,20): the ragged last tile's center is
	// 18, not 20.
	centers := []float32{4, 12, 18}
	lo, hi, frac := claheAxis(20, centers)

	// Clamped outside the first and last centers.
	assert.Equal(t, []int{0, 0}, []int{lo[0], hi[0]})
	assert.Equal(t, float32(0), frac[0])
	assert.Equal(t, []int{2, 2}, []int{lo[19], hi[19]})
	assert.Equal(t, float32(0), frac[19])

	// Midway between the first two centers.
	assert.Equal(t, 0, lo[8])
	assert.Equal(t, 1, hi[8])
	assert.InDelta(t, 0.5, frac[8], 1e-6)

	// Between the second center and the ragged tile's true center.
	assert.Equal(t, 1, lo[15])
	assert.Equal(t, 2, hi[15])
	assert.InDelta(t, 0.5, frac[15], 1e-6)
}
