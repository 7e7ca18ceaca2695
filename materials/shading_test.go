package materials

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texgen-ai/go-pbr/params"
)

func TestSynthesizeDiffuseZeroStrengthIsIdentity(t *testing.T) {
	src := shaded(32, 32)
	p := params.Defaults().Diffuse
	p.DeLightStrength = 0

	out := SynthesizeDiffuse(src, p)
	for i := 0; i < len(out.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			// Only the sRGB round trip separates output from input.
			assert.InDelta(t, int(src.Pix[i+c]), int(out.Pix[i+c]), 1)
		}
		assert.Equal(t, src.Pix[i+3], out.Pix[i+3])
	}
}

func TestSynthesizeDiffuseFlattensLighting(t *testing.T) {
	src := shaded(64, 64)
	p := params.Defaults().Diffuse
	p.DeLightStrength = 1

	out := SynthesizeDiffuse(src, p)

	// Full de-lighting must compress the left-right brightness spread.
	spread := func(pix []uint8, stride int) int {
		left := int(pix[32*stride+4*4])
		right := int(pix[32*stride+59*4])
		if right > left {
			return right - left
		}
		return left - right
	}
	assert.Less(t, spread(out.Pix, out.Stride), spread(src.Pix, src.Stride))
}

func TestMetalnessScoreExtremes(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		min     float32
		max     float32
	}{
		{"bright desaturated metal look", 220, 220, 220, 0.9, 1.0},
		{"dark saturated paint look", 60, 0, 0, 0.0, 0.1},
		{"mid gray", 128, 128, 128, 0.65, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := metalnessScore(tt.r, tt.g, tt.b)
			assert.GreaterOrEqual(t, score, tt.min)
			assert.LessOrEqual(t, score, tt.max)
		})
	}
}

func TestSynthesizeMetallicThreshold(t *testing.T) {
	// Left half metal-looking (bright gray), right half not (dark red).
	src := solid(32, 32, color.RGBA{230, 230, 230, 255})
	for y := 0; y < 32; y++ {
		for x := 16; x < 32; x++ {
			o := y*src.Stride + x*4
			src.Pix[o] = 70
			src.Pix[o+1] = 10
			src.Pix[o+2] = 10
		}
	}
	out := SynthesizeMetallic(src, params.Defaults().Metallic)

	assert.Greater(t, out.Pix[(16*32+4)*4], uint8(128), "bright gray scores metallic")
	assert.Equal(t, uint8(0), out.Pix[(16*32+24)*4], "dark paint stays zero, never stretched")
}

func TestSynthesizeMetallicNoFalsePositivesOnDullInput(t *testing.T) {
	// An all-dark image has no metal; the map must stay black rather than
	// being normalized into fake highlights.
	out := SynthesizeMetallic(solid(32, 32, color.RGBA{40, 30, 30, 255}), params.Defaults().Metallic)
	for i := 0; i < len(out.Pix); i += 4 {
		assert.Equal(t, uint8(0), out.Pix[i])
	}
}

func TestSynthesizeSpecularWeighting(t *testing.T) {
	// A pure white pixel has metalness 1: specular equals albedo.
	white := SynthesizeSpecular(solid(8, 8, color.RGBA{255, 255, 255, 255}), params.Defaults().Specular)
	assert.Equal(t, uint8(255), white.Pix[0])

	// A black pixel is mostly dielectric: specular sits near F0 = 0.04.
	black := SynthesizeSpecular(solid(8, 8, color.RGBA{0, 0, 0, 255}), params.Defaults().Specular)
	assert.InDelta(t, 8, int(black.Pix[0]), 2) // 0.04 * 0.8 * 255
}

func TestSynthesizeEmissive(t *testing.T) {
	tests := []struct {
		name  string
		c     color.RGBA
		emits bool
	}{
		{"bright saturated glow", color.RGBA{255, 230, 100, 255}, true},
		{"bright but gray", color.RGBA{240, 240, 240, 255}, false},
		{"saturated but dark", color.RGBA{120, 20, 20, 255}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := SynthesizeEmissive(solid(8, 8, tt.c), params.Defaults().Emissive)
			if tt.emits {
				assert.Greater(t, out.Pix[0], uint8(0))
				// Output is tinted albedo, not flat white.
				assert.Greater(t, out.Pix[0], out.Pix[2])
			} else {
				assert.Equal(t, uint8(0), out.Pix[0])
				assert.Equal(t, uint8(0), out.Pix[1])
				assert.Equal(t, uint8(0), out.Pix[2])
			}
		})
	}
}

func TestSynthesizeOpacityLuminanceThreshold(t *testing.T) {
	src := shaded(32, 32) // fully opaque: falls back to the luminance cut
	out := SynthesizeOpacity(src, params.Defaults().Opacity)

	for i := 0; i < len(out.Pix); i += 4 {
		require.True(t, out.Pix[i] == 0 || out.Pix[i] == 255)
	}
	assert.Equal(t, uint8(0), out.Pix[0], "dark left edge cut")
	assert.Equal(t, uint8(255), out.Pix[31*4], "bright right edge kept")
}

func TestSynthesizeOpacityUsesPartialAlpha(t *testing.T) {
	src := solid(8, 8, color.RGBA{200, 200, 200, 255})
	src.Pix[3] = 0
	src.Pix[4*4+3] = 130

	out := SynthesizeOpacity(src, params.Defaults().Opacity)
	assert.Equal(t, uint8(0), out.Pix[0])
	assert.Equal(t, uint8(130), out.Pix[4*4])
	assert.Equal(t, uint8(255), out.Pix[8*4])
}
