package kernels

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoTone builds a raster that is 75% one color and 25% another.
func twoTone(w, h int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := a
			if x >= w*3/4 {
				c = b
			}
			o := y*img.Stride + x*4
			img.Pix[o] = c.R
			img.Pix[o+1] = c.G
			img.Pix[o+2] = c.B
			img.Pix[o+3] = c.A
		}
	}
	return img
}

func TestKMeansPaletteTwoColors(t *testing.T) {
	img := twoTone(40, 40,
		color.RGBA{250, 10, 10, 255},
		color.RGBA{10, 10, 250, 255})

	entries := KMeansPalette(img, 2, 1)
	require.NotEmpty(t, entries)
	require.LessOrEqual(t, len(entries), 2)

	// Shares are sorted descending and sum to 100; every centroid lies on
	// the red-blue segment the input occupies.
	var total float64
	last := 101.0
	for _, e := range entries {
		assert.LessOrEqual(t, e.Percent, last)
		last = e.Percent
		total += e.Percent
		assert.InDelta(t, 10, int(e.Color.G), 2)
		assert.Equal(t, uint8(255), e.Color.A)
	}
	assert.InDelta(t, 100, total, 0.01)

	if len(entries) == 2 {
		assert.InDelta(t, 75, entries[0].Percent, 1)
		assert.Greater(t, int(entries[0].Color.R), 200)
		assert.Greater(t, int(entries[1].Color.B), 200)
	}
}

func TestKMeansPaletteDeterministicForFixedSeed(t *testing.T) {
	img := twoTone(32, 32,
		color.RGBA{200, 100, 0, 255},
		color.RGBA{0, 100, 200, 255})

	first := KMeansPalette(img, 3, 42)
	second := KMeansPalette(img, 3, 42)
	assert.Equal(t, first, second)
}

func TestKMeansPaletteDegenerateInputs(t *testing.T) {
	img := fillRGBA(4, 4, color.RGBA{50, 60, 70, 255})

	assert.Nil(t, KMeansPalette(img, 0, 1))
	assert.Nil(t, KMeansPalette(image.NewRGBA(image.Rect(0, 0, 0, 0)), 3, 1))

	// k larger than the distinct colors still returns at least one entry
	// and never more than the sample count.
	entries := KMeansPalette(img, 8, 1)
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.Equal(t, uint8(50), e.Color.R)
		assert.Equal(t, uint8(60), e.Color.G)
		assert.Equal(t, uint8(70), e.Color.B)
	}
}
