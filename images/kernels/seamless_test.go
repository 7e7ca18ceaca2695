package kernels

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seamDiff measures the mean absolute difference between the first and
// last columns of a raster, the discontinuity a tiled copy would show.
func seamDiffLR(img *image.RGBA) float64 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	var sum float64
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for c := 0; c < 3; c++ {
			left := float64(img.Pix[row+c])
			right := float64(img.Pix[row+(w-1)*4+c])
			if left > right {
				sum += left - right
			} else {
				sum += right - left
			}
		}
	}
	return sum / float64(h*3)
}

func seamDiffTB(img *image.RGBA) float64 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	var sum float64
	bottom := (h - 1) * img.Stride
	for x := 0; x < w; x++ {
		for c := 0; c < 3; c++ {
			top := float64(img.Pix[x*4+c])
			bot := float64(img.Pix[bottom+x*4+c])
			if top > bot {
				sum += top - bot
			} else {
				sum += bot - top
			}
		}
	}
	return sum / float64(w*3)
}

// gradientRGBA builds a raster whose left and right (and top and bottom)
// edges disagree strongly.
func gradientRGBA(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := y*img.Stride + x*4
			img.Pix[o] = uint8(x * 255 / (w - 1))
			img.Pix[o+1] = uint8(y * 255 / (h - 1))
			img.Pix[o+2] = 128
			img.Pix[o+3] = 255
		}
	}
	return img
}

func TestMakeSeamlessReducesSeams(t *testing.T) {
	src := gradientRGBA(64, 64)
	out := MakeSeamless(src, 0.25)

	assert.Less(t, seamDiffLR(out), seamDiffLR(src)/2,
		"left-right seam must shrink substantially")
	assert.Less(t, seamDiffTB(out), seamDiffTB(src)/2,
		"top-bottom seam must shrink substantially")
}

func TestMakeSeamlessDoesNotMutateInput(t *testing.T) {
	src := gradientRGBA(32, 32)
	before := append([]uint8(nil), src.Pix...)
	MakeSeamless(src, 0.3)
	assert.Equal(t, before, src.Pix)
}

func TestMakeSeamlessPreservesDimensions(t *testing.T) {
	src := gradientRGBA(48, 20)
	out := MakeSeamless(src, 0.4)
	require.Equal(t, src.Bounds(), out.Bounds())
}

func TestMakeSeamlessClampsBlendWidth(t *testing.T) {
	src := gradientRGBA(32, 32)

	// Out-of-range widths are clamped rather than rejected; both calls
	// must return full-size rasters.
	for _, width := range []float32{-1, 0, 0.9} {
		out := MakeSeamless(src, width)
		require.Equal(t, src.Bounds(), out.Bounds())
	}
}

func TestMakeSeamlessTinyImageIsCopy(t *testing.T) {
	src := gradientRGBA(3, 3)
	out := MakeSeamless(src, 0.01) // border rounds to zero
	assert.Equal(t, src.Pix, out.Pix)
}
