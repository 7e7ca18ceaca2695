package kernels

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/texgen-ai/go-pbr/images"
)

func TestBilateralPreservesConstant(t *testing.T) {
	src := images.NewFloatMap(16, 16)
	for i := range src.Pix {
		src.Pix[i] = 140
	}
	out := Bilateral(src, 2, 25)
	for _, v := range out.Pix {
		assert.InDelta(t, 140, v, 0.01)
	}
}

func TestBilateralPreservesStepEdge(t *testing.T) {
	// A hard 0/255 step with a small range sigma: cross-edge neighbors get
	// negligible weight, so the edge stays much sharper than a plain blur.
	src := images.NewFloatMap(32, 8)
	for y := 0; y < 8; y++ {
		for x := 16; x < 32; x++ {
			src.Pix[y*32+x] = 255
		}
	}
	bilateral := Bilateral(src, 2, 10)
	gaussian := GaussianBlur(src, 2)

	i := 4*32 + 15 // just left of the edge
	assert.Less(t, bilateral.Pix[i], gaussian.Pix[i],
		"bilateral must smear the edge less than a Gaussian")
	assert.InDelta(t, 0, bilateral.Pix[4*32+8], 1.0, "far side stays dark")
}

func TestBilateralInvalidSigmaIsCopy(t *testing.T) {
	src := ramp(8, 4)
	out := Bilateral(src, 0, 10)
	assert.Equal(t, src.Pix, out.Pix)
	out = Bilateral(src, 2, 0)
	assert.Equal(t, src.Pix, out.Pix)
}

func TestMedianRemovesImpulseNoise(t *testing.T) {
	src := images.NewFloatMap(9, 9)
	for i := range src.Pix {
		src.Pix[i] = 100
	}
	src.Pix[4*9+4] = 255 // salt

	out := Median(src, 1)
	for _, v := range out.Pix {
		assert.Equal(t, float32(100), v)
	}
}

func TestMedianZeroRadiusIsCopy(t *testing.T) {
	src := ramp(6, 3)
	out := Median(src, 0)
	assert.Equal(t, src.Pix, out.Pix)
}

func TestColorFiltersPassAlphaThrough(t *testing.T) {
	img := fillRGBA(8, 8, color.RGBA{200, 50, 50, 255})
	// Punch varying alpha values into a few pixels.
	img.Pix[3] = 10
	img.Pix[4*8*4+4*4+3] = 77

	for name, filtered := range map[string]func() []uint8{
		"bilateral": func() []uint8 { return BilateralColor(img, 1.5, 20).Pix },
		"median":    func() []uint8 { return MedianColor(img, 1).Pix },
	} {
		pix := filtered()
		assert.Equal(t, uint8(10), pix[3], name)
		assert.Equal(t, uint8(77), pix[4*8*4+4*4+3], name)
	}
}
