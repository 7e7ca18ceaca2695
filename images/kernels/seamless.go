package kernels

import (
	"image"

	"github.com/chewxy/math32"

	"github.com/texgen-ai/go-pbr/images"
)

// MakeSeamless cross-blends opposite borders of a raster so it tiles
// without visible seams. For a border width of blendWidth (a fraction of
// the smaller image dimension), pixel d from the left edge is blended
// with pixel width-1-d from the right edge using a cosine-shaped weight
// that is strongest at the boundary and fades to zero at distance b. The
// top/bottom pass runs on the already left-right-blended buffer. This is
// the only kernel that samples with wraparound mirroring instead of
// border clamping.
//
// Arguments:
// - img: The raster to make tileable.
// - blendWidth: Border fraction in (0, 0.5]; values outside are clamped.
//
// Returns:
// - A new seamlessly tiling *image.RGBA.
func MakeSeamless(img *image.RGBA, blendWidth float32) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	blendWidth = images.Clamp(blendWidth, 0.01, 0.5)

	minDim := w
	if h < minDim {
		minDim = h
	}
	border := int(float32(minDim) * blendWidth)
	if border < 1 {
		return images.CloneRGBA(img)
	}

	out := images.CloneRGBA(img)

	// Left-right pass: each column d within the border blends with its
	// mirror column from the opposite edge.
	for y := 0; y < h; y++ {
		row := y * out.Stride
		for d := 0; d < border; d++ {
			// Cosine falloff: full blend weight 0.5 at the boundary,
			// zero at distance border.
			t := float32(d) / float32(border)
			weight := 0.5 * (1 + math32.Cos(t*math32.Pi)) * 0.5

			blendPix(out.Pix[row+d*4:], img.Pix[row+(w-1-d)*4:], weight)
			blendPix(out.Pix[row+(w-1-d)*4:], img.Pix[row+d*4:], weight)
		}
	}

	// Top-bottom pass over the already blended buffer.
	base := images.CloneRGBA(out)
	for d := 0; d < border; d++ {
		t := float32(d) / float32(border)
		weight := 0.5 * (1 + math32.Cos(t*math32.Pi)) * 0.5

		topRow := d * out.Stride
		bottomRow := (h - 1 - d) * out.Stride
		for x := 0; x < w; x++ {
			blendPix(out.Pix[topRow+x*4:], base.Pix[bottomRow+x*4:], weight)
			blendPix(out.Pix[bottomRow+x*4:], base.Pix[topRow+x*4:], weight)
		}
	}
	return out
}

// blendPix mixes the first four bytes of src into dst by weight.
func blendPix(dst, src []byte, weight float32) {
	for c := 0; c < 4; c++ {
		dst[c] = images.ClampU8(float32(dst[c])*(1-weight) + float32(src[c])*weight)
	}
}
