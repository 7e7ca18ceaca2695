// Package images - preview-resolution scaling used by the progressive
// generation path.
package images

import (
	"image"

	"github.com/nfnt/resize"
)

// Downscale shrinks an RGBA raster by an integer factor using
// nearest-neighbor sampling. The preview pass favors speed over quality;
// the full-resolution pass replaces the result shortly after.
//
// Arguments:
// - img: The source raster.
// - factor: The integer divisor for both dimensions. Values <= 1 return a copy.
//
// Returns:
// - A new downscaled *image.RGBA.
func Downscale(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return CloneRGBA(img)
	}
	b := img.Bounds()
	w := b.Dx() / factor
	h := b.Dy() / factor
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return ToRGBAImage(resize.Resize(uint(w), uint(h), img, resize.NearestNeighbor))
}

// Upscale stretches a raster to the given dimensions with bilinear
// interpolation, smoothing the blockiness of a nearest-neighbor preview.
func Upscale(img *image.RGBA, w, h int) *image.RGBA {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return CloneRGBA(img)
	}
	return ToRGBAImage(resize.Resize(uint(w), uint(h), img, resize.Bilinear))
}

// CapDimension shrinks a raster so its larger dimension does not exceed
// maxDim, preserving aspect ratio. Rasters already within the cap are
// returned unchanged. Lanczos3 keeps detail for the one-time source
// ingestion path.
func CapDimension(img *image.RGBA, maxDim int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}
	if w >= h {
		return ToRGBAImage(resize.Resize(uint(maxDim), 0, img, resize.Lanczos3))
	}
	return ToRGBAImage(resize.Resize(0, uint(maxDim), img, resize.Lanczos3))
}
