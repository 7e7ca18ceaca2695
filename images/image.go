// Package images - raster data model and color math for the texture
// generation pipeline. Two pixel representations are used: FloatMap, a
// single-channel float32 buffer that stays unclamped during computation,
// and the standard library *image.RGBA for final, displayable rasters.
package images

import (
	"image"
)

// FloatMap is a single-channel raster of 32-bit floats. Width and height
// never change after allocation; len(Pix) is always W*H. Values are not
// clamped to any range while intermediate results are being computed.
type FloatMap struct {
	// W is the width in pixels.
	W int
	// H is the height in pixels.
	H int
	// Pix holds one float32 per pixel in row-major order.
	Pix []float32
}

// NewFloatMap allocates a zeroed float map of the given dimensions.
func NewFloatMap(w, h int) *FloatMap {
	return &FloatMap{W: w, H: h, Pix: make([]float32, w*h)}
}

// Clone returns a deep copy of the map.
func (m *FloatMap) Clone() *FloatMap {
	out := NewFloatMap(m.W, m.H)
	copy(out.Pix, m.Pix)
	return out
}

// At returns the value at (x, y) with coordinates clamped to the valid
// range. Border clamping is the pipeline-wide sampling convention.
func (m *FloatMap) At(x, y int) float32 {
	if x < 0 {
		x = 0
	} else if x >= m.W {
		x = m.W - 1
	}
	if y < 0 {
		y = 0
	} else if y >= m.H {
		y = m.H - 1
	}
	return m.Pix[y*m.W+x]
}

// Set writes the value at (x, y). Out-of-range coordinates are ignored.
func (m *FloatMap) Set(x, y int, v float32) {
	if x < 0 || x >= m.W || y < 0 || y >= m.H {
		return
	}
	m.Pix[y*m.W+x] = v
}

// ToRGBA converts a float map to an opaque grayscale RGBA raster. Values
// are rounded to the nearest integer and clamped to [0, 255].
//
// Arguments:
// - m: The float map to convert.
//
// Returns:
// - A new *image.RGBA with R=G=B=value and A=255.
func ToRGBA(m *FloatMap) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, m.W, m.H))
	for i, v := range m.Pix {
		g := ClampU8(v)
		o := i * 4
		dst.Pix[o+0] = g
		dst.Pix[o+1] = g
		dst.Pix[o+2] = g
		dst.Pix[o+3] = 255
	}
	return dst
}

// ToFloat extracts one channel of an RGBA raster into a float map.
// Channel indices are 0=R, 1=G, 2=B, 3=A.
func ToFloat(img *image.RGBA, channel int) *FloatMap {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := NewFloatMap(w, h)
	for y := 0; y < h; y++ {
		row := (y + b.Min.Y - img.Rect.Min.Y) * img.Stride
		for x := 0; x < w; x++ {
			out.Pix[y*w+x] = float32(img.Pix[row+(x+b.Min.X-img.Rect.Min.X)*4+channel])
		}
	}
	return out
}

// SplitRGBA splits an RGBA raster into four float maps, one per channel.
func SplitRGBA(img *image.RGBA) (r, g, b, a *FloatMap) {
	return ToFloat(img, 0), ToFloat(img, 1), ToFloat(img, 2), ToFloat(img, 3)
}

// MergeRGBA assembles four float maps back into an RGBA raster, rounding
// and clamping each channel. All maps must share the same dimensions.
func MergeRGBA(r, g, b, a *FloatMap) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.W, r.H))
	for i := range r.Pix {
		o := i * 4
		dst.Pix[o+0] = ClampU8(r.Pix[i])
		dst.Pix[o+1] = ClampU8(g.Pix[i])
		dst.Pix[o+2] = ClampU8(b.Pix[i])
		dst.Pix[o+3] = ClampU8(a.Pix[i])
	}
	return dst
}

// CloneRGBA returns a deep copy of an RGBA raster.
func CloneRGBA(img *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(img.Rect)
	copy(dst.Pix, img.Pix)
	return dst
}

// ToRGBAImage normalizes any image.Image into *image.RGBA with its origin
// at (0, 0).
func ToRGBAImage(src image.Image) *image.RGBA {
	if r, ok := src.(*image.RGBA); ok && r.Rect.Min == image.Pt(0, 0) {
		return r
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x-b.Min.X, y-b.Min.Y, src.At(x, y))
		}
	}
	return dst
}

// HasPartialAlpha reports whether any pixel is less than fully opaque.
// The opacity synthesizer uses this to decide between passing the alpha
// channel through and thresholding luminance.
func HasPartialAlpha(img *image.RGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] < 255 {
			return true
		}
	}
	return false
}

// ClampU8 rounds a float to the nearest integer and clamps it to [0, 255].
func ClampU8(v float32) uint8 {
	v += 0.5
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Clamp restricts a value to the range [min, max].
func Clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
