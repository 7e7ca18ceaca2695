package kernels

import (
	"github.com/texgen-ai/go-pbr/images"
)

// Dilate replaces each pixel with the maximum over a square window of the
// given radius, border-clamped.
func Dilate(src *images.FloatMap, radius int) *images.FloatMap {
	return morph(src, radius, true)
}

// Erode replaces each pixel with the minimum over a square window of the
// given radius, border-clamped.
func Erode(src *images.FloatMap, radius int) *images.FloatMap {
	return morph(src, radius, false)
}

// Open erodes then dilates, removing bright speckles smaller than the
// structuring element.
func Open(src *images.FloatMap, radius int) *images.FloatMap {
	return Dilate(Erode(src, radius), radius)
}

// Close dilates then erodes, filling dark pits smaller than the
// structuring element.
func Close(src *images.FloatMap, radius int) *images.FloatMap {
	return Erode(Dilate(src, radius), radius)
}

func morph(src *images.FloatMap, radius int, max bool) *images.FloatMap {
	if radius < 1 {
		return src.Clone()
	}
	w, h := src.W, src.H
	out := images.NewFloatMap(w, h)
	images.Parallel(h, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < w; x++ {
				best := src.At(x, y)
				for dy := -radius; dy <= radius; dy++ {
					for dx := -radius; dx <= radius; dx++ {
						v := src.At(x+dx, y+dy)
						if max {
							if v > best {
								best = v
							}
						} else if v < best {
							best = v
						}
					}
				}
				out.Pix[y*w+x] = best
			}
		}
	})
	return out
}
