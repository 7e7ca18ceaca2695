package kernels

import (
	"github.com/chewxy/math32"

	"github.com/texgen-ai/go-pbr/images"
)

// Normalize linearly rescales the input's [min, max] range to [0, 255].
// A constant input (min == max) is treated as having a range of 1, so the
// output is uniformly 0.
func Normalize(src *images.FloatMap) *images.FloatMap {
	min, max := src.Pix[0], src.Pix[0]
	for _, v := range src.Pix {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	rng := max - min
	if rng == 0 {
		rng = 1
	}
	out := images.NewFloatMap(src.W, src.H)
	scale := 255.0 / rng
	for i, v := range src.Pix {
		out.Pix[i] = (v - min) * scale
	}
	return out
}

// Levels remaps values through a black point, white point and gamma:
// ((v-black)/(white-black))^(1/gamma) * 255, clamped. The white point is
// forced to at least black+1 and gamma to at least 0.01 so no parameter
// combination can divide by zero.
func Levels(src *images.FloatMap, black, white, gamma float32) *images.FloatMap {
	if white <= black {
		white = black + 1
	}
	if gamma < 0.01 {
		gamma = 0.01
	}
	out := images.NewFloatMap(src.W, src.H)
	invRange := 1.0 / (white - black)
	invGamma := 1.0 / gamma
	for i, v := range src.Pix {
		t := images.Clamp((v-black)*invRange, 0, 1)
		if invGamma != 1 {
			t = math32.Pow(t, invGamma)
		}
		out.Pix[i] = t * 255.0
	}
	return out
}

// BrightnessContrast applies (v-128)*(contrast/100) + 128 + brightness,
// clamped to [0, 255]. contrast=100 and brightness=0 is the identity up to
// clamping.
func BrightnessContrast(src *images.FloatMap, brightness, contrast float32) *images.FloatMap {
	out := images.NewFloatMap(src.W, src.H)
	c := contrast / 100.0
	for i, v := range src.Pix {
		out.Pix[i] = images.Clamp((v-128)*c+128+brightness, 0, 255)
	}
	return out
}

// HistogramEqualize spreads the 256-bin value histogram across the full
// range via its cumulative distribution. Input values are clamped into
// [0, 255] when binned.
func HistogramEqualize(src *images.FloatMap) *images.FloatMap {
	var hist [256]int
	for _, v := range src.Pix {
		hist[images.ClampU8(v)]++
	}

	var cdf [256]int
	sum := 0
	cdfMin := 0
	seen := false
	for i, c := range hist {
		sum += c
		cdf[i] = sum
		if !seen && c > 0 {
			cdfMin = sum
			seen = true
		}
	}

	n := len(src.Pix)
	out := images.NewFloatMap(src.W, src.H)
	denom := float32(n - cdfMin)
	if denom <= 0 {
		denom = 1
	}
	for i, v := range src.Pix {
		out.Pix[i] = float32(cdf[images.ClampU8(v)]-cdfMin) / denom * 255.0
	}
	return out
}

// CLAHE applies contrast-limited adaptive histogram equalization.
// The image is partitioned into tiles of tileSize pixels; each tile gets a
// clipped histogram whose excess (above clipLimit * pixelsPerTile / 256)
// is redistributed uniformly over all 256 bins, then a CDF-based mapping.
// Output values interpolate bilinearly between the four nearest tile
// mappings using tile-center coordinates.
//
// Arguments:
// - src: The float map to equalize (binned over [0, 255]).
// - tileSize: Tile edge length in pixels (minimum 8).
// - clipLimit: Histogram clip multiplier, typically 2-4.
//
// Returns:
// - A new float map in [0, 255].
func CLAHE(src *images.FloatMap, tileSize int, clipLimit float32) *images.FloatMap {
	if tileSize < 8 {
		tileSize = 8
	}
	if clipLimit < 1 {
		clipLimit = 1
	}
	w, h := src.W, src.H
	tilesX := (w + tileSize - 1) / tileSize
	tilesY := (h + tileSize - 1) / tileSize

	// Per-tile value mapping, indexed [ty*tilesX+tx][bin].
	mappings := make([][256]float32, tilesX*tilesY)

	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0, y0 := tx*tileSize, ty*tileSize
			x1, y1 := x0+tileSize, y0+tileSize
			if x1 > w {
				x1 = w
			}
			if y1 > h {
				y1 = h
			}

			var hist [256]float32
			count := 0
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					hist[images.ClampU8(src.Pix[y*w+x])]++
					count++
				}
			}
			if count == 0 {
				continue
			}

			// Clip and redistribute the excess uniformly.
			limit := clipLimit * float32(count) / 256.0
			var excess float32
			for i := range hist {
				if hist[i] > limit {
					excess += hist[i] - limit
					hist[i] = limit
				}
			}
			share := excess / 256.0
			for i := range hist {
				hist[i] += share
			}

			m := &mappings[ty*tilesX+tx]
			var cum float32
			for i := range hist {
				cum += hist[i]
				m[i] = cum / float32(count) * 255.0
			}
		}
	}

	// Tile centers come from the actual tile extents, so ragged
	// right/bottom tiles interpolate from their true midpoints.
	centersX := make([]float32, tilesX)
	for tx := 0; tx < tilesX; tx++ {
		x0 := tx * tileSize
		x1 := x0 + tileSize
		if x1 > w {
			x1 = w
		}
		centersX[tx] = float32(x0) + float32(x1-x0)/2.0
	}
	centersY := make([]float32, tilesY)
	for ty := 0; ty < tilesY; ty++ {
		y0 := ty * tileSize
		y1 := y0 + tileSize
		if y1 > h {
			y1 = h
		}
		centersY[ty] = float32(y0) + float32(y1-y0)/2.0
	}
	txLo, txHi, wxs := claheAxis(w, centersX)
	tyLo, tyHi, wys := claheAxis(h, centersY)

	out := images.NewFloatMap(w, h)
	images.Parallel(h, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			ty0, ty1, wy := tyLo[y], tyHi[y], wys[y]
			for x := 0; x < w; x++ {
				tx0, tx1, wx := txLo[x], txHi[x], wxs[x]

				bin := images.ClampU8(src.Pix[y*w+x])
				top := mappings[ty0*tilesX+tx0][bin]*(1-wx) + mappings[ty0*tilesX+tx1][bin]*wx
				bottom := mappings[ty1*tilesX+tx0][bin]*(1-wx) + mappings[ty1*tilesX+tx1][bin]*wx
				out.Pix[y*w+x] = top*(1-wy) + bottom*wy
			}
		}
	})
	return out
}

// claheAxis maps each pixel coordinate on one axis to the pair of tile
// indices whose centers bracket it, plus the interpolation fraction
// toward the second tile. Coordinates outside the first and last
// centers clamp to the nearest tile.
func claheAxis(length int, centers []float32) (lo, hi []int, frac []float32) {
	lo = make([]int, length)
	hi = make([]int, length)
	frac = make([]float32, length)
	tiles := len(centers)
	j := 0
	for p := 0; p < length; p++ {
		fp := float32(p)
		for j+1 < tiles && centers[j+1] <= fp {
			j++
		}
		switch {
		case fp <= centers[0]:
			lo[p], hi[p] = 0, 0
		case fp >= centers[tiles-1]:
			lo[p], hi[p] = tiles-1, tiles-1
		default:
			lo[p], hi[p] = j, j+1
			frac[p] = (fp - centers[j]) / (centers[j+1] - centers[j])
		}
	}
	return lo, hi, frac
}
