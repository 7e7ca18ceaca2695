package kernels

import (
	"image"
	"image/color"
	"math/rand"
	"sort"
)

// maxPaletteSamples caps how many pixels feed the clustering pass.
const maxPaletteSamples = 10000

// kmeansIterations is fixed; the algorithm version guarantees
// reproducible output for a fixed input and seed.
const kmeansIterations = 10

// PaletteEntry is one dominant color and its share of the sampled pixels.
type PaletteEntry struct {
	// Color is the cluster centroid.
	Color color.RGBA
	// Percent is the share of samples assigned to this centroid, 0-100.
	Percent float64
}

// KMeansPalette extracts the k dominant colors of a raster by k-means
// clustering in RGB space. Up to 10,000 pixels are sampled, centroids are
// initialized by uniform random draws from the samples, and 10 iterations
// of nearest-centroid assignment (squared Euclidean distance) and
// centroid-mean update are run. Empty clusters are dropped and the result
// is sorted by share, descending.
//
// Arguments:
// - img: The raster to sample.
// - k: Desired number of clusters.
// - seed: RNG seed; a fixed seed yields deterministic palettes.
//
// Returns:
// - Palette entries sorted by Percent descending.
func KMeansPalette(img *image.RGBA, k int, seed int64) []PaletteEntry {
	if k < 1 {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	total := w * h
	if total == 0 {
		return nil
	}

	// Sample the image on a uniform grid stride so large images stay cheap.
	stride := 1
	for total/(stride*stride) > maxPaletteSamples {
		stride++
	}
	type sample [3]float64
	samples := make([]sample, 0, maxPaletteSamples)
	for y := 0; y < h; y += stride {
		row := y * img.Stride
		for x := 0; x < w; x += stride {
			o := row + x*4
			samples = append(samples, sample{
				float64(img.Pix[o]), float64(img.Pix[o+1]), float64(img.Pix[o+2]),
			})
		}
	}
	if k > len(samples) {
		k = len(samples)
	}

	rng := rand.New(rand.NewSource(seed))
	centroids := make([]sample, k)
	for i := range centroids {
		centroids[i] = samples[rng.Intn(len(samples))]
	}

	assign := make([]int, len(samples))
	counts := make([]int, k)
	for iter := 0; iter < kmeansIterations; iter++ {
		// Assignment step: nearest centroid by squared Euclidean distance.
		for i, s := range samples {
			best, bestDist := 0, -1.0
			for c, cent := range centroids {
				dr := s[0] - cent[0]
				dg := s[1] - cent[1]
				db := s[2] - cent[2]
				d := dr*dr + dg*dg + db*db
				if bestDist < 0 || d < bestDist {
					best, bestDist = c, d
				}
			}
			assign[i] = best
		}

		// Update step: move each centroid to the mean of its samples.
		sums := make([]sample, k)
		for i := range counts {
			counts[i] = 0
		}
		for i, s := range samples {
			c := assign[i]
			sums[c][0] += s[0]
			sums[c][1] += s[1]
			sums[c][2] += s[2]
			counts[c]++
		}
		for c := range centroids {
			if counts[c] == 0 {
				continue
			}
			n := float64(counts[c])
			centroids[c] = sample{sums[c][0] / n, sums[c][1] / n, sums[c][2] / n}
		}
	}

	entries := make([]PaletteEntry, 0, k)
	for c, cent := range centroids {
		if counts[c] == 0 {
			continue
		}
		entries = append(entries, PaletteEntry{
			Color: color.RGBA{
				R: uint8(cent[0] + 0.5),
				G: uint8(cent[1] + 0.5),
				B: uint8(cent[2] + 0.5),
				A: 255,
			},
			Percent: float64(counts[c]) / float64(len(samples)) * 100.0,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Percent > entries[j].Percent })
	return entries
}
