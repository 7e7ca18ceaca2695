package kernels

import (
	"github.com/chewxy/math32"

	"github.com/texgen-ai/go-pbr/images"
)

// CannySigma is the Gaussian pre-blur applied before gradient estimation.
const CannySigma = 1.4

// Canny performs Canny edge detection: Gaussian blur, Sobel gradients,
// non-maximum suppression along the gradient direction quantized to four
// sectors, then hysteresis by breadth-first propagation from strong
// pixels into 8-connected weak neighbors. The output is strictly binary:
// every pixel is either 0 or 255.
//
// Arguments:
// - src: The float map to detect edges in, typically a luminance map.
// - lowThreshold: Weak-edge magnitude threshold for hysteresis propagation.
// - highThreshold: Strong-edge seed threshold.
//
// Returns:
// - A new binary float map (0 or 255).
func Canny(src *images.FloatMap, lowThreshold, highThreshold float32) *images.FloatMap {
	w, h := src.W, src.H
	blurred := GaussianBlur(src, CannySigma)
	grad := Sobel(blurred)

	suppressed := nonMaxSuppress(grad)

	out := images.NewFloatMap(w, h)
	visited := make([]bool, w*h)

	// Seed the queue with every strong pixel, then flood into weak ones.
	queue := make([]int, 0, w*h/8)
	for i, m := range suppressed.Pix {
		if m > highThreshold {
			visited[i] = true
			out.Pix[i] = 255
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				j := ny*w + nx
				if visited[j] || suppressed.Pix[j] <= lowThreshold {
					continue
				}
				visited[j] = true
				out.Pix[j] = 255
				queue = append(queue, j)
			}
		}
	}
	return out
}

// nonMaxSuppress keeps only pixels that are local maxima along their
// gradient direction, quantized to 0/45/90/135 degrees. Border pixels are
// suppressed.
func nonMaxSuppress(grad Gradients) *images.FloatMap {
	w, h := grad.Magnitude.W, grad.Magnitude.H
	out := images.NewFloatMap(w, h)
	if w < 3 || h < 3 {
		return out
	}
	images.Parallel(h-2, func(partStart, partEnd int) {
		for y := partStart + 1; y < partEnd+1; y++ {
			for x := 1; x < w-1; x++ {
				i := y*w + x
				mag := grad.Magnitude.Pix[i]
				if mag == 0 {
					continue
				}

				angle := math32.Atan2(grad.GY.Pix[i], grad.GX.Pix[i]) * 180.0 / math32.Pi
				if angle < 0 {
					angle += 180
				}

				var a, b float32
				switch {
				case angle < 22.5 || angle >= 157.5: // horizontal gradient
					a = grad.Magnitude.Pix[i-1]
					b = grad.Magnitude.Pix[i+1]
				case angle < 67.5: // 45 degrees
					a = grad.Magnitude.Pix[i+w+1]
					b = grad.Magnitude.Pix[i-w-1]
				case angle < 112.5: // vertical gradient
					a = grad.Magnitude.Pix[i-w]
					b = grad.Magnitude.Pix[i+w]
				default: // 135 degrees
					a = grad.Magnitude.Pix[i+w-1]
					b = grad.Magnitude.Pix[i-w+1]
				}

				if mag >= a && mag >= b {
					out.Pix[i] = mag
				}
			}
		}
	})
	return out
}
