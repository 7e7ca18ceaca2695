package materials

import (
	"image"

	"github.com/pkg/errors"

	"github.com/texgen-ai/go-pbr/images"
	"github.com/texgen-ai/go-pbr/params"
)

// Synthesize dispatches to the synthesizer for the given map type using
// the parameters currently held in the set. Synthesizers themselves are
// pure and may panic on malformed buffers; the generation scheduler is
// the error boundary that recovers.
//
// Arguments:
// - t: The map type to synthesize.
// - src: The source raster, shared read-only across synthesizers.
// - set: The resolved parameter set.
//
// Returns:
// - A freshly allocated raster of the same dimensions as src.
// - An error only for unknown map types.
func Synthesize(t params.MapType, src *image.RGBA, set params.Set) (*image.RGBA, error) {
	// Individual synthesizers index Pix directly and assume the raster
	// origin is (0, 0); sub-images are re-based here.
	src = images.ToRGBAImage(src)
	switch t {
	case params.Height:
		return SynthesizeHeight(src, set.Height), nil
	case params.Normal:
		return SynthesizeNormal(src, set.Normal), nil
	case params.Diffuse:
		return SynthesizeDiffuse(src, set.Diffuse), nil
	case params.Metallic:
		return SynthesizeMetallic(src, set.Metallic), nil
	case params.Roughness:
		return SynthesizeRoughness(src, set.Roughness), nil
	case params.Smoothness:
		return SynthesizeSmoothness(src, set.Smoothness), nil
	case params.AO:
		return SynthesizeAO(src, set.AO), nil
	case params.Edge:
		return SynthesizeEdge(src, set.Edge), nil
	case params.Displacement:
		return SynthesizeDisplacement(src, set.Displacement), nil
	case params.Specular:
		return SynthesizeSpecular(src, set.Specular), nil
	case params.Emissive:
		return SynthesizeEmissive(src, set.Emissive), nil
	case params.Opacity:
		return SynthesizeOpacity(src, set.Opacity), nil
	case params.Curvature:
		return SynthesizeCurvature(src, set.Curvature), nil
	}
	return nil, errors.Errorf("unknown map type %d", int(t))
}
