package params

// Partial is a loosely typed bag of parameter updates, keyed by the
// parameter's wire name. Unknown keys are ignored; missing keys leave the
// current value in place. Numeric values may arrive as any int or float
// type (JSON and YAML decoders disagree on which they produce).
type Partial map[string]interface{}

// Apply merges a partial update into the parameters of one map type,
// clamping each value to its valid range. Unknown map types and unknown
// keys are ignored.
func (s *Set) Apply(t MapType, p Partial) {
	switch t {
	case Height:
		s.Height.Common.apply(p)
		if v, ok := asFloat(p["preBlurSigma"]); ok {
			s.Height.PreBlurSigma = clampF(v, 0, 50)
		}
	case Normal:
		s.Normal.Common.apply(p)
		if v, ok := asFloat(p["normalStrength"]); ok {
			s.Normal.Strength = clampF(v, 0, 500)
		}
		if v, ok := asBool(p["useScharr"]); ok {
			s.Normal.UseScharr = v
		}
		if v, ok := asFloat(p["preBlurSigma"]); ok {
			s.Normal.PreBlurSigma = clampF(v, 0, 50)
		}
	case Diffuse:
		s.Diffuse.Common.apply(p)
		if v, ok := asFloat(p["deLightStrength"]); ok {
			s.Diffuse.DeLightStrength = clampF(v, 0, 1)
		}
	case Metallic:
		s.Metallic.Common.apply(p)
		if v, ok := asFloat(p["metallicThreshold"]); ok {
			s.Metallic.Threshold = clampF(v, 0, 1)
		}
	case Roughness:
		s.Roughness.Common.apply(p)
		if v, ok := asFloat(p["roughnessFloor"]); ok {
			s.Roughness.Floor = clampF(v, 0, 254)
		}
	case Smoothness:
		s.Smoothness.Common.apply(p)
	case AO:
		s.AO.Common.apply(p)
		if v, ok := asFloat(p["aoRadius"]); ok {
			s.AO.Radius = clampF(v, 1, 64)
		}
		if v, ok := asFloat(p["aoIntensity"]); ok {
			s.AO.Intensity = clampF(v, 0, 5)
		}
	case Edge:
		s.Edge.Common.apply(p)
		if v, ok := asFloat(p["lowThreshold"]); ok {
			s.Edge.LowThreshold = clampF(v, 0, 255)
		}
		if v, ok := asFloat(p["highThreshold"]); ok {
			s.Edge.HighThreshold = clampF(v, 0, 255)
		}
	case Displacement:
		s.Displacement.Common.apply(p)
		if v, ok := asFloat(p["detail"]); ok {
			s.Displacement.Detail = clampF(v, 0, 1)
		}
	case Specular:
		s.Specular.Common.apply(p)
	case Emissive:
		s.Emissive.Common.apply(p)
		if v, ok := asFloat(p["emissiveThreshold"]); ok {
			s.Emissive.Threshold = clampF(v, 0, 1)
		}
		if v, ok := asFloat(p["satMin"]); ok {
			s.Emissive.SatMin = clampF(v, 0, 1)
		}
	case Opacity:
		s.Opacity.Common.apply(p)
		if v, ok := asFloat(p["opacityThreshold"]); ok {
			s.Opacity.Threshold = clampF(v, 0, 255)
		}
	case Curvature:
		s.Curvature.Common.apply(p)
		if v, ok := asFloat(p["multiplier"]); ok {
			s.Curvature.Multiplier = clampF(v, 0, 10)
		}
		if v, ok := asFloat(p["preBlurSigma"]); ok {
			s.Curvature.PreBlurSigma = clampF(v, 0, 50)
		}
	}
}

// apply merges the common-adjustment keys.
func (c *Common) apply(p Partial) {
	if v, ok := asFloat(p["intensity"]); ok {
		c.Intensity = clampF(v, 0, 5)
	}
	if v, ok := asFloat(p["contrast"]); ok {
		c.Contrast = clampF(v, 0, 300)
	}
	if v, ok := asFloat(p["brightness"]); ok {
		c.Brightness = clampF(v, -255, 255)
	}
	if v, ok := asFloat(p["blurSigma"]); ok {
		c.BlurSigma = clampF(v, 0, 50)
	}
	if v, ok := asFloat(p["sharpen"]); ok {
		c.Sharpen = clampF(v, 0, 100)
	}
	if v, ok := asBool(p["invert"]); ok {
		c.Invert = v
	}
	if v, ok := asFloat(p["blackPoint"]); ok {
		c.BlackPoint = clampF(v, 0, 255)
	}
	if v, ok := asFloat(p["whitePoint"]); ok {
		c.WhitePoint = clampF(v, 0, 255)
	}
	if v, ok := asFloat(p["gamma"]); ok {
		c.Gamma = clampF(v, 0.01, 10)
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	}
	return 0, false
}

func asBool(v interface{}) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func clampF(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
