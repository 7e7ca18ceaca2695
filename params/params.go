package params

// Common holds the adjustment parameters shared by every map type. They
// are applied to each synthesizer's raw output in a fixed order:
// intensity, levels, brightness/contrast, blur, sharpen, invert.
type Common struct {
	// Intensity is a plain multiplier on the raw result. Default 1.0.
	Intensity float64 `yaml:"intensity"`
	// Contrast is a percentage; 100 is neutral.
	Contrast float64 `yaml:"contrast"`
	// Brightness is an additive offset in [-255, 255].
	Brightness float64 `yaml:"brightness"`
	// BlurSigma is the post-synthesis Gaussian sigma; 0 disables it.
	BlurSigma float64 `yaml:"blurSigma"`
	// Sharpen is the unsharp-mask amount; 0 disables it.
	Sharpen float64 `yaml:"sharpen"`
	// Invert flips the final values (255 - v).
	Invert bool `yaml:"invert"`
	// BlackPoint and WhitePoint are the levels bounds in [0, 255].
	BlackPoint float64 `yaml:"blackPoint"`
	WhitePoint float64 `yaml:"whitePoint"`
	// Gamma is the levels exponent; neutral at 1.0.
	Gamma float64 `yaml:"gamma"`
}

// DefaultCommon returns the neutral common adjustments.
func DefaultCommon() Common {
	return Common{
		Intensity:  1.0,
		Contrast:   100,
		Brightness: 0,
		BlurSigma:  0,
		Sharpen:    0,
		Invert:     false,
		BlackPoint: 0,
		WhitePoint: 255,
		Gamma:      1.0,
	}
}

// HeightParams configures height map synthesis.
type HeightParams struct {
	Common `yaml:",inline"`
	// PreBlurSigma smooths the grayscale before normalization.
	PreBlurSigma float64 `yaml:"preBlurSigma"`
}

// NormalParams configures tangent-space normal synthesis.
type NormalParams struct {
	Common `yaml:",inline"`
	// Strength scales the gradient contribution to the normal vector.
	Strength float64 `yaml:"normalStrength"`
	// UseScharr selects the Scharr operator over Sobel for gradients.
	UseScharr bool `yaml:"useScharr"`
	// PreBlurSigma smooths the height field before differentiation.
	PreBlurSigma float64 `yaml:"preBlurSigma"`
}

// DiffuseParams configures de-lighting.
type DiffuseParams struct {
	Common `yaml:",inline"`
	// DeLightStrength blends the illumination correction with identity,
	// 0 = no correction, 1 = full correction.
	DeLightStrength float64 `yaml:"deLightStrength"`
}

// MetallicParams configures the metallic heuristic.
type MetallicParams struct {
	Common `yaml:",inline"`
	// Threshold is the minimum metalness score in [0, 1]; pixels below
	// it output 0.
	Threshold float64 `yaml:"metallicThreshold"`
}

// RoughnessParams configures roughness synthesis.
type RoughnessParams struct {
	Common `yaml:",inline"`
	// Floor remaps the result so no region reaches 0; 0 disables it.
	Floor float64 `yaml:"roughnessFloor"`
}

// SmoothnessParams configures smoothness synthesis (255 - roughness).
type SmoothnessParams struct {
	Common `yaml:",inline"`
}

// AOParams configures multi-scale ambient occlusion.
type AOParams struct {
	Common `yaml:",inline"`
	// Radius is the middle sampling radius; the scales used are
	// 2, Radius and Radius*4.
	Radius float64 `yaml:"aoRadius"`
	// Intensity scales the accumulated occlusion.
	Intensity float64 `yaml:"aoIntensity"`
}

// EdgeParams configures Canny edge detection thresholds.
type EdgeParams struct {
	Common `yaml:",inline"`
	// LowThreshold and HighThreshold are the hysteresis bounds on the
	// suppressed gradient magnitude.
	LowThreshold  float64 `yaml:"lowThreshold"`
	HighThreshold float64 `yaml:"highThreshold"`
}

// DisplacementParams configures displacement synthesis.
type DisplacementParams struct {
	Common `yaml:",inline"`
	// Detail is the micro/macro blend fraction in [0, 1]; 1 keeps every
	// fine detail, 0 keeps only the sigma-3 macro shape.
	Detail float64 `yaml:"detail"`
}

// SpecularParams configures specular synthesis.
type SpecularParams struct {
	Common `yaml:",inline"`
}

// EmissiveParams configures the emissive heuristic.
type EmissiveParams struct {
	Common `yaml:",inline"`
	// Threshold is the minimum luminance (0-1) for a pixel to emit.
	Threshold float64 `yaml:"emissiveThreshold"`
	// SatMin is the minimum saturation (0-1) for a pixel to emit.
	SatMin float64 `yaml:"satMin"`
}

// OpacityParams configures opacity synthesis.
type OpacityParams struct {
	Common `yaml:",inline"`
	// Threshold is the luminance cut, in [0, 255], used when the source
	// has no partial alpha.
	Threshold float64 `yaml:"opacityThreshold"`
}

// CurvatureParams configures curvature synthesis.
type CurvatureParams struct {
	Common `yaml:",inline"`
	// Multiplier scales the Laplacian before centering at 128.
	Multiplier float64 `yaml:"multiplier"`
	// PreBlurSigma smooths the height field before the Laplacian.
	PreBlurSigma float64 `yaml:"preBlurSigma"`
}

// Set holds the current parameters for every map type.
type Set struct {
	Height       HeightParams       `yaml:"height"`
	Normal       NormalParams       `yaml:"normal"`
	Diffuse      DiffuseParams      `yaml:"diffuse"`
	Metallic     MetallicParams     `yaml:"metallic"`
	Roughness    RoughnessParams    `yaml:"roughness"`
	Smoothness   SmoothnessParams   `yaml:"smoothness"`
	AO           AOParams           `yaml:"ao"`
	Edge         EdgeParams         `yaml:"edge"`
	Displacement DisplacementParams `yaml:"displacement"`
	Specular     SpecularParams     `yaml:"specular"`
	Emissive     EmissiveParams     `yaml:"emissive"`
	Opacity      OpacityParams      `yaml:"opacity"`
	Curvature    CurvatureParams    `yaml:"curvature"`
}

// Defaults returns a Set with every map type at its fixed defaults.
func Defaults() Set {
	c := DefaultCommon()
	return Set{
		Height:       HeightParams{Common: c, PreBlurSigma: 2},
		Normal:       NormalParams{Common: c, Strength: 100, PreBlurSigma: 1},
		Diffuse:      DiffuseParams{Common: c, DeLightStrength: 0.5},
		Metallic:     MetallicParams{Common: c, Threshold: 0.5},
		Roughness:    RoughnessParams{Common: c, Floor: 0},
		Smoothness:   SmoothnessParams{Common: c},
		AO:           AOParams{Common: c, Radius: 8, Intensity: 1.0},
		Edge:         EdgeParams{Common: c, LowThreshold: 40, HighThreshold: 100},
		Displacement: DisplacementParams{Common: c, Detail: 0.5},
		Specular:     SpecularParams{Common: c},
		Emissive:     EmissiveParams{Common: c, Threshold: 0.7, SatMin: 0.3},
		Opacity:      OpacityParams{Common: c, Threshold: 128},
		Curvature:    CurvatureParams{Common: c, Multiplier: 2, PreBlurSigma: 1},
	}
}

// Reset restores one map type's parameters to its defaults.
func (s *Set) Reset(t MapType) {
	d := Defaults()
	switch t {
	case Height:
		s.Height = d.Height
	case Normal:
		s.Normal = d.Normal
	case Diffuse:
		s.Diffuse = d.Diffuse
	case Metallic:
		s.Metallic = d.Metallic
	case Roughness:
		s.Roughness = d.Roughness
	case Smoothness:
		s.Smoothness = d.Smoothness
	case AO:
		s.AO = d.AO
	case Edge:
		s.Edge = d.Edge
	case Displacement:
		s.Displacement = d.Displacement
	case Specular:
		s.Specular = d.Specular
	case Emissive:
		s.Emissive = d.Emissive
	case Opacity:
		s.Opacity = d.Opacity
	case Curvature:
		s.Curvature = d.Curvature
	}
}
