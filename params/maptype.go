// Package params - parameter schemas, defaults and the dependency graph
// for the thirteen texture map types.
package params

// MapType identifies one of the generated texture maps.
type MapType int

// The thirteen map kinds, in generation-menu order.
const (
	Height MapType = iota
	Normal
	Diffuse
	Metallic
	Roughness
	Smoothness
	AO
	Edge
	Displacement
	Specular
	Emissive
	Opacity
	Curvature
)

// labels index by MapType.
var labels = [...]string{
	"height", "normal", "diffuse", "metallic", "roughness", "smoothness",
	"ao", "edge", "displacement", "specular", "emissive", "opacity",
	"curvature",
}

// colorTags are UI hints only; nothing in the engine reads them.
var colorTags = [...]string{
	"#8d6e63", "#7e57c2", "#ef5350", "#90a4ae", "#a1887f", "#4dd0e1",
	"#66bb6a", "#ffca28", "#5c6bc0", "#26c6da", "#ffee58", "#bdbdbd",
	"#ec407a",
}

// All returns every map type in a stable order.
func All() []MapType {
	out := make([]MapType, len(labels))
	for i := range out {
		out[i] = MapType(i)
	}
	return out
}

// Valid reports whether t is one of the thirteen known map types.
func (t MapType) Valid() bool {
	return t >= Height && t <= Curvature
}

// Label returns the lower-case name of the map type.
func (t MapType) Label() string {
	if !t.Valid() {
		return "unknown"
	}
	return labels[t]
}

// String implements fmt.Stringer.
func (t MapType) String() string { return t.Label() }

// ColorTag returns the UI accent color for the map type.
func (t MapType) ColorTag() string {
	if !t.Valid() {
		return "#000000"
	}
	return colorTags[t]
}

// dependents maps a source map type to the map types that should be
// regenerated when it changes. The graph is intentionally non-recursive:
// cascading re-invokes generation on direct dependents only.
var dependents = map[MapType][]MapType{
	Height:     {Normal, Displacement, Curvature, AO},
	Roughness:  {Smoothness},
	Smoothness: {Roughness},
}

// Dependents returns the direct dependents of a map type. The returned
// slice is a copy and safe to modify.
func Dependents(t MapType) []MapType {
	deps := dependents[t]
	out := make([]MapType, len(deps))
	copy(out, deps)
	return out
}
