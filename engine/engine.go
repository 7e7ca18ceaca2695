// Package engine - generation scheduling on top of the map synthesizers:
// progressive preview/refine rendering, stale-result cancellation through
// per-map-type version counters, and dependency-driven cascade
// regeneration.
package engine

import (
	"image"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/texgen-ai/go-pbr/images"
	"github.com/texgen-ai/go-pbr/materials"
	"github.com/texgen-ai/go-pbr/params"
)

// State tracks where a map type is in its generation lifecycle.
type State int

const (
	// Idle means no generation is in flight.
	Idle State = iota
	// Previewing means the cheap low-resolution pass is running or shown.
	Previewing
	// Refining means the full-resolution pass is running.
	Refining
	// Failed means the last generation attempt errored.
	Failed
)

// GeneratedMap is the per-map-type slot owned by the engine.
type GeneratedMap struct {
	// Type is the map kind this slot holds.
	Type params.MapType
	// Raster is the latest published result, nil before first generation.
	Raster *image.RGBA
	// Generated is true once a full-resolution result has been published.
	Generated bool
	// InProgress is true while a generation is in flight.
	InProgress bool
	// Enabled gates bulk generation and cascade regeneration.
	Enabled bool
	// State is the current lifecycle state.
	State State
}

// Result is delivered to the OnResult callback at every publish point.
type Result struct {
	// Type is the map the raster belongs to.
	Type params.MapType
	// Raster is the published raster.
	Raster *image.RGBA
	// Final is false for preview-resolution publishes.
	Final bool
}

// Options configures an Engine. Zero values fall back to the defaults
// below.
type Options struct {
	// PreviewThreshold is the source dimension above which the
	// progressive preview pass runs. Default 512.
	PreviewThreshold int
	// RefineDelay is the debounce between the preview publish and the
	// full-resolution pass. Default 50ms.
	RefineDelay time.Duration
	// CascadeDelay is the shared debounce for dependency cascades, long
	// enough for rapid successive parameter edits to coalesce.
	// Default 200ms.
	CascadeDelay time.Duration
	// OnResult receives every publish. Called outside the engine lock.
	OnResult func(Result)
	// OnProgress receives bulk-generation progress: completed count,
	// total count, the map type just finished and its synthesis time.
	OnProgress func(done, total int, t params.MapType, elapsed time.Duration)
}

const (
	defaultPreviewThreshold = 512
	defaultRefineDelay      = 50 * time.Millisecond
	defaultCascadeDelay     = 200 * time.Millisecond
)

// Engine owns the source raster, the parameter sets and the generated
// map slots. All state is mutated only through the documented operations;
// the source raster is treated as read-only and shared by every
// synthesizer.
type Engine struct {
	mu sync.Mutex

	opt Options

	src      *image.RGBA
	srcName  string
	maps     map[params.MapType]*GeneratedMap
	paramSet params.Set

	// versions is the stale-write guard: every generation request bumps
	// the counter for its map type, and every publish point checks that
	// the counter has not moved before applying its result.
	versions map[params.MapType]uint64

	refineTimers   map[params.MapType]*time.Timer
	cascadeTimer   *time.Timer
	pendingCascade map[params.MapType]bool
}

// New creates an engine with no source loaded.
func New(opt Options) *Engine {
	if opt.PreviewThreshold <= 0 {
		opt.PreviewThreshold = defaultPreviewThreshold
	}
	if opt.RefineDelay <= 0 {
		opt.RefineDelay = defaultRefineDelay
	}
	if opt.CascadeDelay <= 0 {
		opt.CascadeDelay = defaultCascadeDelay
	}
	e := &Engine{
		opt:            opt,
		maps:           make(map[params.MapType]*GeneratedMap),
		paramSet:       params.Defaults(),
		versions:       make(map[params.MapType]uint64),
		refineTimers:   make(map[params.MapType]*time.Timer),
		pendingCascade: make(map[params.MapType]bool),
	}
	for _, t := range params.All() {
		e.maps[t] = &GeneratedMap{Type: t, Enabled: true}
	}
	return e
}

// SetSource loads a new source raster and invalidates every generated
// map. Parameters persist across source changes. The caller must not
// mutate img afterwards.
func (e *Engine) SetSource(img *image.RGBA, name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.src = img
	e.srcName = name
	for _, t := range params.All() {
		e.versions[t]++ // supersede anything in flight
		e.stopRefineTimerLocked(t)
		m := e.maps[t]
		m.Raster = nil
		m.Generated = false
		m.InProgress = false
		m.State = Idle
	}
	e.pendingCascade = make(map[params.MapType]bool)
	if e.cascadeTimer != nil {
		e.cascadeTimer.Stop()
		e.cascadeTimer = nil
	}
}

// UpdateParams merges a partial update into one map type's parameters.
// Unknown keys are ignored and values are clamped to their valid ranges.
func (e *Engine) UpdateParams(t params.MapType, p params.Partial) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paramSet.Apply(t, p)
}

// Params returns a copy of the current parameter set.
func (e *Engine) Params() params.Set {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paramSet
}

// SetParams replaces the whole parameter set, e.g. from a preset.
func (e *Engine) SetParams(s params.Set) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paramSet = s
}

// SetEnabled toggles a map type. Disabled maps are skipped by bulk
// generation and never cascade-regenerated.
func (e *Engine) SetEnabled(t params.MapType, enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if m, ok := e.maps[t]; ok {
		m.Enabled = enabled
	}
}

// Clear invalidates one map type's raster and restores its default
// parameters. Any in-flight generation for it is superseded.
func (e *Engine) Clear(t params.MapType) {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, ok := e.maps[t]
	if !ok {
		return
	}
	e.versions[t]++
	e.stopRefineTimerLocked(t)
	m.Raster = nil
	m.Generated = false
	m.InProgress = false
	m.State = Idle
	e.paramSet.Reset(t)
}

// Map returns a snapshot of one map slot.
func (e *Engine) Map(t params.MapType) GeneratedMap {
	e.mu.Lock()
	defer e.mu.Unlock()
	if m, ok := e.maps[t]; ok {
		return *m
	}
	return GeneratedMap{Type: t}
}

// Result returns the latest published raster for a map type and whether
// a full-resolution result has been generated.
func (e *Engine) Result(t params.MapType) (*image.RGBA, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, ok := e.maps[t]
	if !ok {
		return nil, false
	}
	return m.Raster, m.Generated
}

// Results returns a snapshot of every map slot, keyed by map type.
func (e *Engine) Results() map[params.MapType]GeneratedMap {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[params.MapType]GeneratedMap, len(e.maps))
	for t, m := range e.maps {
		out[t] = *m
	}
	return out
}

// Generate triggers a single-map generation: an immediate preview pass
// for large sources, then a debounced full-resolution refine, then the
// dependency cascade. Returns an error only when no source is loaded.
func (e *Engine) Generate(t params.MapType) error {
	return e.generate(t, true)
}

// generate runs the scheduling algorithm. cascadeOnDone is false for
// cascade-triggered regenerations, which keeps the cascade at one hop
// per completed user-visible generation and prevents the reciprocal
// roughness/smoothness edge from ping-ponging forever.
func (e *Engine) generate(t params.MapType, cascadeOnDone bool) error {
	e.mu.Lock()
	if e.src == nil {
		e.mu.Unlock()
		return errors.New("no source image loaded")
	}
	if !t.Valid() {
		e.mu.Unlock()
		return errors.Errorf("unknown map type %d", int(t))
	}

	e.versions[t]++
	version := e.versions[t]
	e.stopRefineTimerLocked(t)

	src := e.src
	set := e.paramSet
	m := e.maps[t]
	m.InProgress = true

	b := src.Bounds()
	maxDim := b.Dx()
	if b.Dy() > maxDim {
		maxDim = b.Dy()
	}
	needPreview := maxDim > e.opt.PreviewThreshold
	if needPreview {
		m.State = Previewing
	} else {
		m.State = Refining
	}
	e.mu.Unlock()

	if !needPreview {
		go e.refine(t, version, src, set, cascadeOnDone)
		return nil
	}

	go func() {
		factor := (maxDim + e.opt.PreviewThreshold - 1) / e.opt.PreviewThreshold
		small := images.Downscale(src, factor)
		preview, err := synthesize(t, small, set)
		if err != nil {
			e.fail(t, version, err)
			return
		}
		full := images.Upscale(preview, b.Dx(), b.Dy())
		e.publish(t, version, full, false)

		e.mu.Lock()
		if e.versions[t] != version {
			e.mu.Unlock()
			return
		}
		e.refineTimers[t] = time.AfterFunc(e.opt.RefineDelay, func() {
			e.refine(t, version, src, set, cascadeOnDone)
		})
		e.mu.Unlock()
	}()
	return nil
}

// refine runs the full-resolution pass and, on success, schedules the
// dependency cascade.
func (e *Engine) refine(t params.MapType, version uint64, src *image.RGBA, set params.Set, cascadeOnDone bool) {
	e.mu.Lock()
	if e.versions[t] != version {
		e.mu.Unlock()
		return
	}
	e.maps[t].State = Refining
	e.mu.Unlock()

	raster, err := synthesize(t, src, set)
	if err != nil {
		e.fail(t, version, err)
		return
	}
	if !e.publish(t, version, raster, true) {
		return
	}
	if cascadeOnDone {
		e.scheduleCascade(t)
	}
}

// publish applies a computed raster if and only if no newer generation
// for the same map type has started since this one began. Stale results
// are discarded silently. Reports whether the result was applied.
func (e *Engine) publish(t params.MapType, version uint64, raster *image.RGBA, final bool) bool {
	e.mu.Lock()
	if e.versions[t] != version {
		e.mu.Unlock()
		return false
	}
	m := e.maps[t]
	m.Raster = raster
	if final {
		m.Generated = true
		m.InProgress = false
		m.State = Idle
	}
	cb := e.opt.OnResult
	e.mu.Unlock()

	if cb != nil {
		cb(Result{Type: t, Raster: raster, Final: final})
	}
	return true
}

// fail is the per-map-type error boundary: the map surfaces as
// ungenerated with its in-progress flag cleared, and sibling generations
// are unaffected.
func (e *Engine) fail(t params.MapType, version uint64, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.versions[t] != version {
		return // a newer generation owns the slot now
	}
	m := e.maps[t]
	m.Generated = false
	m.InProgress = false
	m.State = Failed
	log.Printf("engine: %s generation failed: %v", t, err)
}

// scheduleCascade marks the already-generated, enabled dependents of t
// for regeneration and re-arms the shared cascade timer, so rapid
// successive edits coalesce into one cascade round.
func (e *Engine) scheduleCascade(t params.MapType) {
	e.mu.Lock()
	defer e.mu.Unlock()

	marked := false
	for _, dep := range params.Dependents(t) {
		m := e.maps[dep]
		if m.Enabled && m.Generated {
			e.pendingCascade[dep] = true
			marked = true
		}
	}
	if !marked {
		return
	}

	if e.cascadeTimer != nil {
		e.cascadeTimer.Stop()
	}
	e.cascadeTimer = time.AfterFunc(e.opt.CascadeDelay, e.runCascade)
}

// runCascade regenerates every pending dependent. The regenerations are
// non-cascading: depth is one hop per completed generation.
func (e *Engine) runCascade() {
	e.mu.Lock()
	pending := e.pendingCascade
	e.pendingCascade = make(map[params.MapType]bool)
	e.cascadeTimer = nil
	e.mu.Unlock()

	for dep := range pending {
		if err := e.generate(dep, false); err != nil {
			log.Printf("engine: cascade regeneration of %s failed: %v", dep, err)
		}
	}
}

// stopRefineTimerLocked cancels a pending full-resolution timer. Caller
// holds e.mu.
func (e *Engine) stopRefineTimerLocked(t params.MapType) {
	if timer, ok := e.refineTimers[t]; ok {
		timer.Stop()
		delete(e.refineTimers, t)
	}
}

// synthesize wraps the synthesizer dispatch with a panic recovery so a
// malformed buffer in one kernel turns into a failed state for that map
// type instead of crashing sibling generations.
func synthesize(t params.MapType, src *image.RGBA, set params.Set) (raster *image.RGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			raster = nil
			err = errors.Errorf("synthesizer panic: %v", r)
		}
	}()
	raster, err = materials.Synthesize(t, src, set)
	if err != nil {
		return nil, errors.Wrapf(err, "synthesize %s", t)
	}
	return raster, nil
}
