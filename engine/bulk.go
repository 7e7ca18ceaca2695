package engine

import (
	"time"

	"github.com/pkg/errors"

	"github.com/texgen-ai/go-pbr/params"
)

// GenerateAll generates every enabled map type sequentially at full
// resolution, reporting progress through OnProgress. It blocks until the
// run completes; callers wanting it asynchronous wrap it in a goroutine.
func (e *Engine) GenerateAll() error {
	return e.GenerateMany(params.All())
}

// GenerateUngenerated generates the enabled map types that have no
// full-resolution result yet.
func (e *Engine) GenerateUngenerated() error {
	e.mu.Lock()
	var todo []params.MapType
	for _, t := range params.All() {
		if m := e.maps[t]; !m.Generated {
			todo = append(todo, t)
		}
	}
	e.mu.Unlock()
	return e.GenerateMany(todo)
}

// GenerateMany generates the given map types sequentially. Bulk runs
// skip disabled map types, never use the preview/refine split, and
// continue past individual failures: one malformed map never aborts the
// rest of the run.
//
// Arguments:
// - types: The map types to generate, in order.
//
// Returns:
// - An error when no source is loaded; individual map failures are
//   logged and reflected in each map's state instead.
func (e *Engine) GenerateMany(types []params.MapType) error {
	e.mu.Lock()
	if e.src == nil {
		e.mu.Unlock()
		return errors.New("no source image loaded")
	}
	src := e.src
	set := e.paramSet

	var run []params.MapType
	for _, t := range types {
		if !t.Valid() {
			continue
		}
		if m := e.maps[t]; m.Enabled {
			run = append(run, t)
		}
	}
	e.mu.Unlock()

	total := len(run)
	for i, t := range run {
		e.mu.Lock()
		e.versions[t]++
		version := e.versions[t]
		e.stopRefineTimerLocked(t)
		m := e.maps[t]
		m.InProgress = true
		m.State = Refining
		e.mu.Unlock()

		start := time.Now()
		raster, err := synthesize(t, src, set)
		if err != nil {
			e.fail(t, version, err)
		} else {
			e.publish(t, version, raster, true)
		}

		if e.opt.OnProgress != nil {
			e.opt.OnProgress(i+1, total, t, time.Since(start))
		}
	}
	return nil
}
