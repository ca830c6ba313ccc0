package globe

import (
	"time"

	"github.com/unimap/globe/pkg/core"
)

// FocusConfig tunes focus transition durations and target altitudes.
type FocusConfig struct {
	FocusDuration time.Duration // flight to a focus target
	ResetDuration time.Duration // flight back to the pre-focus view

	EntityAltitude float64 // close-up height for entity-level focus, meters
	RegionAltitude float64 // establishing-shot height for region-level focus, meters
}

// DefaultFocusConfig returns the stock transition tuning.
func DefaultFocusConfig() FocusConfig {
	return FocusConfig{
		FocusDuration:  1600 * time.Millisecond,
		ResetDuration:  1200 * time.Millisecond,
		EntityAltitude: 60_000,
		RegionAltitude: 2_500_000,
	}
}

// FocusController drives animated camera moves to focus targets and back.
// It never awaits animation completion; a new request while a flight is in
// progress redirects the flight (the engine's own semantics).
type FocusController struct {
	engine Engine
	memory *ViewMemory
	cfg    FocusConfig
}

// NewFocusController wires a focus controller to an engine and view memory.
func NewFocusController(engine Engine, memory *ViewMemory, cfg FocusConfig) *FocusController {
	return &FocusController{engine: engine, memory: memory, cfg: cfg}
}

// Focus captures the current view as pre-focus, then flies the camera to the
// request target at the altitude implied by the request level.
func (f *FocusController) Focus(req core.FocusRequest) {
	f.memory.CapturePreFocus(f.engine.CameraPose())

	altitude := f.cfg.RegionAltitude
	if req.Level == core.FocusEntity {
		altitude = f.cfg.EntityAltitude
	}

	f.engine.FlyCamera(core.CameraPose{
		Target:      req.Target,
		Altitude:    altitude,
		Orientation: core.Orientation{Heading: 0, Pitch: -90, Roll: 0},
	}, f.cfg.FocusDuration)
}

// Reset flies the camera back to the most recent pre-focus view. If no focus
// has ever occurred there is nothing to return to and Reset reports false
// without touching the camera.
func (f *FocusController) Reset() bool {
	pre, ok := f.memory.PreFocus()
	if !ok {
		return false
	}
	f.engine.FlyCamera(pre, f.cfg.ResetDuration)
	return true
}
