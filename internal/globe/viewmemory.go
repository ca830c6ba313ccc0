package globe

import "github.com/unimap/globe/pkg/core"

// ViewMemory retains two named camera snapshots: "initial", captured once at
// startup, and "pre-focus", overwritten immediately before every focus
// transition. Reset always returns to pre-focus, never to initial, so closing
// a detail panel puts the user back where they were rather than at the world
// overview.
type ViewMemory struct {
	initial  *core.CameraPose
	preFocus *core.CameraPose
}

// CaptureInitial records the startup view. Only the first call takes effect.
func (m *ViewMemory) CaptureInitial(pose core.CameraPose) {
	if m.initial != nil {
		return
	}
	p := pose
	m.initial = &p
}

// CapturePreFocus records the view preceding a focus transition,
// overwriting any prior capture.
func (m *ViewMemory) CapturePreFocus(pose core.CameraPose) {
	p := pose
	m.preFocus = &p
}

// Initial returns the startup view if one was captured.
func (m *ViewMemory) Initial() (core.CameraPose, bool) {
	if m.initial == nil {
		return core.CameraPose{}, false
	}
	return *m.initial, true
}

// PreFocus returns the view captured before the most recent focus transition.
func (m *ViewMemory) PreFocus() (core.CameraPose, bool) {
	if m.preFocus == nil {
		return core.CameraPose{}, false
	}
	return *m.preFocus, true
}
