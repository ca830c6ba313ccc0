// Package globe implements the university globe's visualization and selection
// controller: ranked entities rendered as lifted surface markers, camera focus
// transitions with return-to-previous-view semantics, and pointer picking.
// The controller is renderer-agnostic; everything it needs from the concrete
// 3D engine is expressed by the Engine interface.
package globe

import (
	"time"

	"github.com/unimap/globe/pkg/core"
)

// Engine is the minimal capability surface the controller drives. An
// implementation wraps a concrete globe renderer, local or remote.
type Engine interface {
	CreateMarker(id string, position core.Position3D, icon core.MarkerIcon)
	RemoveMarker(id string)
	SetMarkerPosition(id string, position core.Position3D)
	SetMarkerStyle(id string, style core.MarkerStyle)

	// HitTest resolves a screen coordinate to the marker beneath it.
	// A miss is not an error; ok is false.
	HitTest(p core.ScreenPoint) (id string, ok bool)

	// FlyCamera animates the camera to pose over the given duration.
	// Initiating a flight returns immediately; a new call while one is in
	// progress redirects the in-flight animation to the new target.
	FlyCamera(pose core.CameraPose, duration time.Duration)

	// CameraPose reads the current camera state. Synchronous, no side effects.
	CameraPose() core.CameraPose

	// CameraAltitude is the camera's height above the ellipsoid in meters.
	CameraAltitude() float64

	// RequestRender forces a frame under an on-demand rendering model.
	RequestRender()

	// SetPointerCursor toggles the pointer cursor affordance. Cosmetic.
	SetPointerCursor(active bool)
}
