// pkg/core/scene.go
package core

// FocusLevel selects the camera's final altitude above a focus target.
type FocusLevel string

const (
	// FocusRegion is a wide establishing shot over the target's region.
	FocusRegion FocusLevel = "region"
	// FocusEntity is a close-up on a single entity.
	FocusEntity FocusLevel = "entity"
)

// FocusRequest asks the camera to fly to a target at the given level.
// Requests are ephemeral; a new request supersedes any in-flight transition.
type FocusRequest struct {
	Target Geodetic   `json:"target"`
	Level  FocusLevel `json:"level"`
}

// Orientation is a camera attitude in degrees.
type Orientation struct {
	Heading float64 `json:"heading"`
	Pitch   float64 `json:"pitch"`
	Roll    float64 `json:"roll"`
}

// CameraPose is a complete camera state: the ground target it is positioned
// over, its altitude above the ellipsoid, and its attitude. Poses are captured
// synchronously and restored via animated transitions.
type CameraPose struct {
	Target      Geodetic    `json:"target"`
	Altitude    float64     `json:"altitude"` // meters
	Orientation Orientation `json:"orientation"`
}

// ScreenPoint is a 2D pointer coordinate in device pixels.
type ScreenPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MarkerIcon describes a marker's rendered icon. Immutable after creation.
type MarkerIcon struct {
	Color string `json:"color"` // CSS hex color
	Label string `json:"label"` // rank number rendered on the icon
}

// MarkerStyle is the mutable visual state applied to a marker when the
// hover scalar changes.
type MarkerStyle struct {
	Scale   float64 `json:"scale"`
	Opacity float64 `json:"opacity"`

	// Distance fade dims far-away markers; disabled entirely while a
	// marker is hovered so it stays prominent at any camera distance.
	FadeByDistance bool    `json:"fadeByDistance"`
	FadeNear       float64 `json:"fadeNear,omitempty"`       // meters, fully opaque within
	FadeFar        float64 `json:"fadeFar,omitempty"`        // meters, FadeFarOpacity beyond
	FadeFarOpacity float64 `json:"fadeFarOpacity,omitempty"` // opacity floor at FadeFar
}
