package streaming

import (
	"encoding/json"
	"time"

	"github.com/unimap/globe/pkg/core"
)

// Message type constants for the scene protocol.
//
// Client to server: viewer input and frame state.
// Server to client: scene mutations computed by the controller.
const (
	// client -> server
	TypePointerMove  = "pointer:move"
	TypePointerClick = "pointer:click"
	TypeCameraTick   = "camera:tick"
	TypeFocusSet     = "focus:set"
	TypeFocusReset   = "focus:reset"
	TypeEntitiesSet  = "entities:set"
	TypeFlightDone   = "camera:flight_done"

	// server -> client
	TypeMarkerCreate   = "marker:create"
	TypeMarkerRemove   = "marker:remove"
	TypeMarkerPosition = "marker:position"
	TypeMarkerStyle    = "marker:style"
	TypeCameraFly      = "camera:fly"
	TypeCursor         = "scene:cursor"
	TypeRender         = "scene:render"
	TypeHover          = "entity:hover"
	TypeSelect         = "entity:select"
	TypeResetDone      = "focus:reset_done"
)

// Envelope wraps all messages sent over the WebSocket.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AckMessage is the server's acknowledgement response.
type AckMessage struct {
	Type string `json:"type"` // always "ack"
	For  string `json:"for"`  // the message type being acknowledged
}

// PointerPayload carries a pointer position in screen space.
type PointerPayload struct {
	Point core.ScreenPoint `json:"point"`
}

// MarkerScreenState is the client-reported screen position of one marker
// for the current frame. Markers behind the horizon are not visible.
type MarkerScreenState struct {
	ID      string           `json:"id"`
	Point   core.ScreenPoint `json:"point"`
	Visible bool             `json:"visible"`
}

// CameraTickPayload carries per-frame camera state from the viewer.
type CameraTickPayload struct {
	Pose     core.CameraPose     `json:"pose"`
	Altitude float64             `json:"altitude"`
	Markers  []MarkerScreenState `json:"markers,omitempty"`
}

// FocusSetPayload requests a camera focus on a target.
type FocusSetPayload struct {
	Target core.Geodetic   `json:"target"`
	Level  core.FocusLevel `json:"level"`
}

// EntitiesSetPayload asks the server to replace the displayed entity set
// with the top-ranked universities for a discipline. An empty discipline
// selects across all disciplines.
type EntitiesSetPayload struct {
	Discipline string `json:"discipline"`
	Limit      int    `json:"limit"`
}

// MarkerCreatePayload instructs the viewer to create a marker. The initial
// style follows in a separate marker:style message.
type MarkerCreatePayload struct {
	ID       string          `json:"id"`
	Position core.Position3D `json:"position"`
	Icon     core.MarkerIcon `json:"icon"`
}

// MarkerRemovePayload removes a marker by ID.
type MarkerRemovePayload struct {
	ID string `json:"id"`
}

// MarkerPositionPayload updates a marker's world position.
type MarkerPositionPayload struct {
	ID       string          `json:"id"`
	Position core.Position3D `json:"position"`
}

// MarkerStylePayload updates a marker's style.
type MarkerStylePayload struct {
	ID    string           `json:"id"`
	Style core.MarkerStyle `json:"style"`
}

// CameraFlyPayload instructs the viewer to fly the camera to a pose.
type CameraFlyPayload struct {
	Pose     core.CameraPose `json:"pose"`
	Duration time.Duration   `json:"duration"`
}

// CursorPayload toggles the pointer cursor between default and pick.
type CursorPayload struct {
	Pointer bool `json:"pointer"`
}

// HoverPayload reports the hovered entity, or Hovering false when the
// pointer left all markers.
type HoverPayload struct {
	ID       string `json:"id,omitempty"`
	Hovering bool   `json:"hovering"`
}

// SelectPayload carries the full record of a selected entity.
type SelectPayload struct {
	University core.University `json:"university"`
}
