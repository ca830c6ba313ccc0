package session

import (
	"math"
	"sync"
	"time"

	"github.com/unimap/globe/pkg/core"
	"github.com/unimap/globe/pkg/streaming"
)

// DefaultPickRadius is the hit-test radius in device pixels. A pointer
// within this distance of a marker's screen position counts as a hit.
const DefaultPickRadius = 12.0

// RemoteEngine implements globe.Engine for a viewer connected over
// WebSocket. Scene mutations become outbound envelopes; camera state and
// marker screen positions come from the viewer's camera:tick frames, so
// hit-testing runs server-side against the last reported frame.
type RemoteEngine struct {
	send func(msgType string, payload any)

	mu         sync.RWMutex
	pose       core.CameraPose
	altitude   float64
	markers    []streaming.MarkerScreenState
	pickRadius float64
}

// NewRemoteEngine builds an engine that emits envelopes through send and
// starts at the given home pose.
func NewRemoteEngine(send func(msgType string, payload any), home core.CameraPose) *RemoteEngine {
	return &RemoteEngine{
		send:       send,
		pose:       home,
		altitude:   home.Altitude,
		pickRadius: DefaultPickRadius,
	}
}

// UpdateFrame ingests one camera:tick frame from the viewer.
func (e *RemoteEngine) UpdateFrame(tick streaming.CameraTickPayload) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pose = tick.Pose
	e.altitude = tick.Altitude
	e.markers = tick.Markers
}

func (e *RemoteEngine) CreateMarker(id string, position core.Position3D, icon core.MarkerIcon) {
	e.send(streaming.TypeMarkerCreate, streaming.MarkerCreatePayload{
		ID:       id,
		Position: position,
		Icon:     icon,
	})
}

func (e *RemoteEngine) RemoveMarker(id string) {
	e.send(streaming.TypeMarkerRemove, streaming.MarkerRemovePayload{ID: id})
}

func (e *RemoteEngine) SetMarkerPosition(id string, position core.Position3D) {
	e.send(streaming.TypeMarkerPosition, streaming.MarkerPositionPayload{
		ID:       id,
		Position: position,
	})
}

func (e *RemoteEngine) SetMarkerStyle(id string, style core.MarkerStyle) {
	e.send(streaming.TypeMarkerStyle, streaming.MarkerStylePayload{
		ID:    id,
		Style: style,
	})
}

// HitTest resolves a screen coordinate against the viewer's last reported
// marker positions. The nearest visible marker within the pick radius wins.
func (e *RemoteEngine) HitTest(p core.ScreenPoint) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	bestID := ""
	bestDist := e.pickRadius
	for _, m := range e.markers {
		if !m.Visible {
			continue
		}
		d := math.Hypot(m.Point.X-p.X, m.Point.Y-p.Y)
		if d <= bestDist {
			bestID = m.ID
			bestDist = d
		}
	}
	return bestID, bestID != ""
}

func (e *RemoteEngine) FlyCamera(pose core.CameraPose, duration time.Duration) {
	e.send(streaming.TypeCameraFly, streaming.CameraFlyPayload{
		Pose:     pose,
		Duration: duration,
	})
}

func (e *RemoteEngine) CameraPose() core.CameraPose {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.pose
}

func (e *RemoteEngine) CameraAltitude() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.altitude
}

func (e *RemoteEngine) RequestRender() {
	e.send(streaming.TypeRender, nil)
}

func (e *RemoteEngine) SetPointerCursor(active bool) {
	e.send(streaming.TypeCursor, streaming.CursorPayload{Pointer: active})
}
