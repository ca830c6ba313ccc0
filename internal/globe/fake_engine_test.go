package globe

import (
	"time"

	"github.com/unimap/globe/pkg/core"
)

// fakeEngine is an in-memory Engine for exercising the controller without a
// renderer. FlyCamera lands instantly: the pose becomes the flight target.
type fakeEngine struct {
	markers map[string]*fakeMarker
	removed []string

	pose     core.CameraPose
	altitude float64
	flights  []fakeFlight

	hitID string
	hitOK bool

	renders int
	cursor  bool
}

type fakeMarker struct {
	position core.Position3D
	icon     core.MarkerIcon
	style    core.MarkerStyle
}

type fakeFlight struct {
	pose     core.CameraPose
	duration time.Duration
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		markers: make(map[string]*fakeMarker),
	}
}

func (f *fakeEngine) CreateMarker(id string, position core.Position3D, icon core.MarkerIcon) {
	f.markers[id] = &fakeMarker{position: position, icon: icon}
}

func (f *fakeEngine) RemoveMarker(id string) {
	delete(f.markers, id)
	f.removed = append(f.removed, id)
}

func (f *fakeEngine) SetMarkerPosition(id string, position core.Position3D) {
	if m, ok := f.markers[id]; ok {
		m.position = position
	}
}

func (f *fakeEngine) SetMarkerStyle(id string, style core.MarkerStyle) {
	if m, ok := f.markers[id]; ok {
		m.style = style
	}
}

func (f *fakeEngine) HitTest(core.ScreenPoint) (string, bool) {
	return f.hitID, f.hitOK
}

func (f *fakeEngine) FlyCamera(pose core.CameraPose, duration time.Duration) {
	f.flights = append(f.flights, fakeFlight{pose: pose, duration: duration})
	f.pose = pose
	f.altitude = pose.Altitude
}

func (f *fakeEngine) CameraPose() core.CameraPose {
	return f.pose
}

func (f *fakeEngine) CameraAltitude() float64 {
	return f.altitude
}

func (f *fakeEngine) RequestRender() {
	f.renders++
}

func (f *fakeEngine) SetPointerCursor(active bool) {
	f.cursor = active
}
