package globe

import "github.com/unimap/globe/pkg/core"

// Callbacks are the controller's outputs to its owner. The owner holds the
// authoritative hover/selection state; the controller only reports what the
// pointer did and restyles markers when the owner feeds the hover scalar
// back in through SetHovered.
type Callbacks struct {
	OnEntityHover  func(id string, hovering bool)
	OnEntitySelect func(entity core.University)
}

// Controller coordinates markers, camera focus and pointer picking for one
// globe scene. All methods must be called from the single goroutine that owns
// the scene's event loop; the controller does no locking of its own.
type Controller struct {
	engine Engine
	memory *ViewMemory
	focus  *FocusController
	picker *Picker

	markers map[string]*Marker
	order   []string
}

// NewController builds a controller over an engine and captures the engine's
// current view as the "initial" snapshot.
func NewController(engine Engine, cfg FocusConfig, cb Callbacks) *Controller {
	c := &Controller{
		engine:  engine,
		memory:  &ViewMemory{},
		markers: make(map[string]*Marker),
	}
	c.focus = NewFocusController(engine, c.memory, cfg)
	c.picker = NewPicker(engine, c.resolveEntity, cb.OnEntityHover, cb.OnEntitySelect)

	c.memory.CaptureInitial(engine.CameraPose())
	return c
}

// SetEntities replaces the displayed entity list. Markers are rebuilt
// wholesale rather than diffed: lists are small and rebuild cost is
// negligible. Display rank is the entity's 1-based position in the list.
func (c *Controller) SetEntities(entities []core.University) {
	for _, id := range c.order {
		c.engine.RemoveMarker(id)
	}
	c.markers = make(map[string]*Marker, len(entities))
	c.order = c.order[:0]

	altitude := c.engine.CameraAltitude()
	for i, entity := range entities {
		// One marker per visible entity, keyed by entity id.
		if _, dup := c.markers[entity.ID]; dup {
			continue
		}
		m := newMarker(entity, i+1)
		c.markers[m.ID] = m
		c.order = append(c.order, m.ID)

		c.engine.CreateMarker(m.ID, m.RenderedPosition(altitude), m.Icon)
		c.engine.SetMarkerStyle(m.ID, BaselineStyle())
	}
	c.engine.RequestRender()
}

// CameraTick repositions every marker against the live camera altitude.
// All markers in one tick see the same altitude sample.
func (c *Controller) CameraTick() {
	altitude := c.engine.CameraAltitude()
	for _, id := range c.order {
		m := c.markers[id]
		c.engine.SetMarkerPosition(id, m.RenderedPosition(altitude))
	}
}

// SetHovered reconciles marker styles against the owner's hover scalar and
// forces a render so the restyle is visible under on-demand rendering.
func (c *Controller) SetHovered(id string, hovering bool) {
	for _, markerID := range c.order {
		c.engine.SetMarkerStyle(markerID, styleFor(markerID, id, hovering))
	}
	c.engine.RequestRender()
}

// PointerMove feeds a pointer-move event into the picking adapter.
func (c *Controller) PointerMove(pt core.ScreenPoint) {
	c.picker.PointerMove(pt)
}

// PointerClick feeds a primary-button click into the picking adapter.
func (c *Controller) PointerClick(pt core.ScreenPoint) {
	c.picker.PointerClick(pt)
}

// Focus handles a focus request: snapshot the current view, then fly to the
// target at the level-appropriate altitude.
func (c *Controller) Focus(req core.FocusRequest) {
	c.focus.Focus(req)
}

// Reset flies back to the view preceding the most recent focus. Reports
// false (and leaves the camera alone) when no focus has ever occurred.
func (c *Controller) Reset() bool {
	return c.focus.Reset()
}

// Entity returns the displayed entity record for a marker id.
func (c *Controller) Entity(id string) (core.University, bool) {
	return c.resolveEntity(id)
}

// EntityCount reports how many markers are currently displayed.
func (c *Controller) EntityCount() int {
	return len(c.order)
}

func (c *Controller) resolveEntity(id string) (core.University, bool) {
	m, ok := c.markers[id]
	if !ok {
		return core.University{}, false
	}
	return m.Entity, true
}
