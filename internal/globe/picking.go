package globe

import "github.com/unimap/globe/pkg/core"

// Picker maps pointer events to entity identity through the engine's
// hit-test and raises hover/select callbacks. It performs no debouncing:
// hover updates are expected to be a cheap restyle.
type Picker struct {
	engine   Engine
	resolve  func(id string) (core.University, bool)
	onHover  func(id string, hovering bool)
	onSelect func(entity core.University)
}

// NewPicker builds a picker. resolve maps a hit marker id back to the full
// entity record from the currently displayed list.
func NewPicker(
	engine Engine,
	resolve func(id string) (core.University, bool),
	onHover func(id string, hovering bool),
	onSelect func(entity core.University),
) *Picker {
	return &Picker{
		engine:   engine,
		resolve:  resolve,
		onHover:  onHover,
		onSelect: onSelect,
	}
}

// PointerMove hit-tests the pointer position and emits the hover target:
// the marker id under the pointer, or no-hover when nothing is hit.
func (p *Picker) PointerMove(pt core.ScreenPoint) {
	id, ok := p.engine.HitTest(pt)
	p.engine.SetPointerCursor(ok)
	if p.onHover != nil {
		p.onHover(id, ok)
	}
}

// PointerClick hit-tests the click position and, when a marker is hit,
// emits the resolved entity as a selection. A miss emits nothing: selection
// is only ever cleared by explicit external close actions, never by a
// miss-click.
func (p *Picker) PointerClick(pt core.ScreenPoint) {
	id, ok := p.engine.HitTest(pt)
	if !ok {
		return
	}
	entity, ok := p.resolve(id)
	if !ok {
		return
	}
	if p.onSelect != nil {
		p.onSelect(entity)
	}
}
