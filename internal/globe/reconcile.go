package globe

import "github.com/unimap/globe/pkg/core"

// Hover restyle tuning. The hovered marker is enlarged and pinned to full
// opacity with distance fade disabled; everything else keeps baseline scale
// and a distance fade curve that dims far-away clutter.
const (
	hoveredScale  = 1.5
	baselineScale = 1.0

	fadeNear       = 500_000.0     // fully opaque within, meters
	fadeFar        = 200_000_000.0 // faded to the floor by, meters
	fadeFarOpacity = 0.2
)

// HoveredStyle is the style applied to the marker matching the hover scalar.
func HoveredStyle() core.MarkerStyle {
	return core.MarkerStyle{
		Scale:          hoveredScale,
		Opacity:        1.0,
		FadeByDistance: false,
	}
}

// BaselineStyle is the style applied to every non-hovered marker.
func BaselineStyle() core.MarkerStyle {
	return core.MarkerStyle{
		Scale:          baselineScale,
		Opacity:        1.0,
		FadeByDistance: true,
		FadeNear:       fadeNear,
		FadeFar:        fadeFar,
		FadeFarOpacity: fadeFarOpacity,
	}
}

// styleFor classifies one marker against the hover scalar.
func styleFor(markerID, hoveredID string, hovering bool) core.MarkerStyle {
	if hovering && markerID == hoveredID {
		return HoveredStyle()
	}
	return BaselineStyle()
}
