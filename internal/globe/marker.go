package globe

import (
	"strconv"

	"github.com/unimap/globe/internal/geo"
	"github.com/unimap/globe/pkg/core"
)

// Podium colors for the top three display ranks; everything below gets the
// uniform default.
const (
	colorGold    = "#FFD700"
	colorSilver  = "#C0C0C0"
	colorBronze  = "#CD7F32"
	colorDefault = "#3D7EDB"
)

// IconForRank builds the icon for a 1-based display rank. The rank number is
// encoded as the icon label. Icons depend only on the rank, so they are built
// once per entity-list change, never per frame.
func IconForRank(rank int) core.MarkerIcon {
	icon := core.MarkerIcon{Label: strconv.Itoa(rank)}
	switch rank {
	case 1:
		icon.Color = colorGold
	case 2:
		icon.Color = colorSilver
	case 3:
		icon.Color = colorBronze
	default:
		icon.Color = colorDefault
	}
	return icon
}

// Marker is the controller-side record for one visible entity. The surface
// anchor and normal are derived once from the entity's coordinates; only the
// rendered position changes frame to frame.
type Marker struct {
	ID      string
	Entity  core.University
	Surface core.Position3D
	Normal  core.Position3D
	Icon    core.MarkerIcon
}

// newMarker derives a marker from an entity and its 1-based display rank.
func newMarker(entity core.University, rank int) *Marker {
	return &Marker{
		ID:      entity.ID,
		Entity:  entity,
		Surface: geo.SurfacePoint(entity.Location),
		Normal:  geo.SurfaceNormal(entity.Location),
		Icon:    IconForRank(rank),
	}
}

// RenderedPosition is the position the marker should be drawn at for the
// given camera altitude.
func (m *Marker) RenderedPosition(cameraAltitude float64) core.Position3D {
	return geo.LiftedPosition(m.Surface, m.Normal, cameraAltitude)
}
