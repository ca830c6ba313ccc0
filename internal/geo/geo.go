package geo

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/unimap/globe/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// GEO POINTS
// University locations arrive as WGS84 (EPSG:4326) lon/lat degrees. We store
// them as 3857 in the database, because SQLite has no spatial awareness and we
// need to interpret point data from strings during migrations using the
// inherent Scan function. Geometry data is stored in the WKB format.
// All world-space math for the globe (marker lift, camera altitude) happens in
// ECEF meters instead, derived on the fly from the 4326 coordinates.

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// WGS84 ellipsoid
const (
	semiMajorAxis = 6378137.0
	flattening    = 1.0 / 298.257223563
)

// Marker lift tuning. Markers sit flush on the surface when the camera is
// near, and lift along the surface normal as it pulls back, capped so they
// do not run away at extreme zoom-out.
const (
	// NearAltitude is the camera altitude at or below which markers are
	// drawn exactly on the surface.
	NearAltitude = 20_000.0

	liftFactor = 0.015
	liftMin    = 10_000.0
	liftMax    = 400_000.0
)

// GeodeticFromString parses a "lon,lat" or "lon,lat,elev" string into a
// core.Geodetic, returning the elevation separately.
func GeodeticFromString(coords string) (core.Geodetic, float64, error) {
	coordsSplit := strings.Split(coords, ",")
	if len(coordsSplit) < 2 {
		return core.Geodetic{}, 0, ErrInvalidCoordinates
	}
	lon, err := strconv.ParseFloat(coordsSplit[0], 64)
	if err != nil {
		return core.Geodetic{}, 0, ErrInvalidCoordinates
	}
	lat, err := strconv.ParseFloat(coordsSplit[1], 64)
	if err != nil {
		return core.Geodetic{}, 0, ErrInvalidCoordinates
	}
	var elev float64
	if len(coordsSplit) > 2 {
		elev, err = strconv.ParseFloat(coordsSplit[2], 64)
		if err != nil {
			return core.Geodetic{}, 0, ErrInvalidCoordinates
		}
	}
	return core.Geodetic{Lon: lon, Lat: lat}, elev, nil
}

// Point3857From4326 creates a projected storage point from a WGS84 coordinate.
func Point3857From4326(g core.Geodetic) (geom.Point, error) {
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	x, y, _ := f(g.Lon, g.Lat, 0)
	point, err := geom.NewPoint(
		geom.Coordinates{
			XY: geom.XY{X: x, Y: y},
			Z:  0,
		},
	)
	if err != nil {
		return geom.Point{}, ErrInvalidCoordinates
	}
	return point, nil
}

// Geodetic4326From3857 converts a stored 3857 point back to WGS84 degrees.
func Geodetic4326From3857(point geom.Point) (core.Geodetic, error) {
	coords, ok := point.Coordinates()
	if !ok {
		return core.Geodetic{}, ErrInvalidCoordinates
	}
	epsg := wgs84.EPSG()
	f := epsg.Transform(3857, 4326)
	lon, lat, _ := f(coords.X, coords.Y, 0)
	return core.Geodetic{Lon: lon, Lat: lat}, nil
}

// SurfacePoint returns the ECEF position of the point on the ellipsoid at g
// with zero elevation.
func SurfacePoint(g core.Geodetic) core.Position3D {
	lon := g.Lon * math.Pi / 180
	lat := g.Lat * math.Pi / 180

	e2 := flattening * (2 - flattening)
	sinLat := math.Sin(lat)
	// prime vertical radius of curvature
	n := semiMajorAxis / math.Sqrt(1-e2*sinLat*sinLat)

	return core.Position3D{
		X: n * math.Cos(lat) * math.Cos(lon),
		Y: n * math.Cos(lat) * math.Sin(lon),
		Z: n * (1 - e2) * sinLat,
	}
}

// SurfaceNormal returns the outward unit normal of the ellipsoid at g.
func SurfaceNormal(g core.Geodetic) core.Position3D {
	lon := g.Lon * math.Pi / 180
	lat := g.Lat * math.Pi / 180
	return core.Position3D{
		X: math.Cos(lat) * math.Cos(lon),
		Y: math.Cos(lat) * math.Sin(lon),
		Z: math.Sin(lat),
	}
}

// LiftOffset returns how far above the surface a marker should be drawn for
// the given camera altitude. Zero at or below NearAltitude; above it, a fixed
// fraction of the altitude clamped to [liftMin, liftMax]. Closed-form: this
// runs per-marker per-frame.
func LiftOffset(cameraAltitude float64) float64 {
	if cameraAltitude <= NearAltitude {
		return 0
	}
	offset := cameraAltitude * liftFactor
	if offset < liftMin {
		return liftMin
	}
	if offset > liftMax {
		return liftMax
	}
	return offset
}

// LiftedPosition returns the rendered position for a marker anchored at the
// given surface point and normal, for the current camera altitude.
func LiftedPosition(surface, normal core.Position3D, cameraAltitude float64) core.Position3D {
	offset := LiftOffset(cameraAltitude)
	if offset == 0 {
		return surface
	}
	return surface.Add(normal, offset)
}
