package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/unimap/globe/pkg/core"
)

func TestGeodeticFromString_ValidWithElevation(t *testing.T) {
	g, elev, err := GeodeticFromString("100.5,45.25,50.0")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Lon != 100.5 {
		t.Errorf("expected Lon=100.5, got %f", g.Lon)
	}
	if g.Lat != 45.25 {
		t.Errorf("expected Lat=45.25, got %f", g.Lat)
	}
	if elev != 50.0 {
		t.Errorf("expected elevation=50.0, got %f", elev)
	}
}

func TestGeodeticFromString_ValidWithoutElevation(t *testing.T) {
	g, elev, err := GeodeticFromString("-0.1276,51.5072")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Lon != -0.1276 {
		t.Errorf("expected Lon=-0.1276, got %f", g.Lon)
	}
	if g.Lat != 51.5072 {
		t.Errorf("expected Lat=51.5072, got %f", g.Lat)
	}
	if elev != 0 {
		t.Errorf("expected elevation=0, got %f", elev)
	}
}

func TestGeodeticFromString_TooFewComponents(t *testing.T) {
	_, _, err := GeodeticFromString("100.5")

	if !errors.Is(err, ErrInvalidCoordinates) {
		t.Errorf("expected ErrInvalidCoordinates, got %v", err)
	}
}

func TestGeodeticFromString_NonNumeric(t *testing.T) {
	_, _, err := GeodeticFromString("abc,51.5")

	if !errors.Is(err, ErrInvalidCoordinates) {
		t.Errorf("expected ErrInvalidCoordinates, got %v", err)
	}
}

func TestPoint3857RoundTrip(t *testing.T) {
	in := core.Geodetic{Lon: 2.3522, Lat: 48.8566}

	point, err := Point3857From4326(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := Geodetic4326From3857(point)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(out.Lon-in.Lon) > 1e-6 {
		t.Errorf("expected Lon=%f, got %f", in.Lon, out.Lon)
	}
	if math.Abs(out.Lat-in.Lat) > 1e-6 {
		t.Errorf("expected Lat=%f, got %f", in.Lat, out.Lat)
	}
}

func TestLiftOffset_ZeroAtOrBelowNearAltitude(t *testing.T) {
	for _, alt := range []float64{0, 100, 5_000, NearAltitude} {
		if got := LiftOffset(alt); got != 0 {
			t.Errorf("altitude %f: expected offset 0, got %f", alt, got)
		}
	}
}

func TestLiftOffset_ClampedToMinimum(t *testing.T) {
	// Just above the near threshold, altitude*factor is below the floor.
	got := LiftOffset(20_001)
	if got != 10_000 {
		t.Errorf("expected offset 10000, got %f", got)
	}
}

func TestLiftOffset_ProportionalInMidRange(t *testing.T) {
	got := LiftOffset(1_000_000)
	if got != 15_000 {
		t.Errorf("expected offset 15000, got %f", got)
	}
}

func TestLiftOffset_ClampedToMaximum(t *testing.T) {
	got := LiftOffset(100_000_000)
	if got != 400_000 {
		t.Errorf("expected offset 400000, got %f", got)
	}
}

func TestLiftOffset_MonotonicNonDecreasing(t *testing.T) {
	prev := 0.0
	for alt := 20_001.0; alt < 50_000_000; alt *= 1.5 {
		got := LiftOffset(alt)
		if got < prev {
			t.Fatalf("offset decreased: altitude %f gave %f after %f", alt, got, prev)
		}
		prev = got
	}
}

func TestSurfacePoint_EquatorPrimeMeridian(t *testing.T) {
	p := SurfacePoint(core.Geodetic{Lon: 0, Lat: 0})

	if math.Abs(p.X-6378137.0) > 1e-6 {
		t.Errorf("expected X=6378137, got %f", p.X)
	}
	if math.Abs(p.Y) > 1e-6 {
		t.Errorf("expected Y=0, got %f", p.Y)
	}
	if math.Abs(p.Z) > 1e-6 {
		t.Errorf("expected Z=0, got %f", p.Z)
	}
}

func TestSurfaceNormal_IsUnitLength(t *testing.T) {
	for _, g := range []core.Geodetic{
		{Lon: 0, Lat: 0},
		{Lon: 10, Lat: 10},
		{Lon: -74, Lat: 40.7},
		{Lon: 151.2, Lat: -33.9},
	} {
		n := SurfaceNormal(g)
		length := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z)
		if math.Abs(length-1) > 1e-12 {
			t.Errorf("normal at %+v has length %f", g, length)
		}
	}
}

func TestLiftedPosition_SameCoordinatesSamePosition(t *testing.T) {
	g := core.Geodetic{Lon: 10, Lat: 10}
	a := LiftedPosition(SurfacePoint(g), SurfaceNormal(g), 1_000_000)
	b := LiftedPosition(SurfacePoint(g), SurfaceNormal(g), 1_000_000)

	if a != b {
		t.Errorf("expected identical positions, got %+v and %+v", a, b)
	}
}

func TestLiftedPosition_SurfaceExactWhenNear(t *testing.T) {
	g := core.Geodetic{Lon: 30, Lat: -20}
	surface := SurfacePoint(g)

	got := LiftedPosition(surface, SurfaceNormal(g), NearAltitude)
	if got != surface {
		t.Errorf("expected surface point %+v, got %+v", surface, got)
	}
}

func TestLiftedPosition_OffsetAlongNormal(t *testing.T) {
	g := core.Geodetic{Lon: 0, Lat: 0}
	surface := SurfacePoint(g)

	got := LiftedPosition(surface, SurfaceNormal(g), 1_000_000)

	// At (0,0) the normal is +X, so the 15km offset lands entirely on X.
	if math.Abs(got.X-(surface.X+15_000)) > 1e-6 {
		t.Errorf("expected X=%f, got %f", surface.X+15_000, got.X)
	}
	if got.Y != surface.Y || got.Z != surface.Z {
		t.Errorf("expected Y/Z unchanged, got %+v", got)
	}
}
