package geo

import (
	"math"
	"testing"

	"github.com/fr33n0w/los-tools/model"
)

// squareFootprint is a ~111 m square straddling the equator, where
// web-mercator metres equal ground metres.
func squareFootprint() model.Building {
	return model.Building{
		Position: model.GeoPoint{LatitudeDeg: 0.0005, LongitudeDeg: 0.0005},
		HeightM:  20,
		Footprint: []model.GeoPoint{
			{LatitudeDeg: 0, LongitudeDeg: 0},
			{LatitudeDeg: 0, LongitudeDeg: 0.001},
			{LatitudeDeg: 0.001, LongitudeDeg: 0.001},
			{LatitudeDeg: 0.001, LongitudeDeg: 0},
		},
	}
}

func TestProjectXY(t *testing.T) {
	origin := ProjectXY(model.GeoPoint{LatitudeDeg: 0, LongitudeDeg: 0})
	if math.Abs(origin.X) > 1e-6 || math.Abs(origin.Y) > 1e-6 {
		t.Errorf("origin projected to %+v, want (0, 0)", origin)
	}

	// One degree of longitude at the equator ≈ 111.32 km in mercator.
	east := ProjectXY(model.GeoPoint{LatitudeDeg: 0, LongitudeDeg: 1})
	if math.Abs(east.X-111319.49) > 1 {
		t.Errorf("1°E projected to x = %v m, want ≈ 111319", east.X)
	}
}

func TestFootprintPolygon(t *testing.T) {
	poly, ok := FootprintPolygon(squareFootprint())
	if !ok {
		t.Fatal("expected a valid polygon from a 4-vertex square")
	}
	if poly.AsGeometry().IsEmpty() {
		t.Error("polygon is empty")
	}

	// Degenerate footprints are rejected rather than guessed at.
	if _, ok := FootprintPolygon(model.Building{}); ok {
		t.Error("building without footprint produced a polygon")
	}
	if _, ok := FootprintPolygon(model.Building{Footprint: []model.GeoPoint{{}, {LatitudeDeg: 1}}}); ok {
		t.Error("two-vertex footprint produced a polygon")
	}
}

func TestFootprintDistanceM_Inside(t *testing.T) {
	b := squareFootprint()
	d, ok := FootprintDistanceM(b, model.GeoPoint{LatitudeDeg: 0.0005, LongitudeDeg: 0.0005})
	if !ok {
		t.Fatal("expected a distance for a valid footprint")
	}
	if d != 0 {
		t.Errorf("distance from inside the footprint = %v m, want 0", d)
	}
}

func TestFootprintDistanceM_Outside(t *testing.T) {
	b := squareFootprint()
	// 0.001 degrees of longitude east of the square's edge ≈ 111 m.
	d, ok := FootprintDistanceM(b, model.GeoPoint{LatitudeDeg: 0.0005, LongitudeDeg: 0.002})
	if !ok {
		t.Fatal("expected a distance for a valid footprint")
	}
	if d < 105 || d > 120 {
		t.Errorf("distance = %v m, want ≈ 111", d)
	}
}

func TestFootprintDistanceM_NoFootprint(t *testing.T) {
	if _, ok := FootprintDistanceM(model.Building{HeightM: 10}, model.GeoPoint{}); ok {
		t.Error("expected ok=false for a building without a footprint")
	}
}
