// Package geo projects WGS84 coordinates into planar web-mercator
// metres and answers proximity questions about building footprints.
// Geometry is stored as EPSG:3857 so distances come out in metres.
package geo

import (
	"math"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"

	"github.com/fr33n0w/los-tools/model"
)

// to3857 converts lon/lat degrees (EPSG:4326) into web-mercator metres.
var to3857 = wgs84.EPSG().Transform(4326, 3857)

// ProjectXY returns the point's planar EPSG:3857 coordinates.
func ProjectXY(p model.GeoPoint) geom.XY {
	x, y, _ := to3857(p.LongitudeDeg, p.LatitudeDeg, 0)
	return geom.XY{X: x, Y: y}
}

// FootprintPolygon builds a planar polygon from a building's footprint.
// It returns false when the building has no usable footprint (fewer
// than three vertices, or a ring that fails validation).
func FootprintPolygon(b model.Building) (geom.Polygon, bool) {
	if len(b.Footprint) < 3 {
		return geom.Polygon{}, false
	}

	flat := make([]float64, 0, (len(b.Footprint)+1)*2)
	for _, v := range b.Footprint {
		xy := ProjectXY(v)
		flat = append(flat, xy.X, xy.Y)
	}
	// Close the ring if the footprint doesn't repeat its first vertex.
	if flat[0] != flat[len(flat)-2] || flat[1] != flat[len(flat)-1] {
		flat = append(flat, flat[0], flat[1])
	}

	ring := geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
	poly := geom.NewPolygon([]geom.LineString{ring})
	if err := poly.Validate(); err != nil {
		return geom.Polygon{}, false
	}
	return poly, true
}

// FootprintDistanceM returns the distance in metres from a point to a
// building's footprint polygon (zero when the point lies inside it).
// ok is false when the building has no usable footprint.
func FootprintDistanceM(b model.Building, p model.GeoPoint) (float64, bool) {
	poly, ok := FootprintPolygon(b)
	if !ok {
		return 0, false
	}

	pt := geom.NewPoint(geom.Coordinates{XY: ProjectXY(p), Type: geom.DimXY})
	d, ok := geom.Distance(poly.AsGeometry(), pt.AsGeometry())
	if !ok {
		return 0, false
	}

	// Web-mercator metres are stretched by 1/cos(lat); scale back to
	// ground metres at the query latitude.
	return d * math.Cos(p.LatitudeDeg*math.Pi/180), true
}
