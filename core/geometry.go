package core

import (
	"math"

	"github.com/fr33n0w/los-tools/model"
)

// EarthRadiusKm is the mean Earth radius used for all simple geometry
// calculations in the analyzer (kilometres).
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points on a
// spherical Earth, in kilometres.
func HaversineKm(a, b model.GeoPoint) float64 {
	lat1 := a.LatitudeDeg * math.Pi / 180
	lat2 := b.LatitudeDeg * math.Pi / 180
	dLat := (b.LatitudeDeg - a.LatitudeDeg) * math.Pi / 180
	dLon := (b.LongitudeDeg - a.LongitudeDeg) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// InterpolatePath returns n+1 points linearly interpolated between a
// and b in lat/lon space, point i at fraction i/n. The planar
// interpolation is a deliberate approximation: at the tens-of-km
// ranges this tool targets, deviation from the true geodesic is
// negligible.
func InterpolatePath(a, b model.GeoPoint, n int) []model.GeoPoint {
	if n < 1 {
		n = 1
	}
	pts := make([]model.GeoPoint, 0, n+1)
	for i := 0; i <= n; i++ {
		frac := float64(i) / float64(n)
		pts = append(pts, model.GeoPoint{
			LatitudeDeg:  a.LatitudeDeg + (b.LatitudeDeg-a.LatitudeDeg)*frac,
			LongitudeDeg: a.LongitudeDeg + (b.LongitudeDeg-a.LongitudeDeg)*frac,
		})
	}
	return pts
}

// BuildProfile assembles an ElevationProfile between two endpoints from
// already-fetched terrain heights sampled uniformly along the path.
// Per-sample distance is the total haversine distance scaled by path
// fraction, so spacing in distance is uniform even though positions are
// interpolated linearly.
func BuildProfile(a, b model.GeoPoint, elevationsM []float64) model.ElevationProfile {
	total := HaversineKm(a, b)
	if len(elevationsM) == 0 {
		return model.ElevationProfile{TotalDistanceKm: total}
	}

	pts := InterpolatePath(a, b, len(elevationsM)-1)
	samples := make([]model.ElevationSample, 0, len(elevationsM))
	for i, elev := range elevationsM {
		frac := 0.0
		if len(elevationsM) > 1 {
			frac = float64(i) / float64(len(elevationsM)-1)
		}
		samples = append(samples, model.ElevationSample{
			Point:               pts[i],
			ElevationM:          elev,
			DistanceFromStartKm: total * frac,
		})
	}
	return model.ElevationProfile{Samples: samples, TotalDistanceKm: total}
}

// EarthBulgeM returns the apparent terrain rise in metres caused by
// Earth curvature at the point splitting a path into d1/d2 km:
//
//	(d1·d2) / (2·R) · 1000
//
// It is subtracted from the straight sight-line height to reference the
// line against the curved surface.
func EarthBulgeM(d1Km, d2Km float64) float64 {
	if d1Km < 0 || d2Km < 0 {
		return 0
	}
	return d1Km * d2Km / (2 * EarthRadiusKm) * 1000
}
