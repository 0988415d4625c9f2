package model

// GeoPoint is a WGS84 coordinate in degrees.
type GeoPoint struct {
	LatitudeDeg  float64
	LongitudeDeg float64
}

// ElevationSample is one terrain height along a path. Distances are
// measured from the start endpoint and are monotonic non-decreasing
// along a profile.
type ElevationSample struct {
	Point               GeoPoint
	ElevationM          float64
	DistanceFromStartKm float64
}

// ElevationProfile is an ordered sequence of samples between two
// endpoints (first = start, last = end). Sample distances span
// [0, TotalDistanceKm] linearly with path fraction. A profile needs at
// least two samples for any analysis to be meaningful.
type ElevationProfile struct {
	Samples         []ElevationSample
	TotalDistanceKm float64
}

// Building is an optional obstruction near the path. Footprint, when
// present, is a polygon of at least three vertices; otherwise only the
// centre Position is known.
type Building struct {
	Position  GeoPoint
	HeightM   float64
	Footprint []GeoPoint
}

// Site is a named link endpoint as loaded from a scenario file.
type Site struct {
	ID             string
	Name           string
	Position       GeoPoint
	AntennaHeightM float64
}

// LinkPlan pairs two sites with a radio profile for analysis.
// ElevationsM carries the already-fetched terrain heights sampled
// uniformly along the path between the two sites.
type LinkPlan struct {
	ID      string
	SiteA   string
	SiteB   string
	RadioID string

	ElevationsM []float64
}
