package track

import (
	"github.com/golang/geo/s2"
	"github.com/tidwall/geodesic"
)

// Distance returns the geodesic distance in metres between a and b on the
// WGS84 ellipsoid.
func Distance(a, b s2.LatLng) float64 {
	if a == b {
		return 0
	}

	var s12 float64
	geodesic.WGS84.Inverse(
		a.Lat.Degrees(), a.Lng.Degrees(),
		b.Lat.Degrees(), b.Lng.Degrees(),
		&s12, nil, nil)
	return s12
}
