package spatial

import (
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64
	Lon float64
}

// WeightedCentroid returns the weighted centroid on the sphere. Points are
// summed as unit vectors, so clusters across the antimeridian stay intact.
// Missing weights count as 1. When all weights are zero the plain centroid is
// used; ok is false only when the vectors cancel out entirely.
func WeightedCentroid(points []Point, weights []float64) (center Point, ok bool) {
	if len(points) == 0 {
		return Point{}, false
	}

	var sum, unweighted r3.Vector
	for i, p := range points {
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		v := s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon)).Vector
		sum = sum.Add(v.Mul(w))
		unweighted = unweighted.Add(v)
	}

	if sum.Norm() == 0 {
		sum = unweighted
	}
	if sum.Norm() < 1e-12 {
		return Point{}, false
	}

	ll := s2.LatLngFromPoint(s2.Point{Vector: sum.Normalize()})
	return Point{Lat: ll.Lat.Degrees(), Lon: ll.Lng.Degrees()}, true
}

// BoundingBox calculates the bounding box of a set of points
// Returns (minLat, minLon, maxLat, maxLon)
func BoundingBox(points []Point) (float64, float64, float64, float64) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}

	minLat, maxLat := points[0].Lat, points[0].Lat
	minLon, maxLon := points[0].Lon, points[0].Lon
	for _, p := range points[1:] {
		minLat = min(minLat, p.Lat)
		maxLat = max(maxLat, p.Lat)
		minLon = min(minLon, p.Lon)
		maxLon = max(maxLon, p.Lon)
	}
	return minLat, minLon, maxLat, maxLon
}
