package spatial

import (
	"math"
	"sort"

	"github.com/jengzang/shark-tracker-go/internal/models"
)

// DefaultHotspotPrecision buckets overlays into roughly 156km cells
const DefaultHotspotPrecision = 3

// Hotspots groups overlays by geohash cell and sums their weights.
// Cells are ordered by weight descending, then by cell id; limit <= 0 keeps
// all cells. The sum of hotspot weights equals the sum of overlay weights.
func Hotspots(overlays []models.OverlayRecord, precision, limit int) []models.Hotspot {
	if precision == 0 {
		precision = DefaultHotspotPrecision
	}
	precision = clampPrecision(precision)

	type cell struct {
		points  []Point
		weights []float64
		weight  int
	}
	cells := make(map[string]*cell)
	for _, o := range overlays {
		id := EncodeGeohash(o.Lat, o.Lng, precision)
		c, ok := cells[id]
		if !ok {
			c = &cell{}
			cells[id] = c
		}
		c.points = append(c.points, Point{Lat: o.Lat, Lon: o.Lng})
		c.weights = append(c.weights, float64(o.Weight))
		c.weight += o.Weight
	}

	hotspots := make([]models.Hotspot, 0, len(cells))
	for id, c := range cells {
		center, ok := WeightedCentroid(c.points, c.weights)
		if !ok {
			center.Lat, center.Lon = DecodeGeohash(id)
		}
		radius := 0.0
		for _, p := range c.points {
			radius = math.Max(radius, HaversineDistance(center.Lat, center.Lon, p.Lat, p.Lon))
		}
		hotspots = append(hotspots, models.Hotspot{
			Cell:      id,
			Lat:       center.Lat,
			Lng:       center.Lon,
			Weight:    c.weight,
			Count:     len(c.points),
			RadiusM:   radius,
			Precision: precision,
		})
	}

	sort.Slice(hotspots, func(i, j int) bool {
		if hotspots[i].Weight != hotspots[j].Weight {
			return hotspots[i].Weight > hotspots[j].Weight
		}
		return hotspots[i].Cell < hotspots[j].Cell
	})

	if limit > 0 && len(hotspots) > limit {
		hotspots = hotspots[:limit]
	}
	return hotspots
}

// MapCenterFor picks the initial map viewport for a set of overlays.
// An empty set gives the global view at (0, 0).
func MapCenterFor(overlays []models.OverlayRecord) models.MapCenter {
	if len(overlays) == 0 {
		return models.MapCenter{Lat: 0, Lng: 0, Zoom: 2}
	}

	points := make([]Point, len(overlays))
	for i, o := range overlays {
		points[i] = Point{Lat: o.Lat, Lon: o.Lng}
	}

	center, ok := WeightedCentroid(points, nil)
	if !ok {
		return models.MapCenter{Lat: 0, Lng: 0, Zoom: 2}
	}

	minLat, minLon, maxLat, maxLon := BoundingBox(points)
	span := math.Max(maxLat-minLat, (maxLon-minLon)/2)
	return models.MapCenter{Lat: center.Lat, Lng: center.Lon, Zoom: zoomForSpan(span)}
}

func zoomForSpan(span float64) int {
	switch {
	case span >= 60:
		return 2
	case span >= 30:
		return 3
	case span >= 15:
		return 4
	case span >= 5:
		return 5
	default:
		return 6
	}
}
