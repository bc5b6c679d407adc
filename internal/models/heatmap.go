package models

// OverlayRecord is a single map feature derived from one sighting record.
// Markers use Radius, the heat layer uses Weight.
type OverlayRecord struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Weight int     `json:"weight"`   // Raw sighting count
	Radius float64 `json:"radius_m"` // Marker radius in meters
	Region string  `json:"region"`
	Label  string  `json:"label"`
}

// HeatmapPoint represents a single point in the heat layer
type HeatmapPoint struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Intensity float64 `json:"intensity"` // Normalized 0-1
	Value     int     `json:"value"`     // Raw sighting count
}

// HeatmapResponse represents the heatmap API response
type HeatmapResponse struct {
	Points   []HeatmapPoint `json:"points"`
	Count    int            `json:"count"`
	MaxValue int            `json:"max_value"`
	MinValue int            `json:"min_value"`
}

// Hotspot is a geohash cell with its accumulated sightings
type Hotspot struct {
	Cell      string  `json:"cell"`
	Lat       float64 `json:"lat"` // Weighted centroid of member points
	Lng       float64 `json:"lng"`
	Weight    int     `json:"weight"`
	Count     int     `json:"count"`
	RadiusM   float64 `json:"radius_m"` // Farthest member point from the centroid
	Precision int     `json:"precision"`
}

// MapCenter is the initial viewport for the hotspot map
type MapCenter struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Zoom int     `json:"zoom"`
}
