package models

// SightingRecord represents one row of the shark activity table
type SightingRecord struct {
	Row                    int     `json:"row" db:"row_index"` // Zero-based source row
	Region                 string  `json:"region" db:"region"`
	Latitude               float64 `json:"latitude" db:"latitude"`
	Longitude              float64 `json:"longitude" db:"longitude"`
	SeaSurfaceTemperatureC float64 `json:"sea_surface_temperature_c" db:"sea_surface_temperature_c"`
	ChlorophyllMgM3        float64 `json:"chlorophyll_mg_m3" db:"chlorophyll_mg_m3"`
	SharkSightings         int     `json:"shark_sightings" db:"shark_sightings"`
}

// FilterCriteria selects records by region and minimum sighting count
type FilterCriteria struct {
	AllowedRegions map[string]struct{}
	MinSightings   int
}

// NewFilterCriteria builds criteria from a region list
func NewFilterCriteria(regions []string, minSightings int) FilterCriteria {
	allowed := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		allowed[r] = struct{}{}
	}
	return FilterCriteria{AllowedRegions: allowed, MinSightings: minSightings}
}

// Matches reports whether a record passes the criteria
func (c FilterCriteria) Matches(r SightingRecord) bool {
	if r.SharkSightings < c.MinSightings {
		return false
	}
	_, ok := c.AllowedRegions[r.Region]
	return ok
}

// FilterOptions holds the values used to populate filter widgets
type FilterOptions struct {
	Regions      []string `json:"regions"`
	MaxSightings int      `json:"max_sightings"`
	RecordCount  int      `json:"record_count"`
}
