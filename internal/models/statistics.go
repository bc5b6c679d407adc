package models

// AggregateBucket is the summed sightings for one exact covariate value
type AggregateBucket struct {
	Value     float64 `json:"value"`
	Sightings int     `json:"sightings"`
}

// AggregateSeries is a bar chart series ordered by ascending covariate value
type AggregateSeries struct {
	Field   string            `json:"field"`
	Buckets []AggregateBucket `json:"buckets"`
	Total   int               `json:"total"` // Equals the sum of sightings over the view
}

// SightingSummary describes the distribution of sighting counts in a view
type SightingSummary struct {
	Count  int     `json:"count"`
	Total  int     `json:"total"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// DashboardResponse bundles every view recomputed for one filter change
type DashboardResponse struct {
	Count       int              `json:"count"`
	Temperature AggregateSeries  `json:"temperature"`
	Chlorophyll AggregateSeries  `json:"chlorophyll"`
	Overlays    []OverlayRecord  `json:"overlays"`
	Heatmap     HeatmapResponse  `json:"heatmap"`
	Summary     SightingSummary  `json:"summary"`
	Center      MapCenter        `json:"center"`
	Records     []SightingRecord `json:"records,omitempty"`
}

// TablePage is one page of the raw data table
type TablePage struct {
	Records  []SightingRecord `json:"records"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}
