package models

// SightingQuery represents query parameters shared by the dashboard endpoints.
// Regions are read separately so an absent parameter can mean "all regions".
type SightingQuery struct {
	MinSightings int `form:"minSightings" binding:"min=0"`
	Page         int `form:"page" binding:"min=0"`
	PageSize     int `form:"pageSize" binding:"min=0,max=5000"`
	Precision    int `form:"precision" binding:"min=0,max=12"` // Geohash precision for hotspots
	Limit        int `form:"limit" binding:"min=0"`            // Max hotspots to return
}
