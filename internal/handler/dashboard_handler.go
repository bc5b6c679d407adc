package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/shark-tracker-go/internal/dataset"
	"github.com/jengzang/shark-tracker-go/internal/models"
	"github.com/jengzang/shark-tracker-go/internal/service"
	"github.com/jengzang/shark-tracker-go/pkg/response"
)

// DashboardHandler handles HTTP requests for the sighting dashboard
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetFilters handles GET /api/v1/filters
func (h *DashboardHandler) GetFilters(c *gin.Context) {
	response.Success(c, h.service.Filters())
}

// GetSightings handles GET /api/v1/sightings
func (h *DashboardHandler) GetSightings(c *gin.Context) {
	q, criteria, ok := h.bind(c)
	if !ok {
		return
	}
	response.Success(c, h.service.Table(criteria, q.Page, q.PageSize))
}

// GetAggregate handles GET /api/v1/aggregates/:field
func (h *DashboardHandler) GetAggregate(c *gin.Context) {
	field, err := dataset.ParseField(c.Param("field"))
	if err != nil {
		response.BadRequest(c, "Invalid covariate field", err)
		return
	}

	_, criteria, ok := h.bind(c)
	if !ok {
		return
	}

	series, err := h.service.Series(criteria, field)
	if err != nil {
		respondPipelineError(c, "Failed to aggregate sightings", err)
		return
	}
	response.Success(c, series)
}

// GetOverlays handles GET /api/v1/overlays
func (h *DashboardHandler) GetOverlays(c *gin.Context) {
	_, criteria, ok := h.bind(c)
	if !ok {
		return
	}

	overlays, err := h.service.Overlays(criteria)
	if err != nil {
		respondPipelineError(c, "Failed to build map overlays", err)
		return
	}
	response.Success(c, gin.H{
		"data":  overlays,
		"count": len(overlays),
	})
}

// GetHeatmap handles GET /api/v1/heatmap
func (h *DashboardHandler) GetHeatmap(c *gin.Context) {
	_, criteria, ok := h.bind(c)
	if !ok {
		return
	}

	heatmap, err := h.service.Heatmap(criteria)
	if err != nil {
		respondPipelineError(c, "Failed to build heat layer", err)
		return
	}
	response.Success(c, heatmap)
}

// GetHotspots handles GET /api/v1/hotspots
func (h *DashboardHandler) GetHotspots(c *gin.Context) {
	q, criteria, ok := h.bind(c)
	if !ok {
		return
	}

	hotspots, err := h.service.Hotspots(criteria, q.Precision, q.Limit)
	if err != nil {
		respondPipelineError(c, "Failed to cluster hotspots", err)
		return
	}
	response.Success(c, gin.H{
		"data":  hotspots,
		"count": len(hotspots),
	})
}

// GetSummary handles GET /api/v1/summary
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	_, criteria, ok := h.bind(c)
	if !ok {
		return
	}
	response.Success(c, h.service.Summary(criteria))
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	_, criteria, ok := h.bind(c)
	if !ok {
		return
	}

	dash, err := h.service.Dashboard(criteria, c.Query("records") == "true")
	if err != nil {
		respondPipelineError(c, "Failed to build dashboard", err)
		return
	}
	response.Success(c, dash)
}

// bind parses the shared query parameters. Without a regions parameter every
// region is selected; "regions=" selects none.
func (h *DashboardHandler) bind(c *gin.Context) (models.SightingQuery, models.FilterCriteria, bool) {
	var q models.SightingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return q, models.FilterCriteria{}, false
	}

	var regions []string
	if values, ok := c.GetQueryArray("regions"); ok {
		regions = h.service.ParseRegions(values)
	}
	return q, h.service.Criteria(regions, q.MinSightings), true
}

func respondPipelineError(c *gin.Context, message string, err error) {
	var invalid *dataset.InvalidValueError
	if errors.As(err, &invalid) {
		response.Unprocessable(c, message, err)
		return
	}
	response.InternalError(c, message, err)
}
