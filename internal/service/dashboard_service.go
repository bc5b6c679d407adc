package service

import (
	"strings"

	"github.com/jengzang/shark-tracker-go/internal/dataset"
	"github.com/jengzang/shark-tracker-go/internal/models"
	"github.com/jengzang/shark-tracker-go/internal/spatial"
	"github.com/jengzang/shark-tracker-go/internal/stats"
)

const (
	defaultPageSize = 100
	maxPageSize     = 5000
)

// DashboardService answers dashboard queries against one loaded dataset
type DashboardService struct {
	data        *dataset.Dataset
	radiusScale float64
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(data *dataset.Dataset, radiusScale float64) *DashboardService {
	return &DashboardService{data: data, radiusScale: radiusScale}
}

// Filters returns widget defaults: all regions and the sighting upper bound
func (s *DashboardService) Filters() models.FilterOptions {
	return models.FilterOptions{
		Regions:      s.data.DistinctRegions(),
		MaxSightings: s.data.MaxSightings(),
		RecordCount:  s.data.Len(),
	}
}

// Criteria builds filter criteria. A nil regions slice selects every region;
// a non-nil empty slice selects none.
func (s *DashboardService) Criteria(regions []string, minSightings int) models.FilterCriteria {
	if regions == nil {
		return models.NewFilterCriteria(s.data.DistinctRegions(), minSightings)
	}
	normalized := make([]string, 0, len(regions))
	for _, r := range regions {
		normalized = append(normalized, dataset.NormalizeRegion(r))
	}
	return models.NewFilterCriteria(normalized, minSightings)
}

// ParseRegions turns raw regions query values into labels. Repeated values
// are taken as exact labels. A single value is split on commas unless it is
// itself a known region, so labels containing commas stay selectable. The
// result is never nil so an explicit empty selection stays empty.
func (s *DashboardService) ParseRegions(values []string) []string {
	out := make([]string, 0, len(values))
	add := func(v string) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	if len(values) != 1 {
		for _, v := range values {
			add(v)
		}
		return out
	}

	v := values[0]
	if s.data.HasRegion(v) || !strings.Contains(v, ",") {
		add(v)
		return out
	}
	for _, part := range strings.Split(v, ",") {
		add(part)
	}
	return out
}

// Table returns one page of the filtered raw table. page is 1-based; a page
// past the end is empty.
func (s *DashboardService) Table(c models.FilterCriteria, page, pageSize int) models.TablePage {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	pageSize = min(pageSize, maxPageSize)

	view := s.data.Filter(c)
	pages := (len(view) + pageSize - 1) / pageSize
	start := len(view)
	if page-1 < pages {
		start = (page - 1) * pageSize
	}
	end := min(start+pageSize, len(view))

	return models.TablePage{
		Records:  view[start:end],
		Total:    len(view),
		Page:     page,
		PageSize: pageSize,
	}
}

// Series aggregates the filtered view by one covariate
func (s *DashboardService) Series(c models.FilterCriteria, field dataset.Field) (models.AggregateSeries, error) {
	return dataset.AggregateBy(s.data.Filter(c), field)
}

// Overlays returns map marker records for the filtered view
func (s *DashboardService) Overlays(c models.FilterCriteria) ([]models.OverlayRecord, error) {
	return dataset.ToOverlayRecords(s.data.Filter(c), s.radiusScale)
}

// Heatmap returns the density layer for the filtered view
func (s *DashboardService) Heatmap(c models.FilterCriteria) (models.HeatmapResponse, error) {
	overlays, err := s.Overlays(c)
	if err != nil {
		return models.HeatmapResponse{}, err
	}
	return BuildHeatmap(overlays), nil
}

// Hotspots clusters the filtered overlays into geohash cells
func (s *DashboardService) Hotspots(c models.FilterCriteria, precision, limit int) ([]models.Hotspot, error) {
	overlays, err := s.Overlays(c)
	if err != nil {
		return nil, err
	}
	return spatial.Hotspots(overlays, precision, limit), nil
}

// Summary describes the sighting counts of the filtered view
func (s *DashboardService) Summary(c models.FilterCriteria) models.SightingSummary {
	return stats.Summarize(s.data.Filter(c))
}

// Dashboard recomputes every view for one filter change. includeRecords adds
// the full filtered table to the response.
func (s *DashboardService) Dashboard(c models.FilterCriteria, includeRecords bool) (models.DashboardResponse, error) {
	view := s.data.Filter(c)

	temperature, err := dataset.AggregateBy(view, dataset.FieldTemperature)
	if err != nil {
		return models.DashboardResponse{}, err
	}
	chlorophyll, err := dataset.AggregateBy(view, dataset.FieldChlorophyll)
	if err != nil {
		return models.DashboardResponse{}, err
	}
	overlays, err := dataset.ToOverlayRecords(view, s.radiusScale)
	if err != nil {
		return models.DashboardResponse{}, err
	}

	resp := models.DashboardResponse{
		Count:       len(view),
		Temperature: temperature,
		Chlorophyll: chlorophyll,
		Overlays:    overlays,
		Heatmap:     BuildHeatmap(overlays),
		Summary:     stats.Summarize(view),
		Center:      spatial.MapCenterFor(overlays),
	}
	if includeRecords {
		resp.Records = view
	}
	return resp, nil
}

// BuildHeatmap converts overlays to heat points with intensity normalized to
// the largest weight in the set
func BuildHeatmap(overlays []models.OverlayRecord) models.HeatmapResponse {
	resp := models.HeatmapResponse{Points: make([]models.HeatmapPoint, 0, len(overlays)), Count: len(overlays)}
	if len(overlays) == 0 {
		return resp
	}

	resp.MinValue, resp.MaxValue = overlays[0].Weight, overlays[0].Weight
	for _, o := range overlays[1:] {
		resp.MinValue = min(resp.MinValue, o.Weight)
		resp.MaxValue = max(resp.MaxValue, o.Weight)
	}

	for _, o := range overlays {
		intensity := 0.0
		if resp.MaxValue > 0 {
			intensity = float64(o.Weight) / float64(resp.MaxValue)
		}
		resp.Points = append(resp.Points, models.HeatmapPoint{
			Lat:       o.Lat,
			Lng:       o.Lng,
			Intensity: intensity,
			Value:     o.Weight,
		})
	}
	return resp
}
