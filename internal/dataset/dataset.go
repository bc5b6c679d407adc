// Package dataset holds the immutable sighting table and the pure
// filter/aggregate pipeline that every dashboard view is built from.
package dataset

import (
	"errors"
	"math"
	"strings"

	"github.com/jengzang/shark-tracker-go/internal/models"
	"github.com/jengzang/shark-tracker-go/internal/spatial"
	"golang.org/x/text/unicode/norm"
)

// Dataset is an ordered, read-only snapshot of the sighting table.
// It is built once by the caller and shared by reference; nothing mutates it
// after construction, so concurrent readers need no locking.
type Dataset struct {
	records      []models.SightingRecord
	regions      []string
	regionSet    map[string]struct{}
	maxSightings int
}

// FromRecords validates records and builds a Dataset preserving their order.
// Row indexes are reassigned to the position in the slice.
func FromRecords(source string, records []models.SightingRecord) (*Dataset, error) {
	owned := make([]models.SightingRecord, len(records))
	for i, r := range records {
		r.Row = i
		r.Region = NormalizeRegion(r.Region)
		if err := validateRecord(r); err != nil {
			var le *LoadError
			if errors.As(err, &le) {
				le.Source = source
			}
			return nil, err
		}
		owned[i] = r
	}
	return build(owned), nil
}

func build(records []models.SightingRecord) *Dataset {
	d := &Dataset{records: records, regionSet: make(map[string]struct{})}
	for _, r := range records {
		if _, ok := d.regionSet[r.Region]; !ok {
			d.regionSet[r.Region] = struct{}{}
			d.regions = append(d.regions, r.Region)
		}
		if r.SharkSightings > d.maxSightings {
			d.maxSightings = r.SharkSightings
		}
	}
	return d
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of all records in source order
func (d *Dataset) Records() []models.SightingRecord {
	out := make([]models.SightingRecord, len(d.records))
	copy(out, d.records)
	return out
}

// DistinctRegions returns the unique regions in order of first occurrence
func (d *Dataset) DistinctRegions() []string {
	out := make([]string, len(d.regions))
	copy(out, d.regions)
	return out
}

// HasRegion reports whether label is one of the dataset's regions after
// normalization
func (d *Dataset) HasRegion(label string) bool {
	_, ok := d.regionSet[NormalizeRegion(label)]
	return ok
}

// MaxSightings returns the largest sighting count, or 0 for an empty dataset
func (d *Dataset) MaxSightings() int {
	return d.maxSightings
}

// Filter returns the records matching c in source order.
// An empty region set or a minimum above MaxSightings yields an empty view.
func (d *Dataset) Filter(c models.FilterCriteria) []models.SightingRecord {
	view := make([]models.SightingRecord, 0)
	if len(c.AllowedRegions) == 0 || c.MinSightings > d.maxSightings {
		return view
	}
	for _, r := range d.records {
		if c.Matches(r) {
			view = append(view, r)
		}
	}
	return view
}

// AllRegionsCriteria is the default widget selection: every region, no minimum
func (d *Dataset) AllRegionsCriteria() models.FilterCriteria {
	return models.NewFilterCriteria(d.regions, 0)
}

// NormalizeRegion trims and NFC-normalizes a region label so the same label
// typed with different Unicode compositions filters identically.
func NormalizeRegion(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func validateRecord(r models.SightingRecord) error {
	fail := func(col string, msg string) error {
		return &LoadError{Row: r.Row, Column: col, Err: errors.New(msg)}
	}
	if r.Region == "" {
		return fail(ColRegion, "region is required")
	}
	if !spatial.ValidCoordinate(r.Latitude, r.Longitude) {
		if math.IsNaN(r.Latitude) || r.Latitude < -90 || r.Latitude > 90 {
			return fail(ColLatitude, "latitude out of range")
		}
		return fail(ColLongitude, "longitude out of range")
	}
	if math.IsNaN(r.SeaSurfaceTemperatureC) || math.IsInf(r.SeaSurfaceTemperatureC, 0) {
		return fail(ColTemperature, "temperature must be finite")
	}
	if math.IsNaN(r.ChlorophyllMgM3) || math.IsInf(r.ChlorophyllMgM3, 0) || r.ChlorophyllMgM3 < 0 {
		return fail(ColChlorophyll, "chlorophyll must be finite and non-negative")
	}
	if r.SharkSightings < 0 {
		return fail(ColSightings, "sightings must be non-negative")
	}
	return nil
}
