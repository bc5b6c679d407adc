package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jengzang/shark-tracker-go/internal/models"
)

// Field names a continuous covariate used as an aggregation key
type Field string

const (
	FieldTemperature Field = "sea_surface_temperature_c"
	FieldChlorophyll Field = "chlorophyll_mg_m3"
)

// ParseField resolves a field name or one of its short aliases
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(FieldTemperature), "sst", "temperature":
		return FieldTemperature, nil
	case string(FieldChlorophyll), "chl", "chlorophyll":
		return FieldChlorophyll, nil
	}
	return "", fmt.Errorf("unknown covariate field %q", s)
}

func (f Field) value(r models.SightingRecord) (float64, error) {
	switch f {
	case FieldTemperature:
		return r.SeaSurfaceTemperatureC, nil
	case FieldChlorophyll:
		return r.ChlorophyllMgM3, nil
	}
	return 0, fmt.Errorf("unknown covariate field %q", string(f))
}

// AggregateBy sums sightings per exact value of field, ordered by ascending
// value. The bucket totals always add up to the view's total sightings; a NaN
// key or a negative count aborts with *InvalidValueError instead.
func AggregateBy(view []models.SightingRecord, field Field) (models.AggregateSeries, error) {
	series := models.AggregateSeries{Field: string(field), Buckets: []models.AggregateBucket{}}

	sums := make(map[float64]int)
	for _, r := range view {
		key, err := field.value(r)
		if err != nil {
			return series, err
		}
		if math.IsNaN(key) {
			return series, &InvalidValueError{Field: string(field), Row: r.Row, Value: "NaN", Reason: "not-a-number cannot be ordered"}
		}
		if r.SharkSightings < 0 {
			return series, &InvalidValueError{Field: "shark_sightings", Row: r.Row, Value: strconv.Itoa(r.SharkSightings), Reason: "count must be non-negative"}
		}
		// -0 and +0 compare equal and share a bucket
		sums[key] += r.SharkSightings
		series.Total += r.SharkSightings
	}

	keys := make([]float64, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	for _, k := range keys {
		series.Buckets = append(series.Buckets, models.AggregateBucket{Value: k, Sightings: sums[k]})
	}
	return series, nil
}
