package dataset

import (
	"fmt"
	"strconv"

	"github.com/jengzang/shark-tracker-go/internal/models"
)

// DefaultMarkerRadiusScale is the marker radius in meters per sighting
const DefaultMarkerRadiusScale = 5000.0

// ToOverlayRecords maps each record to one map feature, keeping view order.
// Radius is linear in the sighting count, so zero sightings give a zero
// radius and weight. A non-positive scale falls back to the default.
func ToOverlayRecords(view []models.SightingRecord, radiusScale float64) ([]models.OverlayRecord, error) {
	if radiusScale <= 0 {
		radiusScale = DefaultMarkerRadiusScale
	}

	overlays := make([]models.OverlayRecord, 0, len(view))
	for _, r := range view {
		if r.SharkSightings < 0 {
			return nil, &InvalidValueError{
				Field:  "shark_sightings",
				Row:    r.Row,
				Value:  strconv.Itoa(r.SharkSightings),
				Reason: "count must be non-negative",
			}
		}
		overlays = append(overlays, models.OverlayRecord{
			Lat:    r.Latitude,
			Lng:    r.Longitude,
			Weight: r.SharkSightings,
			Radius: float64(r.SharkSightings) * radiusScale,
			Region: r.Region,
			Label:  popupLabel(r),
		})
	}
	return overlays, nil
}

func popupLabel(r models.SightingRecord) string {
	return fmt.Sprintf("Region: %s | Sightings: %d | SST: %g °C | Chlorophyll: %g mg/m³",
		r.Region, r.SharkSightings, r.SeaSurfaceTemperatureC, r.ChlorophyllMgM3)
}
