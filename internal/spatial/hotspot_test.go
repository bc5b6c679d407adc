package spatial

import (
	"math"
	"testing"

	"github.com/jengzang/shark-tracker-go/internal/models"
)

func TestHotspotsConserveWeight(t *testing.T) {
	overlays := []models.OverlayRecord{
		{Lat: 42.60, Lng: -5.60, Weight: 3},
		{Lat: 42.61, Lng: -5.61, Weight: 4},
		{Lat: -33.9, Lng: 18.4, Weight: 10},
		{Lat: 21.3, Lng: -157.8, Weight: 0},
	}

	hotspots := Hotspots(overlays, 4, 0)
	if len(hotspots) != 3 {
		t.Fatalf("expected 3 cells, got %d: %+v", len(hotspots), hotspots)
	}

	total, count := 0, 0
	for _, h := range hotspots {
		total += h.Weight
		count += h.Count
		if h.Precision != 4 || len(h.Cell) != 4 {
			t.Fatalf("unexpected precision in %+v", h)
		}
	}
	if total != 17 || count != 4 {
		t.Fatalf("weights %d / counts %d not conserved", total, count)
	}

	if hotspots[0].Weight != 10 || hotspots[1].Weight != 7 || hotspots[2].Weight != 0 {
		t.Fatalf("hotspots not ordered by weight: %+v", hotspots)
	}
	if hotspots[0].RadiusM != 0 {
		t.Fatalf("single-point cell should have zero radius, got %v", hotspots[0].RadiusM)
	}
	// the two nearby points sit about 1.4km apart, so each is well within 2km of the centroid
	if r := hotspots[1].RadiusM; r <= 0 || r > 2000 {
		t.Fatalf("unexpected radius for two-point cell: %v", r)
	}
	// a zero-weight cell falls back to the unweighted centroid of its one point
	if math.Abs(hotspots[2].Lat-21.3) > 1e-9 || math.Abs(hotspots[2].Lng+157.8) > 1e-9 {
		t.Fatalf("unexpected centroid for zero-weight cell: %+v", hotspots[2])
	}
}

func TestHotspotsLimitAndDefaults(t *testing.T) {
	overlays := []models.OverlayRecord{
		{Lat: 10, Lng: 10, Weight: 1},
		{Lat: -10, Lng: -10, Weight: 2},
		{Lat: 50, Lng: 50, Weight: 3},
	}
	hotspots := Hotspots(overlays, 0, 2)
	if len(hotspots) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(hotspots))
	}
	if hotspots[0].Precision != DefaultHotspotPrecision {
		t.Fatalf("expected default precision, got %d", hotspots[0].Precision)
	}
	if len(Hotspots(nil, 3, 0)) != 0 {
		t.Fatalf("expected no hotspots for no overlays")
	}
}

func TestMapCenterFor(t *testing.T) {
	if c := MapCenterFor(nil); c.Lat != 0 || c.Lng != 0 || c.Zoom != 2 {
		t.Fatalf("unexpected empty center: %+v", c)
	}

	c := MapCenterFor([]models.OverlayRecord{{Lat: 10, Lng: 20}, {Lat: 11, Lng: 21}})
	if c.Zoom != 6 || c.Lat < 10 || c.Lat > 11 || c.Lng < 20 || c.Lng > 21 {
		t.Fatalf("unexpected regional center: %+v", c)
	}

	world := MapCenterFor([]models.OverlayRecord{{Lat: -60, Lng: -170}, {Lat: 70, Lng: 160}})
	if world.Zoom != 2 {
		t.Fatalf("expected world zoom, got %+v", world)
	}
}
