package repository

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jengzang/shark-tracker-go/internal/database"
	"github.com/jengzang/shark-tracker-go/internal/models"
)

func newTestRepo(t *testing.T) *SightingRepository {
	t.Helper()
	db, err := database.Open(context.Background(), database.Config{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "sightings.db"),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSightingRepository(db)
}

func TestReplaceAllRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	records := make([]models.SightingRecord, 0, 1200)
	for i := 0; i < 1200; i++ {
		region := "Pacific"
		if i%3 == 0 {
			region = "Atlantic"
		}
		records = append(records, models.SightingRecord{
			Row:                    i,
			Region:                 region,
			Latitude:               float64(i%180) - 89.5,
			Longitude:              float64(i%360) - 179.5,
			SeaSurfaceTemperatureC: 15 + float64(i%10)/4,
			ChlorophyllMgM3:        float64(i%7) / 10,
			SharkSightings:         i % 11,
		})
	}

	if err := repo.ReplaceAll(ctx, "test.csv", records); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	got, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Fatalf("round trip changed records")
	}

	n, err := repo.Count(ctx)
	if err != nil || n != 1200 {
		t.Fatalf("Count = %d, %v", n, err)
	}
}

func TestReplaceAllReplaces(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	first := []models.SightingRecord{
		{Row: 0, Region: "Pacific", SharkSightings: 1},
		{Row: 1, Region: "Indian", SharkSightings: 2},
	}
	second := []models.SightingRecord{
		{Row: 0, Region: "Atlantic", SharkSightings: 5},
	}
	if err := repo.ReplaceAll(ctx, "a.csv", first); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}
	if err := repo.ReplaceAll(ctx, "b.csv", second); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	var sources []string
	if err := repo.db.SelectContext(ctx, &sources, "SELECT source FROM dataset_snapshots"); err != nil {
		t.Fatalf("query snapshots: %v", err)
	}
	if !reflect.DeepEqual(sources, []string{"b.csv"}) {
		t.Fatalf("expected only the latest snapshot row, got %v", sources)
	}

	snap, ok, err := repo.Snapshot(ctx)
	if err != nil || !ok {
		t.Fatalf("Snapshot = %+v, %v, %v", snap, ok, err)
	}
	if snap.Source != "b.csv" || snap.RecordCount != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	got, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if !reflect.DeepEqual(got, second) {
		t.Fatalf("expected only the second snapshot, got %+v", got)
	}
}

func TestRegionTotals(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	records := []models.SightingRecord{
		{Row: 0, Region: "Pacific", SharkSightings: 3},
		{Row: 1, Region: "Atlantic", SharkSightings: 5},
		{Row: 2, Region: "Pacific", SharkSightings: 4},
	}
	if err := repo.ReplaceAll(ctx, "t.csv", records); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	totals, err := repo.RegionTotals(ctx)
	if err != nil {
		t.Fatalf("RegionTotals failed: %v", err)
	}
	want := map[string]int{"Pacific": 7, "Atlantic": 5}
	if !reflect.DeepEqual(totals, want) {
		t.Fatalf("got %v, want %v", totals, want)
	}
}

func TestLoadAllEmpty(t *testing.T) {
	repo := newTestRepo(t)
	got, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}

	if _, ok, err := repo.Snapshot(context.Background()); err != nil || ok {
		t.Fatalf("expected no snapshot, got ok=%v err=%v", ok, err)
	}
}
