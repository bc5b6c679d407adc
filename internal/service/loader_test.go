package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jengzang/shark-tracker-go/internal/database"
	"github.com/jengzang/shark-tracker-go/internal/dataset"
	"github.com/jengzang/shark-tracker-go/internal/repository"
)

const csvBody = `Region,Latitude,Longitude,Sea_Surface_Temperature_C,Chlorophyll_mg_m3,Shark_Sightings
Pacific,10.5,-150.2,20.0,1.0,3
Atlantic,30.1,-40.0,20.0,2.0,5
Indian,-12.0,75.3,27.5,0.3,0
`

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sharks.csv")
	if err := os.WriteFile(path, []byte(csvBody), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestImportThenLoadFromDatabase(t *testing.T) {
	ctx := context.Background()
	path := writeCSV(t)

	db, err := database.Open(ctx, database.Config{Driver: database.DriverSQLite, DSN: filepath.Join(t.TempDir(), "s.db")})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()
	repo := repository.NewSightingRepository(db)

	imported, err := ImportCSV(ctx, path, repo)
	if err != nil {
		t.Fatalf("ImportCSV failed: %v", err)
	}

	fromDB, err := LoadDataset(ctx, SourceDatabase, "", repo)
	if err != nil {
		t.Fatalf("LoadDataset(db) failed: %v", err)
	}
	if !reflect.DeepEqual(fromDB.Records(), imported.Records()) {
		t.Fatalf("database snapshot differs from CSV")
	}

	fromCSV, err := LoadDataset(ctx, SourceCSV, path, nil)
	if err != nil {
		t.Fatalf("LoadDataset(csv) failed: %v", err)
	}
	if !reflect.DeepEqual(fromCSV.DistinctRegions(), fromDB.DistinctRegions()) {
		t.Fatalf("region order differs between sources")
	}
}

func TestLoadDatasetErrors(t *testing.T) {
	ctx := context.Background()

	_, err := LoadDataset(ctx, SourceCSV, filepath.Join(t.TempDir(), "missing.csv"), nil)
	var le *dataset.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if _, err := LoadDataset(ctx, SourceDatabase, "", nil); err == nil {
		t.Fatalf("expected error without repository")
	}
	if _, err := LoadDataset(ctx, "parquet", "x", nil); err == nil {
		t.Fatalf("expected error for unknown source")
	}
}

func TestCriteriaDefaults(t *testing.T) {
	data, err := dataset.Load(writeCSV(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	s := NewDashboardService(data, 100)

	if got := len(s.Criteria(nil, 0).AllowedRegions); got != 3 {
		t.Fatalf("nil regions should select all 3, got %d", got)
	}
	if got := len(s.Criteria([]string{}, 0).AllowedRegions); got != 0 {
		t.Fatalf("empty regions should select none, got %d", got)
	}

	page := s.Table(s.Criteria(nil, 0), 0, 0)
	if page.Page != 1 || page.PageSize != defaultPageSize || page.Total != 3 {
		t.Fatalf("unexpected page defaults: %+v", page)
	}

	overlays, err := s.Overlays(s.Criteria([]string{" Pacific "}, 0))
	if err != nil || len(overlays) != 1 || overlays[0].Radius != 300 {
		t.Fatalf("unexpected overlays %+v, %v", overlays, err)
	}
}
