package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jengzang/shark-tracker-go/internal/dataset"
	"github.com/jengzang/shark-tracker-go/internal/repository"
)

// Source kinds accepted by LoadDataset
const (
	SourceCSV      = "csv"
	SourceDatabase = "db"
)

// LoadDataset loads the table once from CSV or from the snapshot store.
// repo may be nil for the CSV source.
func LoadDataset(ctx context.Context, kind, path string, repo *repository.SightingRepository) (*dataset.Dataset, error) {
	start := time.Now()

	var (
		data *dataset.Dataset
		err  error
	)
	switch kind {
	case SourceCSV, "":
		data, err = dataset.Load(path)
	case SourceDatabase:
		if repo == nil {
			return nil, fmt.Errorf("database source requires a repository")
		}
		records, qerr := repo.LoadAll(ctx)
		if qerr != nil {
			return nil, &dataset.LoadError{Source: "database", Row: -1, Err: qerr}
		}
		data, err = dataset.FromRecords("database", records)
	default:
		return nil, fmt.Errorf("unknown data source %q", kind)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded %d sighting records across %d regions in %v",
		data.Len(), len(data.DistinctRegions()), time.Since(start))
	return data, nil
}

// ImportCSV loads a CSV table and replaces the stored snapshot with it
func ImportCSV(ctx context.Context, path string, repo *repository.SightingRepository) (*dataset.Dataset, error) {
	data, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	if err := repo.ReplaceAll(ctx, path, data.Records()); err != nil {
		return nil, err
	}
	log.Printf("Imported %d sighting records from %s", data.Len(), path)
	return data, nil
}
