package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jengzang/shark-tracker-go/internal/database"
	"github.com/jengzang/shark-tracker-go/internal/models"
	"github.com/jmoiron/sqlx"
)

const insertBatchSize = 500

// SightingRepository stores a snapshot of the sighting table
type SightingRepository struct {
	db *sqlx.DB
}

// NewSightingRepository creates a new sighting repository
func NewSightingRepository(db *sqlx.DB) *SightingRepository {
	return &SightingRepository{db: db}
}

// ReplaceAll swaps the stored snapshot for records in one transaction
func (r *SightingRepository) ReplaceAll(ctx context.Context, source string, records []models.SightingRecord) error {
	return database.Transaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM shark_sightings"); err != nil {
			return fmt.Errorf("failed to clear sightings: %w", err)
		}

		for start := 0; start < len(records); start += insertBatchSize {
			end := min(start+insertBatchSize, len(records))
			_, err := tx.NamedExecContext(ctx, `INSERT INTO shark_sightings
				(row_index, region, latitude, longitude, sea_surface_temperature_c, chlorophyll_mg_m3, shark_sightings)
				VALUES (:row_index, :region, :latitude, :longitude, :sea_surface_temperature_c, :chlorophyll_mg_m3, :shark_sightings)`,
				records[start:end])
			if err != nil {
				return fmt.Errorf("failed to insert sightings %d-%d: %w", start, end, err)
			}
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM dataset_snapshots"); err != nil {
			return fmt.Errorf("failed to clear snapshot metadata: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO dataset_snapshots (source, record_count) VALUES (?, ?)"), source, len(records)); err != nil {
			return fmt.Errorf("failed to record snapshot: %w", err)
		}
		return nil
	})
}

// LoadAll returns every stored record in source row order
func (r *SightingRepository) LoadAll(ctx context.Context) ([]models.SightingRecord, error) {
	var records []models.SightingRecord
	err := r.db.SelectContext(ctx, &records, `SELECT row_index, region, latitude, longitude,
		sea_surface_temperature_c, chlorophyll_mg_m3, shark_sightings
		FROM shark_sightings ORDER BY row_index ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sightings: %w", err)
	}
	return records, nil
}

// Count returns the number of stored records
func (r *SightingRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM shark_sightings"); err != nil {
		return 0, fmt.Errorf("failed to count sightings: %w", err)
	}
	return n, nil
}

// Snapshot returns the metadata of the stored table. ok is false when
// nothing has been imported yet.
func (r *SightingRepository) Snapshot(ctx context.Context) (snap models.DatasetSnapshot, ok bool, err error) {
	err = r.db.GetContext(ctx, &snap, `SELECT source, record_count, imported_at
		FROM dataset_snapshots ORDER BY imported_at DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return snap, false, nil
	}
	if err != nil {
		return snap, false, fmt.Errorf("failed to query snapshot: %w", err)
	}
	return snap, true, nil
}

// RegionTotals returns summed sightings per region, computed by the store
func (r *SightingRepository) RegionTotals(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT region, SUM(shark_sightings) AS total
		FROM shark_sightings GROUP BY region`)
	if err != nil {
		return nil, fmt.Errorf("failed to query region totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var region string
		var total int
		if err := rows.Scan(&region, &total); err != nil {
			return nil, fmt.Errorf("failed to scan region total: %w", err)
		}
		totals[region] = total
	}
	return totals, rows.Err()
}
