package models

import "time"

// DatasetSnapshot describes the table currently held by the snapshot store
type DatasetSnapshot struct {
	Source      string    `json:"source" db:"source"`
	RecordCount int       `json:"record_count" db:"record_count"`
	ImportedAt  time.Time `json:"imported_at" db:"imported_at"`
}
