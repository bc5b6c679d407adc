package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jengzang/shark-tracker-go/internal/models"
)

// Required column headers of the source table
const (
	ColRegion      = "Region"
	ColLatitude    = "Latitude"
	ColLongitude   = "Longitude"
	ColTemperature = "Sea_Surface_Temperature_C"
	ColChlorophyll = "Chlorophyll_mg_m3"
	ColSightings   = "Shark_Sightings"
)

var requiredColumns = []string{ColRegion, ColLatitude, ColLongitude, ColTemperature, ColChlorophyll, ColSightings}

// Load reads a CSV table from path
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Row: -1, Err: err}
	}
	defer f.Close()

	return ReadCSV(path, bufio.NewReader(f))
}

// ReadCSV parses a CSV table with a header row. Column order is free and
// extra columns are ignored; a missing required column or a malformed cell
// fails the whole load.
func ReadCSV(source string, r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, &LoadError{Source: source, Row: -1, Err: errors.New("empty table, header row missing")}
	}
	if err != nil {
		return nil, &LoadError{Source: source, Row: -1, Err: fmt.Errorf("failed to read CSV headers: %w", err)}
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &LoadError{Source: source, Row: -1, Column: col, Err: errors.New("required column missing")}
		}
	}

	var records []models.SightingRecord
	for row := 0; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Source: source, Row: row, Err: err}
		}

		rec, err := parseRow(row, fields, index)
		if err != nil {
			err.(*LoadError).Source = source
			return nil, err
		}
		records = append(records, rec)
	}

	return build(records), nil
}

func parseRow(row int, fields []string, index map[string]int) (models.SightingRecord, error) {
	cell := func(col string) string {
		return strings.TrimSpace(fields[index[col]])
	}
	bad := func(col string, err error) error {
		return &LoadError{Row: row, Column: col, Err: err}
	}

	rec := models.SightingRecord{Row: row, Region: NormalizeRegion(cell(ColRegion))}

	floats := []struct {
		col string
		dst *float64
	}{
		{ColLatitude, &rec.Latitude},
		{ColLongitude, &rec.Longitude},
		{ColTemperature, &rec.SeaSurfaceTemperatureC},
		{ColChlorophyll, &rec.ChlorophyllMgM3},
	}
	for _, f := range floats {
		v, err := strconv.ParseFloat(cell(f.col), 64)
		if err != nil {
			return rec, bad(f.col, err)
		}
		*f.dst = v
	}

	n, err := parseCount(cell(ColSightings))
	if err != nil {
		return rec, bad(ColSightings, err)
	}
	rec.SharkSightings = n

	if err := validateRecord(rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// maxCount bounds sighting counts so per-bucket sums cannot overflow
const maxCount = math.MaxInt32

// parseCount accepts plain integers and integral floats such as "3.0"
func parseCount(s string) (int, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > maxCount || n < -maxCount {
			return 0, fmt.Errorf("count out of range: %q", s)
		}
		return int(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not an integer count: %q", s)
	}
	if math.Abs(f) > maxCount {
		return 0, fmt.Errorf("count out of range: %q", s)
	}
	return int(f), nil
}
