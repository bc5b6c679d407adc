package dataset

import "fmt"

// LoadError is returned when the source table cannot be turned into a Dataset.
// Row is the zero-based data row (header excluded), or -1 when the failure is
// not tied to a row.
type LoadError struct {
	Source string
	Row    int
	Column string
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Row >= 0 && e.Column != "":
		return fmt.Sprintf("load %s: row %d column %s: %v", e.Source, e.Row, e.Column, e.Err)
	case e.Row >= 0:
		return fmt.Sprintf("load %s: row %d: %v", e.Source, e.Row, e.Err)
	case e.Column != "":
		return fmt.Sprintf("load %s: column %s: %v", e.Source, e.Column, e.Err)
	default:
		return fmt.Sprintf("load %s: %v", e.Source, e.Err)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }

// InvalidValueError reports a field value that cannot take part in an
// aggregate or overlay without corrupting it.
type InvalidValueError struct {
	Field  string
	Row    int
	Value  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %s for %s at row %d: %s", e.Value, e.Field, e.Row, e.Reason)
}
