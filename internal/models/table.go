package models

import (
	"fmt"
	"math"
)

// Table is one persisted dataset: a year column plus one named value column
// per tracked sub-series. Column order is preserved so CSV round-trips are
// deterministic.
type Table struct {
	name    string
	years   []int
	order   []string
	columns map[string][]float64
}

// NewTable creates an empty table for the given dataset name and year range.
func NewTable(name string, years []int) *Table {
	return &Table{
		name:    name,
		years:   append([]int(nil), years...),
		columns: make(map[string][]float64),
	}
}

// Name returns the dataset name.
func (t *Table) Name() string { return t.name }

// Years returns the year column.
func (t *Table) Years() []int { return append([]int(nil), t.years...) }

// NumRows returns the number of rows (years).
func (t *Table) NumRows() int { return len(t.years) }

// Columns returns the value column names in insertion order.
func (t *Table) Columns() []string { return append([]string(nil), t.order...) }

// AddColumn appends a named value column. The column must match the year
// column length and must not already exist.
func (t *Table) AddColumn(name string, values []float64) error {
	if len(values) != len(t.years) {
		return fmt.Errorf("%w: column %q has %d values for %d years", ErrInvalidInput, name, len(values), len(t.years))
	}
	if _, exists := t.columns[name]; exists {
		return fmt.Errorf("%w: duplicate column %q", ErrInvalidInput, name)
	}
	t.order = append(t.order, name)
	t.columns[name] = append([]float64(nil), values...)
	return nil
}

// Column returns the values of a named column.
func (t *Table) Column(name string) ([]float64, error) {
	values, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: column %q not present in table %q", ErrInvalidInput, name, t.name)
	}
	return append([]float64(nil), values...), nil
}

// Series extracts a named column as an annual Series.
func (t *Table) Series(column string) (Series, error) {
	values, ok := t.columns[column]
	if !ok {
		return nil, fmt.Errorf("%w: column %q not present in table %q", ErrInvalidInput, column, t.name)
	}
	return NewSeries(t.years, values)
}

// Validate checks that the table is non-empty, has strictly increasing
// years, and contains every required column. It returns the number of NaN
// cells found so the caller can warn about them without failing the load.
func (t *Table) Validate(required []string) (nanCells int, err error) {
	if len(t.years) == 0 {
		return 0, fmt.Errorf("%w: table %q has no rows", ErrInvalidInput, t.name)
	}
	for i := 1; i < len(t.years); i++ {
		if t.years[i] <= t.years[i-1] {
			return 0, fmt.Errorf("%w: table %q years not strictly increasing at row %d", ErrInvalidInput, t.name, i)
		}
	}
	for _, col := range required {
		values, ok := t.columns[col]
		if !ok {
			return 0, fmt.Errorf("%w: table %q missing required column %q", ErrInvalidInput, t.name, col)
		}
		for _, v := range values {
			if math.IsNaN(v) {
				nanCells++
			}
		}
	}
	return nanCells, nil
}
