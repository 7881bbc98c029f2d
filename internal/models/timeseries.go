// Package models defines the core domain values for the roboscope application:
// annual time series, the tabular datasets they are grouped into, ensemble
// projection results, and the fixed registry of tracked metrics.
//
// All values are plain immutable-by-convention structs. Whoever produces a
// value owns it until it is handed to the next stage; nothing in this package
// is shared mutable state.
package models

import (
	"errors"
	"fmt"
	"math"
)

// Point is a single annual observation.
type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Series is an ordered annual time series with strictly increasing years.
type Series []Point

// Len returns the number of observations.
func (s Series) Len() int { return len(s) }

// First returns the earliest observation. Panics on an empty series;
// callers are expected to Validate first.
func (s Series) First() Point { return s[0] }

// Last returns the most recent observation.
func (s Series) Last() Point { return s[len(s)-1] }

// Years returns the years as a float64 slice for regression inputs.
func (s Series) Years() []float64 {
	years := make([]float64, len(s))
	for i, p := range s {
		years[i] = float64(p.Year)
	}
	return years
}

// Values returns the observed values in year order.
func (s Series) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Value
	}
	return values
}

// Validate checks that the series is non-empty, has strictly increasing
// years, and contains no NaN or negative values.
func (s Series) Validate() error {
	if len(s) == 0 {
		return errors.New("series must not be empty")
	}
	for i, p := range s {
		if i > 0 && p.Year <= s[i-1].Year {
			return fmt.Errorf("years must be strictly increasing: %d follows %d", p.Year, s[i-1].Year)
		}
		if math.IsNaN(p.Value) {
			return fmt.Errorf("value for year %d is NaN", p.Year)
		}
		if p.Value < 0 {
			return fmt.Errorf("value for year %d is negative: %g", p.Year, p.Value)
		}
	}
	return nil
}

// NewSeries builds a Series from parallel year/value slices.
func NewSeries(years []int, values []float64) (Series, error) {
	if len(years) != len(values) {
		return nil, fmt.Errorf("%w: %d years vs %d values", ErrInvalidInput, len(years), len(values))
	}
	s := make(Series, len(years))
	for i := range years {
		s[i] = Point{Year: years[i], Value: values[i]}
	}
	return s, nil
}
