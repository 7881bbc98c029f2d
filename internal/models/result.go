package models

import (
	"errors"
	"math"
)

// EnsembleResult holds the combined forecast for a single metric along with
// the four raw method outputs and their dispersion. Std is the population
// standard deviation of the unweighted method outputs, used downstream as a
// rough uncertainty band rather than a calibrated interval.
type EnsembleResult struct {
	Ensemble             float64 `json:"ensemble"`
	Linear               float64 `json:"linear"`
	Polynomial           float64 `json:"polynomial"`
	ExponentialSmoothing float64 `json:"exponential_smoothing"`
	CAGR                 float64 `json:"cagr"`
	Std                  float64 `json:"std"`
}

// Validate checks the non-negativity invariant: market sizes and
// installation counts cannot be negative, and neither can a dispersion.
func (r EnsembleResult) Validate() error {
	for _, v := range []float64{r.Ensemble, r.Linear, r.Polynomial, r.ExponentialSmoothing, r.CAGR, r.Std} {
		if math.IsNaN(v) {
			return errors.New("ensemble result contains NaN")
		}
		if v < 0 {
			return errors.New("ensemble result contains a negative value")
		}
	}
	return nil
}

// ProjectionSet maps metric keys to their ensemble results. Built fresh on
// each engine run and consumed read-only by reporting and rendering.
type ProjectionSet map[string]EnsembleResult
