// Package forecast implements the ensemble projection engine: four
// independent trend-extrapolation methods (linear regression, polynomial
// regression, exponential smoothing, CAGR projection) combined by a fixed
// weight vector into a single forecast per metric, with the population
// standard deviation of the raw method outputs as a dispersion measure.
//
// Methods are deliberately forgiving: degenerate inputs (single points, a
// non-positive first value, an unsolvable fit) fall back to the last known
// value rather than failing, because the inputs are controlled historical
// data and an available forecast beats a strict error. Every output is
// clamped to be non-negative; market sizes and installation counts cannot
// go below zero.
package forecast

import (
	"math"

	"github.com/marketscope/roboscope/internal/models"
)

// Method names, used as ensemble weight keys and output labels.
const (
	MethodLinear               = "linear"
	MethodPolynomial           = "polynomial"
	MethodExponentialSmoothing = "exponential_smoothing"
	MethodCAGR                 = "cagr"
)

// Method is a single stateless trend-extrapolation strategy. Project takes a
// validated historical series and a target year and returns a non-negative
// point forecast.
type Method interface {
	Name() string
	Project(s models.Series, targetYear int) float64
}

// clamp forces a forecast into the physically valid range.
func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
