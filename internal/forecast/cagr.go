package forecast

import (
	"math"

	"github.com/marketscope/roboscope/internal/models"
)

// CAGR projects forward using the compound annual growth rate implied by
// the first and last historical points:
//
//	rate = (last/first)^(1/(lastYear−firstYear)) − 1
//	forecast = last × (1+rate)^(targetYear−lastYear)
//
// A non-positive first value makes the rate undefined; the method then
// assumes zero growth and returns the last value unchanged. This is the one
// CAGR formula in the codebase; reporting and dashboards reuse its output
// rather than recomputing their own variant.
type CAGR struct{}

// Name returns the method name.
func (CAGR) Name() string { return MethodCAGR }

// Project compounds the historical growth rate out to the target year.
func (CAGR) Project(s models.Series, targetYear int) float64 {
	switch s.Len() {
	case 0:
		return 0
	case 1:
		return clamp(s.Last().Value)
	}

	first := s.First()
	last := s.Last()

	span := last.Year - first.Year
	if span <= 0 || first.Value <= 0 {
		return clamp(last.Value)
	}

	rate := math.Pow(last.Value/first.Value, 1/float64(span)) - 1
	ahead := targetYear - last.Year
	return clamp(last.Value * math.Pow(1+rate, float64(ahead)))
}
