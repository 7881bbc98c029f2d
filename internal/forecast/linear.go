package forecast

import (
	"gonum.org/v1/gonum/stat"

	"github.com/marketscope/roboscope/internal/models"
)

// Linear fits a first-degree least-squares line value = a + b·year over the
// whole history and evaluates it at the target year.
type Linear struct{}

// Name returns the method name.
func (Linear) Name() string { return MethodLinear }

// Project evaluates the fitted line at the target year.
func (Linear) Project(s models.Series, targetYear int) float64 {
	switch s.Len() {
	case 0:
		return 0
	case 1:
		return clamp(s.Last().Value)
	}

	intercept, slope := stat.LinearRegression(s.Years(), s.Values(), nil, false)
	return clamp(intercept + slope*float64(targetYear))
}
