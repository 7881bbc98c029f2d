package forecast

import (
	"github.com/marketscope/roboscope/internal/models"
)

// ExponentialSmoothing computes a simple exponentially smoothed series
// S[0] = v[0], S[i] = α·v[i] + (1−α)·S[i−1], then extrapolates Periods
// steps ahead by adding Periods × (S[last] − S[last−1]) to S[last].
//
// The additive-trend extrapolation is kept as-is even though it grows
// linearly while the CAGR method compounds: the two are different methods
// by design, and the ensemble weights account for the difference.
type ExponentialSmoothing struct {
	Alpha   float64
	Periods int
}

// Name returns the method name.
func (ExponentialSmoothing) Name() string { return MethodExponentialSmoothing }

// Project extrapolates the smoothed series. The target year is unused: the
// look-ahead is fixed by Periods, which is configured to match the gap
// between the last historical year and the target year.
func (m ExponentialSmoothing) Project(s models.Series, _ int) float64 {
	if s.Len() == 0 {
		return 0
	}

	alpha := m.Alpha
	if alpha <= 0 || alpha > 1 {
		alpha = 0.3
	}
	periods := m.Periods
	if periods < 1 {
		periods = 2
	}

	values := s.Values()
	smoothed := make([]float64, len(values))
	smoothed[0] = values[0]
	for i := 1; i < len(values); i++ {
		smoothed[i] = alpha*values[i] + (1-alpha)*smoothed[i-1]
	}

	trend := 0.0
	if len(smoothed) > 1 {
		trend = smoothed[len(smoothed)-1] - smoothed[len(smoothed)-2]
	}

	return clamp(smoothed[len(smoothed)-1] + trend*float64(periods))
}
