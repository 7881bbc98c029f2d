package forecast

import (
	"fmt"
	"math"

	"github.com/marketscope/roboscope/internal/dataset"
	"github.com/marketscope/roboscope/internal/logger"
	"github.com/marketscope/roboscope/internal/models"
)

// Weights is the fixed ensemble weight vector, indexed by method.
type Weights struct {
	Linear               float64
	Polynomial           float64
	ExponentialSmoothing float64
	CAGR                 float64
}

// Params is the immutable engine configuration. It is passed in explicitly
// so tests can vary parameters without touching process-wide state.
type Params struct {
	TargetYear       int
	Alpha            float64
	SmoothingPeriods int
	PolynomialDegree int
	Weights          Weights
}

// DefaultParams returns the production parameters: 2026 target, α=0.3,
// two smoothing periods (matching the 2024→2026 gap), degree-2 polynomial,
// and weights 0.2/0.3/0.2/0.3.
func DefaultParams() Params {
	return Params{
		TargetYear:       2026,
		Alpha:            0.3,
		SmoothingPeriods: 2,
		PolynomialDegree: 2,
		Weights: Weights{
			Linear:               0.2,
			Polynomial:           0.3,
			ExponentialSmoothing: 0.2,
			CAGR:                 0.3,
		},
	}
}

// Engine runs the four projection methods over historical series and
// combines them. It holds no per-call state; the same engine can project
// any number of metrics.
type Engine struct {
	params  Params
	methods []Method
	weights []float64
}

// NewEngine creates an engine for the given parameters.
func NewEngine(params Params) *Engine {
	return &Engine{
		params: params,
		methods: []Method{
			Linear{},
			Polynomial{Degree: params.PolynomialDegree},
			ExponentialSmoothing{Alpha: params.Alpha, Periods: params.SmoothingPeriods},
			CAGR{},
		},
		weights: []float64{
			params.Weights.Linear,
			params.Weights.Polynomial,
			params.Weights.ExponentialSmoothing,
			params.Weights.CAGR,
		},
	}
}

// Params returns the engine configuration.
func (e *Engine) Params() Params { return e.params }

// Ensemble runs all four methods on one historical series and combines them
// into a weighted mean with a population-standard-deviation dispersion.
// An empty series is the one fatal input error; everything else is handled
// by the methods' own fallbacks.
func (e *Engine) Ensemble(s models.Series) (models.EnsembleResult, error) {
	if s.Len() == 0 {
		return models.EnsembleResult{}, fmt.Errorf("%w: cannot project an empty series", models.ErrInvalidInput)
	}

	outputs := make([]float64, len(e.methods))
	for i, method := range e.methods {
		outputs[i] = method.Project(s, e.params.TargetYear)
	}

	weightSum := 0.0
	weighted := 0.0
	for i, v := range outputs {
		weighted += v * e.weights[i]
		weightSum += e.weights[i]
	}
	if weightSum == 0 {
		return models.EnsembleResult{}, fmt.Errorf("%w: ensemble weights sum to zero", models.ErrInvalidInput)
	}
	ensemble := weighted / weightSum

	return models.EnsembleResult{
		Ensemble:             ensemble,
		Linear:               outputs[0],
		Polynomial:           outputs[1],
		ExponentialSmoothing: outputs[2],
		CAGR:                 outputs[3],
		Std:                  popStdDev(outputs),
	}, nil
}

// ProjectAll projects every metric in the registry from the given bundle and
// returns the full projection set. Metrics are independent; a result is
// computed for all of them even when a caller only consumes a subset.
func (e *Engine) ProjectAll(bundle *dataset.Bundle) (models.ProjectionSet, error) {
	set := make(models.ProjectionSet, len(models.Registry))

	for _, metric := range models.Registry {
		table := bundle.Table(metric.Dataset)
		if table == nil {
			return nil, fmt.Errorf("%w: bundle has no %s dataset", models.ErrInvalidInput, metric.Dataset)
		}
		series, err := table.Series(metric.Key)
		if err != nil {
			return nil, fmt.Errorf("metric %s: %w", metric.Key, err)
		}
		result, err := e.Ensemble(series)
		if err != nil {
			return nil, fmt.Errorf("metric %s: %w", metric.Key, err)
		}
		logger.Debug("Projected %s to %d: %.2f (std %.2f)", metric.Key, e.params.TargetYear, result.Ensemble, result.Std)
		set[metric.Key] = result
	}

	logger.Info("Projected %d metrics to %d", len(set), e.params.TargetYear)
	return set, nil
}

// popStdDev is the population standard deviation (divide by n, not n−1).
// gonum's stat.StdDev is the sample estimator, so this is computed directly.
func popStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(values)))
}
