package forecast

import (
	"errors"
	"math"
	"testing"

	"github.com/marketscope/roboscope/internal/dataset"
	"github.com/marketscope/roboscope/internal/models"
)

func mustSeries(t *testing.T, years []int, values []float64) models.Series {
	t.Helper()
	s, err := models.NewSeries(years, values)
	if err != nil {
		t.Fatalf("NewSeries failed: %v", err)
	}
	return s
}

func within(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, expected %v (tolerance %v)", name, got, want, tol)
	}
}

func TestLinearExactLine(t *testing.T) {
	// value = 10 + 2·(year−2020), so 2026 must land on 22
	s := mustSeries(t,
		[]int{2020, 2021, 2022, 2023, 2024},
		[]float64{10, 12, 14, 16, 18},
	)

	got := Linear{}.Project(s, 2026)
	within(t, "Linear.Project", got, 22, 1e-6)
}

func TestLinearSinglePoint(t *testing.T) {
	s := mustSeries(t, []int{2024}, []float64{42.5})
	if got := (Linear{}).Project(s, 2026); got != 42.5 {
		t.Errorf("single-point projection = %v, expected last value 42.5", got)
	}
}

func TestLinearClampsNegative(t *testing.T) {
	// Steep decline extrapolates below zero; the forecast must not.
	s := mustSeries(t, []int{2020, 2021}, []float64{10, 5})
	if got := (Linear{}).Project(s, 2026); got != 0 {
		t.Errorf("declining projection = %v, expected clamp to 0", got)
	}
}

func TestPolynomialReproducesLine(t *testing.T) {
	s := mustSeries(t,
		[]int{2020, 2021, 2022, 2023, 2024},
		[]float64{10, 12, 14, 16, 18},
	)

	got := Polynomial{Degree: 2}.Project(s, 2026)
	within(t, "Polynomial.Project", got, 22, 1e-3)
}

func TestPolynomialShortSeries(t *testing.T) {
	// Two points cannot support a quadratic; the degree drops to 1.
	s := mustSeries(t, []int{2023, 2024}, []float64{10, 14})
	got := Polynomial{Degree: 2}.Project(s, 2026)
	within(t, "Polynomial.Project", got, 22, 1e-3)
}

func TestExponentialSmoothingTwoPoints(t *testing.T) {
	// α=0.3: smoothed = [10, 13], trend = 3, two periods ahead = 19
	s := mustSeries(t, []int{2023, 2024}, []float64{10, 20})
	got := ExponentialSmoothing{Alpha: 0.3, Periods: 2}.Project(s, 2026)
	within(t, "ExponentialSmoothing.Project", got, 19, 1e-9)
}

func TestExponentialSmoothingSinglePoint(t *testing.T) {
	s := mustSeries(t, []int{2024}, []float64{7})
	got := ExponentialSmoothing{Alpha: 0.3, Periods: 2}.Project(s, 2026)
	within(t, "ExponentialSmoothing.Project", got, 7, 1e-12)
}

func TestCAGRCompounds(t *testing.T) {
	// 10% implied rate compounded two years past 121 gives 146.41
	s := mustSeries(t, []int{2020, 2021, 2022}, []float64{100, 110, 121})
	got := CAGR{}.Project(s, 2024)
	within(t, "CAGR.Project", got, 146.41, 1e-6)
}

func TestCAGRNonPositiveFirstValue(t *testing.T) {
	s := mustSeries(t, []int{2023, 2024}, []float64{0, 10})
	if got := (CAGR{}).Project(s, 2026); got != 10 {
		t.Errorf("CAGR with zero first value = %v, expected last value 10", got)
	}
}

func TestEnsembleConstantSeries(t *testing.T) {
	// Every method projects a flat series to the same value, so the
	// ensemble equals it and the dispersion is zero.
	s := mustSeries(t,
		[]int{2020, 2021, 2022, 2023, 2024},
		[]float64{50, 50, 50, 50, 50},
	)

	engine := NewEngine(DefaultParams())
	result, err := engine.Ensemble(s)
	if err != nil {
		t.Fatalf("Ensemble failed: %v", err)
	}

	within(t, "Ensemble", result.Ensemble, 50, 1e-6)
	within(t, "Std", result.Std, 0, 1e-6)
	if err := result.Validate(); err != nil {
		t.Errorf("result failed validation: %v", err)
	}
}

func TestEnsembleEmptySeries(t *testing.T) {
	engine := NewEngine(DefaultParams())
	_, err := engine.Ensemble(models.Series{})
	if err == nil {
		t.Fatal("expected error for empty series")
	}
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEnsembleWeighting(t *testing.T) {
	// With all weight on the linear method the ensemble is the linear output.
	params := DefaultParams()
	params.Weights = Weights{Linear: 1}
	engine := NewEngine(params)

	s := mustSeries(t,
		[]int{2020, 2021, 2022, 2023, 2024},
		[]float64{10, 12, 14, 16, 18},
	)
	result, err := engine.Ensemble(s)
	if err != nil {
		t.Fatalf("Ensemble failed: %v", err)
	}
	within(t, "Ensemble", result.Ensemble, result.Linear, 1e-12)
}

func TestProjectAllCoversRegistry(t *testing.T) {
	bundle, err := dataset.Historical()
	if err != nil {
		t.Fatalf("Historical failed: %v", err)
	}

	engine := NewEngine(DefaultParams())
	set, err := engine.ProjectAll(bundle)
	if err != nil {
		t.Fatalf("ProjectAll failed: %v", err)
	}

	if len(set) != len(models.Registry) {
		t.Fatalf("projected %d metrics, expected %d", len(set), len(models.Registry))
	}
	for _, metric := range models.Registry {
		result, ok := set[metric.Key]
		if !ok {
			t.Errorf("missing projection for %s", metric.Key)
			continue
		}
		if err := result.Validate(); err != nil {
			t.Errorf("projection for %s invalid: %v", metric.Key, err)
		}
		if result.Ensemble <= 0 {
			t.Errorf("projection for %s = %v, expected growth above zero", metric.Key, result.Ensemble)
		}
	}
}

func TestProjectAllGlobalExceedsHistory(t *testing.T) {
	// Every historical series grows, so the 2026 headline must exceed the
	// 2024 value.
	bundle, err := dataset.Historical()
	if err != nil {
		t.Fatalf("Historical failed: %v", err)
	}
	series, err := bundle.Global.Series("global_market_size")
	if err != nil {
		t.Fatalf("Series failed: %v", err)
	}

	engine := NewEngine(DefaultParams())
	set, err := engine.ProjectAll(bundle)
	if err != nil {
		t.Fatalf("ProjectAll failed: %v", err)
	}

	if got := set["global_market_size"].Ensemble; got <= series.Last().Value {
		t.Errorf("2026 projection %v does not exceed 2024 value %v", got, series.Last().Value)
	}
}
