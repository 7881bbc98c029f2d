package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marketscope/roboscope/internal/dataset"
	"github.com/marketscope/roboscope/internal/models"
)

func testSet() models.ProjectionSet {
	set := make(models.ProjectionSet, len(models.Registry))
	for i, m := range models.Registry {
		v := float64(20 * (i + 1))
		set[m.Key] = models.EnsembleResult{Ensemble: v, Linear: v, Polynomial: v, ExponentialSmoothing: v, CAGR: v, Std: 1}
	}
	return set
}

func TestRendererAll(t *testing.T) {
	bundle, err := dataset.Historical()
	if err != nil {
		t.Fatalf("Historical failed: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "figures")
	r := NewRenderer(dir, bundle, testSet(), 2026)
	if err := r.All(); err != nil {
		t.Fatalf("All failed: %v", err)
	}

	for _, name := range []string{
		"global_market_trend.png",
		"regional_comparison.png",
		"segment_breakdown.png",
		"china_market_analysis.png",
	} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing chart %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("chart %s is empty", name)
		}
	}
}
