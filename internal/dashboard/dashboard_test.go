package dashboard

import (
	"os"
	"strings"
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

func TestDashboards(t *testing.T) {
	bundle, err := dataset.Historical()
	if err != nil {
		t.Fatalf("Historical failed: %v", err)
	}

	dir := t.TempDir()
	b := NewBuilder(dir, bundle, testSet(), 2026, 1600)

	compPath, err := b.Comprehensive()
	if err != nil {
		t.Fatalf("Comprehensive failed: %v", err)
	}
	execPath, err := b.Executive()
	if err != nil {
		t.Fatalf("Executive failed: %v", err)
	}

	for _, path := range []string{compPath, execPath} {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading %s: %v", path, err)
		}
		html := string(data)
		if !strings.Contains(html, "echarts") {
			t.Errorf("%s does not embed echarts", path)
		}
		if !strings.Contains(html, "Global Market Size") {
			t.Errorf("%s missing headline chart", path)
		}
	}

	comp, err := os.ReadFile(compPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Projection Method Comparison",
		"Regional Market Share",
		"Segment Trends",
		"China Market Growth",
	} {
		if !strings.Contains(string(comp), want) {
			t.Errorf("comprehensive dashboard missing %q", want)
		}
	}
}

func TestChartHeightFloor(t *testing.T) {
	b := NewBuilder(t.TempDir(), nil, nil, 2026, 600)
	if got := b.chartHeight(3); got != 400 {
		t.Errorf("chartHeight = %d, expected floor of 400", got)
	}
}
