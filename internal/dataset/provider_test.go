package dataset

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/marketscope/roboscope/internal/models"
)

func TestGenerateDeterministic(t *testing.T) {
	dir := t.TempDir()
	p := New(dir)

	if _, err := p.Generate(); err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}

	files := []string{GlobalFile, RegionalFile, InstallationsFile}
	first := make(map[string][]byte, len(files))
	for _, file := range files {
		data, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			t.Fatalf("reading %s: %v", file, err)
		}
		first[file] = data
	}

	if _, err := p.Generate(); err != nil {
		t.Fatalf("second Generate failed: %v", err)
	}
	for _, file := range files {
		data, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			t.Fatalf("reading %s: %v", file, err)
		}
		if !bytes.Equal(first[file], data) {
			t.Errorf("%s changed between runs", file)
		}
	}
}

func TestLoadFallsBackToGenerate(t *testing.T) {
	dir := t.TempDir()
	p := New(dir)

	bundle, err := p.Load()
	if err != nil {
		t.Fatalf("Load on empty dir failed: %v", err)
	}
	if bundle.Global == nil || bundle.Regional == nil || bundle.Installations == nil {
		t.Fatal("Load returned incomplete bundle")
	}

	// The fallback must also persist the files.
	for _, file := range []string{GlobalFile, RegionalFile, InstallationsFile} {
		if _, err := os.Stat(filepath.Join(dir, file)); err != nil {
			t.Errorf("expected %s to be written: %v", file, err)
		}
	}
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := New(dir)

	if _, err := p.Generate(); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	loaded, err := p.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	reference, err := Historical()
	if err != nil {
		t.Fatalf("Historical failed: %v", err)
	}

	want, err := reference.Global.Column("global_market_size")
	if err != nil {
		t.Fatal(err)
	}
	got, err := loaded.Global.Column("global_market_size")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d rows, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %v, expected %v", i, got[i], want[i])
		}
	}
}

func TestLoadRejectsMissingColumn(t *testing.T) {
	dir := t.TempDir()
	p := New(dir)

	if _, err := p.Generate(); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	bad := "year,unexpected\n2023,1.0\n2024,2.0\n"
	if err := os.WriteFile(filepath.Join(dir, GlobalFile), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := p.Load()
	if err == nil {
		t.Fatal("expected error for missing required column")
	}
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLoadToleratesNullCells(t *testing.T) {
	dir := t.TempDir()
	p := New(dir)

	if _, err := p.Generate(); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Blank a single cell; the load must warn, not fail.
	data, err := os.ReadFile(filepath.Join(dir, InstallationsFile))
	if err != nil {
		t.Fatal(err)
	}
	corrupted := bytes.Replace(data, []byte("254"), []byte(""), 1)
	if err := os.WriteFile(filepath.Join(dir, InstallationsFile), corrupted, 0o644); err != nil {
		t.Fatal(err)
	}

	bundle, err := p.Load()
	if err != nil {
		t.Fatalf("Load failed on null cell: %v", err)
	}
	values, err := bundle.Installations.Column("global_installations")
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(values[0]) {
		t.Errorf("blank cell loaded as %v, expected NaN", values[0])
	}
}

func TestGrowthRates(t *testing.T) {
	table := models.NewTable(models.DatasetGlobal, []int{2023, 2024})
	if err := table.AddColumn("metric", []float64{100, 110}); err != nil {
		t.Fatal(err)
	}

	g, err := GrowthRates(table, "metric")
	if err != nil {
		t.Fatalf("GrowthRates failed: %v", err)
	}

	if !math.IsNaN(g.YoY[0]) {
		t.Errorf("YoY[0] = %v, expected NaN", g.YoY[0])
	}
	if math.Abs(g.YoY[1]-10) > 1e-9 {
		t.Errorf("YoY[1] = %v, expected 10", g.YoY[1])
	}
	if math.Abs(g.CAGR-10) > 1e-9 {
		t.Errorf("CAGR = %v, expected 10", g.CAGR)
	}
}

func TestGrowthRatesDegenerateInputs(t *testing.T) {
	table := models.NewTable(models.DatasetGlobal, []int{2023, 2024})
	if err := table.AddColumn("from_zero", []float64{0, 10}); err != nil {
		t.Fatal(err)
	}

	g, err := GrowthRates(table, "from_zero")
	if err != nil {
		t.Fatalf("GrowthRates failed: %v", err)
	}
	if !math.IsNaN(g.YoY[1]) {
		t.Errorf("YoY over zero base = %v, expected NaN", g.YoY[1])
	}
	if !math.IsNaN(g.CAGR) {
		t.Errorf("CAGR from zero = %v, expected NaN", g.CAGR)
	}

	if _, err := GrowthRates(table, "missing"); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for missing column, got %v", err)
	}

	short := models.NewTable(models.DatasetGlobal, []int{2024})
	if err := short.AddColumn("one_row", []float64{5}); err != nil {
		t.Fatal(err)
	}
	if _, err := GrowthRates(short, "one_row"); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for single row, got %v", err)
	}
}
