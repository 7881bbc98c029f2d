package models

import (
	"errors"
	"math"
	"testing"
)

func TestSeriesValidate(t *testing.T) {
	tests := []struct {
		name    string
		series  Series
		wantErr bool
	}{
		{"valid", Series{{2023, 10}, {2024, 12}}, false},
		{"empty", Series{}, true},
		{"duplicate year", Series{{2024, 10}, {2024, 12}}, true},
		{"decreasing year", Series{{2024, 10}, {2023, 12}}, true},
		{"nan value", Series{{2023, math.NaN()}}, true},
		{"negative value", Series{{2023, -1}}, true},
	}

	for _, tt := range tests {
		err := tt.series.Validate()
		if tt.wantErr && err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
		}
	}
}

func TestNewSeriesLengthMismatch(t *testing.T) {
	_, err := NewSeries([]int{2023, 2024}, []float64{1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSeriesAccessors(t *testing.T) {
	s, err := NewSeries([]int{2022, 2023, 2024}, []float64{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}

	if s.First().Year != 2022 || s.Last().Year != 2024 {
		t.Errorf("First/Last = %d/%d, expected 2022/2024", s.First().Year, s.Last().Year)
	}
	years := s.Years()
	if len(years) != 3 || years[0] != 2022.0 {
		t.Errorf("unexpected Years(): %v", years)
	}
	values := s.Values()
	if len(values) != 3 || values[2] != 3 {
		t.Errorf("unexpected Values(): %v", values)
	}
}

func TestTableAddColumn(t *testing.T) {
	table := NewTable(DatasetGlobal, []int{2023, 2024})

	if err := table.AddColumn("a", []float64{1, 2}); err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}
	if err := table.AddColumn("short", []float64{1}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for length mismatch, got %v", err)
	}
	if err := table.AddColumn("a", []float64{3, 4}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for duplicate column, got %v", err)
	}
}

func TestTableColumnOrder(t *testing.T) {
	table := NewTable(DatasetGlobal, []int{2024})
	for _, name := range []string{"c", "a", "b"} {
		if err := table.AddColumn(name, []float64{1}); err != nil {
			t.Fatal(err)
		}
	}

	cols := table.Columns()
	want := []string{"c", "a", "b"}
	for i := range want {
		if cols[i] != want[i] {
			t.Fatalf("Columns() = %v, expected insertion order %v", cols, want)
		}
	}
}

func TestTableValidate(t *testing.T) {
	table := NewTable(DatasetGlobal, []int{2023, 2024})
	if err := table.AddColumn("a", []float64{1, math.NaN()}); err != nil {
		t.Fatal(err)
	}

	nanCells, err := table.Validate([]string{"a"})
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if nanCells != 1 {
		t.Errorf("nanCells = %d, expected 1", nanCells)
	}

	if _, err := table.Validate([]string{"a", "missing"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for missing column, got %v", err)
	}

	empty := NewTable(DatasetGlobal, nil)
	if _, err := empty.Validate(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty table, got %v", err)
	}
}

func TestRegistryShape(t *testing.T) {
	if len(Registry) != 15 {
		t.Fatalf("registry has %d metrics, expected 15", len(Registry))
	}

	seen := make(map[string]bool, len(Registry))
	for _, m := range Registry {
		if seen[m.Key] {
			t.Errorf("duplicate metric key %q", m.Key)
		}
		seen[m.Key] = true
	}

	counts := map[string]int{
		DatasetGlobal:        5,
		DatasetRegional:      6,
		DatasetInstallations: 4,
	}
	for dataset, want := range counts {
		if got := len(MetricsFor(dataset)); got != want {
			t.Errorf("MetricsFor(%s) returned %d metrics, expected %d", dataset, got, want)
		}
		if got := len(RequiredColumns(dataset)); got != want {
			t.Errorf("RequiredColumns(%s) returned %d columns, expected %d", dataset, got, want)
		}
	}
}

func TestLabelFor(t *testing.T) {
	if got := LabelFor("china"); got != "China" {
		t.Errorf("LabelFor(china) = %q", got)
	}
	if got := LabelFor("unknown_key"); got != "unknown_key" {
		t.Errorf("LabelFor(unknown_key) = %q, expected key echoed back", got)
	}
}

func TestEnsembleResultValidate(t *testing.T) {
	valid := EnsembleResult{Ensemble: 1, Linear: 1, Polynomial: 1, ExponentialSmoothing: 1, CAGR: 1, Std: 0}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := (EnsembleResult{Linear: -1}).Validate(); err == nil {
		t.Error("expected error for negative value")
	}
	if err := (EnsembleResult{Std: math.NaN()}).Validate(); err == nil {
		t.Error("expected error for NaN value")
	}
}
