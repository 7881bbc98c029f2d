// Package export writes the computed projection set to processed-data
// files: a flat CSV table and an Excel workbook that also carries the
// historical datasets.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/marketscope/roboscope/internal/models"
)

// CSVFileName is the projections table written under the processed dir.
const CSVFileName = "projections_2026.csv"

// WriteCSV writes one row per registry metric in registry order. Column
// layout: metric, projection_<year>, linear, polynomial,
// exponential_smoothing, cagr, std_deviation.
func WriteCSV(dir string, set models.ProjectionSet, targetYear int) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create processed directory: %w", err)
	}

	path := filepath.Join(dir, CSVFileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create projections file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"metric",
		fmt.Sprintf("projection_%d", targetYear),
		"linear",
		"polynomial",
		"exponential_smoothing",
		"cagr",
		"std_deviation",
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	for _, metric := range models.Registry {
		result, ok := set[metric.Key]
		if !ok {
			return "", fmt.Errorf("%w: projection set missing metric %q", models.ErrInvalidInput, metric.Key)
		}
		record := []string{
			metric.Key,
			formatValue(result.Ensemble),
			formatValue(result.Linear),
			formatValue(result.Polynomial),
			formatValue(result.ExponentialSmoothing),
			formatValue(result.CAGR),
			formatValue(result.Std),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write row for %s: %w", metric.Key, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush projections file: %w", err)
	}
	return path, nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
