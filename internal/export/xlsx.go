package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/marketscope/roboscope/internal/dataset"
	"github.com/marketscope/roboscope/internal/models"
)

// XLSXFileName is the projections workbook written under the processed dir.
const XLSXFileName = "projections_2026.xlsx"

// WriteXLSX writes a workbook with a Projections sheet plus one sheet per
// historical dataset.
func WriteXLSX(dir string, bundle *dataset.Bundle, set models.ProjectionSet, targetYear int) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create processed directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const projSheet = "Projections"
	if err := f.SetSheetName("Sheet1", projSheet); err != nil {
		return "", fmt.Errorf("failed to rename sheet: %w", err)
	}

	header := []interface{}{
		"metric",
		fmt.Sprintf("projection_%d", targetYear),
		"linear",
		"polynomial",
		"exponential_smoothing",
		"cagr",
		"std_deviation",
	}
	if err := writeRow(f, projSheet, 1, header); err != nil {
		return "", err
	}
	for i, metric := range models.Registry {
		result, ok := set[metric.Key]
		if !ok {
			return "", fmt.Errorf("%w: projection set missing metric %q", models.ErrInvalidInput, metric.Key)
		}
		row := []interface{}{
			metric.Key,
			result.Ensemble,
			result.Linear,
			result.Polynomial,
			result.ExponentialSmoothing,
			result.CAGR,
			result.Std,
		}
		if err := writeRow(f, projSheet, i+2, row); err != nil {
			return "", err
		}
	}

	for _, table := range []*models.Table{bundle.Global, bundle.Regional, bundle.Installations} {
		if err := writeTableSheet(f, table); err != nil {
			return "", err
		}
	}

	path := filepath.Join(dir, XLSXFileName)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}

func writeTableSheet(f *excelize.File, table *models.Table) error {
	sheet := sheetName(table.Name())
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	header := make([]interface{}, 0, len(table.Columns())+1)
	header = append(header, "year")
	for _, col := range table.Columns() {
		header = append(header, col)
	}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}

	columns := make([][]float64, 0, len(table.Columns()))
	for _, name := range table.Columns() {
		values, err := table.Column(name)
		if err != nil {
			return err
		}
		columns = append(columns, values)
	}
	for i, year := range table.Years() {
		row := make([]interface{}, 0, len(header))
		row = append(row, year)
		for _, values := range columns {
			row = append(row, values[i])
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}

func sheetName(dataset string) string {
	switch dataset {
	case models.DatasetGlobal:
		return "Global Market"
	case models.DatasetRegional:
		return "Regional Market"
	case models.DatasetInstallations:
		return "Installations"
	}
	return dataset
}
