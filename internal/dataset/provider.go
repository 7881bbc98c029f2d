// Package dataset supplies the fixed historical robotics-industry time
// series: global market size by segment, regional breakdown, and robot
// installation counts, all annual from 2015 through 2024.
//
// The data is generated deterministically and persisted as one CSV file per
// dataset. Load prefers the persisted files and falls back to regeneration
// when they are missing. Writes are atomic (tmp file + rename) so a crash
// never leaves a half-written table behind.
package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/marketscope/roboscope/internal/logger"
	"github.com/marketscope/roboscope/internal/models"
)

// Persisted file names, one per dataset.
const (
	GlobalFile        = "global_market_data.csv"
	RegionalFile      = "regional_market_data.csv"
	InstallationsFile = "installations_data.csv"
)

// Bundle groups the three historical tables handed to the engine.
type Bundle struct {
	Global        *models.Table
	Regional      *models.Table
	Installations *models.Table
}

// Table returns the table for a dataset name, or nil for an unknown name.
func (b *Bundle) Table(dataset string) *models.Table {
	switch dataset {
	case models.DatasetGlobal:
		return b.Global
	case models.DatasetRegional:
		return b.Regional
	case models.DatasetInstallations:
		return b.Installations
	}
	return nil
}

// Provider generates, persists, and loads the historical datasets.
type Provider struct {
	rawDir string
}

// New creates a Provider persisting to the given raw-data directory.
func New(rawDir string) *Provider {
	return &Provider{rawDir: rawDir}
}

// Generate builds the fixed historical tables and persists each one.
// Re-running it overwrites the files with identical contents.
func (p *Provider) Generate() (*Bundle, error) {
	bundle, err := Historical()
	if err != nil {
		return nil, err
	}

	for file, table := range map[string]*models.Table{
		GlobalFile:        bundle.Global,
		RegionalFile:      bundle.Regional,
		InstallationsFile: bundle.Installations,
	} {
		if err := p.saveTable(file, table); err != nil {
			return nil, fmt.Errorf("failed to persist %s dataset: %w", table.Name(), err)
		}
	}

	logger.Info("Historical data generated and saved to %s", p.rawDir)
	return bundle, nil
}

// Load reads the persisted tables, validating shape and required columns.
// When any file is missing it falls back to Generate. NaN cells are warned
// about, not rejected.
func (p *Provider) Load() (*Bundle, error) {
	files := []struct {
		file    string
		dataset string
	}{
		{GlobalFile, models.DatasetGlobal},
		{RegionalFile, models.DatasetRegional},
		{InstallationsFile, models.DatasetInstallations},
	}

	for _, f := range files {
		if _, err := os.Stat(filepath.Join(p.rawDir, f.file)); os.IsNotExist(err) {
			logger.Info("Data file %s not found, generating historical data", f.file)
			bundle, genErr := p.Generate()
			if genErr != nil {
				return nil, fmt.Errorf("%w: no persisted data and generation failed: %v", models.ErrNotFound, genErr)
			}
			return bundle, nil
		}
	}

	bundle := &Bundle{}
	for _, f := range files {
		table, err := p.readTable(f.file, f.dataset)
		if err != nil {
			return nil, err
		}
		switch f.dataset {
		case models.DatasetGlobal:
			bundle.Global = table
		case models.DatasetRegional:
			bundle.Regional = table
		case models.DatasetInstallations:
			bundle.Installations = table
		}
	}
	return bundle, nil
}

// saveTable writes a table as CSV using an atomic tmp+rename write.
func (p *Provider) saveTable(file string, table *models.Table) error {
	if err := os.MkdirAll(p.rawDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	path := filepath.Join(p.rawDir, file)
	tempPath := path + ".tmp"

	f, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	w := csv.NewWriter(f)
	header := append([]string{"year"}, table.Columns()...)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}

	years := table.Years()
	columns := make([][]float64, 0, len(table.Columns()))
	for _, name := range table.Columns() {
		values, err := table.Column(name)
		if err != nil {
			f.Close()
			return err
		}
		columns = append(columns, values)
	}

	for row, year := range years {
		record := make([]string, 0, len(header))
		record = append(record, strconv.Itoa(year))
		for _, values := range columns {
			record = append(record, strconv.FormatFloat(values[row], 'f', -1, 64))
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// readTable parses a persisted CSV into a Table and validates it against the
// dataset's required columns.
func (p *Provider) readTable(file string, dataset string) (*models.Table, error) {
	path := filepath.Join(p.rawDir, file)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: %s has no data rows", models.ErrInvalidInput, file)
	}

	header := records[0]
	if len(header) < 2 || header[0] != "year" {
		return nil, fmt.Errorf("%w: %s must start with a year column", models.ErrInvalidInput, file)
	}

	rows := records[1:]
	years := make([]int, len(rows))
	for i, record := range rows {
		if len(record) != len(header) {
			return nil, fmt.Errorf("%w: %s row %d has %d fields, want %d", models.ErrInvalidInput, file, i+1, len(record), len(header))
		}
		year, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d has invalid year %q", models.ErrInvalidInput, file, i+1, record[0])
		}
		years[i] = year
	}

	table := models.NewTable(dataset, years)
	for col := 1; col < len(header); col++ {
		values := make([]float64, len(rows))
		for i, record := range rows {
			v, err := strconv.ParseFloat(record[col], 64)
			if err != nil {
				values[i] = math.NaN()
				continue
			}
			values[i] = v
		}
		if err := table.AddColumn(header[col], values); err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
	}

	nanCells, err := table.Validate(models.RequiredColumns(dataset))
	if err != nil {
		return nil, err
	}
	if nanCells > 0 {
		logger.Warn("Dataset %s contains %d null value(s)", dataset, nanCells)
	}
	return table, nil
}
