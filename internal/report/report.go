// Package report renders the projection results as a plain-text report:
// headline market size with the per-method breakdown, regional and segment
// shares, installation counts, and key insights.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marketscope/roboscope/internal/models"
)

// FileName is the report file written under the reports directory.
const FileName = "projection_report_2026.txt"

const lineWidth = 80

// segmentKeys is the global dataset minus its headline total.
func segmentKeys() []string {
	var keys []string
	for _, m := range models.MetricsFor(models.DatasetGlobal) {
		if m.Key != "global_market_size" {
			keys = append(keys, m.Key)
		}
	}
	return keys
}

func regionKeys() []string {
	return models.RequiredColumns(models.DatasetRegional)
}

// Build renders the full projection report. The run ID ties the report to
// the matching exports from the same invocation.
func Build(set models.ProjectionSet, targetYear int, generatedAt time.Time, runID string) string {
	var b strings.Builder
	rule := strings.Repeat("=", lineWidth)
	thin := strings.Repeat("-", lineWidth)

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "ROBOTICS INDUSTRY PROJECTIONS FOR %d\n", targetYear)
	fmt.Fprintf(&b, "%s\n\n", rule)

	global := set["global_market_size"]
	fmt.Fprintf(&b, "GLOBAL MARKET SIZE\n%s\n", thin)
	fmt.Fprintf(&b, "Projected Market Size (%d): $%.2f billion USD\n", targetYear, global.Ensemble)
	fmt.Fprintf(&b, "  - Linear Model: $%.2f billion\n", global.Linear)
	fmt.Fprintf(&b, "  - Polynomial Model: $%.2f billion\n", global.Polynomial)
	fmt.Fprintf(&b, "  - Exponential Smoothing: $%.2f billion\n", global.ExponentialSmoothing)
	fmt.Fprintf(&b, "  - CAGR Projection: $%.2f billion\n", global.CAGR)
	fmt.Fprintf(&b, "  - Standard Deviation: $%.2f billion\n\n", global.Std)

	fmt.Fprintf(&b, "REGIONAL MARKET BREAKDOWN (%d)\n%s\n", targetYear, thin)
	totalRegional := 0.0
	for _, key := range regionKeys() {
		totalRegional += set[key].Ensemble
	}
	for _, key := range regionKeys() {
		value := set[key].Ensemble
		share := 0.0
		if totalRegional > 0 {
			share = value / totalRegional * 100
		}
		fmt.Fprintf(&b, "%-20s: $%8.2f billion (%5.2f%%)\n", models.LabelFor(key), value, share)
	}
	fmt.Fprintf(&b, "\nTotal Regional: $%.2f billion\n\n", totalRegional)

	fmt.Fprintf(&b, "INDUSTRY SEGMENT BREAKDOWN (%d)\n%s\n", targetYear, thin)
	totalSegments := 0.0
	for _, key := range segmentKeys() {
		totalSegments += set[key].Ensemble
	}
	for _, key := range segmentKeys() {
		value := set[key].Ensemble
		share := 0.0
		if totalSegments > 0 {
			share = value / totalSegments * 100
		}
		fmt.Fprintf(&b, "%-25s: $%8.2f billion (%5.2f%%)\n", models.LabelFor(key), value, share)
	}
	fmt.Fprintf(&b, "\nTotal Segments: $%.2f billion\n\n", totalSegments)

	fmt.Fprintf(&b, "ROBOT INSTALLATIONS (%d)\n%s\n", targetYear, thin)
	globalInst := set["global_installations"]
	chinaInst := set["china_installations"]
	chinaInstShare := 0.0
	if globalInst.Ensemble > 0 {
		chinaInstShare = chinaInst.Ensemble / globalInst.Ensemble * 100
	}
	fmt.Fprintf(&b, "Global Installations: %.1f thousand units\n", globalInst.Ensemble)
	fmt.Fprintf(&b, "China Installations: %.1f thousand units (%.1f%%)\n", chinaInst.Ensemble, chinaInstShare)
	fmt.Fprintf(&b, "Industrial Installations: %.1f thousand units\n", set["industrial_installations"].Ensemble)
	fmt.Fprintf(&b, "Service Installations: %.1f thousand units\n\n", set["service_installations"].Ensemble)

	fmt.Fprintf(&b, "KEY INSIGHTS\n%s\n", thin)
	chinaShareGlobal := 0.0
	if global.Ensemble > 0 {
		chinaShareGlobal = set["china"].Ensemble / global.Ensemble * 100
	}
	fmt.Fprintf(&b, "1. China will account for approximately %.1f%% of global robotics market\n", chinaShareGlobal)
	fmt.Fprintf(&b, "2. Service robotics segment shows fastest growth potential\n")
	fmt.Fprintf(&b, "3. Industrial robotics remains the dominant segment\n")
	fmt.Fprintf(&b, "4. Global market expected to reach $%.2f billion by %d\n\n", global.Ensemble, targetYear)

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Report generated on: %s (run %s)\n", generatedAt.Format("2006-01-02 15:04:05"), runID)
	fmt.Fprintf(&b, "%s\n", rule)

	return b.String()
}

// Summary renders the short executive summary used for notifications.
func Summary(set models.ProjectionSet, targetYear int) string {
	global := set["global_market_size"]
	china := set["china"]
	chinaShare := 0.0
	if global.Ensemble > 0 {
		chinaShare = china.Ensemble / global.Ensemble * 100
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Robotics Industry Outlook %d\n", targetYear)
	fmt.Fprintf(&b, "Global market: $%.1fB (±$%.1fB)\n", global.Ensemble, global.Std)
	fmt.Fprintf(&b, "China: $%.1fB (%.1f%% of global)\n", china.Ensemble, chinaShare)
	fmt.Fprintf(&b, "Installations: %.0fk units globally\n", set["global_installations"].Ensemble)
	return b.String()
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.New().String()
}

// Save writes the report into dir, creating it if needed, and returns the
// written path.
func Save(dir string, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
