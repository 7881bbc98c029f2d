// Package chart renders static PNG charts of the historical data and the
// projections: the global market trend, the regional comparison, the
// segment breakdown, and a China-focused view.
package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/marketscope/roboscope/internal/dataset"
	"github.com/marketscope/roboscope/internal/logger"
	"github.com/marketscope/roboscope/internal/models"
)

// Chart colors, shared with the dashboards.
var (
	colorPrimary   = color.RGBA{R: 0x2E, G: 0x86, B: 0xAB, A: 0xFF}
	colorSecondary = color.RGBA{R: 0xA2, G: 0x3B, B: 0x72, A: 0xFF}
	colorAccent    = color.RGBA{R: 0xF1, G: 0x8F, B: 0x01, A: 0xFF}
	colorSuccess   = color.RGBA{R: 0x06, G: 0xA7, B: 0x7D, A: 0xFF}
	colorChina     = color.RGBA{R: 0xC7, G: 0x3E, B: 0x1D, A: 0xFF}
)

// Renderer draws all charts for one projection run.
type Renderer struct {
	figDir     string
	bundle     *dataset.Bundle
	set        models.ProjectionSet
	targetYear int
}

// NewRenderer creates a Renderer writing PNGs into figDir.
func NewRenderer(figDir string, bundle *dataset.Bundle, set models.ProjectionSet, targetYear int) *Renderer {
	return &Renderer{figDir: figDir, bundle: bundle, set: set, targetYear: targetYear}
}

// All renders every chart.
func (r *Renderer) All() error {
	if err := os.MkdirAll(r.figDir, 0o755); err != nil {
		return fmt.Errorf("failed to create figures directory: %w", err)
	}
	charts := []struct {
		name string
		fn   func(string) error
	}{
		{"global_market_trend.png", r.GlobalTrend},
		{"regional_comparison.png", r.RegionalComparison},
		{"segment_breakdown.png", r.SegmentBreakdown},
		{"china_market_analysis.png", r.ChinaFocus},
	}
	for _, c := range charts {
		path := filepath.Join(r.figDir, c.name)
		if err := c.fn(path); err != nil {
			return fmt.Errorf("failed to render %s: %w", c.name, err)
		}
		logger.Info("Saved chart %s", path)
	}
	return nil
}

// GlobalTrend plots the historical global market size with the projected
// point at the target year.
func (r *Renderer) GlobalTrend(path string) error {
	series, err := r.bundle.Global.Series("global_market_size")
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Global Robotics Market Size Trend (%d-%d)", series.First().Year, r.targetYear)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Market Size (Billion USD)"
	p.Add(plotter.NewGrid())

	if err := addTrendWithProjection(p, series, r.set["global_market_size"].Ensemble, r.targetYear, colorPrimary, colorSecondary, "Historical", "Projection"); err != nil {
		return err
	}

	return p.Save(12*vg.Inch, 6*vg.Inch, path)
}

// RegionalComparison plots last-historical-year vs projected market size per
// region as grouped bars.
func (r *Renderer) RegionalComparison(path string) error {
	metrics := models.MetricsFor(models.DatasetRegional)

	lastYear := 0
	current := make(plotter.Values, len(metrics))
	projected := make(plotter.Values, len(metrics))
	names := make([]string, len(metrics))
	for i, m := range metrics {
		series, err := r.bundle.Regional.Series(m.Key)
		if err != nil {
			return err
		}
		lastYear = series.Last().Year
		current[i] = series.Last().Value
		projected[i] = r.set[m.Key].Ensemble
		names[i] = m.Label
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Regional Robotics Market Comparison (%d vs %d)", lastYear, r.targetYear)
	p.Y.Label.Text = "Market Size (Billion USD)"

	barWidth := vg.Points(18)
	currentBars, err := plotter.NewBarChart(current, barWidth)
	if err != nil {
		return err
	}
	currentBars.Color = colorPrimary
	currentBars.Offset = -barWidth / 2

	projectedBars, err := plotter.NewBarChart(projected, barWidth)
	if err != nil {
		return err
	}
	projectedBars.Color = colorSecondary
	projectedBars.Offset = barWidth / 2

	p.Add(currentBars, projectedBars)
	p.Legend.Add(fmt.Sprintf("%d", lastYear), currentBars)
	p.Legend.Add(fmt.Sprintf("%d Projection", r.targetYear), projectedBars)
	p.Legend.Top = true
	p.NominalX(names...)

	return p.Save(14*vg.Inch, 7*vg.Inch, path)
}

// SegmentBreakdown plots the projected market size per industry segment.
func (r *Renderer) SegmentBreakdown(path string) error {
	var names []string
	var values plotter.Values
	for _, m := range models.MetricsFor(models.DatasetGlobal) {
		if m.Key == "global_market_size" {
			continue
		}
		names = append(names, m.Label)
		values = append(values, r.set[m.Key].Ensemble)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Market Size by Segment (%d)", r.targetYear)
	p.Y.Label.Text = "Market Size (Billion USD)"

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return err
	}
	bars.Color = colorAccent
	p.Add(bars)
	p.NominalX(names...)

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}

// ChinaFocus plots China's market value and installation count trends with
// their projections.
func (r *Renderer) ChinaFocus(path string) error {
	market, err := r.bundle.Regional.Series("china")
	if err != nil {
		return err
	}
	installations, err := r.bundle.Installations.Series("china_installations")
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("China Robotics Market Analysis (%d Projections)", r.targetYear)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Billion USD / Thousand Units"
	p.Add(plotter.NewGrid())

	if err := addTrendWithProjection(p, market, r.set["china"].Ensemble, r.targetYear, colorChina, colorChina, "Market (Billion USD)", "Market Projection"); err != nil {
		return err
	}
	if err := addTrendWithProjection(p, installations, r.set["china_installations"].Ensemble, r.targetYear, colorSuccess, colorSuccess, "Installations (Thousand Units)", "Installations Projection"); err != nil {
		return err
	}
	p.Legend.Top = true
	p.Legend.Left = true

	return p.Save(12*vg.Inch, 6*vg.Inch, path)
}

// addTrendWithProjection draws the historical line plus a dashed segment
// from the last historical point to the projected value.
func addTrendWithProjection(p *plot.Plot, series models.Series, projected float64, targetYear int, histColor, projColor color.Color, histLabel, projLabel string) error {
	histXY := make(plotter.XYs, series.Len())
	for i, pt := range series {
		histXY[i].X = float64(pt.Year)
		histXY[i].Y = pt.Value
	}

	histLine, histPoints, err := plotter.NewLinePoints(histXY)
	if err != nil {
		return err
	}
	histLine.Color = histColor
	histLine.Width = vg.Points(2)
	histPoints.Color = histColor

	projXY := plotter.XYs{
		{X: float64(series.Last().Year), Y: series.Last().Value},
		{X: float64(targetYear), Y: projected},
	}
	projLine, projPoints, err := plotter.NewLinePoints(projXY)
	if err != nil {
		return err
	}
	projLine.Color = projColor
	projLine.Width = vg.Points(2)
	projLine.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	projPoints.Color = projColor
	projPoints.Radius = vg.Points(4)

	p.Add(histLine, histPoints, projLine, projPoints)
	p.Legend.Add(histLabel, histLine)
	p.Legend.Add(projLabel, projLine)
	return nil
}
