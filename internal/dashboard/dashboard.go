// Package dashboard renders interactive HTML dashboards from the historical
// data and the projection set. Two variants exist: a comprehensive one with
// every chart, and a condensed executive one for leadership review.
package dashboard

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/marketscope/roboscope/internal/dataset"
	"github.com/marketscope/roboscope/internal/logger"
	"github.com/marketscope/roboscope/internal/models"
)

// Output file names under the figures directory.
const (
	ComprehensiveFileName = "robotics_dashboard_comprehensive.html"
	ExecutiveFileName     = "robotics_dashboard_executive.html"
)

// Builder renders dashboards for one projection run.
type Builder struct {
	figDir     string
	bundle     *dataset.Bundle
	set        models.ProjectionSet
	targetYear int
	height     int
}

// NewBuilder creates a Builder writing HTML files into figDir. height is the
// total dashboard height in pixels, split across chart rows.
func NewBuilder(figDir string, bundle *dataset.Bundle, set models.ProjectionSet, targetYear, height int) *Builder {
	return &Builder{figDir: figDir, bundle: bundle, set: set, targetYear: targetYear, height: height}
}

// Comprehensive renders the full dashboard: global trend, regional
// comparison and share, segment breakdown and trends, the China growth
// line, installations, growth rates, and the per-method comparison for the
// headline metric.
func (b *Builder) Comprehensive() (string, error) {
	chartHeight := b.chartHeight(4)

	trend, err := b.trendChart("global_market_size", b.bundle.Global, "Global Market Size", "Billion USD", chartHeight)
	if err != nil {
		return "", err
	}
	china, err := b.trendChart("china", b.bundle.Regional, "China Market Growth", "Billion USD", chartHeight)
	if err != nil {
		return "", err
	}
	installations, err := b.trendChart("global_installations", b.bundle.Installations, "Global Robot Installations", "Thousand Units", chartHeight)
	if err != nil {
		return "", err
	}
	segmentTrends, err := b.segmentTrendChart(chartHeight)
	if err != nil {
		return "", err
	}
	growth, err := b.growthChart(chartHeight)
	if err != nil {
		return "", err
	}

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Robotics Industry Dashboard %d", b.targetYear)
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		trend,
		b.regionalChart(chartHeight),
		b.regionalShareChart(chartHeight),
		b.segmentChart(chartHeight),
		segmentTrends,
		china,
		installations,
		growth,
		b.methodChart(chartHeight),
	)

	return b.save(page, ComprehensiveFileName)
}

// Executive renders the condensed dashboard: headline KPIs in the chart
// subtitles plus the three charts leadership actually reads.
func (b *Builder) Executive() (string, error) {
	chartHeight := b.chartHeight(2)

	trend, err := b.trendChart("global_market_size", b.bundle.Global, "Global Market Size", "Billion USD", chartHeight)
	if err != nil {
		return "", err
	}

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Robotics Executive Summary %d", b.targetYear)
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		trend,
		b.regionalShareChart(chartHeight),
		b.segmentChart(chartHeight),
	)

	return b.save(page, ExecutiveFileName)
}

func (b *Builder) save(page *components.Page, name string) (string, error) {
	if err := os.MkdirAll(b.figDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create figures directory: %w", err)
	}
	path := filepath.Join(b.figDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create dashboard file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return "", fmt.Errorf("failed to render dashboard: %w", err)
	}
	logger.Info("Saved dashboard %s", path)
	return path, nil
}

// chartHeight splits the configured total height across rows, never below
// 400px per chart.
func (b *Builder) chartHeight(rows int) int {
	h := b.height / rows
	if h < 400 {
		h = 400
	}
	return h
}

func (b *Builder) initOpts(height int) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		Width:  "860px",
		Height: fmt.Sprintf("%dpx", height),
	})
}

// trendChart plots one historical column with the projected point appended
// at the target year. The KPI subtitle carries the projection and the
// historical compound growth rate.
func (b *Builder) trendChart(key string, table *models.Table, title, unit string, height int) (*charts.Line, error) {
	series, err := table.Series(key)
	if err != nil {
		return nil, err
	}
	growth, err := dataset.GrowthRates(table, key)
	if err != nil {
		return nil, err
	}
	result := b.set[key]

	subtitle := fmt.Sprintf("%d projection: %.1f %s", b.targetYear, result.Ensemble, unit)
	if !math.IsNaN(growth.CAGR) {
		subtitle += fmt.Sprintf(" | historical CAGR %.1f%%", growth.CAGR)
	}

	var years []string
	historical := make([]opts.LineData, 0, series.Len()+1)
	projected := make([]opts.LineData, 0, series.Len()+1)
	for _, pt := range series {
		years = append(years, fmt.Sprintf("%d", pt.Year))
		historical = append(historical, opts.LineData{Value: pt.Value})
		projected = append(projected, opts.LineData{Value: nil})
	}
	years = append(years, fmt.Sprintf("%d", b.targetYear))
	historical = append(historical, opts.LineData{Value: nil})
	projected[len(projected)-1] = opts.LineData{Value: series.Last().Value}
	projected = append(projected, opts.LineData{Value: result.Ensemble})

	line := charts.NewLine()
	line.SetGlobalOptions(
		b.initOpts(height),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: unit}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	line.SetXAxis(years).
		AddSeries("Historical", historical).
		AddSeries("Projection", projected,
			charts.WithLineChartOpts(opts.LineChart{ConnectNulls: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}))
	return line, nil
}

// regionalChart compares the last historical year with the projection per
// region.
func (b *Builder) regionalChart(height int) *charts.Bar {
	metrics := models.MetricsFor(models.DatasetRegional)

	lastYear := b.bundle.Regional.Years()[b.bundle.Regional.NumRows()-1]
	var names []string
	var current, projected []opts.BarData
	for _, m := range metrics {
		values, err := b.bundle.Regional.Column(m.Key)
		if err != nil {
			continue
		}
		names = append(names, m.Label)
		current = append(current, opts.BarData{Value: values[len(values)-1]})
		projected = append(projected, opts.BarData{Value: b.set[m.Key].Ensemble})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		b.initOpts(height),
		charts.WithTitleOpts(opts.Title{Title: "Regional Market Comparison"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Billion USD"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	bar.SetXAxis(names).
		AddSeries(fmt.Sprintf("%d", lastYear), current).
		AddSeries(fmt.Sprintf("%d Projection", b.targetYear), projected)
	return bar
}

// regionalShareChart shows each region's share of the projected market.
func (b *Builder) regionalShareChart(height int) *charts.Pie {
	var items []opts.PieData
	for _, m := range models.MetricsFor(models.DatasetRegional) {
		items = append(items, opts.PieData{Name: m.Label, Value: b.set[m.Key].Ensemble})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		b.initOpts(height),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Regional Market Share (%d)", b.targetYear)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	pie.AddSeries("Regions", items).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}: {d}%",
		}))
	return pie
}

// segmentChart shows the projected market size per industry segment.
func (b *Builder) segmentChart(height int) *charts.Bar {
	var names []string
	var values []opts.BarData
	for _, m := range models.MetricsFor(models.DatasetGlobal) {
		if m.Key == "global_market_size" {
			continue
		}
		names = append(names, m.Label)
		values = append(values, opts.BarData{Value: b.set[m.Key].Ensemble})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		b.initOpts(height),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Segment Breakdown (%d)", b.targetYear)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Billion USD"}),
	)
	bar.SetXAxis(names).AddSeries("Projection", values)
	return bar
}

// segmentTrendChart plots the historical trajectory of every segment on one
// axis.
func (b *Builder) segmentTrendChart(height int) (*charts.Line, error) {
	years := make([]string, 0, b.bundle.Global.NumRows())
	for _, year := range b.bundle.Global.Years() {
		years = append(years, fmt.Sprintf("%d", year))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		b.initOpts(height),
		charts.WithTitleOpts(opts.Title{Title: "Segment Trends"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Billion USD"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	line.SetXAxis(years)

	for _, m := range models.MetricsFor(models.DatasetGlobal) {
		if m.Key == "global_market_size" {
			continue
		}
		values, err := b.bundle.Global.Column(m.Key)
		if err != nil {
			return nil, err
		}
		data := make([]opts.LineData, len(values))
		for i, v := range values {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(m.Label, data)
	}
	return line, nil
}

// growthChart shows the year-over-year growth of the global market.
func (b *Builder) growthChart(height int) (*charts.Bar, error) {
	growth, err := dataset.GrowthRates(b.bundle.Global, "global_market_size")
	if err != nil {
		return nil, err
	}

	var years []string
	var rates []opts.BarData
	for i, year := range growth.Years {
		if math.IsNaN(growth.YoY[i]) {
			continue
		}
		years = append(years, fmt.Sprintf("%d", year))
		rates = append(rates, opts.BarData{Value: growth.YoY[i]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		b.initOpts(height),
		charts.WithTitleOpts(opts.Title{
			Title:    "Global Market YoY Growth",
			Subtitle: fmt.Sprintf("Historical CAGR %.1f%%", growth.CAGR),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Percent"}),
	)
	bar.SetXAxis(years).AddSeries("YoY %", rates)
	return bar, nil
}

// methodChart compares the four method outputs for the headline metric.
func (b *Builder) methodChart(height int) *charts.Bar {
	global := b.set["global_market_size"]

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		b.initOpts(height),
		charts.WithTitleOpts(opts.Title{
			Title:    "Projection Method Comparison",
			Subtitle: fmt.Sprintf("Global market size, ensemble %.1f ± %.1f Billion USD", global.Ensemble, global.Std),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Billion USD"}),
	)
	bar.SetXAxis([]string{"Linear", "Polynomial", "Exp. Smoothing", "CAGR", "Ensemble"}).
		AddSeries("Projection", []opts.BarData{
			{Value: global.Linear},
			{Value: global.Polynomial},
			{Value: global.ExponentialSmoothing},
			{Value: global.CAGR},
			{Value: global.Ensemble},
		})
	return bar
}
