// Command roboscope builds the robotics industry datasets, projects every
// tracked metric to the target year with a four-method ensemble, and renders
// the exports, charts, dashboards, and report.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marketscope/roboscope/internal/chart"
	"github.com/marketscope/roboscope/internal/config"
	"github.com/marketscope/roboscope/internal/dashboard"
	"github.com/marketscope/roboscope/internal/dataset"
	"github.com/marketscope/roboscope/internal/export"
	"github.com/marketscope/roboscope/internal/forecast"
	"github.com/marketscope/roboscope/internal/logger"
	"github.com/marketscope/roboscope/internal/models"
	"github.com/marketscope/roboscope/internal/notify"
	"github.com/marketscope/roboscope/internal/report"
)

var (
	configPath string
	verbose    bool

	cfg *config.Config
)

func main() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Interrupted, exiting")
		os.Exit(130)
	}()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "roboscope",
		Short:         "Robotics industry market projections",
		Long:          "roboscope builds historical robotics market datasets and projects them forward with an ensemble of trend models.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			level := cfg.Logging.Level
			if verbose {
				level = "debug"
			}
			logger.Init(level, cfg.Logging.Format)
			logger.Debug("Configuration loaded from %s", configPath)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to configuration file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newRunCmd(),
		newDataCmd(),
		newProjectionsCmd(),
		newVisualizeCmd(),
		newDashboardCmd(),
	)
	return root
}

// newRunCmd is the full pipeline: data, projections, exports, report,
// charts, dashboards, and the optional notification.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the full projection pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()

			bundle, err := loadBundle()
			if err != nil {
				return err
			}
			set, err := project(bundle)
			if err != nil {
				return err
			}
			if err := writeExports(bundle, set); err != nil {
				return err
			}
			summary, err := writeReport(set, false)
			if err != nil {
				return err
			}
			if err := renderCharts(bundle, set); err != nil {
				return err
			}
			if err := renderDashboards(bundle, set, "all"); err != nil {
				return err
			}
			sendNotification(summary)

			logger.Info("Pipeline completed in %v", time.Since(start))
			return nil
		},
	}
}

func newDataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "data",
		Short: "Generate the historical datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := dataset.New(cfg.Paths.Raw())
			bundle, err := provider.Generate()
			if err != nil {
				return fmt.Errorf("failed to generate datasets: %w", err)
			}
			logger.Info("Generated %d global, %d regional, %d installation records",
				bundle.Global.NumRows(), bundle.Regional.NumRows(), bundle.Installations.NumRows())
			return nil
		},
	}
}

func newProjectionsCmd() *cobra.Command {
	var withReport bool
	cmd := &cobra.Command{
		Use:   "projections",
		Short: "Compute projections and write the CSV and Excel exports",
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := loadBundle()
			if err != nil {
				return err
			}
			set, err := project(bundle)
			if err != nil {
				return err
			}
			if err := writeExports(bundle, set); err != nil {
				return err
			}
			if withReport {
				if _, err := writeReport(set, true); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withReport, "report", false, "Also write the text report")
	return cmd
}

func newVisualizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "visualize",
		Short: "Render the static PNG charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := loadBundle()
			if err != nil {
				return err
			}
			set, err := project(bundle)
			if err != nil {
				return err
			}
			return renderCharts(bundle, set)
		},
	}
}

func newDashboardCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Render the interactive HTML dashboards",
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind != "comprehensive" && kind != "executive" && kind != "all" {
				return fmt.Errorf("invalid dashboard type %q: must be comprehensive, executive, or all", kind)
			}
			bundle, err := loadBundle()
			if err != nil {
				return err
			}
			set, err := project(bundle)
			if err != nil {
				return err
			}
			return renderDashboards(bundle, set, kind)
		},
	}
	cmd.Flags().StringVar(&kind, "type", "all", "Dashboard to render: comprehensive, executive, or all")
	return cmd
}

func loadBundle() (*dataset.Bundle, error) {
	provider := dataset.New(cfg.Paths.Raw())
	bundle, err := provider.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load datasets: %w", err)
	}
	return bundle, nil
}

func project(bundle *dataset.Bundle) (models.ProjectionSet, error) {
	engine := forecast.NewEngine(forecast.Params{
		TargetYear:       cfg.Project.TargetYear,
		Alpha:            cfg.Forecast.Alpha,
		SmoothingPeriods: cfg.Forecast.SmoothingPeriods,
		PolynomialDegree: cfg.Forecast.PolynomialDegree,
		Weights: forecast.Weights{
			Linear:               cfg.Forecast.Weights.Linear,
			Polynomial:           cfg.Forecast.Weights.Polynomial,
			ExponentialSmoothing: cfg.Forecast.Weights.ExponentialSmoothing,
			CAGR:                 cfg.Forecast.Weights.CAGR,
		},
	})
	return engine.ProjectAll(bundle)
}

func writeExports(bundle *dataset.Bundle, set models.ProjectionSet) error {
	csvPath, err := export.WriteCSV(cfg.Paths.Processed(), set, cfg.Project.TargetYear)
	if err != nil {
		return fmt.Errorf("failed to write CSV export: %w", err)
	}
	logger.Info("Saved projections %s", csvPath)

	xlsxPath, err := export.WriteXLSX(cfg.Paths.Processed(), bundle, set, cfg.Project.TargetYear)
	if err != nil {
		return fmt.Errorf("failed to write Excel export: %w", err)
	}
	logger.Info("Saved workbook %s", xlsxPath)
	return nil
}

// writeReport writes the full report, optionally echoing it to stdout, and
// returns the executive summary for notification delivery.
func writeReport(set models.ProjectionSet, echo bool) (string, error) {
	content := report.Build(set, cfg.Project.TargetYear, time.Now(), report.NewRunID())
	path, err := report.Save(cfg.Paths.Reports(), content)
	if err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info("Saved report %s", path)
	if echo {
		fmt.Println(content)
	}
	return report.Summary(set, cfg.Project.TargetYear), nil
}

func renderCharts(bundle *dataset.Bundle, set models.ProjectionSet) error {
	renderer := chart.NewRenderer(cfg.Paths.Figures(), bundle, set, cfg.Project.TargetYear)
	if err := renderer.All(); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}
	return nil
}

func renderDashboards(bundle *dataset.Bundle, set models.ProjectionSet, kind string) error {
	if kind == "comprehensive" || kind == "all" {
		b := dashboard.NewBuilder(cfg.Paths.Figures(), bundle, set, cfg.Project.TargetYear, cfg.Dashboard.ComprehensiveHeight)
		if _, err := b.Comprehensive(); err != nil {
			return fmt.Errorf("failed to render comprehensive dashboard: %w", err)
		}
	}
	if kind == "executive" || kind == "all" {
		b := dashboard.NewBuilder(cfg.Paths.Figures(), bundle, set, cfg.Project.TargetYear, cfg.Dashboard.ExecutiveHeight)
		if _, err := b.Executive(); err != nil {
			return fmt.Errorf("failed to render executive dashboard: %w", err)
		}
	}
	return nil
}

// sendNotification delivers the executive summary when notifications are
// enabled. Failures are logged, not fatal.
func sendNotification(summary string) {
	if !cfg.Notify.Enabled {
		logger.Debug("Telegram notifications disabled")
		return
	}
	client, err := notify.NewClient(cfg.Notify.BotToken, cfg.Notify.ChatID, cfg.Notify.MaxRetries, cfg.Notify.RetryDelayBase)
	if err != nil {
		logger.Error("Failed to initialize Telegram client: %v", err)
		return
	}
	if err := client.SendSummary(summary, time.Now()); err != nil {
		logger.Error("Failed to send Telegram notification: %v", err)
		return
	}
	logger.Info("Sent Telegram notification")
}
