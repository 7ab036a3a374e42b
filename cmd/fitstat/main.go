// Package main provides the CLI entrypoint for fitstat.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verode/fitstat/internal/config"
	"github.com/verode/fitstat/internal/derive"
	"github.com/verode/fitstat/internal/loader"
	"github.com/verode/fitstat/internal/model"
	"github.com/verode/fitstat/internal/stats"
	"github.com/verode/fitstat/internal/statsui"
)

const (
	defaultFile       = "health.csv"
	defaultPlotHeight = 10
)

var (
	reportPlotWidth  int
	reportPlotHeight int
	reportColor      bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fitstat [file]",
		Short:         "Workout export explorer",
		Long:          "Loads a workout CSV export, normalizes it, and prints descriptive aggregates and terminal charts.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runReportCmd,
	}

	addDisplayFlags(rootCmd)
	rootCmd.AddCommand(newTUICmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func addDisplayFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&reportPlotWidth, "plot-width", 0, "chart width in cells (0: fit terminal)")
	cmd.Flags().IntVar(&reportPlotHeight, "plot-height", defaultPlotHeight, "chart height in rows")
	cmd.Flags().BoolVar(&reportColor, "color", false, "force color output")
}

func runReportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveReportConfig(cmd, args)
	if err != nil {
		return err
	}
	report, err := buildReport(cfg.File)
	if err != nil {
		return err
	}
	return renderReport(cmd.OutOrStdout(), report, cfg)
}

func newTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui [file]",
		Short: "Browse the report interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUICmd,
	}
	addDisplayFlags(cmd)
	return cmd
}

func runTUICmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveReportConfig(cmd, args)
	if err != nil {
		return err
	}
	report, err := buildReport(cfg.File)
	if err != nil {
		return err
	}
	model := statsui.NewModel(report, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// buildReport runs the full pipeline: load, derive, aggregate. Field and
// analysis failures are carried inside the report; only load failures
// return an error.
func buildReport(path string) (stats.Report, error) {
	table, diag, err := loader.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return stats.Report{}, exportNotFoundError(path)
		}
		return stats.Report{}, fmt.Errorf("failed to load export: %w", err)
	}
	derive.Apply(table)
	return stats.BuildReport(table, diag), nil
}

func renderReport(w io.Writer, report stats.Report, cfg model.ReportConfig) error {
	if err := stats.RenderDiagnostics(w, report.Diagnostics); err != nil {
		return err
	}
	if err := stats.RenderSummary(w, report); err != nil {
		return err
	}
	if err := stats.RenderScatter(w, "Calories Burned vs Duration", "Duration (minutes)", "Calories (kcal)",
		report.DurationEnergy, nil, cfg.PlotWidth, cfg.PlotHeight, cfg.Color); err != nil {
		return err
	}
	if err := stats.RenderScatter(w, "Calories Burned vs Average METs", "Average METs", "Calories (kcal)",
		report.METsEnergy, stats.TrendOverlays(report.Trends), cfg.PlotWidth, cfg.PlotHeight, cfg.Color); err != nil {
		return err
	}
	if err := stats.RenderTrends(w, report.Trends); err != nil {
		return err
	}
	if err := stats.RenderScatter(w, "Calories Burned vs Temperature", "Temperature (degF)", "Calories (kcal)",
		report.TempEnergy, nil, cfg.PlotWidth, cfg.PlotHeight, cfg.Color); err != nil {
		return err
	}
	if err := stats.RenderScatter(w, "Calories Burned vs Humidity", "Humidity (%)", "Calories (kcal)",
		report.HumidityEnergy, nil, cfg.PlotWidth, cfg.PlotHeight, cfg.Color); err != nil {
		return err
	}
	if err := stats.RenderTimeOfDay(w, report); err != nil {
		return err
	}
	return stats.RenderMonthly(w, report.Monthly, cfg.PlotWidth)
}

func resolveReportConfig(cmd *cobra.Command, args []string) (model.ReportConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.ReportConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "plot-width", &reportPlotWidth, fileCfg.Report.PlotWidth)
	applyIntConfig(cmd, "plot-height", &reportPlotHeight, fileCfg.Report.PlotHeight)
	applyBoolConfig(cmd, "color", &reportColor, fileCfg.Report.Color)

	file := defaultFile
	if fileCfg.Report.File != nil && *fileCfg.Report.File != "" {
		file = *fileCfg.Report.File
	}
	if len(args) > 0 && args[0] != "" {
		file = args[0]
	}

	cfg := model.ReportConfig{
		File:       file,
		PlotWidth:  reportPlotWidth,
		PlotHeight: reportPlotHeight,
		Color:      reportColor,
	}
	if cfg.PlotWidth < 0 {
		return model.ReportConfig{}, fmt.Errorf("--plot-width must be >= 0")
	}
	if cfg.PlotHeight <= 0 {
		return model.ReportConfig{}, fmt.Errorf("--plot-height must be > 0")
	}
	return cfg, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# fitstat configuration
# Uncomment a value to enable it. CLI flags override config values.

[report]
# file = %q         # Workout export to load
# plot-width = 0    # Chart width in cells (0: fit terminal)
# plot-height = %d  # Chart height in rows
# color = false     # Force color output
`,
		defaultFile,
		defaultPlotHeight,
	)
}

func exportNotFoundError(path string) error {
	lines := []string{
		fmt.Sprintf("export file not found: %s", path),
		"Place your workout export next to the binary as health.csv,",
		"or pass a path: fitstat <file>",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}
