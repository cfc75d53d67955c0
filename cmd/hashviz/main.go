// Package main provides the CLI entrypoint for hashviz.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/hashviz/internal/benchlog"
	"github.com/verte-zerg/hashviz/internal/chart"
	"github.com/verte-zerg/hashviz/internal/config"
	"github.com/verte-zerg/hashviz/internal/grid"
	"github.com/verte-zerg/hashviz/internal/logging"
	"github.com/verte-zerg/hashviz/internal/model"
	"github.com/verte-zerg/hashviz/internal/scene"
	"github.com/verte-zerg/hashviz/internal/viewer"
)

var (
	renderLog        string
	renderSource     string
	renderScale      float64
	renderUnit       string
	renderPermissive bool
	renderMarker     string
	renderMultiplier int
	renderAzimuth    float64
	renderElevation  float64
	renderLogLevel   string

	exportOut    string
	exportWidth  float64
	exportHeight float64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hashviz",
		Short:         "3D viewer for proof-of-work benchmark logs",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runViewCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&renderLog, "log", config.DefaultLogPath(), "benchmark log path")
	flags.StringVar(&renderSource, "source", "", "sample source: flat, accelerator or cpu (default: flat)")
	flags.Float64Var(&renderScale, "scale", grid.DefaultScale, "hashrate divisor")
	flags.StringVar(&renderUnit, "unit", grid.DefaultUnit, "hashrate unit label")
	flags.BoolVar(&renderPermissive, "permissive", false, "skip the difficulty and block sequence checks")
	flags.StringVar(&renderMarker, "marker", string(benchlog.DefaultMarker), "character counted in difficulty labels")
	flags.IntVar(&renderMultiplier, "multiplier", benchlog.DefaultMultiplier, "bits per marker character")
	defaultCam := scene.DefaultCamera()
	flags.Float64Var(&renderAzimuth, "azimuth", defaultCam.Azimuth, "initial camera azimuth in degrees")
	flags.Float64Var(&renderElevation, "elevation", defaultCam.Elevation, "initial camera elevation in degrees (0-90)")
	flags.StringVar(&renderLogLevel, "log-level", logging.DefaultLevel, "diagnostic log level (debug, info, warn, error)")

	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newTableCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runViewCmd(cmd *cobra.Command, _ []string) error {
	_, cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	g, err := loadGrid(cfg, logger)
	if err != nil {
		return err
	}
	return viewer.Run(g, viewer.Options{
		Title:  cfg.LogPath,
		Units:  unitsFor(cfg),
		Camera: cameraFor(cfg),
	})
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the 2x2 figure to an image file",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportOut, "out", "", "output path (.png, .svg, .pdf, .eps, .jpg, .tif)")
	cmd.Flags().Float64Var(&exportWidth, "width", chart.DefaultFigureWidth, "figure width in inches")
	cmd.Flags().Float64Var(&exportHeight, "height", chart.DefaultFigureHeight, "figure height in inches")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	applyFloatConfig(cmd, "width", &exportWidth, fileCfg.Export.Width)
	applyFloatConfig(cmd, "height", &exportHeight, fileCfg.Export.Height)
	exportCfg := model.ExportConfig{
		Out:    exportOut,
		Width:  exportWidth,
		Height: exportHeight,
	}
	if err := config.Validate(exportCfg); err != nil {
		return err
	}
	if _, err := chart.FigureFormat(exportCfg.Out); err != nil {
		return err
	}

	g, err := loadGrid(cfg, logger)
	if err != nil {
		return err
	}
	fig := chart.BuildFigure(filepath.Base(cfg.LogPath), g, unitsFor(cfg), cameraFor(cfg))
	if err := chart.ExportFigure(exportCfg.Out, fig, exportCfg.Width, exportCfg.Height); err != nil {
		return fmt.Errorf("failed to export %s: %w", exportCfg.Out, err)
	}
	logger.Debugw("figure exported", "path", exportCfg.Out, "width", exportCfg.Width, "height", exportCfg.Height)
	logErrf("Wrote %s\n", exportCfg.Out)
	return nil
}

func newTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the benchmark grid as text tables",
		Args:  cobra.NoArgs,
		RunE:  runTableCmd,
	}
}

func runTableCmd(cmd *cobra.Command, _ []string) error {
	_, cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	g, err := loadGrid(cfg, logger)
	if err != nil {
		return err
	}
	units := unitsFor(cfg)
	out := cmd.OutOrStdout()
	for _, metric := range tableMetrics(g) {
		if err := chart.RenderGridTable(out, g, metric, units); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := chart.RenderSummary(out, g, units); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func tableMetrics(g *grid.Grid) []model.Metric {
	metrics := []model.Metric{model.MetricHashrate, model.MetricTime}
	if g.HasMinMax() {
		metrics = append(metrics, model.MetricMinTime, model.MetricMaxTime)
	}
	return metrics
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
	if err := ensureConfigFile(path); err != nil {
		return err
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

func ensureConfigFile(path string) error {
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
	return nil
}

// loadSettings merges the config file into unchanged flags, builds the
// logger and validates the render settings.
func loadSettings(cmd *cobra.Command) (config.FileConfig, model.RenderConfig, *zap.SugaredLogger, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, model.RenderConfig{}, nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyRenderConfig(cmd, fileCfg.Render)

	logger, err := logging.New(renderLogLevel)
	if err != nil {
		return config.FileConfig{}, model.RenderConfig{}, nil, fmt.Errorf("invalid --log-level %q: %w", renderLogLevel, err)
	}

	cfg := model.RenderConfig{
		LogPath:    renderLog,
		Source:     strings.ToLower(strings.TrimSpace(renderSource)),
		Scale:      renderScale,
		Unit:       renderUnit,
		Permissive: renderPermissive,
		Marker:     renderMarker,
		Multiplier: renderMultiplier,
		Azimuth:    renderAzimuth,
		Elevation:  renderElevation,
	}
	if err := config.Validate(cfg); err != nil {
		return config.FileConfig{}, model.RenderConfig{}, nil, err
	}
	logger.Debugw("settings resolved",
		"log", cfg.LogPath,
		"source", cfg.Source,
		"scale", cfg.Scale,
		"permissive", cfg.Permissive,
	)
	return fileCfg, cfg, logger, nil
}

func applyRenderConfig(cmd *cobra.Command, fc config.RenderFileConfig) {
	applyStringConfig(cmd, "log", &renderLog, fc.Log)
	applyStringConfig(cmd, "source", &renderSource, fc.Source)
	applyFloatConfig(cmd, "scale", &renderScale, fc.Scale)
	applyStringConfig(cmd, "unit", &renderUnit, fc.Unit)
	applyBoolConfig(cmd, "permissive", &renderPermissive, fc.Permissive)
	applyStringConfig(cmd, "marker", &renderMarker, fc.Marker)
	applyIntConfig(cmd, "multiplier", &renderMultiplier, fc.Multiplier)
	applyFloatConfig(cmd, "azimuth", &renderAzimuth, fc.Azimuth)
	applyFloatConfig(cmd, "elevation", &renderElevation, fc.Elevation)
	applyStringConfig(cmd, "log-level", &renderLogLevel, fc.LogLevel)
}

func loadGrid(cfg model.RenderConfig, logger *zap.SugaredLogger) (*grid.Grid, error) {
	report, err := benchlog.LoadReport(cfg.LogPath, loadOptions(cfg))
	if err != nil {
		return nil, err
	}
	logger.Infow("benchmark log loaded",
		"path", report.Path,
		"source", report.Source,
		"experiments", len(report.Experiments),
		"blocks", report.NumBlocks(),
	)
	g, err := grid.Build(report)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.LogPath, err)
	}
	return g, nil
}

func loadOptions(cfg model.RenderConfig) benchlog.Options {
	opts := benchlog.DefaultOptions()
	opts.Source = cfg.Source
	opts.Multiplier = cfg.Multiplier
	opts.Permissive = cfg.Permissive
	if runes := []rune(cfg.Marker); len(runes) == 1 {
		opts.Marker = runes[0]
	}
	return opts
}

func unitsFor(cfg model.RenderConfig) chart.Units {
	return chart.Units{Scale: cfg.Scale, Unit: cfg.Unit}
}

func cameraFor(cfg model.RenderConfig) scene.Camera {
	return scene.Camera{}.Rotate(cfg.Azimuth, cfg.Elevation)
}

func syncLogger(logger *zap.SugaredLogger) {
	if err := logger.Sync(); err != nil {
		// Best-effort flush; stderr often rejects sync.
		_ = err
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
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

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
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
	cam := scene.DefaultCamera()
	return fmt.Sprintf(`# hashviz configuration
# Uncomment a value to enable it. CLI flags override config values.

[render]
# log = %q        # Benchmark log path
# source = "flat"           # Sample source: flat, accelerator or cpu
# scale = %.1f         # Hashrate divisor
# unit = %q             # Hashrate unit label
# permissive = false        # Skip the difficulty and block sequence checks
# marker = %q                # Character counted in difficulty labels
# multiplier = %d            # Bits per marker character
# azimuth = %.1f          # Initial camera azimuth in degrees
# elevation = %.1f         # Initial camera elevation in degrees (0-90)
# log-level = %q          # Diagnostic log level

[export]
# width = %.1f             # Figure width in inches
# height = %.1f             # Figure height in inches
`,
		config.DefaultLogPath(),
		grid.DefaultScale,
		grid.DefaultUnit,
		string(benchlog.DefaultMarker),
		benchlog.DefaultMultiplier,
		cam.Azimuth,
		cam.Elevation,
		logging.DefaultLevel,
		chart.DefaultFigureWidth,
		chart.DefaultFigureHeight,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
