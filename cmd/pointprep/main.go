// Package main provides the CLI entrypoint for pointprep.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/pointprep/internal/config"
	"github.com/verte-zerg/pointprep/internal/model"
	"github.com/verte-zerg/pointprep/internal/serie"
	"github.com/verte-zerg/pointprep/internal/source"
	"github.com/verte-zerg/pointprep/internal/stats"
	"github.com/verte-zerg/pointprep/internal/viewui"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

var (
	serieName       string
	serieFillDates  bool
	serieCumulative bool
	serieGrouped    bool
	serieSort       bool
	serieOrder      string
	serieDirection  string

	inputXCol       string
	inputYCol       string
	inputLabelCol   string
	inputXType      string
	inputDateFormat string
	inputSheet      string
	inputTable      string
	inputQuery      string

	outputFormat  string
	outputPretty  bool
	outputSummary bool
	outputColor   bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pointprep",
		Short:         "Prepare x/y point series for charting",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addSerieFlags(cmd *cobra.Command) {
	def := source.DefaultInput()
	cmd.Flags().StringVar(&serieName, "name", "", "serie name (default: input file name)")
	cmd.Flags().BoolVar(&serieFillDates, "fill-dates", false, "insert zero points for missing calendar days")
	cmd.Flags().BoolVar(&serieCumulative, "cumulative", false, "replace y with the running sum")
	cmd.Flags().BoolVar(&serieGrouped, "grouped", false, "merge points sharing the same x")
	cmd.Flags().BoolVar(&serieSort, "sort", false, "sort the final points")
	cmd.Flags().StringVar(&serieOrder, "order", "numeric", "sort order: numeric, alpha, collate, date")
	cmd.Flags().StringVar(&serieDirection, "direction", string(serie.Ascending), "sort direction: ASC or DESC")

	cmd.Flags().StringVar(&inputXCol, "x-col", def.XColumn, "x column name")
	cmd.Flags().StringVar(&inputYCol, "y-col", def.YColumn, "y column name")
	cmd.Flags().StringVar(&inputLabelCol, "label-col", def.LabelColumn, "label column name (optional)")
	cmd.Flags().StringVar(&inputXType, "x-type", string(def.XType), "x type: auto, number, string, date")
	cmd.Flags().StringVar(&inputDateFormat, "date-format", def.DateFormat, "Go time layout for date x values")
	cmd.Flags().StringVar(&inputSheet, "sheet", "", "xlsx sheet (default: first sheet)")
	cmd.Flags().StringVar(&inputTable, "table", def.Table, "SQLite table")
	cmd.Flags().StringVar(&inputQuery, "query", "", "SQLite query (overrides --table)")
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <file>",
		Short: "Load points, apply options, and print the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runGetCmd,
	}
	addSerieFlags(cmd)
	cmd.Flags().StringVar(&outputFormat, "format", "", "output format: table or json (default: table on a terminal, json otherwise)")
	cmd.Flags().BoolVar(&outputPretty, "pretty", false, "indent JSON output")
	cmd.Flags().BoolVar(&outputSummary, "summary", false, "print a summary before the points")
	cmd.Flags().BoolVar(&outputColor, "color", false, "force colored table output")
	return cmd
}

func runGetCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	s, err := buildSerie(cmd.Context(), args[0], cfg)
	if err != nil {
		return err
	}
	res, err := s.Get()
	if err != nil {
		return fmt.Errorf("failed to prepare points: %w", err)
	}
	return writeResult(cmd.OutOrStdout(), res, cfg)
}

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Browse points interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runViewCmd,
	}
	addSerieFlags(cmd)
	return cmd
}

func runViewCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	s, err := buildSerie(cmd.Context(), args[0], cfg)
	if err != nil {
		return err
	}
	program := tea.NewProgram(viewui.NewModel(s), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run viewer: %w", err)
	}
	return nil
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

// resolveConfig merges flags with the config file; flags set explicitly win.
func resolveConfig(cmd *cobra.Command, path string) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyBoolConfig(cmd, "fill-dates", &serieFillDates, fileCfg.Serie.FillDates)
	applyBoolConfig(cmd, "cumulative", &serieCumulative, fileCfg.Serie.Cumulative)
	applyBoolConfig(cmd, "grouped", &serieGrouped, fileCfg.Serie.Grouped)
	applyBoolConfig(cmd, "sort", &serieSort, fileCfg.Serie.Sort)
	applyStringConfig(cmd, "order", &serieOrder, fileCfg.Serie.Order)
	applyStringConfig(cmd, "direction", &serieDirection, fileCfg.Serie.Direction)
	applyStringConfig(cmd, "x-col", &inputXCol, fileCfg.Input.XColumn)
	applyStringConfig(cmd, "y-col", &inputYCol, fileCfg.Input.YColumn)
	applyStringConfig(cmd, "label-col", &inputLabelCol, fileCfg.Input.LabelColumn)
	applyStringConfig(cmd, "x-type", &inputXType, fileCfg.Input.XType)
	applyStringConfig(cmd, "date-format", &inputDateFormat, fileCfg.Input.DateFormat)
	applyStringConfig(cmd, "sheet", &inputSheet, fileCfg.Input.Sheet)
	applyStringConfig(cmd, "table", &inputTable, fileCfg.Input.Table)
	applyStringConfig(cmd, "format", &outputFormat, fileCfg.Output.Format)
	applyBoolConfig(cmd, "pretty", &outputPretty, fileCfg.Output.Pretty)
	applyBoolConfig(cmd, "summary", &outputSummary, fileCfg.Output.Summary)

	if strings.TrimSpace(inputQuery) != "" && cmd.Flags().Changed("table") {
		logErrln("--query is set; ignoring --table")
	}

	name := serieName
	if strings.TrimSpace(name) == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	xtype, err := source.ParseXType(inputXType)
	if err != nil {
		return model.Config{}, err
	}
	cfg := model.Config{
		Name:       name,
		FillDates:  serieFillDates,
		Cumulative: serieCumulative,
		Grouped:    serieGrouped,
		Sort:       serieSort,
		Order:      serieOrder,
		Direction:  serieDirection,
		Format:     outputFormat,
		Pretty:     outputPretty,
		Summary:    outputSummary,
		Input: model.InputConfig{
			XColumn:     inputXCol,
			YColumn:     inputYCol,
			LabelColumn: inputLabelCol,
			XType:       xtype,
			DateFormat:  inputDateFormat,
			Sheet:       inputSheet,
			Table:       inputTable,
			Query:       inputQuery,
		},
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	switch cfg.Format {
	case "", formatTable, formatJSON:
	default:
		return fmt.Errorf("--format must be %s or %s", formatTable, formatJSON)
	}
	if strings.TrimSpace(cfg.Input.XColumn) == "" {
		return fmt.Errorf("--x-col must not be empty")
	}
	if strings.TrimSpace(cfg.Input.YColumn) == "" {
		return fmt.Errorf("--y-col must not be empty")
	}
	if strings.EqualFold(cfg.Input.XColumn, cfg.Input.YColumn) {
		return fmt.Errorf("--x-col and --y-col must differ")
	}
	return nil
}

func serieOptions(cfg model.Config) (serie.Options, error) {
	order, ok := serie.ParseOrder(cfg.Order)
	if !ok {
		logErrf("unknown order %q; using numeric\n", cfg.Order)
	}
	direction, err := serie.ParseDirection(cfg.Direction)
	if err != nil {
		return serie.Options{}, err
	}
	return serie.Options{
		FillNullDateValues: cfg.FillDates,
		Cumulative:         cfg.Cumulative,
		Grouped:            cfg.Grouped,
		Sort:               cfg.Sort,
		Order:              order,
		Direction:          direction,
	}, nil
}

func buildSerie(ctx context.Context, path string, cfg model.Config) (*serie.Serie, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	opts, err := serieOptions(cfg)
	if err != nil {
		return nil, err
	}
	s, err := serie.New(serie.Config{Name: cfg.Name, Options: opts})
	if err != nil {
		return nil, err
	}
	points, err := source.Load(ctx, path, cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to load points: %w", err)
	}
	for _, p := range points {
		if err := s.SetDataPoint(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func writeResult(w io.Writer, res serie.Result, cfg model.Config) error {
	format := cfg.Format
	if format == "" {
		format = formatJSON
		if stats.IsTerminal(w) {
			format = formatTable
		}
	}
	if format == formatJSON {
		if err := stats.WriteJSON(w, res, cfg.Pretty); err != nil {
			return fmt.Errorf("failed to write json: %w", err)
		}
		return nil
	}
	if cfg.Summary {
		if err := stats.RenderSummary(w, res); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	if err := stats.RenderPoints(w, res, stats.ShouldUseColor(w, outputColor)); err != nil {
		return fmt.Errorf("failed to write points: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Lookup(name) == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Lookup(name) == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	def := source.DefaultInput()
	return fmt.Sprintf(`# pointprep configuration
# Uncomment a value to enable it. CLI flags override config values.

[serie]
# fill-null-date-values = false  # Insert zero points for missing days
# cumulative = false             # Replace y with the running sum
# grouped = false                # Merge points sharing the same x
# sort = false                   # Sort the final points
# order = "numeric"              # numeric, alpha, collate, or date
# direction = "ASC"              # ASC or DESC

[input]
# x-column = %q
# y-column = %q
# label-column = %q
# x-type = %q                  # auto, number, string, or date
# date-format = %q
# sheet = ""                     # xlsx sheet (default: first)
# table = %q                 # SQLite table

[output]
# format = "table"               # table or json
# pretty = false
# summary = false
`,
		def.XColumn,
		def.YColumn,
		def.LabelColumn,
		def.XType,
		def.DateFormat,
		def.Table,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
