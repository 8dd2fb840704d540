// ============================================================================
// attgen CLI - Command Line Interface
// ============================================================================
//
// Package: internal/cli
// File: cli.go
// Purpose: Cobra command tree of the attendance fixture generator
//
// Command Structure:
//   attgen                         # Root command
//   ├── generate                   # Generate the CSV fixture
//   │   ├── --output, -o           # Output file (default data.csv)
//   │   ├── --start / --end        # Window in UTC
//   │   ├── --seed                 # Random seed (0 = time based)
//   │   └── --metrics-file         # Optional Prometheus textfile
//   ├── --config, -c               # Optional YAML config file
//   ├── --version
//   └── --help
//
// Precedence: flags > config file > built-in defaults.
//
// Config file:
//   output: data.csv
//   window:
//     start: "2025-07-31 15:00:00"
//     end: "2025-11-20 11:51:46"
//   seed: 42
//   metrics_file: attgen.prom
//
// generate Command:
//   1. Resolve configuration
//   2. Generate intervals
//   3. Write CSV atomically
//   4. Print summary, write metrics if requested
//
//   Examples:
//     ./attgen generate
//     ./attgen generate -o fixtures/attendance.csv --seed 42
//     ./attgen generate --start "2025-12-01 00:00:00" --end 2026-02-01
//
// ============================================================================

package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/ChuLiYu/attgen/internal/export"
	"github.com/ChuLiYu/attgen/internal/generator"
	"github.com/ChuLiYu/attgen/internal/metrics"
	"github.com/ChuLiYu/attgen/internal/report"
	"github.com/ChuLiYu/attgen/pkg/types"
	"github.com/spf13/cobra"
)

var configFile string

func BuildCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "attgen",
		Short: "attgen: attendance log fixture generator",
		Long: `attgen writes a synthetic attendance_log CSV for one user:
- OFF / WORKING / BREAK intervals with fixed transition weights
- UTC timestamps split at Japan Standard Time month ends
- the last interval left open`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (optional)")

	rootCmd.AddCommand(buildGenerateCommand())

	return rootCmd
}

// generateOptions flag values of the generate command
type generateOptions struct {
	output      string
	start       string
	end         string
	seed        uint64
	metricsFile string
}

func buildGenerateCommand() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the attendance CSV fixture",
		Long:  "Generate attendance intervals for the configured window and write them as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			applyFlags(cmd, cfg, opts)
			return runGenerate(cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", export.DefaultPath, "output CSV file")
	cmd.Flags().StringVar(&opts.start, "start", "", "window start in UTC (default 2025-07-31 15:00:00)")
	cmd.Flags().StringVar(&opts.end, "end", "", "window end in UTC (default 2025-11-20 11:51:46)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed, 0 picks one from the clock")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")

	return cmd
}

// applyFlags overrides cfg with the flags set on the command line
func applyFlags(cmd *cobra.Command, cfg *Config, opts generateOptions) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("start") {
		cfg.Window.Start = opts.start
	}
	if flags.Changed("end") {
		cfg.Window.End = opts.end
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = opts.metricsFile
	}
}

func runGenerate(cmd *cobra.Command, cfg *Config) error {
	start, end, err := cfg.window()
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("Generating intervals from %s to %s (seed %d)\n",
		export.FormatTimestamp(start), export.FormatTimestamp(end), seed)

	collector := metrics.NewCollector()
	gen := generator.New(generator.Config{
		UserID: types.DefaultUserID,
		Start:  start,
		End:    end,
	}, generator.NewRand(seed), collector)

	res, err := gen.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate records: %w", err)
	}

	writer := export.NewWriter(cfg.Output)
	if err := writer.Write(res.Records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	log.Printf("Wrote %d records to %s\n", len(res.Records), writer.Path())

	report.Print(cmd.OutOrStdout(), writer.Path(), report.Summarize(res))

	if cfg.MetricsFile != "" {
		if err := collector.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
		log.Printf("Metrics written to %s\n", cfg.MetricsFile)
	}

	return nil
}
