// Package main provides the autofunc command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/born-ml/autofunc/backend"
	"github.com/born-ml/autofunc/backend/cpu"
	"github.com/born-ml/autofunc/internal/config"
	"github.com/born-ml/autofunc/tensor"
)

const version = "v0.1.0"

// app carries the state shared by all commands.
type app struct {
	// Global flags
	configPath string
	engine     string
	precision  string
	input      string
	verbose    bool

	logger  *zap.Logger
	cfg     *config.Config
	profile *tensor.Profile
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "autofunc",
		Short: "Coordinate transforms and solid harmonics on pluggable tensor backends",
		Long: `autofunc evaluates 3D coordinate transforms and solid spherical harmonics.

Vectors are read as CSV rows of three numbers from --input (default stdin)
and results are written as CSV to stdout. The backend is chosen by engine
and precision, from flags or a YAML/TOML config file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger == nil {
				logCfg := zap.NewProductionConfig()
				if a.verbose {
					logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
				}
				var err error
				a.logger, err = logCfg.Build()
				if err != nil {
					return fmt.Errorf("failed to initialize logger: %w", err)
				}
			}
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (.yaml, .yml or .toml)")
	root.PersistentFlags().StringVar(&a.engine, "engine", config.DefaultEngine, "Backend engine")
	root.PersistentFlags().StringVarP(&a.precision, "precision", "p", config.DefaultPrecision, "Element type: float32 or float64")
	root.PersistentFlags().StringVarP(&a.input, "input", "i", "-", "Input CSV file, - for stdin")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newVersionCmd(),
		newCart2SphCmd(a),
		newSph2CartCmd(a),
		newRotateCmd(a),
		newRoundTripCmd(a),
		newHarmonicsCmd(a),
		newPlotCmd(a),
	)
	return root
}

// setup loads the config, applies flag overrides and resolves the profile.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("engine") {
		cfg.Engine = a.engine
	}
	if flags.Changed("precision") {
		cfg.Precision = a.precision
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	profile, err := resolveProfile(cfg)
	if err != nil {
		return err
	}
	a.cfg, a.profile = cfg, profile
	a.logger.Debug("resolved backend",
		zap.Stringer("profile", profile),
		zap.Float64("epsilon", profile.Epsilon()),
		zap.Int("workers", cfg.Workers()),
	)
	return nil
}

func resolveProfile(cfg *config.Config) (*tensor.Profile, error) {
	p, err := backend.Parse(cfg.Engine, cfg.Precision)
	if err != nil {
		return nil, err
	}
	if w := cfg.Workers(); w != 0 && p.Engine() == cpu.Engine {
		return cpu.NewProfile(p.Precision(), w)
	}
	return p, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "autofunc %s\n", version)
		},
	}
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
