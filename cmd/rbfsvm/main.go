// Command rbfsvm evaluates a fitted Gaussian kernel decision function on
// synthetic data and query grids.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reggo/rbfsvm/config"
)

// app carries the state shared by the subcommands
type app struct {
	configPath string
	verbose    bool
	out        string

	cfg    *config.Config
	logger *zap.Logger
	prof   interface{ Stop() }
}

var profileModes = map[string]func(*profile.Profile){
	"cpu":   profile.CPUProfile,
	"mem":   profile.MemProfile,
	"block": profile.BlockProfile,
	"mutex": profile.MutexProfile,
	"trace": profile.TraceProfile,
}

// startProfile starts the configured profile, if any. The output
// directory is created here so that a bad path is reported as an error.
func (a *app) startProfile() error {
	pc := a.cfg.Profile
	if pc.Mode == "" {
		return nil
	}
	opts := []func(*profile.Profile){profileModes[pc.Mode], profile.NoShutdownHook, profile.Quiet}
	if pc.Path != "" {
		if err := os.MkdirAll(pc.Path, 0755); err != nil {
			return fmt.Errorf("failed to create profile directory: %w", err)
		}
		opts = append(opts, profile.ProfilePath(pc.Path))
	}
	a.prof = profile.Start(opts...)
	a.logger.Debug("profiling started", zap.String("mode", pc.Mode), zap.String("path", pc.Path))
	return nil
}

func (a *app) stopProfile() {
	if a.prof == nil {
		return
	}
	a.prof.Stop()
	a.prof = nil
	a.logger.Debug("profiling stopped", zap.String("mode", a.cfg.Profile.Mode))
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "rbfsvm",
		Short: "Evaluate a Gaussian RBF support vector decision function",
		Long: `rbfsvm evaluates f(x) = (1/lmbda) sum_i a_i exp(-gamma ||sv_i - x||^2) + b
for a model fitted elsewhere, and builds the synthetic sin(6 pi x) dataset
and the linspace grids it is usually plotted on.

Settings come from a YAML file (--config) and can be overridden by flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.applyFlags(cmd)
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			a.logger, err = a.cfg.Logging.Logger(a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger.Debug("configuration loaded", zap.String("path", a.configPath))
			return a.startProfile()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "rbfsvm.yaml", "path to the YAML configuration")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVarP(&a.out, "out", "o", "-", "output file, - for stdout")
	pf.String(flagProfile, "", "profile the command: cpu, mem, block, mutex or trace")
	pf.String(flagProfilePath, "", "directory for the profile, defaults to a temporary one")

	root.AddCommand(
		a.generateCmd(),
		a.gridCmd(),
		a.predictCmd(),
		a.supportCmd(),
	)
	// PersistentPostRun is skipped when a command fails, so the profile is
	// stopped by every command instead.
	for _, c := range root.Commands() {
		runE := c.RunE
		c.RunE = func(cmd *cobra.Command, args []string) error {
			defer a.stopProfile()
			return runE(cmd, args)
		}
	}
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
