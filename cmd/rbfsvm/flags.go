package main

import (
	"github.com/spf13/cobra"
)

// Flag names shared between the subcommands and the configuration
// overrides.
const (
	flagSeed    = "seed"
	flagSamples = "samples"
	flagMin     = "min"
	flagMax     = "max"
	flagPoints  = "points"
	flagModel   = "model"
	flagGrain   = "grain"
	flagLoss    = "loss"

	flagProfile     = "profile"
	flagProfilePath = "profile-path"
)

func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().Float64(flagMin, 0, "lower end of the grid")
	cmd.Flags().Float64(flagMax, 1, "upper end of the grid")
	cmd.Flags().Int(flagPoints, 101, "number of grid points")
}

// applyFlags copies every flag the user set on cmd over the loaded
// configuration.
func (a *app) applyFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	if f.Changed(flagSeed) {
		a.cfg.Seed, _ = f.GetUint64(flagSeed)
	}
	if f.Changed(flagSamples) {
		a.cfg.Samples, _ = f.GetInt(flagSamples)
	}
	if f.Changed(flagMin) {
		a.cfg.Grid.Min, _ = f.GetFloat64(flagMin)
	}
	if f.Changed(flagMax) {
		a.cfg.Grid.Max, _ = f.GetFloat64(flagMax)
	}
	if f.Changed(flagPoints) {
		a.cfg.Grid.Points, _ = f.GetInt(flagPoints)
	}
	if f.Changed(flagModel) {
		a.cfg.Model, _ = f.GetString(flagModel)
	}
	if f.Changed(flagGrain) {
		a.cfg.Grain, _ = f.GetInt(flagGrain)
	}
	if f.Changed(flagLoss) {
		a.cfg.Loss, _ = f.GetString(flagLoss)
	}
	if f.Changed(flagProfile) {
		a.cfg.Profile.Mode, _ = f.GetString(flagProfile)
	}
	if f.Changed(flagProfilePath) {
		a.cfg.Profile.Path, _ = f.GetString(flagProfilePath)
	}
}
