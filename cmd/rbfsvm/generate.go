package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reggo/rbfsvm/dataset"
)

func (a *app) generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the seeded sin(6 pi x) regression dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := dataset.Generate(a.cfg.Samples, dataset.NewSource(a.cfg.Seed))
			if err != nil {
				return err
			}
			a.logger.Info("dataset generated",
				zap.Uint64("seed", a.cfg.Seed),
				zap.Int("samples", len(x)))
			return a.writeJSON(cmd, datasetFile{X: x, Y: y})
		},
	}
	cmd.Flags().Uint64(flagSeed, 42, "dataset seed")
	cmd.Flags().Int(flagSamples, 50, "number of samples")
	return cmd
}

func (a *app) gridCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Write an evenly spaced grid of query points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := a.cfg.Grid
			pts, err := dataset.Linspace(g.Min, g.Max, g.Points)
			if err != nil {
				return err
			}
			x := make([][]float64, len(pts))
			for i, p := range pts {
				x[i] = []float64{p}
			}
			a.logger.Debug("grid built",
				zap.Float64("min", g.Min),
				zap.Float64("max", g.Max),
				zap.Int("points", g.Points))
			return a.writeJSON(cmd, datasetFile{X: x})
		},
	}
	addGridFlags(cmd)
	return cmd
}
