package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/reggo/rbfsvm/common"
	"github.com/reggo/rbfsvm/dataset"
	"github.com/reggo/rbfsvm/loss"
	"github.com/reggo/rbfsvm/predict"
	"github.com/reggo/rbfsvm/svm"
)

func loadModel(path string) (*svm.Model, error) {
	model := &svm.Model{}
	if err := readJSON(path, model); err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	return model, nil
}

// queries reads the query points from dataPath, or builds the configured
// grid when dataPath is empty. Labels are returned when the file has them.
func (a *app) queries(model *svm.Model, dataPath string) (*mat.Dense, []float64, error) {
	if dataPath == "" {
		if model.InputDim() != 1 {
			return nil, nil, fmt.Errorf("grid queries need a one dimensional model, got dimension %d", model.InputDim())
		}
		g := a.cfg.Grid
		inputs, err := dataset.Grid(g.Min, g.Max, g.Points)
		return inputs, nil, err
	}

	var d datasetFile
	if err := readJSON(dataPath, &d); err != nil {
		return nil, nil, err
	}
	if len(d.X) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", dataPath, common.NoData)
	}
	if err := common.VerifyPoints(d.X, model.InputDim()); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", dataPath, err)
	}
	if d.Y != nil && len(d.Y) != len(d.X) {
		return nil, nil, fmt.Errorf("%s: %d labels for %d points", dataPath, len(d.Y), len(d.X))
	}
	return dataset.Matrix(d.X), d.Y, nil
}

func (a *app) predictCmd() *cobra.Command {
	var dataPath string
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Evaluate the decision function on a grid or a dataset",
		Long: `Loads the model and evaluates its decision function on every query point.
Without --data the configured grid is used. With a dataset that carries
labels the configured loss of the predictions is reported as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := loadModel(a.cfg.Model)
			if err != nil {
				return err
			}
			params := model.Params()
			a.logger.Debug("model loaded",
				zap.String("path", a.cfg.Model),
				zap.Int("support_vectors", model.NumSupport()),
				zap.Int("input_dim", model.InputDim()),
				zap.Float64("lmbda", params.Lambda),
				zap.Float64("gamma", params.Gamma))
			if params.Gamma <= 0 {
				a.logger.Warn("non-positive gamma, kernel values do not decay with distance",
					zap.Float64("gamma", params.Gamma))
			}

			inputs, labels, err := a.queries(model, dataPath)
			if err != nil {
				return err
			}
			outputs, err := predict.BatchPredict(model, inputs, nil, model.InputDim(), model.OutputDim(), a.cfg.Grain)
			if err != nil {
				return err
			}

			n, _ := inputs.Dims()
			res := predictionFile{
				X:          make([][]float64, n),
				Prediction: mat.Col(nil, 0, outputs),
			}
			for i := range res.X {
				res.X[i] = mat.Row(nil, i, inputs)
			}
			if labels != nil {
				losser, err := loss.Lookup(a.cfg.Loss)
				if err != nil {
					return err
				}
				value := loss.Batch(losser, outputs, mat.NewDense(n, 1, labels))
				res.Loss = &lossReport{Name: a.cfg.Loss, Value: value}
				a.logger.Info("predictions scored",
					zap.String("loss", a.cfg.Loss),
					zap.Float64("value", value))
			}
			a.logger.Info("predictions computed", zap.Int("points", n))
			return a.writeJSON(cmd, res)
		},
	}
	cmd.Flags().String(flagModel, "model.json", "model file")
	cmd.Flags().StringVar(&dataPath, "data", "", "dataset file with the query points, defaults to the grid")
	cmd.Flags().Int(flagGrain, 0, "rows per batch job, 0 picks one from GOMAXPROCS")
	cmd.Flags().String(flagLoss, "squared", "loss used to score labelled data")
	addGridFlags(cmd)
	return cmd
}

func (a *app) supportCmd() *cobra.Command {
	var (
		dataPath string
		coefPath string
		lambda   float64
		gamma    float64
	)
	cmd := &cobra.Command{
		Use:   "support",
		Short: "Build a model from a full coefficient vector",
		Long: `Reads the training inputs (--data) and one coefficient per input
(--coef, {"a": [...], "b": ...}) produced by an external solver, keeps the
points with a nonzero coefficient and writes the resulting model.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var d datasetFile
			if err := readJSON(dataPath, &d); err != nil {
				return err
			}
			dim, err := common.Dimension(d.X)
			if err != nil {
				return fmt.Errorf("%s: %w", dataPath, err)
			}
			var status svm.Status
			if err := readJSON(coefPath, &status); err != nil {
				return err
			}
			reduced, svs, err := svm.FindSupport(status, d.X)
			if err != nil {
				return err
			}
			if math.IsNaN(gamma) {
				gamma = svm.DefaultGamma
			}
			model, err := svm.NewModel(dim, svs, reduced, svm.Params{Lambda: lambda, Gamma: gamma})
			if err != nil {
				return err
			}
			a.logger.Info("support vectors selected",
				zap.Int("points", len(d.X)),
				zap.Int("support_vectors", model.NumSupport()))
			return a.writeJSON(cmd, model)
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "dataset file with the training inputs")
	cmd.Flags().StringVar(&coefPath, "coef", "", "coefficient file")
	cmd.Flags().Float64Var(&lambda, "lmbda", 1, "normalization divisor the model was fitted with")
	cmd.Flags().Float64Var(&gamma, "gamma", svm.DefaultGamma, "RBF bandwidth, NaN takes the default")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("coef")
	return cmd
}
