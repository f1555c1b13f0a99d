// Package predict provides a set of helper routines for predicting

package predict

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/reggo/rbfsvm/common"
)

var (
	ErrInputDim  = errors.New("predict batch: input dimension mismatch")
	ErrOutputDim = errors.New("predict batch: output dimension mismatch")
	ErrRows      = errors.New("predict batch: rows mismatch")
)

type BatchPredictor interface {
	NewPredictor() Predictor // Returns a predictor. This exists so that methods can create temporary data if necessary
}

// Predictor evaluates a single row. Implementations may assume the input
// and output lengths have already been checked.
type Predictor interface {
	Predict(input, output []float64)
}

// BatchPredict evaluates every row of inputs in parallel and stores the
// result in the matching row of outputs. If outputs is nil a new dense
// matrix is allocated. Rows are independent, so the result does not depend
// on the grain size or the number of workers.
func BatchPredict(batch BatchPredictor, inputs common.RowMatrix, outputs common.MutableRowMatrix, inputDim, outputDim int, grainSize int) (common.MutableRowMatrix, error) {
	if inputs == nil {
		return outputs, common.NoData
	}
	nSamples, dimInputs := inputs.Dims()
	if inputDim != dimInputs {
		return outputs, ErrInputDim
	}

	if outputs == nil {
		if nSamples == 0 {
			// gonum refuses zero-sized dense matrices.
			return &mat.Dense{}, nil
		}
		outputs = mat.NewDense(nSamples, outputDim, nil)
	} else {
		nOutputSamples, dimOutputs := outputs.Dims()
		if dimOutputs != outputDim {
			return outputs, ErrOutputDim
		}
		if nSamples != nOutputSamples {
			return outputs, ErrRows
		}
	}
	if nSamples == 0 {
		return outputs, nil
	}
	if grainSize <= 0 {
		grainSize = common.GetGrainSize(nSamples, 1, 500)
	}

	// Perform predictions in parallel. For each parallel call, form a new predictor so that
	// memory allocations are saved and no race condition happens.

	// If the input and/or output exposes its rows, save time by avoiding a copy
	inputRVer, inputIsRowViewer := inputs.(mat.RawRowViewer)
	outputRVer, outputIsRowViewer := outputs.(mat.RawRowViewer)

	var f func(start, end int)

	switch {
	case inputIsRowViewer && outputIsRowViewer:
		f = func(start, end int) {
			p := batch.NewPredictor()
			for i := start; i < end; i++ {
				p.Predict(inputRVer.RawRowView(i), outputRVer.RawRowView(i))
			}
		}
	case inputIsRowViewer && !outputIsRowViewer:
		f = func(start, end int) {
			p := batch.NewPredictor()
			output := make([]float64, outputDim)
			for i := start; i < end; i++ {
				p.Predict(inputRVer.RawRowView(i), output)
				outputs.SetRow(i, output)
			}
		}
	case !inputIsRowViewer && outputIsRowViewer:
		f = func(start, end int) {
			p := batch.NewPredictor()
			input := make([]float64, inputDim)
			for i := start; i < end; i++ {
				mat.Row(input, i, inputs)
				p.Predict(input, outputRVer.RawRowView(i))
			}
		}
	default:
		f = func(start, end int) {
			p := batch.NewPredictor()
			input := make([]float64, inputDim)
			output := make([]float64, outputDim)
			for i := start; i < end; i++ {
				mat.Row(input, i, inputs)
				p.Predict(input, output)
				outputs.SetRow(i, output)
			}
		}
	}

	common.ParallelFor(nSamples, grainSize, f)
	return outputs, nil
}
