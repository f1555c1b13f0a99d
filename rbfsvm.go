// Package rbfsvm evaluates Gaussian kernel support vector models that were
// fitted elsewhere.
//
// The pieces live in sub-packages:
//
//	kernel   the RBF kernel exp(-gamma ||x-y||^2)
//	svm      the decision function and the validated Model
//	predict  parallel batch evaluation over the rows of a matrix
//	dataset  the seeded sin(6 pi x) dataset and linspace grids
//	loss     scores of predictions against labels
//
// Training is out of scope: coefficients, bias and parameters are inputs.
package rbfsvm

import (
	"github.com/reggo/rbfsvm/common"
	"github.com/reggo/rbfsvm/svm"
)

// A Predictor is a type that can make predictions on data
type Predictor interface {
	// Predict makes a prediction on a single data point, and returns the prediction
	// and any error. If output is nil, a new slice is created and returned. If output
	// is non-nil, the prediction is stored in place and the output is returned. If
	// len(output) != OutputDim() or len(input) != InputDim(), Predict returns an
	// error.
	Predict(input, output []float64) ([]float64, error)

	// PredictBatch predicts a set of list of data where the inputs (and outputs) are stored
	// as rows of a matrix. This may be faster than successive calls to Predict, as the
	// implementer may evaluate the predictions concurrently. Like predict, if output is
	// nil, a new matrix will be created, otherwise the result will be stored in place.
	PredictBatch(inputs common.RowMatrix, outputs common.MutableRowMatrix) (common.MutableRowMatrix, error)

	InputDim() int
	OutputDim() int
}

var _ Predictor = (*svm.Model)(nil)
