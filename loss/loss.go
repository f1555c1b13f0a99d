// Package loss scores predictions of a kernel model against known labels.
package loss

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/reggo/rbfsvm/common"
)

// init registers the losses by name so they can be picked from the
// command line
func init() {
	common.Register("squared", SquaredDistance{})
	common.Register("manhattan", ManhattanDistance{})
}

var lenMismatch string = "length mismatch"

// Losser is an interface for a loss function.
// A loss function is a measure of the quality of a prediction, with
// a lower value of loss being better. Typically, the loss is zero
// iff prediction == truth, and is always non-negative
// A Losser will panic if len(prediction) != len(truth). The losser
// should not modify the slice values
type Losser interface {
	Loss(prediction, truth []float64) float64
}

// Lookup returns the loss registered under name. Names registered for
// other kinds of components, such as kernels, are rejected.
func Lookup(name string) (Losser, error) {
	v, err := common.Lookup(name)
	if err != nil {
		return nil, err
	}
	l, ok := v.(Losser)
	if !ok {
		return nil, fmt.Errorf("loss: %s is registered as %T, not a loss", name, v)
	}
	return l, nil
}

// SquaredDistance is the squared two-norm of (pred - truth) divided by the
// length
type SquaredDistance struct{}

func (SquaredDistance) Loss(prediction, truth []float64) (loss float64) {
	if len(prediction) != len(truth) {
		panic(lenMismatch)
	}
	for i := range prediction {
		diff := prediction[i] - truth[i]
		loss += diff * diff
	}
	loss /= float64(len(prediction))
	return loss
}

// ManhattanDistance is the one-norm of (pred - truth) divided by the length
type ManhattanDistance struct{}

func (ManhattanDistance) Loss(prediction, truth []float64) float64 {
	if len(prediction) != len(truth) {
		panic(lenMismatch)
	}
	var loss float64
	for i, val := range prediction {
		loss += math.Abs(val - truth[i])
	}
	loss /= float64(len(prediction))
	return loss
}

// Batch returns the mean over rows of the loss between the rows of
// predictions and truth. Panics if the shapes differ. An empty batch has
// zero loss.
func Batch(losser Losser, predictions, truth common.RowMatrix) float64 {
	r, c := predictions.Dims()
	tr, tc := truth.Dims()
	if r != tr || c != tc {
		panic(lenMismatch)
	}
	if r == 0 {
		return 0
	}
	pred := make([]float64, c)
	want := make([]float64, c)
	var total float64
	for i := 0; i < r; i++ {
		mat.Row(pred, i, predictions)
		mat.Row(want, i, truth)
		total += losser.Loss(pred, want)
	}
	return total / float64(r)
}
