// Package regtest contains a bunch of helper functions for testing predictors

package regtest

import (
	"math/rand/v2"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/reggo/rbfsvm/common"
)

func RandomMat(r, c int, f func() float64) *mat.Dense {
	m := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, f())
		}
	}
	return m
}

type InputOutputer interface {
	InputDim() int
	OutputDim() int
}

func TestInputOutputDim(t *testing.T, io InputOutputer, trueInputDim, trueOutputDim int, name string) {
	t.Helper()
	inputDim := io.InputDim()
	outputDim := io.OutputDim()
	if inputDim != trueInputDim {
		t.Errorf("%v: Mismatch in input dimension. expected %v, found %v", name, trueInputDim, inputDim)
	}
	if outputDim != trueOutputDim {
		t.Errorf("%v: Mismatch in output dimension. expected %v, found %v", name, trueOutputDim, outputDim)
	}
}

// TestPredictAndBatch tests that predict returns the expected value, that
// bad sizes are rejected, and that PredictBatch agrees exactly with
// successive calls to Predict.
func TestPredictAndBatch(t *testing.T, p common.Predictor, inputs, trueOutputs common.RowMatrix, tol float64, name string) {
	t.Helper()
	nSamples, inputDim := inputs.Dims()
	if inputDim != p.InputDim() {
		panic("input Dim doesn't match predictor input dim")
	}
	nOutSamples, outputDim := trueOutputs.Dims()
	if outputDim != p.OutputDim() {
		panic("outpuDim doesn't match predictor outputDim")
	}
	if nOutSamples != nSamples {
		panic("inputs and outputs have different number of rows")
	}
	rnd := rand.New(rand.NewPCG(uint64(nSamples), uint64(inputDim)))

	// First, test sequentially
	for i := 0; i < nSamples; i++ {
		trueOut := mat.Row(nil, i, trueOutputs)
		input := mat.Row(nil, i, inputs)
		inputCpy := append([]float64(nil), input...)

		out1, err := p.Predict(input, nil)
		if err != nil {
			t.Errorf("%v: Error predicting with nil output: %v", name, err)
			return
		}
		if !floats.Equal(input, inputCpy) {
			t.Errorf("%v: input changed with nil output for row %v", name, i)
			break
		}
		out2 := make([]float64, outputDim)
		for j := range out2 {
			out2[j] = rnd.NormFloat64()
		}
		_, err = p.Predict(input, out2)
		if err != nil {
			t.Errorf("%v: error predicting with non-nil output for row %v", name, i)
			break
		}
		if !floats.Equal(out1, out2) {
			t.Errorf("%v: different answers with nil and non-nil predict", name)
			break
		}
		if !floats.EqualApprox(out1, trueOut, tol) {
			t.Errorf("%v: predicted output doesn't match for row %v. Expected %v, found %v", name, i, trueOut, out1)
			break
		}
	}

	// Check that predict errors with bad sized arguments
	input := mat.Row(nil, 0, inputs)
	output := make([]float64, outputDim)

	if _, err := p.Predict(input, make([]float64, outputDim+1)); err == nil {
		t.Errorf("%v: Predict did not throw an error with an output too large", name)
	}
	if _, err := p.Predict(make([]float64, inputDim+1), output); err == nil {
		t.Errorf("%v: Predict did not err when input is too large", name)
	}
	if inputDim > 1 {
		if _, err := p.Predict(make([]float64, inputDim-1), output); err == nil {
			t.Errorf("%v: Predict did not err when input is too small", name)
		}
	}

	// Now, test batch
	inputCpy := mat.DenseCopyOf(inputs)
	predOutput, err := p.PredictBatch(inputs, nil)
	if err != nil {
		t.Fatalf("%v: Error batch predicting: %v", name, err)
	}
	if !mat.Equal(inputCpy, inputs) {
		t.Errorf("%v: Inputs changed during call to PredictBatch", name)
	}
	predOutputRows, predOutputCols := predOutput.Dims()
	if predOutputRows != nSamples || predOutputCols != outputDim {
		t.Errorf("%v: Dimension mismatch after predictbatch with nil output", name)
	}
	for i := 0; i < nSamples; i++ {
		single, _ := p.Predict(mat.Row(nil, i, inputs), nil)
		if !floats.Equal(single, mat.Row(nil, i, predOutput)) {
			t.Errorf("%v: batch and single prediction differ for row %v", name, i)
			break
		}
	}

	outputs := mat.NewDense(nSamples, outputDim, nil)
	if _, err := p.PredictBatch(inputs, outputs); err != nil {
		t.Errorf("%v: Error batch predicting in place: %v", name, err)
	}
	if !mat.Equal(predOutput, outputs) {
		t.Errorf("%v: Different outputs from predict batch with nil and non-nil", name)
	}

	badInputs := mat.NewDense(nSamples, inputDim+1, nil)
	if _, err := p.PredictBatch(badInputs, outputs); err == nil {
		t.Errorf("%v: PredictBatch did not err when input dim too large", name)
	}
	badInputs = mat.NewDense(nSamples+1, inputDim, nil)
	if _, err := p.PredictBatch(badInputs, outputs); err == nil {
		t.Errorf("%v: PredictBatch did not err with row mismatch", name)
	}
	badOutputs := mat.NewDense(nSamples, outputDim+1, nil)
	if _, err := p.PredictBatch(inputs, badOutputs); err == nil {
		t.Errorf("%v: PredictBatch did not err with output dim too large", name)
	}
}

type Jsoner interface {
	MarshalJSON() ([]byte, error)
	UnmarshalJSON([]byte) error
}

func TestJSON(t *testing.T, jsoner1 Jsoner, jsoner2 Jsoner) {
	t.Helper()
	b, err := jsoner1.MarshalJSON()
	if err != nil {
		t.Errorf("Error marshaling: %v", err)
	}
	err = jsoner2.UnmarshalJSON(b)
	if err != nil {
		t.Errorf("Error unmarshaling: %v", err)
	}

	if !reflect.DeepEqual(jsoner1, jsoner2) {
		t.Errorf("Not equal after json marshal and unmarshal")
	}
}
