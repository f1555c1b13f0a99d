package svm

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/reggo/rbfsvm/common"
	"github.com/reggo/rbfsvm/kernel"
	predHelp "github.com/reggo/rbfsvm/predict"
)

// Model is a validated, immutable kernel model ready for prediction. Use
// NewModel to construct one. A Model is safe for concurrent use.
type Model struct {
	inputDim int

	svs    *mat.Dense  // nil when there are no support vectors
	rows   [][]float64 // row views into svs
	status Status
	params Params
	kernel kernel.DistKerneler
}

// NewModel checks the inputs once and copies them into a Model. inputDim is
// the dimension of the query points; every support vector must share it.
// The model evaluates a Gaussian kernel with bandwidth params.Gamma.
func NewModel(inputDim int, svs [][]float64, status Status, params Params) (*Model, error) {
	return newModel(inputDim, svs, status, params, kernel.Gaussian{Gamma: params.Gamma})
}

func newModel(inputDim int, svs [][]float64, status Status, params Params, k kernel.DistKerneler) (*Model, error) {
	if inputDim < 1 {
		return nil, common.InvalidParameter{Name: "input dimension", Value: float64(inputDim)}
	}
	if err := verify(status, svs, params); err != nil {
		return nil, err
	}
	if err := common.VerifyPoints(svs, inputDim); err != nil {
		return nil, err
	}

	m := &Model{
		inputDim: inputDim,
		status: Status{
			A: append([]float64(nil), status.A...),
			B: status.B,
		},
		params: params,
		kernel: k,
	}
	if len(svs) > 0 {
		m.svs = mat.NewDense(len(svs), inputDim, nil)
		m.rows = make([][]float64, len(svs))
		for i, sv := range svs {
			m.svs.SetRow(i, sv)
			m.rows[i] = m.svs.RawRowView(i)
		}
	}
	return m, nil
}

// InputDim returns the dimension of the query points
func (m *Model) InputDim() int {
	return m.inputDim
}

// OutputDim returns the number of outputs, which is always one
func (m *Model) OutputDim() int {
	return 1
}

// NumSupport returns the number of support vectors
func (m *Model) NumSupport() int {
	return len(m.rows)
}

// SupportVectors returns a copy of the support vectors, one per row. It
// returns nil for a model without support vectors.
func (m *Model) SupportVectors() *mat.Dense {
	if m.svs == nil {
		return nil
	}
	return mat.DenseCopyOf(m.svs)
}

// Status returns a copy of the coefficients
func (m *Model) Status() Status {
	return Status{A: append([]float64(nil), m.status.A...), B: m.status.B}
}

// Params returns the model parameters
func (m *Model) Params() Params {
	return m.params
}

// Kernel returns the kernel the model evaluates
func (m *Model) Kernel() kernel.DistKerneler {
	return m.kernel
}

func (m *Model) decision(xk []float64) float64 {
	return decision(xk, m.status.A, m.status.B, m.rows, m.params.Lambda, m.kernel)
}

// Decision returns the decision value at xk.
func (m *Model) Decision(xk []float64) (float64, error) {
	if len(xk) != m.inputDim {
		return 0, common.DimensionMismatch{Want: m.inputDim, Got: len(xk)}
	}
	return m.decision(xk), nil
}

// Predict returns the decision value at input. If output is nil a new
// slice of length one is created, otherwise the value is stored in place.
func (m *Model) Predict(input, output []float64) ([]float64, error) {
	if len(input) != m.inputDim {
		return nil, common.DimensionMismatch{Want: m.inputDim, Got: len(input)}
	}
	if output == nil {
		output = make([]float64, 1)
	} else if len(output) != 1 {
		return nil, common.DimensionMismatch{Want: 1, Got: len(output)}
	}
	output[0] = m.decision(input)
	return output, nil
}

func (m *Model) grainSize(nSamples int) int {
	return common.GetGrainSize(nSamples, 1, 500)
}

// NewPredictor lets a Model be handed to predict.BatchPredict directly, for
// callers that pick their own grain size.
func (m *Model) NewPredictor() predHelp.Predictor {
	return batchPredictor{m}
}

// PredictBatch computes the decision value for every row of inputs
// concurrently. outputs must either be (nSamples x 1), or must be nil. If
// outputs is nil, a new matrix will be created to store the predictions
func (m *Model) PredictBatch(inputs common.RowMatrix, outputs common.MutableRowMatrix) (common.MutableRowMatrix, error) {
	var nSamples int
	if inputs != nil {
		nSamples, _ = inputs.Dims()
	}
	return predHelp.BatchPredict(m, inputs, outputs, m.inputDim, 1, m.grainSize(nSamples))
}

// batchPredictor is a wrapper for BatchPredict to allow parallel predictions
type batchPredictor struct {
	m *Model
}

// There is no temporary memory involved, so can just return itself
func (b batchPredictor) NewPredictor() predHelp.Predictor {
	return b
}

func (b batchPredictor) Predict(input, output []float64) {
	output[0] = b.m.decision(input)
}

type paramsMarshal struct {
	Lambda *float64 `json:"lmbda"`
	Gamma  *float64 `json:"gamma"`
}

type modelMarshal struct {
	InputDim       int                        `json:"input_dim,omitempty"`
	SupportVectors [][]float64                `json:"support_vectors"`
	Status         Status                     `json:"status"`
	Params         paramsMarshal              `json:"params"`
	Kernel         *common.InterfaceMarshaler `json:"kernel,omitempty"`
}

func (m *Model) MarshalJSON() ([]byte, error) {
	svs := make([][]float64, len(m.rows))
	for i, row := range m.rows {
		svs[i] = append([]float64(nil), row...)
	}
	a := m.status.A
	if a == nil {
		a = []float64{}
	}
	return json.Marshal(modelMarshal{
		InputDim:       m.inputDim,
		SupportVectors: svs,
		Status:         Status{A: a, B: m.status.B},
		Params: paramsMarshal{
			Lambda: &m.params.Lambda,
			Gamma:  &m.params.Gamma,
		},
		Kernel: &common.InterfaceMarshaler{I: m.kernel},
	})
}

// UnmarshalJSON decodes and validates a model. A missing gamma takes
// DefaultGamma. A missing lmbda is treated as zero and rejected. The input
// dimension is read from input_dim when present, otherwise from the
// support vectors.
//
// The kernel entry is optional and defaults to a Gaussian with the
// params gamma. A Gaussian kernel entry supplies gamma when params has
// none, and must agree with it otherwise.
func (m *Model) UnmarshalJSON(data []byte) error {
	var raw modelMarshal
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	params := Params{Gamma: DefaultGamma}
	if raw.Params.Lambda != nil {
		params.Lambda = *raw.Params.Lambda
	}
	if raw.Params.Gamma != nil {
		params.Gamma = *raw.Params.Gamma
	}
	var k kernel.DistKerneler
	if raw.Kernel != nil {
		var ok bool
		k, ok = raw.Kernel.I.(kernel.DistKerneler)
		if !ok {
			return fmt.Errorf("svm: kernel of type %T is not a distance kernel", raw.Kernel.I)
		}
		if g, ok := k.(kernel.Gaussian); ok {
			switch {
			case raw.Params.Gamma == nil:
				params.Gamma = g.Gamma
			case *raw.Params.Gamma != g.Gamma:
				return common.InvalidParameter{Name: "kernel gamma", Value: g.Gamma}
			}
		}
	} else {
		k = kernel.Gaussian{Gamma: params.Gamma}
	}
	inputDim := raw.InputDim
	if inputDim == 0 {
		dim, err := common.Dimension(raw.SupportVectors)
		if err != nil {
			return err
		}
		inputDim = dim
	}
	decoded, err := newModel(inputDim, raw.SupportVectors, raw.Status, params, k)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}
