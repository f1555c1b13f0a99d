package common

import "gonum.org/v1/gonum/mat"

// RowMatrix is a matrix whose rows are data points.
type RowMatrix interface {
	mat.Matrix
}

// MutableRowMatrix is a RowMatrix whose rows can be overwritten.
type MutableRowMatrix interface {
	mat.Matrix
	Set(i, j int, v float64)
	SetRow(i int, src []float64)
}

// See package rbfsvm for description. This is here to avoid circular imports
type Predictor interface {
	Predict(input, output []float64) ([]float64, error)
	PredictBatch(inputs RowMatrix, outputs MutableRowMatrix) (MutableRowMatrix, error)
	InputDim() int
	OutputDim() int
}
