// Package svm evaluates the decision function of a fitted Gaussian kernel
// support vector model.
//
// The decision value at a query point xk is
//
//	f(xk) = (1/λ) Σ_i a_i exp(-γ ||sv_i - xk||^2) + b
//
// where the support vectors sv_i, the coefficients a_i and the bias b come
// from an external training procedure. Training is not part of this package.
package svm

import (
	"math"

	"github.com/reggo/rbfsvm/common"
	"github.com/reggo/rbfsvm/kernel"
)

const DefaultGamma = 1.0

// Status holds the fitted coefficients. A[i] weighs the i-th support vector
// and B is the bias.
type Status struct {
	A []float64 `json:"a"`
	B float64   `json:"b"`
}

// Params holds the problem parameters the model was fitted with.
type Params struct {
	Lambda float64 `json:"lmbda"` // Normalization divisor applied to the kernel sum
	Gamma  float64 `json:"gamma"` // RBF bandwidth
}

// Validate checks the parameters that would make evaluation undefined.
// Gamma is left unchecked.
func (p Params) Validate() error {
	if p.Lambda == 0 || math.IsNaN(p.Lambda) {
		return common.InvalidParameter{Name: "lmbda", Value: p.Lambda}
	}
	return nil
}

// verify checks the shapes of the inputs to the decision function. The
// first problem found is returned.
func verify(status Status, svs [][]float64, params Params) error {
	if len(status.A) != len(svs) {
		return common.LengthMismatch{Coefficients: len(status.A), SupportVectors: len(svs)}
	}
	return params.Validate()
}

// DecisionFunction returns the decision value of the model (status, svs,
// params) at xk. Every support vector must have the dimension of xk. All
// inputs are checked before any kernel is evaluated, so no partial result
// is ever produced; on error the returned value is zero.
//
// The weighted kernel sum is accumulated in index order.
func DecisionFunction(xk []float64, status Status, svs [][]float64, params Params) (float64, error) {
	if err := verify(status, svs, params); err != nil {
		return 0, err
	}
	if err := common.VerifyPoints(svs, len(xk)); err != nil {
		return 0, err
	}
	return decision(xk, status.A, status.B, svs, params.Lambda, kernel.Gaussian{Gamma: params.Gamma}), nil
}

// decision assumes all inputs have been verified.
func decision(xk, a []float64, b float64, svs [][]float64, lambda float64, k kernel.DistKerneler) float64 {
	var d float64
	for i, sv := range svs {
		d += a[i] * k.KernelSqDist(kernel.SqDist(sv, xk))
	}
	return d/lambda + b
}

// FindSupport returns the points of data whose coefficient is nonzero
// together with the matching reduced coefficients. The bias is kept. The
// returned rows alias the rows of data.
func FindSupport(status Status, data [][]float64) (Status, [][]float64, error) {
	if len(status.A) != len(data) {
		return Status{}, nil, common.LengthMismatch{Coefficients: len(status.A), SupportVectors: len(data)}
	}
	reduced := Status{B: status.B}
	var svs [][]float64
	for i, a := range status.A {
		if a == 0 {
			continue
		}
		reduced.A = append(reduced.A, a)
		svs = append(svs, data[i])
	}
	return reduced, svs, nil
}
