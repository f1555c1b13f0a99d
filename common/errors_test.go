package common

import (
	"errors"
	"testing"
)

func TestVerifyPoints(t *testing.T) {
	points := [][]float64{
		{3, 4, 5},
		{6, 7, 8},
		{9, 10, 11},
	}
	if err := VerifyPoints(points, 3); err != nil {
		t.Errorf("Error with proper input: %v", err)
	}
	if err := VerifyPoints(nil, 3); err != nil {
		t.Errorf("Error with nil points: %v", err)
	}

	for _, test := range []struct {
		Name   string
		Dim    int
		Got    int
		points [][]float64
	}{
		{
			Name: "ShortPoint",
			Dim:  3,
			Got:  2,
			points: [][]float64{
				{3, 4, 5},
				{6, 7},
				{9, 10, 11},
			},
		},
		{
			Name: "LongPoint",
			Dim:  3,
			Got:  4,
			points: [][]float64{
				{3, 4, 5, 6},
			},
		},
		{
			Name: "WrongDim",
			Dim:  1,
			Got:  3,
			points: [][]float64{
				{3, 4, 5},
				{6, 7, 8},
			},
		},
	} {
		err := VerifyPoints(test.points, test.Dim)
		var misErr DimensionMismatch
		if !errors.As(err, &misErr) {
			t.Errorf("%v: DimensionMismatch not returned with bad points", test.Name)
			continue
		}
		if misErr.Want != test.Dim {
			t.Errorf("%v: incorrect expected dimension %v", test.Name, misErr.Want)
		}
		if misErr.Got != test.Got {
			t.Errorf("%v: incorrect found dimension %v", test.Name, misErr.Got)
		}
	}
}

func TestDimension(t *testing.T) {
	if _, err := Dimension(nil); err != NoData {
		t.Errorf("NoData error not returned on no data")
	}
	dim, err := Dimension([][]float64{{1, 2}, {3, 4}})
	if err != nil {
		t.Errorf("Error with proper input: %v", err)
	}
	if dim != 2 {
		t.Errorf("Wrong dimension. Expected 2, found %v", dim)
	}
	_, err = Dimension([][]float64{{1, 2}, {3}})
	if !errors.As(err, &DimensionMismatch{}) {
		t.Errorf("DimensionMismatch not returned for ragged points")
	}
}

func TestErrorMessages(t *testing.T) {
	for _, test := range []struct {
		err  error
		want string
	}{
		{DimensionMismatch{Want: 2, Got: 3}, "rbfsvm: dimension mismatch. want: 2, got: 3"},
		{LengthMismatch{Coefficients: 2, SupportVectors: 3}, "rbfsvm: length mismatch. coefficients: 2, support vectors: 3"},
		{InvalidParameter{Name: "lmbda", Value: 0}, "rbfsvm: invalid parameter lmbda = 0"},
	} {
		if test.err.Error() != test.want {
			t.Errorf("Wrong message. Expected %q, found %q", test.want, test.err.Error())
		}
	}
}
