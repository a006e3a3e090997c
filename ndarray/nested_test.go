// SPDX-License-Identifier: MIT
package ndarray_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/osprey/ndarray"
	"github.com/stretchr/testify/require"
)

// TestFromNested covers shape probing, dtype inference and ragged/non-numeric input.
func TestFromNested(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        any
		wantShape []int
		wantDType ndarray.DType
		wantVals  []float64
		wantErr   error
	}{
		{"flat float64", []float64{1, 2}, []int{2}, ndarray.Float64, []float64{1, 2}, nil},
		{"ints", []int{1, 2, 3}, []int{3}, ndarray.Int64, []float64{1, 2, 3}, nil},
		{"mixed any", []any{1, 2.5}, []int{2}, ndarray.Float64, []float64{1, 2.5}, nil},
		{"bools", []bool{true, false}, []int{2}, ndarray.Bool, []float64{1, 0}, nil},
		{"bytes", []uint8{7, 8}, []int{2}, ndarray.Uint8, []float64{7, 8}, nil},
		{"float32", []float32{0.5}, []int{1}, ndarray.Float32, []float64{0.5}, nil},
		{"matrix", [][]float64{{1, 2}, {3, 4}, {5, 6}}, []int{3, 2}, ndarray.Float64, []float64{1, 2, 3, 4, 5, 6}, nil},
		{"go array", [2][2]int{{1, 2}, {3, 4}}, []int{2, 2}, ndarray.Int64, []float64{1, 2, 3, 4}, nil},
		{"cube", [][][]int{{{1}}, {{2}}}, []int{2, 1, 1}, ndarray.Int64, []float64{1, 2}, nil},
		{"scalar", 3.0, []int{}, ndarray.Float64, []float64{3}, nil},
		{"empty", []any{}, []int{0}, ndarray.Float64, []float64{}, nil},
		{"ragged", [][]int{{1, 2}, {3}}, nil, 0, nil, ndarray.ErrRagged},
		{"depth mismatch", []any{[]int{1}, 2}, nil, 0, nil, ndarray.ErrRagged},
		{"strings", []string{"a"}, nil, 0, nil, ndarray.ErrNotNumeric},
		{"nil", nil, nil, 0, nil, ndarray.ErrNotNumeric},
		{"nil element", []any{1, nil}, nil, 0, nil, ndarray.ErrNotNumeric},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a, err := ndarray.FromNested(tc.in)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantShape, a.Shape())
			require.Equal(t, tc.wantDType, a.DType())
			require.Equal(t, tc.wantVals, a.Values())
		})
	}
}

// ExampleFromNested shows dtype inference from nested Go slices.
func ExampleFromNested() {
	a, err := ndarray.FromNested([][]int{{1, 2}, {3, 4}})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(a.Shape(), a.DType())
	fmt.Print(a)
	// Output:
	// [2 2] int64
	// [1, 2]
	// [3, 4]
}
