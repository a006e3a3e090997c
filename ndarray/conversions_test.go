// SPDX-License-Identifier: MIT
package ndarray_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/osprey/ndarray"
	"github.com/stretchr/testify/require"
)

func nan() float64 { return math.NaN() }

// TestAsType covers the identity fast path and fresh allocations on casts.
func TestAsType(t *testing.T) {
	t.Parallel()

	a := mustArray(t, ndarray.Float64, []int{3}, []float64{1.5, 2.5, -3.5})

	same, err := a.AsType(ndarray.Unspecified)
	require.NoError(t, err)
	require.Same(t, a, same)

	same, err = a.AsType(ndarray.Float64)
	require.NoError(t, err)
	require.Same(t, a, same)

	ints, err := a.AsType(ndarray.Int64)
	require.NoError(t, err)
	require.NotSame(t, a, ints)
	require.Equal(t, ndarray.Int64, ints.DType())
	require.Equal(t, []float64{1, 2, -3}, ints.Values())
	// receiver untouched
	require.Equal(t, []float64{1.5, 2.5, -3.5}, a.Values())

	f32, err := a.AsType(ndarray.Float32)
	require.NoError(t, err)
	require.Equal(t, ndarray.Float32, f32.DType())

	bad := mustArray(t, ndarray.Float64, []int{2}, []float64{1, math.Inf(1)})
	_, err = bad.AsType(ndarray.Int32)
	require.ErrorIs(t, err, ndarray.ErrNaNInf)
}

// TestAsContiguous covers re-layout from Fortran order and dtype coercion.
func TestAsContiguous(t *testing.T) {
	t.Parallel()

	c := mustArray(t, ndarray.Float64, []int{2, 2}, []float64{1, 2, 3, 4})
	same, err := c.AsContiguous(ndarray.Unspecified)
	require.NoError(t, err)
	require.Same(t, c, same)

	f, err := ndarray.NewWithOrder(ndarray.Float64, ndarray.ColMajor, []int{2, 2}, []float64{1, 3, 2, 4})
	require.NoError(t, err)
	out, err := f.AsContiguous(ndarray.Unspecified)
	require.NoError(t, err)
	require.NotSame(t, f, out)
	require.Equal(t, ndarray.RowMajor, out.Order())
	require.Equal(t, []float64{1, 2, 3, 4}, out.Values())
	require.Equal(t, ndarray.ColMajor, f.Order())

	cast, err := c.AsContiguous(ndarray.Int64)
	require.NoError(t, err)
	require.NotSame(t, c, cast)
	require.Equal(t, ndarray.Int64, cast.DType())
	require.True(t, cast.IsCContiguous())
}

// TestAllFinite reports the first non-finite element by logical position.
func TestAllFinite(t *testing.T) {
	t.Parallel()

	require.NoError(t, mustArray(t, ndarray.Float64, []int{2}, []float64{1, 2}).AllFinite())

	withNaN := mustArray(t, ndarray.Float64, []int{2, 2}, []float64{1, 2, nan(), 4})
	err := withNaN.AllFinite()
	require.ErrorIs(t, err, ndarray.ErrNaNInf)
	require.Contains(t, err.Error(), "[1 0]")

	// Fortran layout: the logical first offender is (0,1)=+Inf even though
	// (1,0)=NaN comes first in storage.
	f, err := ndarray.NewWithOrder(ndarray.Float64, ndarray.ColMajor, []int{2, 2}, []float64{1, nan(), math.Inf(1), 4})
	require.NoError(t, err)
	err = f.AllFinite()
	require.ErrorIs(t, err, ndarray.ErrNaNInf)
	require.Contains(t, err.Error(), "[0 1]")

	require.NoError(t, mustArray(t, ndarray.Bool, []int{1}, []float64{nan()}).AllFinite())
}

// TestCastValues covers every dtype branch of the casting kernel.
func TestCastValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		to      ndarray.DType
		in      []float64
		want    []float64
		wantErr error
	}{
		{"float64", ndarray.Float64, []float64{0.1}, []float64{0.1}, nil},
		{"float32 rounding", ndarray.Float32, []float64{0.1}, []float64{float64(float32(0.1))}, nil},
		{"int64", ndarray.Int64, []float64{-2.7}, []float64{-2}, nil},
		{"int32 overflow", ndarray.Int32, []float64{3e9}, nil, ndarray.ErrOverflow},
		{"uint8 negative", ndarray.Uint8, []float64{-1}, nil, ndarray.ErrOverflow},
		{"uint8 bounds", ndarray.Uint8, []float64{0, 255.9}, []float64{0, 255}, nil},
		{"bool", ndarray.Bool, []float64{0, 3}, []float64{0, 1}, nil},
		{"unspecified", ndarray.Unspecified, []float64{1}, nil, ndarray.ErrUnknownDType},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ndarray.CastValues(tc.in, tc.to)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

// TestParseDType covers aliases and the empty name.
func TestParseDType(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]ndarray.DType{
		"":        ndarray.Unspecified,
		"float64": ndarray.Float64,
		"Float":   ndarray.Float64,
		"f4":      ndarray.Float32,
		"int":     ndarray.Int64,
		"int32":   ndarray.Int32,
		"uint8":   ndarray.Uint8,
		"bool":    ndarray.Bool,
	} {
		got, err := ndarray.ParseDType(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}

	_, err := ndarray.ParseDType("complex128")
	require.ErrorIs(t, err, ndarray.ErrUnknownDType)

	require.Equal(t, "int32", ndarray.Int32.String())
	require.Equal(t, "unspecified", ndarray.Unspecified.String())
}

// TestParseOrder covers C/F parsing.
func TestParseOrder(t *testing.T) {
	t.Parallel()

	o, err := ndarray.ParseOrder("f")
	require.NoError(t, err)
	require.Equal(t, ndarray.ColMajor, o)
	require.Equal(t, "F", o.String())

	o, err = ndarray.ParseOrder("")
	require.NoError(t, err)
	require.Equal(t, ndarray.RowMajor, o)

	_, err = ndarray.ParseOrder("K")
	require.ErrorIs(t, err, ndarray.ErrUnknownOrder)
}
