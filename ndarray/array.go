// SPDX-License-Identifier: MIT

// Package ndarray - Array storage & safe accessors.
//
// Purpose:
//   - Hold a flat buffer plus shape/dtype/order; offsets follow the order's strides.
//   - Guarantee safety at the public surface: At returns errors instead of panicking.
//   - Keep loops deterministic (logical row-major traversal everywhere).
//
// Complexity quicksheet:
//   - New: O(size) cast+copy; At: O(ndim); Values/Clone: O(size).

package ndarray

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxNew    = "New"
	ctxAt     = "At"
	ctxLen    = "Len"
	ctxZeros  = "Zeros"
	ctxAsType = "AsType"
	ctxAsC    = "AsContiguous"
	ctxFinite = "AllFinite"
	ctxNested = "FromNested"
)

// Array is a dense n-dimensional array.
//   - shape holds the extent of every axis (len(shape) == ndim; 0-d is a scalar).
//   - data holds product(shape) values laid out in order.
//   - every value in data is representable in dtype.
type Array struct {
	shape []int
	data  []float64
	dtype DType
	order Order
}

var _ fmt.Stringer = (*Array)(nil)

// New creates a row-major Array of the given dtype and shape from data.
// Data is cast into dtype and copied; the caller keeps ownership of data.
//
// Errors: ErrUnknownDType, ErrBadShape, ErrDataLength, and casting errors
// (ErrNaNInf / ErrOverflow) for integer dtypes.
// Complexity: O(size).
func New(dtype DType, shape []int, data []float64) (*Array, error) {
	return NewWithOrder(dtype, RowMajor, shape, data)
}

// NewWithOrder is New with an explicit memory order; data must already be
// laid out in that order.
func NewWithOrder(dtype DType, order Order, shape []int, data []float64) (*Array, error) {
	// Stage 1: validate dtype/order/shape.
	if !dtype.Valid() {
		return nil, arrayErrorf(ctxNew, ErrUnknownDType)
	}
	if order != RowMajor && order != ColMajor {
		return nil, arrayErrorf(ctxNew, ErrUnknownOrder)
	}
	size, err := shapeSize(shape)
	if err != nil {
		return nil, arrayErrorf(ctxNew, err)
	}
	if len(data) != size {
		return nil, fmt.Errorf("%s: shape %v wants %d values, got %d: %w", ctxNew, shape, size, len(data), ErrDataLength)
	}

	// Stage 2: cast into the dtype value space (allocates a fresh buffer).
	buf, err := CastValues(data, dtype)
	if err != nil {
		return nil, arrayErrorf(ctxNew, err)
	}

	return &Array{shape: cloneInts(shape), data: buf, dtype: dtype, order: order}, nil
}

// Zeros returns a zero-filled row-major Array.
func Zeros(dtype DType, shape ...int) (*Array, error) {
	if !dtype.Valid() {
		return nil, arrayErrorf(ctxZeros, ErrUnknownDType)
	}
	size, err := shapeSize(shape)
	if err != nil {
		return nil, arrayErrorf(ctxZeros, err)
	}

	return &Array{shape: cloneInts(shape), data: make([]float64, size), dtype: dtype, order: RowMajor}, nil
}

// Shape returns a copy of the array's shape.
func (a *Array) Shape() []int { return cloneInts(a.shape) }

// NDim returns the number of axes.
func (a *Array) NDim() int { return len(a.shape) }

// Size returns the total number of elements.
func (a *Array) Size() int { return len(a.data) }

// DType returns the element type.
func (a *Array) DType() DType { return a.dtype }

// Order returns the memory order of the flat buffer.
func (a *Array) Order() Order { return a.order }

// IsCContiguous reports whether the buffer is in row-major order.
// Arrays with at most one non-trivial axis are contiguous in either order.
func (a *Array) IsCContiguous() bool {
	if a.order == RowMajor {
		return true
	}
	wide := 0
	for _, n := range a.shape {
		if n > 1 {
			wide++
		}
	}

	return wide <= 1
}

// Len returns the extent of the first axis (the sample count).
// A 0-d array has no length and yields ErrScalar.
func (a *Array) Len() (int, error) {
	if len(a.shape) == 0 {
		return 0, arrayErrorf(ctxLen, ErrScalar)
	}

	return a.shape[0], nil
}

// At returns the element at the given multi-index.
// Errors: ErrOutOfRange when the index rank or any coordinate is invalid.
// Complexity: O(ndim).
func (a *Array) At(idx ...int) (float64, error) {
	off, err := a.offset(idx)
	if err != nil {
		return 0, err
	}

	return a.data[off], nil
}

// Values returns a copy of the elements in logical row-major order.
func (a *Array) Values() []float64 {
	if a.order == RowMajor || a.IsCContiguous() {
		out := make([]float64, len(a.data))
		copy(out, a.data)
		return out
	}

	return a.rowMajorData()
}

// Clone returns a deep copy that preserves dtype and order.
func (a *Array) Clone() *Array {
	buf := make([]float64, len(a.data))
	copy(buf, a.data)

	return &Array{shape: cloneInts(a.shape), data: buf, dtype: a.dtype, order: a.order}
}

// String renders 1-d and 2-d arrays row by row, and a summary otherwise.
func (a *Array) String() string {
	var sb strings.Builder
	switch len(a.shape) {
	case 1:
		writeRow(&sb, a.data)
	case 2:
		vals := a.Values()
		cols := a.shape[1]
		for i := 0; i < a.shape[0]; i++ {
			writeRow(&sb, vals[i*cols:(i+1)*cols])
		}
	default:
		fmt.Fprintf(&sb, "ndarray(shape=%v, dtype=%s, order=%s)", a.shape, a.dtype, a.order)
	}

	return sb.String()
}

func writeRow(sb *strings.Builder, row []float64) {
	sb.WriteString("[")
	for j, v := range row {
		if j > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(sb, "%g", v)
	}
	sb.WriteString("]\n")
}

// ---------- indexing helpers ----------

// strides returns per-axis element strides for the array's order.
func (a *Array) strides() []int {
	n := len(a.shape)
	st := make([]int, n)
	acc := 1
	if a.order == RowMajor {
		for k := n - 1; k >= 0; k-- {
			st[k] = acc
			acc *= a.shape[k]
		}
		return st
	}
	for k := 0; k < n; k++ {
		st[k] = acc
		acc *= a.shape[k]
	}

	return st
}

// offset validates a multi-index and returns its flat offset.
func (a *Array) offset(idx []int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, fmt.Errorf("%s%v: rank %d index on %d-d array: %w", ctxAt, idx, len(idx), len(a.shape), ErrOutOfRange)
	}
	st := a.strides()
	off := 0
	for k, i := range idx {
		if i < 0 || i >= a.shape[k] {
			return 0, fmt.Errorf("%s%v: %w", ctxAt, idx, ErrOutOfRange)
		}
		off += i * st[k]
	}

	return off, nil
}

// unravel converts a logical row-major position into a multi-index.
func (a *Array) unravel(pos int) []int {
	idx := make([]int, len(a.shape))
	for k := len(a.shape) - 1; k >= 0; k-- {
		if a.shape[k] == 0 {
			continue
		}
		idx[k] = pos % a.shape[k]
		pos /= a.shape[k]
	}

	return idx
}

// rowMajorData gathers the buffer into logical row-major order.
// Time: O(size * ndim). Space: O(size).
func (a *Array) rowMajorData() []float64 {
	out := make([]float64, len(a.data))
	st := a.strides()
	for pos := range out {
		idx := a.unravel(pos)
		off := 0
		for k, i := range idx {
			off += i * st[k]
		}
		out[pos] = a.data[off]
	}

	return out
}

// shapeSize validates a shape and returns the product of its extents.
// Products that do not fit in an int are rejected; a zero extent anywhere
// makes the size zero regardless of the other axes.
func shapeSize(shape []int) (int, error) {
	size := 1
	for _, n := range shape {
		if n < 0 {
			return 0, fmt.Errorf("shape %v: %w", shape, ErrBadShape)
		}
	}
	for _, n := range shape {
		if n == 0 {
			return 0, nil
		}
		if size > math.MaxInt/n {
			return 0, fmt.Errorf("shape %v overflows int: %w", shape, ErrBadShape)
		}
		size *= n
	}

	return size, nil
}

func cloneInts(in []int) []int {
	out := make([]int, len(in))
	copy(out, in)
	return out
}
