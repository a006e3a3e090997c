// SPDX-License-Identifier: MIT
// Package ndarray: construction from nested Go values.
//
// FromNested accepts a scalar, a slice/array of scalars, or arbitrarily deep
// rectangular nesting of those (e.g. [][]float64, []any{[]any{1, 2}, …}).
// The dtype is inferred from the leaves:
//   - all bool                → Bool
//   - all uint8               → Uint8
//   - all float32             → Float32
//   - any float, else integer → Float64, else Int64
//   - empty                   → Float64

package ndarray

import (
	"fmt"
	"reflect"
)

// leafKinds accumulates which scalar families were seen while flattening.
type leafKinds struct {
	boolean, uint8s, float32s, floats, ints, total int
}

func (k leafKinds) dtype() DType {
	switch {
	case k.total == 0:
		return Float64
	case k.boolean == k.total:
		return Bool
	case k.uint8s == k.total:
		return Uint8
	case k.float32s == k.total:
		return Float32
	case k.floats > 0:
		return Float64
	default:
		return Int64
	}
}

// FromNested builds a row-major Array from nested slices/arrays of numbers.
//
// Errors:
//   - ErrRagged when sibling sequences differ in length or depth.
//   - ErrNotNumeric for nil, strings, maps, structs or other non-numeric leaves.
//
// Complexity: O(size * depth).
func FromNested(v any) (*Array, error) {
	// Fast path for the most common flat input.
	if fs, ok := v.([]float64); ok {
		buf := make([]float64, len(fs))
		copy(buf, fs)
		return &Array{shape: []int{len(fs)}, data: buf, dtype: Float64, order: RowMajor}, nil
	}

	rv := unwrap(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil, arrayErrorf(ctxNested, ErrNotNumeric)
	}

	// Stage 1: probe the shape along the first-element chain.
	var shape []int
	for cur := rv; isSequence(cur); {
		shape = append(shape, cur.Len())
		if cur.Len() == 0 {
			break
		}
		cur = unwrap(cur.Index(0))
	}

	// Stage 2: flatten, verifying every branch matches the probed shape.
	size, err := shapeSize(shape)
	if err != nil {
		return nil, arrayErrorf(ctxNested, err)
	}
	buf := make([]float64, 0, size)
	var kinds leafKinds
	if err := flatten(rv, shape, &buf, &kinds); err != nil {
		return nil, arrayErrorf(ctxNested, err)
	}

	return &Array{shape: shape, data: buf, dtype: kinds.dtype(), order: RowMajor}, nil
}

func flatten(rv reflect.Value, shape []int, buf *[]float64, kinds *leafKinds) error {
	if len(shape) == 0 {
		if isSequence(rv) {
			return fmt.Errorf("unexpected nested sequence: %w", ErrRagged)
		}
		f, err := leafValue(rv, kinds)
		if err != nil {
			return err
		}
		*buf = append(*buf, f)
		return nil
	}
	if !isSequence(rv) {
		return fmt.Errorf("expected sequence of length %d: %w", shape[0], ErrRagged)
	}
	if rv.Len() != shape[0] {
		return fmt.Errorf("sequence of length %d, expected %d: %w", rv.Len(), shape[0], ErrRagged)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := flatten(unwrap(rv.Index(i)), shape[1:], buf, kinds); err != nil {
			return err
		}
	}

	return nil
}

func leafValue(rv reflect.Value, kinds *leafKinds) (float64, error) {
	if !rv.IsValid() {
		return 0, fmt.Errorf("nil element: %w", ErrNotNumeric)
	}
	kinds.total++
	switch rv.Kind() {
	case reflect.Bool:
		kinds.boolean++
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		kinds.ints++
		return float64(rv.Int()), nil
	case reflect.Uint8:
		kinds.uint8s++
		kinds.ints++
		return float64(rv.Uint()), nil
	case reflect.Uint, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		kinds.ints++
		return float64(rv.Uint()), nil
	case reflect.Float32:
		kinds.float32s++
		kinds.floats++
		return rv.Float(), nil
	case reflect.Float64:
		kinds.floats++
		return rv.Float(), nil
	default:
		return 0, fmt.Errorf("element of kind %s: %w", rv.Kind(), ErrNotNumeric)
	}
}

// isSequence reports whether rv is a slice or array (strings are not sequences here).
func isSequence(rv reflect.Value) bool {
	return rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array)
}

// unwrap strips interface and pointer indirections.
func unwrap(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}

	return rv
}
