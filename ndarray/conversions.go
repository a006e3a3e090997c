// SPDX-License-Identifier: MIT
// Package ndarray: dtype and layout conversions.
//
// Contract:
//   - A conversion that has nothing to do returns the receiver (pointer-identical).
//   - Any real work allocates a new Array; the receiver is never mutated.

package ndarray

import (
	"fmt"
	"math"
)

// AsType returns the array with elements cast to dtype, preserving order.
// Unspecified or the current dtype returns the receiver unchanged.
//
// Errors: ErrUnknownDType, ErrNaNInf / ErrOverflow from integer casts.
// Complexity: O(size) when a cast happens, O(1) otherwise.
func (a *Array) AsType(dtype DType) (*Array, error) {
	if dtype == Unspecified || dtype == a.dtype {
		return a, nil
	}
	buf, err := CastValues(a.data, dtype)
	if err != nil {
		return nil, arrayErrorf(ctxAsType, err)
	}

	return &Array{shape: cloneInts(a.shape), data: buf, dtype: dtype, order: a.order}, nil
}

// AsContiguous returns a row-major array of the requested dtype.
// When the receiver is already C-contiguous and of that dtype it is returned as is.
//
// Implementation:
//   - Stage 1: resolve target dtype (Unspecified keeps the current one).
//   - Stage 2: gather into row-major order if needed.
//   - Stage 3: cast into the target dtype if needed.
//
// Complexity: O(size * ndim) for a re-layout, O(size) for a pure cast.
func (a *Array) AsContiguous(dtype DType) (*Array, error) {
	target := dtype
	if target == Unspecified {
		target = a.dtype
	}
	if a.IsCContiguous() && target == a.dtype {
		return a, nil
	}

	buf := a.Values() // fresh row-major buffer
	if target != a.dtype {
		cast, err := CastValues(buf, target)
		if err != nil {
			return nil, arrayErrorf(ctxAsC, err)
		}
		buf = cast
	}

	return &Array{shape: cloneInts(a.shape), data: buf, dtype: target, order: RowMajor}, nil
}

// AllFinite returns nil when no element is NaN or ±Inf.
// Otherwise it reports the first offending element in logical row-major order.
// Complexity: O(size) time, O(1) extra space on the success path.
func (a *Array) AllFinite() error {
	// Integer and bool buffers are finite by construction.
	if a.dtype.IsInteger() || a.dtype == Bool {
		return nil
	}
	found := false
	for _, v := range a.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	// Storage order may differ from logical order; rescan logically for a stable report.
	vals := a.Values()
	for pos, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: element %v is %g: %w", ctxFinite, a.unravel(pos), v, ErrNaNInf)
		}
	}

	return nil
}
