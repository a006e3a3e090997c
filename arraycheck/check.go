// SPDX-License-Identifier: MIT
// Package arraycheck: the validator itself.
//
// Check runs in two stages:
//   - Stage 1: resolve and validate options (nothing is touched on failure).
//   - Stage 2: walk the items in order, length-check each against the first,
//     then coerce it along the dense or sparse path.
//
// Conversions always allocate: inputs are never mutated, and pointer identity
// between an input and its output means "nothing had to change".

package arraycheck

import (
	"fmt"

	"github.com/katalvlaran/osprey/ndarray"
	"github.com/katalvlaran/osprey/sparse"
)

// maxDims is the highest rank accepted after coercion.
const maxDims = 2

// Check validates items and returns them normalized, in input order.
//
// An empty input yields (nil, nil). Absent items pass through unchanged.
// Every other item must report the same sample count as items[0].
//
// Errors (always wrapping one taxonomy sentinel, tagged with the item index):
//   - ErrConfiguration: invalid sparse format or dtype; a sparse item under
//     SparseDense (also matches ErrDenseRequired).
//   - ErrTypeMismatch: an Absent or 0-d first item; a sequence that cannot be
//     read as a numeric array.
//   - ErrShapeMismatch: a sample count different from the first item's.
//   - ErrValueRange: NaN/±Inf without WithAllowNaNs; values that do not fit
//     the requested dtype; more than two dimensions.
//
// Complexity: O(total elements) plus O(nnz log nnz) per sparse conversion.
func Check(items []Item, opts ...Option) ([]Item, error) {
	o := gatherOptions(opts...)
	if err := o.validate(); err != nil {
		return nil, err
	}

	return check(items, o)
}

// CheckValues classifies arbitrary Go values (see Classify) and runs Check.
// Options are validated before any value is classified.
func CheckValues(values []any, opts ...Option) ([]Item, error) {
	o := gatherOptions(opts...)
	if err := o.validate(); err != nil {
		return nil, err
	}
	items := make([]Item, len(values))
	for i, v := range values {
		it, err := Classify(v)
		if err != nil {
			return nil, itemErrorf(i, err)
		}
		items[i] = it
	}

	return check(items, o)
}

func check(items []Item, o Options) ([]Item, error) {
	if len(items) == 0 {
		return nil, nil
	}

	want, err := items[0].SampleCount()
	if err != nil {
		return nil, itemErrorf(0, err)
	}

	out := make([]Item, len(items))
	for i, in := range items {
		if in.IsAbsent() {
			out[i] = in
			continue
		}
		got, err := in.SampleCount()
		if err != nil {
			return nil, itemErrorf(i, err)
		}
		if got != want {
			return nil, itemErrorf(i, fmt.Errorf("%w: found array with dim %d, expected %d", ErrShapeMismatch, got, want))
		}

		res, err := checkOne(in, o)
		if err != nil {
			return nil, itemErrorf(i, err)
		}
		if o.copy && res.sameObject(in) {
			res = res.clone()
		}
		out[i] = res
	}

	return out, nil
}

// checkOne dispatches a present item on its kind.
func checkOne(in Item, o Options) (Item, error) {
	switch in.kind {
	case Sequence:
		if o.allowLists {
			return in, nil
		}
		a, err := ndarray.FromNested(in.seq)
		if err != nil {
			return Item{}, taxonomyErrorf(ErrTypeMismatch, err)
		}
		return checkDense(a, o)
	case Dense:
		return checkDense(in.dense, o)
	case Sparse:
		return checkSparse(in.sparse, o)
	default:
		return in, nil
	}
}

// checkDense coerces dtype and layout, then checks finiteness and rank.
func checkDense(a *ndarray.Array, o Options) (Item, error) {
	var (
		res *ndarray.Array
		err error
	)
	if o.cContiguous {
		res, err = a.AsContiguous(o.dtype)
	} else {
		res, err = a.AsType(o.dtype)
	}
	if err != nil {
		return Item{}, taxonomyErrorf(ErrValueRange, err)
	}
	if !o.allowNaNs {
		if err := res.AllFinite(); err != nil {
			return Item{}, taxonomyErrorf(ErrValueRange, err)
		}
	}
	if res.NDim() > maxDims {
		return Item{}, fmt.Errorf("%w: found array with dim %d, expected <= %d", ErrValueRange, res.NDim(), maxDims)
	}

	return FromDense(res), nil
}

// checkSparse enforces the accepted layouts, then coerces the data buffer.
// The data buffer is always contiguous, so WithCContiguous changes nothing here.
func checkSparse(m *sparse.Matrix, o Options) (Item, error) {
	if o.denseOnly() {
		return Item{}, taxonomyErrorf(ErrConfiguration, ErrDenseRequired)
	}

	res := m
	if acc := o.accepted(); len(acc) > 0 && !formatIn(m.Format(), acc) {
		conv, err := m.Convert(acc[0])
		if err != nil {
			return Item{}, taxonomyErrorf(ErrConfiguration, err)
		}
		res = conv
	}

	cast, err := res.AsType(o.dtype)
	if err != nil {
		return Item{}, taxonomyErrorf(ErrValueRange, err)
	}
	if !o.allowNaNs {
		if err := cast.AllFinite(); err != nil {
			return Item{}, taxonomyErrorf(ErrValueRange, err)
		}
	}

	return FromSparse(cast), nil
}

func formatIn(f sparse.Format, set []sparse.Format) bool {
	for _, s := range set {
		if s == f {
			return true
		}
	}

	return false
}
