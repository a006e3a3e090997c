// SPDX-License-Identifier: MIT
// Package arraycheck: the tagged input variant.
//
// Classification happens once, at the boundary:
//   - nil, nil *ndarray.Array, nil *sparse.Matrix  → Absent
//   - *ndarray.Array                                → Dense
//   - *sparse.Matrix                                → Sparse
//   - slice, Go array, or any Lengther              → Sequence
//   - anything else                                 → ErrTypeMismatch
// Strings are deliberately not sequences.

package arraycheck

import (
	"fmt"
	"reflect"

	"github.com/katalvlaran/osprey/ndarray"
	"github.com/katalvlaran/osprey/sparse"
)

// Kind tags the variant held by an Item.
type Kind uint8

const (
	// Absent is an optional input that was not supplied; it passes through Check.
	Absent Kind = iota
	// Dense holds an *ndarray.Array.
	Dense
	// Sparse holds a *sparse.Matrix.
	Sparse
	// Sequence holds an opaque ordered collection with a length.
	Sequence
)

var kindNames = [...]string{Absent: "absent", Dense: "dense", Sparse: "sparse", Sequence: "sequence"}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Lengther is any opaque collection that can report its length.
type Lengther interface {
	Len() int
}

// Item is one validated or to-be-validated input.
// The zero value is an Absent item.
type Item struct {
	kind   Kind
	dense  *ndarray.Array
	sparse *sparse.Matrix
	seq    any
	seqLen int
}

// None returns an Absent item.
func None() Item { return Item{} }

// FromDense wraps a dense array; nil yields an Absent item.
func FromDense(a *ndarray.Array) Item {
	if a == nil {
		return Item{}
	}

	return Item{kind: Dense, dense: a}
}

// FromSparse wraps a sparse matrix; nil yields an Absent item.
func FromSparse(m *sparse.Matrix) Item {
	if m == nil {
		return Item{}
	}

	return Item{kind: Sparse, sparse: m}
}

// FromSequence wraps a slice, a Go array or a Lengther.
// Errors: ErrTypeMismatch for anything without a length.
func FromSequence(v any) (Item, error) {
	if l, ok := v.(Lengther); ok {
		return Item{kind: Sequence, seq: v, seqLen: l.Len()}, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return Item{kind: Sequence, seq: v, seqLen: rv.Len()}, nil
	}

	return Item{}, fmt.Errorf("got %T: %w", v, ErrTypeMismatch)
}

// Classify turns an arbitrary Go value into an Item (see the package table).
func Classify(v any) (Item, error) {
	switch x := v.(type) {
	case nil:
		return Item{}, nil
	case Item:
		return x, nil
	case *ndarray.Array:
		return FromDense(x), nil
	case *sparse.Matrix:
		return FromSparse(x), nil
	case string:
		return Item{}, fmt.Errorf("got string %q: %w", x, ErrTypeMismatch)
	default:
		return FromSequence(v)
	}
}

// Kind returns the variant tag.
func (it Item) Kind() Kind { return it.kind }

// IsAbsent reports whether the item is an Absent placeholder.
func (it Item) IsAbsent() bool { return it.kind == Absent }

// Dense returns the dense array, or nil for other kinds.
func (it Item) Dense() *ndarray.Array { return it.dense }

// Sparse returns the sparse matrix, or nil for other kinds.
func (it Item) Sparse() *sparse.Matrix { return it.sparse }

// Sequence returns the wrapped sequence value, or nil for other kinds.
func (it Item) Sequence() any { return it.seq }

// SampleCount returns the size of the first dimension: shape[0] for dense and
// sparse items, the length for sequences.
// Errors: ErrTypeMismatch for Absent items and 0-d arrays.
func (it Item) SampleCount() (int, error) {
	switch it.kind {
	case Dense:
		n, err := it.dense.Len()
		if err != nil {
			return 0, taxonomyErrorf(ErrTypeMismatch, err)
		}
		return n, nil
	case Sparse:
		return it.sparse.Rows(), nil
	case Sequence:
		return it.seqLen, nil
	default:
		return 0, fmt.Errorf("got absent item: %w", ErrTypeMismatch)
	}
}

// Shape returns the item's shape: the array shape, (rows, cols) for sparse,
// (len) for sequences and nil for Absent.
func (it Item) Shape() []int {
	switch it.kind {
	case Dense:
		return it.dense.Shape()
	case Sparse:
		r, c := it.sparse.Shape()
		return []int{r, c}
	case Sequence:
		return []int{it.seqLen}
	default:
		return nil
	}
}

// String is a short description for logs and error messages.
func (it Item) String() string {
	switch it.kind {
	case Dense:
		return fmt.Sprintf("dense%v %s", it.dense.Shape(), it.dense.DType())
	case Sparse:
		return it.sparse.String()
	case Sequence:
		return fmt.Sprintf("sequence(len=%d)", it.seqLen)
	default:
		return "absent"
	}
}

// sameObject reports whether out still refers to the caller's value in.
func (it Item) sameObject(in Item) bool {
	if it.kind != in.kind {
		return false
	}
	switch it.kind {
	case Dense:
		return it.dense == in.dense
	case Sparse:
		return it.sparse == in.sparse
	case Sequence:
		return true // sequences are only ever passed through
	default:
		return false
	}
}

// clone returns an item holding a distinct copy of the value.
// Slices are shallow-copied; Go arrays are already values; a Lengther that
// is not a slice is returned unchanged because it cannot be copied generically.
func (it Item) clone() Item {
	switch it.kind {
	case Dense:
		return FromDense(it.dense.Clone())
	case Sparse:
		return FromSparse(it.sparse.Clone())
	case Sequence:
		rv := reflect.ValueOf(it.seq)
		if rv.Kind() != reflect.Slice || rv.IsNil() {
			return it
		}
		cp := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(cp, rv)
		out := it
		out.seq = cp.Interface()
		return out
	default:
		return it
	}
}
