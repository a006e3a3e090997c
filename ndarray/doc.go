// SPDX-License-Identifier: MIT

// Package ndarray provides a dense n-dimensional numeric array.
//
// What & Why:
//
//	Array stores float64 values in a flat buffer together with a shape, an
//	element type (DType) and a memory order (row-major "C" or column-major
//	"F"). Every stored value is exactly representable in the array's DType:
//	constructors and conversions cast on the way in, so reads never need to
//	re-check the element type.
//
// Conversions:
//
//	AsType and AsContiguous return the receiver itself when no work is needed
//	and a freshly allocated Array otherwise. Callers can therefore detect "was
//	anything converted?" with a pointer comparison. Inputs are never mutated.
//
// Numeric policy:
//
//	AllFinite reports the first NaN/±Inf in logical (row-major) order using
//	ErrNaNInf. Casting a non-finite value to an integer DType fails with
//	ErrNaNInf; casting an out-of-range value fails with ErrOverflow.
//
// Complexity:
//
//	Shape/NDim/DType/Order run in O(1). At is O(ndim). AsType, AsContiguous,
//	Clone, Values and AllFinite are O(size).
package ndarray
