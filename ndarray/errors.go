// SPDX-License-Identifier: MIT
// Package ndarray: sentinel error set.
// All constructors and conversions return these sentinels (possibly wrapped
// with a call-site tag); tests match them via errors.Is.

package ndarray

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when a shape has a negative dimension or its
	// element count overflows int.
	ErrBadShape = errors.New("ndarray: invalid shape")

	// ErrDataLength indicates that the data buffer length differs from the
	// product of the shape.
	ErrDataLength = errors.New("ndarray: data length does not match shape")

	// ErrUnknownDType is returned for an unspecified or unrecognized element type.
	ErrUnknownDType = errors.New("ndarray: unknown dtype")

	// ErrUnknownOrder is returned for a memory order other than C or F.
	ErrUnknownOrder = errors.New("ndarray: unknown memory order")

	// ErrOutOfRange indicates that an index is outside valid bounds.
	ErrOutOfRange = errors.New("ndarray: index out of range")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("ndarray: NaN or Inf encountered")

	// ErrOverflow signals a value that cannot be represented in the target dtype.
	ErrOverflow = errors.New("ndarray: value out of dtype range")

	// ErrScalar is returned when a 0-d array is asked for its length.
	ErrScalar = errors.New("ndarray: 0-d array has no length")

	// ErrRagged indicates nested sequences of unequal lengths.
	ErrRagged = errors.New("ndarray: ragged nested sequence")

	// ErrNotNumeric indicates a nested value that is neither a number nor a bool.
	ErrNotNumeric = errors.New("ndarray: non-numeric element")
)

// arrayErrorf wraps an underlying error with the given call-site tag.
func arrayErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
