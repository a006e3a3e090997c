// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set.

package sparse

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned for negative dimensions, or by ToDense when
	// rows*cols overflows int.
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrUnknownFormat is returned for a layout other than csr, csc or coo.
	ErrUnknownFormat = errors.New("sparse: unknown format")

	// ErrBadStructure indicates inconsistent indptr/indices/data buffers.
	ErrBadStructure = errors.New("sparse: malformed structure")

	// ErrOutOfRange indicates an index outside the matrix bounds.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrNaNInf signals a NaN or ±Inf in the data buffer.
	ErrNaNInf = errors.New("sparse: NaN or Inf encountered")

	// ErrNotMatrix is returned when densifying from an array that is not 2-d.
	ErrNotMatrix = errors.New("sparse: input is not 2-dimensional")
)

// sparseErrorf wraps err with a method tag and the matrix format.
func sparseErrorf(method string, f Format, err error) error {
	return fmt.Errorf("Matrix.%s(%s): %w", method, f, err)
}
