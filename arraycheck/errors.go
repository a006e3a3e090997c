// SPDX-License-Identifier: MIT
// Package arraycheck: sentinel error set.
// Every failure returned by Check wraps exactly one of the four taxonomy
// sentinels below; ErrDenseRequired is always paired with ErrConfiguration.

package arraycheck

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports an unknown or invalid option value.
	ErrConfiguration = errors.New("arraycheck: invalid configuration")

	// ErrTypeMismatch reports an item that exposes neither a shape nor a length.
	ErrTypeMismatch = errors.New("arraycheck: expected sequence or array-like")

	// ErrShapeMismatch reports inconsistent sample counts across items.
	ErrShapeMismatch = errors.New("arraycheck: inconsistent number of samples")

	// ErrValueRange reports non-finite values, values that do not fit the
	// requested dtype, or arrays with more than two dimensions.
	ErrValueRange = errors.New("arraycheck: value out of range")

	// ErrDenseRequired reports a sparse item under sparse format "dense".
	ErrDenseRequired = errors.New("arraycheck: a sparse matrix was passed, but dense data is required")
)

// itemErrorf tags err with the position of the offending item.
func itemErrorf(index int, err error) error {
	return fmt.Errorf("item %d: %w", index, err)
}

// taxonomyErrorf joins a taxonomy sentinel with the underlying cause so both
// match errors.Is.
func taxonomyErrorf(kind error, cause error) error {
	return fmt.Errorf("%w: %w", kind, cause)
}
