// SPDX-License-Identifier: MIT

// Package arraycheck validates a batch of array-like inputs before they reach
// an estimator.
//
// What & Why:
//
//	Check takes a list of Items (dense arrays, sparse matrices, plain
//	sequences, or absent placeholders) and verifies that every present item
//	has the same number of samples (length of the first axis). Along the way
//	it normalizes each item according to the Options: sparse layout, element
//	type, row-major layout, finiteness, and an optional copy.
//	The call either returns every item, in input order, or fails with exactly
//	one error and no partial results.
//
// Items:
//
//	Inputs are classified once at the boundary into a tagged variant
//	(Absent, Dense, Sparse, Sequence) by Classify or by the From* constructors;
//	Check dispatches on the tag and never re-probes the value.
//
// Configuration:
//
//	Options are built from functional With* setters. Configuration coming
//	from files or flags goes through DecodeConfig, which rejects unknown keys.
//
// Errors (match with errors.Is):
//   - ErrConfiguration  bad or unknown option, or sparse input when dense is required.
//   - ErrTypeMismatch   an item has neither a shape nor a length.
//   - ErrShapeMismatch  sample counts disagree.
//   - ErrValueRange     NaN/±Inf present, a value does not fit the dtype, or ndim > 2.
//
// Ownership:
//
//	Inputs are never mutated. An item that needed no conversion is returned
//	as the caller's own object unless WithCopy is set; every conversion
//	returns a fresh object.
package arraycheck
