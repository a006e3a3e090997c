// SPDX-License-Identifier: MIT

// Package sparse provides compressed sparse matrices (CSR, CSC) and a
// coordinate (COO) layout used for ingestion.
//
// What & Why:
//
//	Matrix stores only the explicitly given entries of a rows×cols matrix in
//	one of three layouts:
//	  - CSR: indptr over rows, indices hold column ids.
//	  - CSC: indptr over columns, indices hold row ids.
//	  - COO: parallel row/col/data triplets, duplicates allowed.
//	The flat data buffer carries an ndarray.DType and is cast with the same
//	kernel as dense arrays (ndarray.CastValues).
//
// Conversions:
//
//	Convert/AsType return the receiver when nothing changes and a freshly
//	allocated Matrix otherwise; receivers are never mutated. Converting into a
//	compressed layout sorts indices within each row/column and sums duplicate
//	entries, so results are canonical and deterministic.
//
// Complexity:
//
//	Construction validates in O(nnz + major). Conversion is O(nnz log nnz).
//	At is O(nnz) in COO and O(k) in compressed layouts (k = entries in the
//	row/column).
package sparse
