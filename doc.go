// SPDX-License-Identifier: MIT

// Package osprey holds the input-side helpers of a hyperparameter-search tool:
// array validation, dense and sparse numeric containers, and small utilities.
//
// What is osprey?
//
//	Estimators expect their inputs to agree. Before a feature matrix, a set of
//	labels and optional sample weights reach a fit, osprey checks that they
//	describe the same number of samples and normalizes them:
//		• Dense arrays: element type coercion, row-major layout, NaN/Inf policy
//		• Sparse matrices: csr / csc / coo layouts and conversions between them
//		• Plain sequences: converted to arrays, or length-checked only
//		• Absent inputs: passed through untouched
//
// Under the hood the module is organized as:
//
//	ndarray/    : dense n-dimensional arrays with dtype and memory order
//	sparse/     : compressed sparse matrices and their conversions
//	arraycheck/ : the validator, its options and its error taxonomy
//	utils/      : dict merge, path expansion, scoped directories, time formatting
//	cmd/osprey-check : command-line front end over YAML array documents
//
// Quick example:
//
//	x, _ := ndarray.New(ndarray.Float64, []int{3, 2}, []float64{1, 2, 3, 4, 5, 6})
//	out, err := arraycheck.CheckValues([]any{x, []int{0, 1, 1}}, arraycheck.WithDType(ndarray.Float32))
//
//	go get github.com/katalvlaran/osprey
package osprey
