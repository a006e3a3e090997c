// SPDX-License-Identifier: MIT

// Package sparse - Matrix storage, constructors & accessors.
//
// Invariants enforced by every constructor:
//   - rows, cols >= 0.
//   - CSR/CSC: len(indptr) == major+1, indptr[0] == 0, indptr non-decreasing,
//     indptr[major] == len(indices) == len(data), 0 <= indices[k] < minor.
//   - COO: len(row) == len(col) == len(data), every (row,col) in bounds.

package sparse

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/osprey/ndarray"
)

// Format names a sparse storage layout.
type Format string

const (
	// CSR is compressed sparse row.
	CSR Format = "csr"
	// CSC is compressed sparse column.
	CSC Format = "csc"
	// COO is coordinate (triplet) storage.
	COO Format = "coo"
)

// ParseFormat resolves "csr", "csc" or "coo" (case-insensitive).
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case CSR, CSC, COO:
		return f, nil
	default:
		return "", fmt.Errorf("ParseFormat(%q): %w", name, ErrUnknownFormat)
	}
}

// Matrix is a sparse rows×cols matrix.
type Matrix struct {
	format     Format
	rows, cols int

	indptr  []int // CSR/CSC only
	indices []int // CSR/CSC only
	row     []int // COO only
	col     []int // COO only

	data  []float64
	dtype ndarray.DType
}

// NewCSR validates and copies compressed-sparse-row buffers.
// Data is stored as float64.
func NewCSR(rows, cols int, indptr, indices []int, data []float64) (*Matrix, error) {
	return newCompressed(CSR, rows, cols, indptr, indices, data)
}

// NewCSC validates and copies compressed-sparse-column buffers.
func NewCSC(rows, cols int, indptr, indices []int, data []float64) (*Matrix, error) {
	return newCompressed(CSC, rows, cols, indptr, indices, data)
}

// NewCOO validates and copies coordinate triplets. Duplicates are allowed and
// are summed when converting to a compressed layout.
func NewCOO(rows, cols int, row, col []int, data []float64) (*Matrix, error) {
	// Stage 1: shape and buffer lengths.
	if rows < 0 || cols < 0 {
		return nil, sparseErrorf("NewCOO", COO, ErrBadShape)
	}
	if len(row) != len(data) || len(col) != len(data) {
		return nil, fmt.Errorf("Matrix.NewCOO(coo): row/col/data lengths %d/%d/%d: %w", len(row), len(col), len(data), ErrBadStructure)
	}
	// Stage 2: bounds of every coordinate.
	for k := range data {
		if row[k] < 0 || row[k] >= rows || col[k] < 0 || col[k] >= cols {
			return nil, fmt.Errorf("Matrix.NewCOO(coo): entry %d at (%d,%d) outside %dx%d: %w", k, row[k], col[k], rows, cols, ErrOutOfRange)
		}
	}

	return &Matrix{
		format: COO, rows: rows, cols: cols,
		row: cloneInts(row), col: cloneInts(col),
		data: cloneFloats(data), dtype: ndarray.Float64,
	}, nil
}

func newCompressed(f Format, rows, cols int, indptr, indices []int, data []float64) (*Matrix, error) {
	ctor := "New" + strings.ToUpper(string(f))
	if rows < 0 || cols < 0 {
		return nil, sparseErrorf(ctor, f, ErrBadShape)
	}
	major, minor := rows, cols
	if f == CSC {
		major, minor = cols, rows
	}

	// Stage 1: indptr shape and monotonicity.
	if len(indptr) != major+1 {
		return nil, fmt.Errorf("Matrix.%s(%s): indptr length %d, expected %d: %w", ctor, f, len(indptr), major+1, ErrBadStructure)
	}
	if indptr[0] != 0 {
		return nil, fmt.Errorf("Matrix.%s(%s): indptr[0]=%d: %w", ctor, f, indptr[0], ErrBadStructure)
	}
	for i := 1; i <= major; i++ {
		if indptr[i] < indptr[i-1] {
			return nil, fmt.Errorf("Matrix.%s(%s): indptr decreases at %d: %w", ctor, f, i, ErrBadStructure)
		}
	}
	nnz := indptr[major]
	if len(indices) != nnz || len(data) != nnz {
		return nil, fmt.Errorf("Matrix.%s(%s): nnz %d but %d indices and %d values: %w", ctor, f, nnz, len(indices), len(data), ErrBadStructure)
	}

	// Stage 2: minor indices in bounds.
	for k, j := range indices {
		if j < 0 || j >= minor {
			return nil, fmt.Errorf("Matrix.%s(%s): indices[%d]=%d outside [0,%d): %w", ctor, f, k, j, minor, ErrOutOfRange)
		}
	}

	return &Matrix{
		format: f, rows: rows, cols: cols,
		indptr: cloneInts(indptr), indices: cloneInts(indices),
		data: cloneFloats(data), dtype: ndarray.Float64,
	}, nil
}

// Format returns the storage layout.
func (m *Matrix) Format() Format { return m.format }

// Shape returns (rows, cols).
func (m *Matrix) Shape() (int, int) { return m.rows, m.cols }

// Rows returns the number of rows, which is also the sample count.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// NNZ returns the number of stored entries (duplicates included for COO).
func (m *Matrix) NNZ() int { return len(m.data) }

// DType returns the element type of the data buffer.
func (m *Matrix) DType() ndarray.DType { return m.dtype }

// Data returns a copy of the flat data buffer.
func (m *Matrix) Data() []float64 { return cloneFloats(m.data) }

// Indptr returns a copy of the index pointer (nil for COO).
func (m *Matrix) Indptr() []int { return cloneIntsOrNil(m.indptr) }

// Indices returns a copy of the minor indices (nil for COO).
func (m *Matrix) Indices() []int { return cloneIntsOrNil(m.indices) }

// Coords returns copies of the COO row and column buffers (nil otherwise).
func (m *Matrix) Coords() ([]int, []int) { return cloneIntsOrNil(m.row), cloneIntsOrNil(m.col) }

// At returns the value at (i, j); absent entries read as zero and
// duplicate entries are summed.
func (m *Matrix) At(i, j int) (float64, error) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return 0, fmt.Errorf("Matrix.At(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if m.format == COO {
		var sum float64
		for k := range m.data {
			if m.row[k] == i && m.col[k] == j {
				sum += m.data[k]
			}
		}
		return sum, nil
	}

	major, minor := i, j
	if m.format == CSC {
		major, minor = j, i
	}
	// Indices are not required to be sorted on input, so scan the row/column.
	var sum float64
	for k := m.indptr[major]; k < m.indptr[major+1]; k++ {
		if m.indices[k] == minor {
			sum += m.data[k]
		}
	}

	return sum, nil
}

// Clone returns a deep copy preserving format and dtype.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{
		format: m.format, rows: m.rows, cols: m.cols,
		indptr: cloneIntsOrNil(m.indptr), indices: cloneIntsOrNil(m.indices),
		row: cloneIntsOrNil(m.row), col: cloneIntsOrNil(m.col),
		data: cloneFloats(m.data), dtype: m.dtype,
	}
}

// String is a one-line summary for diagnostics.
func (m *Matrix) String() string {
	return fmt.Sprintf("sparse.Matrix(%s, %dx%d, nnz=%d, dtype=%s)", m.format, m.rows, m.cols, len(m.data), m.dtype)
}

func cloneInts(in []int) []int {
	out := make([]int, len(in))
	copy(out, in)
	return out
}

func cloneIntsOrNil(in []int) []int {
	if in == nil {
		return nil
	}
	return cloneInts(in)
}

func cloneFloats(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)
	return out
}
