// SPDX-License-Identifier: MIT
// Package sparse: layout and dtype conversions, densification, numeric checks.
//
// All conversions funnel through one triplet representation:
//   - triplets() lists (row, col, value) in storage order.
//   - compress() sorts them by (major, minor), sums duplicates and builds indptr.
// Keeping a single path makes CSR→CSC, CSC→CSR and COO→{CSR,CSC} share one loop.

package sparse

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/osprey/ndarray"
)

// triplet is one stored entry.
type triplet struct {
	r, c int
	v    float64
}

// triplets lists every stored entry in storage order.
// Complexity: O(nnz + major).
func (m *Matrix) triplets() []triplet {
	out := make([]triplet, 0, len(m.data))
	switch m.format {
	case COO:
		for k, v := range m.data {
			out = append(out, triplet{r: m.row[k], c: m.col[k], v: v})
		}
	case CSR:
		for i := 0; i < m.rows; i++ {
			for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
				out = append(out, triplet{r: i, c: m.indices[k], v: m.data[k]})
			}
		}
	case CSC:
		for j := 0; j < m.cols; j++ {
			for k := m.indptr[j]; k < m.indptr[j+1]; k++ {
				out = append(out, triplet{r: m.indices[k], c: j, v: m.data[k]})
			}
		}
	}

	return out
}

// compress builds a CSR or CSC matrix from triplets.
// Duplicates are summed; the result dtype is inherited from m.
// Complexity: O(nnz log nnz) for the sort, O(nnz + major) otherwise.
func (m *Matrix) compress(target Format) *Matrix {
	ts := m.triplets()
	major := func(t triplet) int { return t.r }
	minor := func(t triplet) int { return t.c }
	nMajor := m.rows
	if target == CSC {
		major, minor = minor, major
		nMajor = m.cols
	}

	// Stable sort keeps summation order deterministic for equal keys.
	sort.SliceStable(ts, func(a, b int) bool {
		if major(ts[a]) != major(ts[b]) {
			return major(ts[a]) < major(ts[b])
		}
		return minor(ts[a]) < minor(ts[b])
	})

	indptr := make([]int, nMajor+1)
	indices := make([]int, 0, len(ts))
	data := make([]float64, 0, len(ts))
	for k, t := range ts {
		if k > 0 && major(ts[k-1]) == major(t) && minor(ts[k-1]) == minor(t) {
			data[len(data)-1] += t.v // duplicate entry
			continue
		}
		indices = append(indices, minor(t))
		data = append(data, t.v)
		indptr[major(t)+1]++
	}
	for i := 1; i <= nMajor; i++ {
		indptr[i] += indptr[i-1] // counts → prefix sums
	}

	return &Matrix{format: target, rows: m.rows, cols: m.cols, indptr: indptr, indices: indices, data: data, dtype: m.dtype}
}

// Convert returns the matrix in layout f. The receiver is returned when it is
// already in that layout.
//
// Errors: ErrUnknownFormat.
func (m *Matrix) Convert(f Format) (*Matrix, error) {
	if f == m.format {
		return m, nil
	}
	switch f {
	case CSR, CSC:
		return m.compress(f), nil
	case COO:
		ts := m.triplets()
		out := &Matrix{
			format: COO, rows: m.rows, cols: m.cols,
			row: make([]int, len(ts)), col: make([]int, len(ts)), data: make([]float64, len(ts)),
			dtype: m.dtype,
		}
		for k, t := range ts {
			out.row[k], out.col[k], out.data[k] = t.r, t.c, t.v
		}
		return out, nil
	default:
		return nil, sparseErrorf("Convert", m.format, fmt.Errorf("target %q: %w", f, ErrUnknownFormat))
	}
}

// ToCSR is Convert(CSR).
func (m *Matrix) ToCSR() *Matrix {
	out, _ := m.Convert(CSR) // CSR is always a valid target
	return out
}

// ToCSC is Convert(CSC).
func (m *Matrix) ToCSC() *Matrix {
	out, _ := m.Convert(CSC) // CSC is always a valid target
	return out
}

// AsType returns the matrix with its data buffer cast to dtype.
// Unspecified or the current dtype returns the receiver; otherwise the result
// is a fresh Matrix whose structure buffers are copies of the receiver's.
//
// Errors: ndarray.ErrUnknownDType, ndarray.ErrNaNInf, ndarray.ErrOverflow.
func (m *Matrix) AsType(dtype ndarray.DType) (*Matrix, error) {
	if dtype == ndarray.Unspecified || dtype == m.dtype {
		return m, nil
	}
	data, err := ndarray.CastValues(m.data, dtype)
	if err != nil {
		return nil, sparseErrorf("AsType", m.format, err)
	}
	out := m.Clone()
	out.data = data
	out.dtype = dtype

	return out, nil
}

// AllFinite returns nil when the data buffer holds no NaN/±Inf.
// Otherwise the first offender in storage order is reported with its (row, col).
func (m *Matrix) AllFinite() error {
	for k, v := range m.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			r, c := m.coordOf(k)
			return fmt.Errorf("Matrix.AllFinite(%s): entry (%d,%d) is %g: %w", m.format, r, c, v, ErrNaNInf)
		}
	}

	return nil
}

// coordOf maps a data position to its (row, col).
func (m *Matrix) coordOf(k int) (int, int) {
	if m.format == COO {
		return m.row[k], m.col[k]
	}
	// largest major whose indptr <= k with a non-empty span
	major := sort.Search(len(m.indptr)-1, func(i int) bool { return m.indptr[i+1] > k })
	if m.format == CSC {
		return m.indices[k], major
	}

	return major, m.indices[k]
}

// ToDense materializes the matrix as a row-major ndarray.Array with the same
// dtype. Duplicates are summed.
//
// Errors: ErrBadShape when rows*cols overflows int.
//
// Complexity: O(rows*cols + nnz).
func (m *Matrix) ToDense() (*ndarray.Array, error) {
	if m.cols != 0 && m.rows > math.MaxInt/m.cols {
		return nil, sparseErrorf("ToDense", m.format, fmt.Errorf("%dx%d: %w", m.rows, m.cols, ErrBadShape))
	}
	buf := make([]float64, m.rows*m.cols)
	for _, t := range m.triplets() {
		buf[t.r*m.cols+t.c] += t.v
	}
	out, err := ndarray.New(m.dtype, []int{m.rows, m.cols}, buf)
	if err != nil {
		return nil, sparseErrorf("ToDense", m.format, err)
	}

	return out, nil
}

// FromDense builds a sparse matrix in layout f from a 2-d array, keeping only
// non-zero entries. The dtype of a is preserved.
//
// Errors: ErrNotMatrix for non 2-d input, ErrUnknownFormat.
func FromDense(a *ndarray.Array, f Format) (*Matrix, error) {
	if a.NDim() != 2 {
		return nil, fmt.Errorf("FromDense: %d-d array: %w", a.NDim(), ErrNotMatrix)
	}
	if f != CSR && f != CSC && f != COO {
		return nil, fmt.Errorf("FromDense: %q: %w", f, ErrUnknownFormat)
	}
	shape := a.Shape()
	rows, cols := shape[0], shape[1]
	vals := a.Values() // row-major
	coo := &Matrix{format: COO, rows: rows, cols: cols, dtype: a.DType()}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := vals[i*cols+j]; v != 0 {
				coo.row = append(coo.row, i)
				coo.col = append(coo.col, j)
				coo.data = append(coo.data, v)
			}
		}
	}
	if coo.data == nil {
		coo.row, coo.col, coo.data = []int{}, []int{}, []float64{}
	}

	return coo.Convert(f)
}
