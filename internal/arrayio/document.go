// SPDX-License-Identifier: MIT
// Package arrayio reads array documents and writes validation reports.
//
// An array document is YAML (or JSON, which YAML accepts) listing named
// inputs for the validator:
//
//	arrays:
//	  - name: X
//	    kind: dense
//	    shape: [3, 2]
//	    data: [1, 2, 3, 4, 5, 6]
//	  - name: y
//	    kind: sequence
//	    values: [a, b, c]
//
// Kind may be omitted: an entry with a sparse format is sparse, one with
// values is a sequence, and anything else is dense. A sparse entry without
// indptr/indices/row/col reads data as the full row-major grid and keeps only
// its non-zero entries.
package arrayio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/osprey/arraycheck"
	"github.com/katalvlaran/osprey/ndarray"
	"github.com/katalvlaran/osprey/sparse"
)

var (
	// ErrDocument reports a malformed array document.
	ErrDocument = errors.New("arrayio: invalid array document")

	// ErrPathRequired is returned by LoadDocument for a blank path.
	ErrPathRequired = errors.New("arrayio: document path must be provided")
)

// Entry kinds as written in documents.
const (
	KindDense    = "dense"
	KindSparse   = "sparse"
	KindSequence = "sequence"
	KindAbsent   = "absent"
)

// Document is the top-level array document.
type Document struct {
	Arrays []ArraySpec `yaml:"arrays" json:"arrays"`
}

// ArraySpec describes one named input.
type ArraySpec struct {
	Name  string `yaml:"name" json:"name"`
	Kind  string `yaml:"kind,omitempty" json:"kind,omitempty"`
	DType string `yaml:"dtype,omitempty" json:"dtype,omitempty"`

	// dense
	Order string    `yaml:"order,omitempty" json:"order,omitempty"`
	Shape []int     `yaml:"shape,omitempty,flow" json:"shape,omitempty"`
	Data  []float64 `yaml:"data,omitempty,flow" json:"data,omitempty"`

	// sparse (Shape and Data are shared with dense)
	Format  string `yaml:"format,omitempty" json:"format,omitempty"`
	Indptr  []int  `yaml:"indptr,omitempty,flow" json:"indptr,omitempty"`
	Indices []int  `yaml:"indices,omitempty,flow" json:"indices,omitempty"`
	Row     []int  `yaml:"row,omitempty,flow" json:"row,omitempty"`
	Col     []int  `yaml:"col,omitempty,flow" json:"col,omitempty"`

	// sequence
	Values []any `yaml:"values,omitempty,flow" json:"values,omitempty"`
}

// LoadDocument reads and decodes the document at path.
func LoadDocument(path string) (Document, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return Document{}, ErrPathRequired
	}
	content, err := os.ReadFile(trimmed)
	if err != nil {
		return Document{}, fmt.Errorf("arrayio: read %s: %w", trimmed, err)
	}

	return DecodeDocument(content)
}

// DecodeDocument decodes a document, rejecting unknown fields.
//
// Errors: ErrDocument for syntax errors, unknown fields or an empty input.
func DecodeDocument(content []byte) (Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, fmt.Errorf("%w: empty document", ErrDocument)
		}
		return Document{}, fmt.Errorf("%w: %w", ErrDocument, err)
	}

	return doc, nil
}

// Names returns the array names, defaulting unnamed entries to "#<index>".
func (d Document) Names() []string {
	out := make([]string, len(d.Arrays))
	for i, s := range d.Arrays {
		out[i] = s.Name
		if strings.TrimSpace(out[i]) == "" {
			out[i] = fmt.Sprintf("#%d", i)
		}
	}

	return out
}

// Items builds one validator item per array entry, in document order.
//
// Errors: ErrDocument wrapping the ndarray/sparse construction error, tagged
// with the array name.
func (d Document) Items() ([]arraycheck.Item, error) {
	names := d.Names()
	out := make([]arraycheck.Item, len(d.Arrays))
	for i, s := range d.Arrays {
		it, err := s.Item()
		if err != nil {
			return nil, fmt.Errorf("%w: array %q: %w", ErrDocument, names[i], err)
		}
		out[i] = it
	}

	return out, nil
}

// ResolvedKind returns Kind, or the kind implied by the populated fields.
func (s ArraySpec) ResolvedKind() string {
	if k := strings.ToLower(strings.TrimSpace(s.Kind)); k != "" {
		return k
	}
	switch {
	case s.Format != "":
		return KindSparse
	case s.Values != nil:
		return KindSequence
	default:
		return KindDense
	}
}

// Item builds the validator item described by s.
func (s ArraySpec) Item() (arraycheck.Item, error) {
	switch kind := s.ResolvedKind(); kind {
	case KindAbsent:
		return arraycheck.None(), nil
	case KindSequence:
		values := s.Values
		if values == nil {
			values = []any{}
		}
		return arraycheck.FromSequence(values)
	case KindDense:
		a, err := s.dense()
		if err != nil {
			return arraycheck.Item{}, err
		}
		return arraycheck.FromDense(a), nil
	case KindSparse:
		m, err := s.sparse()
		if err != nil {
			return arraycheck.Item{}, err
		}
		return arraycheck.FromSparse(m), nil
	default:
		return arraycheck.Item{}, fmt.Errorf("unknown kind %q", kind)
	}
}

func (s ArraySpec) dtype() (ndarray.DType, error) {
	d, err := ndarray.ParseDType(s.DType)
	if err != nil {
		return ndarray.Unspecified, err
	}
	if d == ndarray.Unspecified {
		return ndarray.Float64, nil
	}

	return d, nil
}

func (s ArraySpec) dense() (*ndarray.Array, error) {
	d, err := s.dtype()
	if err != nil {
		return nil, err
	}
	order := ndarray.RowMajor
	if s.Order != "" {
		if order, err = ndarray.ParseOrder(s.Order); err != nil {
			return nil, err
		}
	}
	data := s.Data
	if data == nil {
		data = []float64{}
	}
	shape := s.Shape
	if shape == nil {
		shape = []int{len(data)}
	}

	return ndarray.NewWithOrder(d, order, shape, data)
}

func (s ArraySpec) sparse() (*sparse.Matrix, error) {
	if len(s.Shape) != 2 {
		return nil, fmt.Errorf("sparse shape %v: %w", s.Shape, sparse.ErrBadShape)
	}
	f, err := sparse.ParseFormat(s.Format)
	if err != nil {
		return nil, err
	}
	rows, cols := s.Shape[0], s.Shape[1]
	if s.gridOnly() {
		grid, err := s.dense()
		if err != nil {
			return nil, err
		}
		return sparse.FromDense(grid, f)
	}

	var m *sparse.Matrix
	switch f {
	case sparse.CSR:
		m, err = sparse.NewCSR(rows, cols, s.Indptr, s.Indices, s.Data)
	case sparse.CSC:
		m, err = sparse.NewCSC(rows, cols, s.Indptr, s.Indices, s.Data)
	default:
		m, err = sparse.NewCOO(rows, cols, s.Row, s.Col, s.Data)
	}
	if err != nil {
		return nil, err
	}
	if s.DType == "" {
		return m, nil
	}
	d, err := s.dtype()
	if err != nil {
		return nil, err
	}

	return m.AsType(d)
}

// gridOnly reports a sparse entry given as a dense grid.
func (s ArraySpec) gridOnly() bool {
	return len(s.Data) > 0 && s.Indptr == nil && s.Indices == nil && s.Row == nil && s.Col == nil
}
