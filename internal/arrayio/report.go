// SPDX-License-Identifier: MIT
package arrayio

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/osprey/arraycheck"
)

const reportIndent = 2

// Report summarizes one validation run.
type Report struct {
	Generated string            `yaml:"generated" json:"generated"`
	Elapsed   string            `yaml:"elapsed" json:"elapsed"`
	Source    string            `yaml:"source,omitempty" json:"source,omitempty"`
	Options   arraycheck.Config `yaml:"options" json:"options"`
	Items     []ItemReport      `yaml:"items" json:"items"`
}

// ItemReport describes one validated item.
type ItemReport struct {
	Name    string `yaml:"name" json:"name"`
	Kind    string `yaml:"kind" json:"kind"`
	Shape   []int  `yaml:"shape,flow" json:"shape"`
	DType   string `yaml:"dtype,omitempty" json:"dtype,omitempty"`
	Order   string `yaml:"order,omitempty" json:"order,omitempty"`
	Format  string `yaml:"format,omitempty" json:"format,omitempty"`
	NNZ     int    `yaml:"nnz,omitempty" json:"nnz,omitempty"`
	Changed bool   `yaml:"changed" json:"changed"`
}

// NewItemReport describes out, the validated form of in. Changed is set when
// the validator returned a different object than it was given.
func NewItemReport(name string, in, out arraycheck.Item) ItemReport {
	r := ItemReport{
		Name:    name,
		Kind:    out.Kind().String(),
		Shape:   out.Shape(),
		Changed: in.Kind() != out.Kind(),
	}
	switch out.Kind() {
	case arraycheck.Dense:
		a := out.Dense()
		r.DType = a.DType().String()
		r.Order = a.Order().String()
		r.Changed = r.Changed || in.Dense() != a
	case arraycheck.Sparse:
		m := out.Sparse()
		r.DType = m.DType().String()
		r.Format = string(m.Format())
		r.NNZ = m.NNZ()
		r.Changed = r.Changed || in.Sparse() != m
	}
	if r.Shape == nil {
		r.Shape = []int{}
	}

	return r
}

// NewItemReports pairs names, inputs and outputs positionally.
func NewItemReports(names []string, in, out []arraycheck.Item) ([]ItemReport, error) {
	if len(names) != len(in) || len(in) != len(out) {
		return nil, fmt.Errorf("arrayio: %d names, %d inputs, %d outputs", len(names), len(in), len(out))
	}
	reports := make([]ItemReport, len(out))
	for i := range out {
		reports[i] = NewItemReport(names[i], in[i], out[i])
	}

	return reports, nil
}

// WriteReport encodes r as YAML.
func WriteReport(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(reportIndent)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("arrayio: encode report: %w", err)
	}

	return enc.Close()
}
