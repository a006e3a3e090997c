// SPDX-License-Identifier: MIT

// Package arraycheck: functional configuration for Check.
// This file defines:
//   - documented defaults (constants),
//   - SparseFormat and its accepted values,
//   - Option / Options and the WithX setters,
//   - gatherOptions and the up-front validation run before any item is touched.
//
// Notes:
//   - Setters never panic: an invalid sparse format is a user-level
//     configuration error reported by Check as ErrConfiguration.
//   - The option set is closed: unknown members are compile errors here and
//     unknown keys are rejected by DecodeConfig for map-driven configuration.
package arraycheck

import (
	"fmt"

	"github.com/katalvlaran/osprey/ndarray"
	"github.com/katalvlaran/osprey/sparse"
	"github.com/katalvlaran/osprey/utils"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultCopy leaves untouched items as the caller's objects.
	DefaultCopy = false

	// DefaultCContiguous keeps the input memory order.
	DefaultCContiguous = false

	// DefaultAllowLists converts sequences into dense arrays.
	DefaultAllowLists = false

	// DefaultAllowNaNs rejects NaN and ±Inf.
	DefaultAllowNaNs = false

	// DefaultDType keeps the input element type.
	DefaultDType = ndarray.Unspecified
)

// SparseFormat selects which sparse layouts Check accepts.
type SparseFormat string

const (
	// SparseAny (the zero value) accepts every layout and forces no conversion.
	SparseAny SparseFormat = ""
	// SparseCSR accepts csr, converting other layouts.
	SparseCSR SparseFormat = "csr"
	// SparseCSC accepts csc, converting other layouts.
	SparseCSC SparseFormat = "csc"
	// SparseDense rejects sparse input altogether.
	SparseDense SparseFormat = "dense"
)

// ---------- Public option type (functional) ----------

// Option mutates Options. Later options override earlier ones.
type Option func(*Options)

// Options is the effective configuration after applying Option setters.
// Fields are unexported; read them through the accessor methods.
type Options struct {
	sparseFormat  SparseFormat   // single-value form
	sparseFormats []SparseFormat // list form
	sparseList    bool           // true when the list form was used

	copy        bool
	cContiguous bool
	dtype       ndarray.DType
	allowLists  bool
	allowNaNs   bool
}

// WithSparseFormat accepts a single layout: SparseCSR, SparseCSC,
// SparseDense, or SparseAny to clear a previous setting.
func WithSparseFormat(f SparseFormat) Option {
	return func(o *Options) {
		o.sparseFormat = f
		o.sparseFormats = nil
		o.sparseList = false
	}
}

// WithSparseFormats accepts any of the given layouts, which must be drawn
// from SparseCSR and SparseCSC. Inputs in another layout are converted to
// the first entry. An empty list forces no conversion.
func WithSparseFormats(fs ...SparseFormat) Option {
	list := make([]SparseFormat, len(fs))
	copy(list, fs)

	return func(o *Options) {
		o.sparseFormat = SparseAny
		o.sparseFormats = list
		o.sparseList = true
	}
}

// WithCopy forces every returned item to be distinct from its input.
func WithCopy() Option {
	return func(o *Options) { o.copy = true }
}

// WithCContiguous forces dense results into row-major layout.
func WithCContiguous() Option {
	return func(o *Options) { o.cContiguous = true }
}

// WithDType coerces dense arrays and sparse data buffers to d.
// ndarray.Unspecified keeps the input type.
func WithDType(d ndarray.DType) Option {
	return func(o *Options) { o.dtype = d }
}

// WithAllowLists passes sequences through after the length check only.
func WithAllowLists() Option {
	return func(o *Options) { o.allowLists = true }
}

// WithAllowNaNs skips the finiteness check.
func WithAllowNaNs() Option {
	return func(o *Options) { o.allowNaNs = true }
}

// NewOptions resolves setters on top of the defaults.
// It does not validate; Check does that before touching any item.
func NewOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// gatherOptions applies user-provided setters on top of the defaults.
func gatherOptions(user ...Option) Options {
	o := Options{
		sparseFormat: SparseAny,
		copy:         DefaultCopy,
		cContiguous:  DefaultCContiguous,
		dtype:        DefaultDType,
		allowLists:   DefaultAllowLists,
		allowNaNs:    DefaultAllowNaNs,
	}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// ---------- Accessors ----------

// SparseFormats returns the accepted layouts: nil when unset, a single entry
// for the single-value form, the list otherwise.
func (o Options) SparseFormats() []SparseFormat {
	if o.sparseList {
		out := make([]SparseFormat, len(o.sparseFormats))
		copy(out, o.sparseFormats)
		return out
	}
	if o.sparseFormat == SparseAny {
		return nil
	}

	return []SparseFormat{o.sparseFormat}
}

// Copy reports whether WithCopy is in effect.
func (o Options) Copy() bool { return o.copy }

// CContiguous reports whether WithCContiguous is in effect.
func (o Options) CContiguous() bool { return o.cContiguous }

// DType returns the requested element type (Unspecified keeps).
func (o Options) DType() ndarray.DType { return o.dtype }

// AllowLists reports whether WithAllowLists is in effect.
func (o Options) AllowLists() bool { return o.allowLists }

// AllowNaNs reports whether WithAllowNaNs is in effect.
func (o Options) AllowNaNs() bool { return o.allowNaNs }

// ---------- Validation ----------

// validate checks the sparse format setting and the dtype.
// Errors: ErrConfiguration.
func (o Options) validate() error {
	if o.sparseList {
		for _, f := range o.sparseFormats {
			if f != SparseCSR && f != SparseCSC {
				return fmt.Errorf("%w: unexpected sparse format(s): [%s]", ErrConfiguration, utils.JoinQuoted(formatNames(o.sparseFormats), utils.DefaultQuote))
			}
		}
	} else {
		switch o.sparseFormat {
		case SparseAny, SparseCSR, SparseCSC, SparseDense:
		default:
			return fmt.Errorf("%w: unexpected sparse format(s): %s", ErrConfiguration, utils.JoinQuoted([]string{string(o.sparseFormat)}, utils.DefaultQuote))
		}
	}
	if o.dtype != ndarray.Unspecified && !o.dtype.Valid() {
		return fmt.Errorf("%w: dtype %s", ErrConfiguration, o.dtype)
	}

	return nil
}

// denseOnly reports whether sparse input must be rejected.
func (o Options) denseOnly() bool {
	return !o.sparseList && o.sparseFormat == SparseDense
}

// accepted returns the sparse layouts that need no conversion; the first
// entry is the conversion target. Empty means "accept anything".
func (o Options) accepted() []sparse.Format {
	var src []SparseFormat
	switch {
	case o.sparseList:
		src = o.sparseFormats
	case o.sparseFormat == SparseCSR || o.sparseFormat == SparseCSC:
		src = []SparseFormat{o.sparseFormat}
	}
	out := make([]sparse.Format, len(src))
	for i, f := range src {
		out[i] = sparse.Format(f)
	}

	return out
}

func formatNames(fs []SparseFormat) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = string(f)
	}

	return out
}
