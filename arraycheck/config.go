// SPDX-License-Identifier: MIT
// Package arraycheck: keyword-style configuration.
//
// Config mirrors the option set as a flat map, for callers that read options
// from files, environment or flags. Unknown keys fail at decode time.

package arraycheck

import (
	"fmt"
	"sort"

	"github.com/go-viper/mapstructure/v2"

	"github.com/katalvlaran/osprey/ndarray"
	"github.com/katalvlaran/osprey/utils"
)

// Recognized configuration keys.
const (
	KeySparseFormat     = "sparse_format"
	KeyCopy             = "copy"
	KeyCheckCContiguous = "check_ccontiguous"
	KeyDType            = "dtype"
	KeyAllowLists       = "allow_lists"
	KeyAllowNaNs        = "allow_nans"
)

// Config is the decoded keyword form of Options.
// SparseFormat holds nil, a string, or a list of strings.
type Config struct {
	SparseFormat     any    `mapstructure:"sparse_format" yaml:"sparse_format,omitempty"`
	Copy             bool   `mapstructure:"copy" yaml:"copy"`
	CheckCContiguous bool   `mapstructure:"check_ccontiguous" yaml:"check_ccontiguous"`
	DType            string `mapstructure:"dtype" yaml:"dtype,omitempty"`
	AllowLists       bool   `mapstructure:"allow_lists" yaml:"allow_lists"`
	AllowNaNs        bool   `mapstructure:"allow_nans" yaml:"allow_nans"`
}

// DecodeConfig decodes a keyword map into a Config. Keys match exactly, so
// "COPY" is an unknown key. Scalar values are weakly typed, so "true" and 1
// both decode as booleans.
//
// Errors: ErrConfiguration for unknown keys (all of them, sorted) or values
// that cannot be decoded.
func DecodeConfig(raw map[string]any) (Config, error) {
	var (
		cfg Config
		md  mapstructure.Metadata
	)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		Metadata:         &md,
		WeaklyTypedInput: true,
		MatchName:        func(key, field string) bool { return key == field },
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, taxonomyErrorf(ErrConfiguration, err)
	}
	if err = dec.Decode(raw); err != nil {
		return Config{}, taxonomyErrorf(ErrConfiguration, err)
	}
	if len(md.Unused) > 0 {
		unused := append([]string(nil), md.Unused...)
		sort.Strings(unused)
		return Config{}, fmt.Errorf("%w: unexpected keyword arguments: [%s]", ErrConfiguration, utils.JoinQuoted(unused, utils.DefaultQuote))
	}

	return cfg, nil
}

// Options converts the Config into functional options.
//
// Errors: ErrConfiguration for an unknown dtype name or a sparse format that
// is neither a string nor a list of strings. Unknown format names are left
// to Check, which rejects them before touching any item.
func (c Config) Options() ([]Option, error) {
	var opts []Option

	switch v := c.SparseFormat.(type) {
	case nil:
	case string:
		opts = append(opts, WithSparseFormat(SparseFormat(v)))
	case SparseFormat:
		opts = append(opts, WithSparseFormat(v))
	case []string:
		fs := make([]SparseFormat, len(v))
		for i, s := range v {
			fs[i] = SparseFormat(s)
		}
		opts = append(opts, WithSparseFormats(fs...))
	case []SparseFormat:
		opts = append(opts, WithSparseFormats(v...))
	case []any:
		fs := make([]SparseFormat, len(v))
		for i, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s entry %d has type %T", ErrConfiguration, KeySparseFormat, i, e)
			}
			fs[i] = SparseFormat(s)
		}
		opts = append(opts, WithSparseFormats(fs...))
	default:
		return nil, fmt.Errorf("%w: %s has type %T", ErrConfiguration, KeySparseFormat, v)
	}

	if c.DType != "" {
		d, err := ndarray.ParseDType(c.DType)
		if err != nil {
			return nil, taxonomyErrorf(ErrConfiguration, err)
		}
		opts = append(opts, WithDType(d))
	}
	if c.Copy {
		opts = append(opts, WithCopy())
	}
	if c.CheckCContiguous {
		opts = append(opts, WithCContiguous())
	}
	if c.AllowLists {
		opts = append(opts, WithAllowLists())
	}
	if c.AllowNaNs {
		opts = append(opts, WithAllowNaNs())
	}

	return opts, nil
}

// CheckMap decodes raw as keyword options and runs CheckValues. Unknown keys
// fail before any value is classified.
func CheckMap(values []any, raw map[string]any) ([]Item, error) {
	cfg, err := DecodeConfig(raw)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	return CheckValues(values, opts...)
}
