// SPDX-License-Identifier: MIT
package arraycheck_test

import (
	"testing"

	"github.com/katalvlaran/osprey/arraycheck"
	"github.com/katalvlaran/osprey/ndarray"
	"github.com/katalvlaran/osprey/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecodeConfig covers weak typing and the keyword-to-option mapping.
func TestDecodeConfig(t *testing.T) {
	t.Parallel()

	cfg, err := arraycheck.DecodeConfig(map[string]any{
		"sparse_format":     []any{"csc", "csr"},
		"copy":              "true",
		"check_ccontiguous": 1,
		"dtype":             "f4",
		"allow_nans":        true,
	})
	require.NoError(t, err)
	assert.True(t, cfg.Copy)
	assert.True(t, cfg.CheckCContiguous)
	assert.False(t, cfg.AllowLists)
	assert.True(t, cfg.AllowNaNs)
	assert.Equal(t, "f4", cfg.DType)

	opts, err := cfg.Options()
	require.NoError(t, err)
	o := arraycheck.NewOptions(opts...)
	assert.Equal(t, []arraycheck.SparseFormat{arraycheck.SparseCSC, arraycheck.SparseCSR}, o.SparseFormats())
	assert.Equal(t, ndarray.Float32, o.DType())
	assert.True(t, o.Copy())
	assert.True(t, o.CContiguous())
	assert.False(t, o.AllowLists())
	assert.True(t, o.AllowNaNs())

	empty, err := arraycheck.DecodeConfig(nil)
	require.NoError(t, err)
	opts, err = empty.Options()
	require.NoError(t, err)
	assert.Empty(t, opts)
}

// TestDecodeConfig_UnknownKeys reports every unknown key, sorted.
func TestDecodeConfig_UnknownKeys(t *testing.T) {
	t.Parallel()

	_, err := arraycheck.DecodeConfig(map[string]any{"foo": true, "copy": true, "bar": 1})
	require.ErrorIs(t, err, arraycheck.ErrConfiguration)
	assert.Contains(t, err.Error(), "unexpected keyword arguments: ['bar', 'foo']")

	_, err = arraycheck.DecodeConfig(map[string]any{"COPY": true, "Allow_NaNs": true})
	require.ErrorIs(t, err, arraycheck.ErrConfiguration)
	assert.Contains(t, err.Error(), "unexpected keyword arguments: ['Allow_NaNs', 'COPY']")
}

// TestConfigOptions_Errors covers malformed values.
func TestConfigOptions_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  arraycheck.Config
	}{
		{"format type", arraycheck.Config{SparseFormat: 3}},
		{"format entry type", arraycheck.Config{SparseFormat: []any{"csr", 1}}},
		{"dtype", arraycheck.Config{DType: "complex128"}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := tc.cfg.Options()
			require.ErrorIs(t, err, arraycheck.ErrConfiguration)
		})
	}
}

// TestCheckMap rejects an unknown key before touching any value.
func TestCheckMap(t *testing.T) {
	t.Parallel()

	// 42 has no length: it would be a type error if it were ever classified
	_, err := arraycheck.CheckMap([]any{42}, map[string]any{"foo": true})
	require.ErrorIs(t, err, arraycheck.ErrConfiguration)
	require.NotErrorIs(t, err, arraycheck.ErrTypeMismatch)

	_, err = arraycheck.CheckMap([]any{42}, map[string]any{"sparse_format": "lil"})
	require.ErrorIs(t, err, arraycheck.ErrConfiguration)
	assert.Contains(t, err.Error(), "unexpected sparse format(s): 'lil'")

	m, err := sparse.NewCSC(2, 2, []int{0, 1, 2}, []int{0, 1}, []float64{1, 2})
	require.NoError(t, err)
	out, err := arraycheck.CheckMap([]any{m, []int{1, 2}}, map[string]any{"sparse_format": "csr", "dtype": "int32"})
	require.NoError(t, err)
	require.Equal(t, sparse.CSR, out[0].Sparse().Format())
	require.Equal(t, ndarray.Int32, out[0].Sparse().DType())
	require.Equal(t, ndarray.Int32, out[1].Dense().DType())
}

// TestOptions_Defaults checks the zero configuration.
func TestOptions_Defaults(t *testing.T) {
	t.Parallel()

	o := arraycheck.NewOptions()
	assert.Nil(t, o.SparseFormats())
	assert.Equal(t, arraycheck.DefaultDType, o.DType())
	assert.Equal(t, arraycheck.DefaultCopy, o.Copy())
	assert.Equal(t, arraycheck.DefaultCContiguous, o.CContiguous())
	assert.Equal(t, arraycheck.DefaultAllowLists, o.AllowLists())
	assert.Equal(t, arraycheck.DefaultAllowNaNs, o.AllowNaNs())

	// later setters win
	o = arraycheck.NewOptions(
		arraycheck.WithSparseFormats(arraycheck.SparseCSR),
		arraycheck.WithSparseFormat(arraycheck.SparseDense),
		nil,
	)
	assert.Equal(t, []arraycheck.SparseFormat{arraycheck.SparseDense}, o.SparseFormats())
}
