// SPDX-License-Identifier: MIT
package utils_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/katalvlaran/osprey/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDictMerge covers precedence, recursion and input immutability.
func TestDictMerge(t *testing.T) {
	t.Parallel()

	base := map[string]any{
		"a": 1,
		"b": map[string]any{"x": 1, "y": 2},
		"c": map[string]any{"k": "base"},
		"d": "only-base",
	}
	top := map[string]any{
		"a": 10,
		"b": map[string]any{"y": 20, "z": 30},
		"c": "scalar-wins",
	}

	got := utils.DictMerge(base, top)
	assert.Equal(t, map[string]any{
		"a": 10,
		"b": map[string]any{"x": 1, "y": 20, "z": 30},
		"c": "scalar-wins",
		"d": "only-base",
	}, got)

	// inputs untouched
	assert.Equal(t, map[string]any{"x": 1, "y": 2}, base["b"])
	assert.Equal(t, map[string]any{"y": 20, "z": 30}, top["b"])

	assert.Empty(t, utils.DictMerge(nil, nil))
}

// TestExpandPath covers tilde expansion, absolute passthrough and base joining.
func TestExpandPath(t *testing.T) {
	t.Parallel()

	expander := utils.NewHomeExpanderWithProvider(func() (string, error) { return "/home/tester", nil })
	tests := []struct {
		name, path, base, want string
	}{
		{"tilde only", "~", "/base", "/home/tester"},
		{"tilde slash", "~/data/x.yaml", "/base", "/home/tester/data/x.yaml"},
		{"absolute", "/etc/osprey.yaml", "/base", "/etc/osprey.yaml"},
		{"relative", "runs/a", "/base", "/base/runs/a"},
		{"default base", "runs/a", "", "runs/a"},
		{"other user", "~bob/x", "/base", "/base/~bob/x"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, utils.ExpandPathWith(expander, tc.path, tc.base))
		})
	}

	failing := utils.NewHomeExpanderWithProvider(func() (string, error) { return "", errors.New("no home") })
	assert.Equal(t, "~/x", failing.Expand("~/x"))
}

// TestInDirectory verifies the working directory is restored, including on error.
// Not parallel: it changes the process working directory.
func TestInDirectory(t *testing.T) {
	start, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()

	var inside string
	err = utils.InDirectory(dir, func() error {
		var wdErr error
		inside, wdErr = os.Getwd()
		return wdErr
	})
	require.NoError(t, err)

	wantInside, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotInside, err := filepath.EvalSymlinks(inside)
	require.NoError(t, err)
	assert.Equal(t, wantInside, gotInside)

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, start, after)

	sentinel := errors.New("boom")
	err = utils.InDirectory(dir, func() error { return sentinel })
	require.ErrorIs(t, err, sentinel)
	after, err = os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, start, after)

	require.Error(t, utils.InDirectory(filepath.Join(dir, "missing"), func() error { return nil }))
	require.ErrorIs(t, utils.InDirectory(dir, nil), utils.ErrNilCallback)
}

// TestPrependSearchPath checks the entry is visible only inside the callback.
func TestPrependSearchPath(t *testing.T) {
	t.Parallel()

	paths := []string{"/usr/lib"}
	err := utils.PrependSearchPath(&paths, "/opt/models", func() error {
		assert.Equal(t, []string{"/opt/models", "/usr/lib"}, paths)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/lib"}, paths)
}

// TestFormatDuration covers pluralization and the strict-threshold rule.
func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, ""},
		{time.Second, ""},
		{2 * time.Second, "2 seconds"},
		{time.Minute, "60 seconds"},
		{61 * time.Second, "1 minute"},
		{62 * time.Second, "1 minute, 2 seconds"},
		{26*time.Hour + 3*time.Minute + 4*time.Second, "1 day, 2 hours, 3 minutes, 4 seconds"},
		{400 * 24 * time.Hour, "1 year, 1 month, 5 days"},
		{1500 * time.Millisecond, ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, utils.FormatDuration(tc.in), tc.in.String())
	}
}

// TestCurrentPrettyTime covers the 12-hour clock with space padding.
func TestCurrentPrettyTime(t *testing.T) {
	t.Parallel()

	afternoon := time.Date(2026, time.October, 8, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "October 08, 2026  3:04 PM", utils.CurrentPrettyTime(afternoon))

	midnight := time.Date(2026, time.January, 1, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, "January 01, 2026 12:30 AM", utils.CurrentPrettyTime(midnight))
}

// TestJoinQuoted covers quoting and separators.
func TestJoinQuoted(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "'csr', 'csc'", utils.JoinQuoted([]string{"csr", "csc"}, utils.DefaultQuote))
	assert.Equal(t, `"a"`, utils.JoinQuoted([]string{"a"}, `"`))
	assert.Equal(t, "", utils.JoinQuoted(nil, "'"))
}

// flushRecorder counts Flush calls.
type flushRecorder struct {
	bytes.Buffer
	flushes int
}

func (r *flushRecorder) Flush() error {
	r.flushes++
	return nil
}

// TestFlushingWriter verifies a flush follows every write.
func TestFlushingWriter(t *testing.T) {
	t.Parallel()

	rec := &flushRecorder{}
	w := utils.NewFlushingWriter(rec)
	_, err := w.Write([]byte("a"))
	require.NoError(t, err)
	_, err = w.Write([]byte("b"))
	require.NoError(t, err)

	assert.Equal(t, "ab", rec.String())
	assert.Equal(t, 2, rec.flushes)
	assert.Same(t, w, utils.NewFlushingWriter(w))
	assert.Nil(t, utils.NewFlushingWriter(nil))

	plain := &signalFlusher{}
	_, err = utils.NewFlushingWriter(plain).Write([]byte("c"))
	require.NoError(t, err)
	assert.Equal(t, 1, plain.flushes)

	var raw bytes.Buffer
	_, err = utils.NewFlushingWriter(&raw).Write([]byte("d"))
	require.NoError(t, err)
	assert.Equal(t, "d", raw.String())

	failing := utils.NewFlushingWriter(failingFlusher{})
	_, err = failing.Write([]byte("e"))
	require.ErrorIs(t, err, errFlush)
}

// signalFlusher has an http.Flusher style Flush without an error.
type signalFlusher struct {
	bytes.Buffer
	flushes int
}

func (s *signalFlusher) Flush() { s.flushes++ }

var errFlush = errors.New("flush failed")

type failingFlusher struct{}

func (failingFlusher) Write(p []byte) (int, error) { return len(p), nil }
func (failingFlusher) Flush() error                { return errFlush }
