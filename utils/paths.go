// SPDX-License-Identifier: MIT

package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbol             = "~"
	tildeForwardSlashPrefix = "~/"
	defaultBaseDirectory    = "."
)

var tildeWithPathSeparatorPrefix = tildeSymbol + string(os.PathSeparator)

// ErrNilCallback is returned by the scoped helpers when fn is nil.
var ErrNilCallback = errors.New("utils: nil callback")

// HomeDirectoryProvider resolves the current user's home directory.
type HomeDirectoryProvider func() (string, error)

// HomeExpander converts leading "~" shortcuts into the user's home directory.
// The home directory is resolved once, on first use.
type HomeExpander struct {
	provider      HomeDirectoryProvider
	homeDirectory string
	homeErr       error
	once          sync.Once
}

// NewHomeExpander uses os.UserHomeDir.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider uses a custom provider; nil falls back to os.UserHomeDir.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}

	return &HomeExpander{provider: provider}
}

// Expand resolves "~", "~/x" and "~<sep>x". Other paths, including
// "~user/x", are returned unchanged, as is everything when the home
// directory cannot be resolved.
func (e *HomeExpander) Expand(candidate string) string {
	if e == nil || !strings.HasPrefix(candidate, tildeSymbol) {
		return candidate
	}
	home := e.home()
	if home == "" {
		return candidate
	}

	switch {
	case candidate == tildeSymbol:
		return home
	case strings.HasPrefix(candidate, tildeForwardSlashPrefix):
		return filepath.Join(home, strings.TrimPrefix(candidate, tildeForwardSlashPrefix))
	case strings.HasPrefix(candidate, tildeWithPathSeparatorPrefix):
		return filepath.Join(home, strings.TrimPrefix(candidate, tildeWithPathSeparatorPrefix))
	default:
		return candidate
	}
}

func (e *HomeExpander) home() string {
	e.once.Do(func() {
		e.homeDirectory, e.homeErr = e.provider()
	})
	if e.homeErr != nil {
		return ""
	}

	return e.homeDirectory
}

var defaultHomeExpander = NewHomeExpander()

// ExpandPath expands a leading "~" and, if the result is relative, joins it
// onto base ("." when base is empty). The result is not cleaned further than
// filepath.Join does.
func ExpandPath(path, base string) string {
	return ExpandPathWith(defaultHomeExpander, path, base)
}

// ExpandPathWith is ExpandPath with an explicit HomeExpander.
func ExpandPathWith(expander *HomeExpander, path, base string) string {
	expanded := expander.Expand(path)
	if filepath.IsAbs(expanded) {
		return expanded
	}
	if base == "" {
		base = defaultBaseDirectory
	}

	return filepath.Join(base, expanded)
}

// InDirectory runs fn with the process working directory set to path and
// restores the previous directory afterwards, also when fn fails or panics.
// The working directory is process-wide: do not call concurrently.
func InDirectory(path string, fn func() error) (err error) {
	if fn == nil {
		return ErrNilCallback
	}
	previous, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("InDirectory: %w", err)
	}
	if err := os.Chdir(path); err != nil {
		return fmt.Errorf("InDirectory(%s): %w", path, err)
	}
	defer func() {
		if restoreErr := os.Chdir(previous); restoreErr != nil && err == nil {
			err = fmt.Errorf("InDirectory: restore %s: %w", previous, restoreErr)
		}
	}()

	return fn()
}

// PrependSearchPath runs fn with entry inserted at the front of *paths and
// removes it again afterwards.
func PrependSearchPath(paths *[]string, entry string, fn func() error) error {
	if fn == nil {
		return ErrNilCallback
	}
	*paths = append([]string{entry}, *paths...)
	defer func() { *paths = (*paths)[1:] }()

	return fn()
}
