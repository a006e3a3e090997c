// SPDX-License-Identifier: MIT
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestShortFormatTime covers both branches and the Windows adjustment.
func TestShortFormatTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		seconds float64
		goos    string
		want    string
	}{
		{"seconds", 1.5, "linux", "   1.5s"},
		{"exactly one minute", 60, "linux", "  60.0s"},
		{"minutes", 120, "darwin", " 2.0min"},
		{"windows adjustment", 1.5, "windows", "   1.4s"},
		{"windows floor", 0.05, "windows", "   0.0s"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, shortFormatTime(tc.seconds, tc.goos))
		})
	}
}
