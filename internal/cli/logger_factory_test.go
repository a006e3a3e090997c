// SPDX-License-Identifier: MIT
package cli_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/osprey/internal/cli"
)

func TestLoggerFactoryCreateLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level       cli.LogLevel
		format      cli.LogFormat
		expectError bool
	}{
		{cli.LogLevelDebug, cli.LogFormatStructured, false},
		{cli.LogLevelInfo, cli.LogFormatConsole, false},
		{cli.LogLevelWarn, cli.LogFormatStructured, false},
		{cli.LogLevelError, cli.LogFormatConsole, false},
		{cli.LogLevel("verbose"), cli.LogFormatStructured, true},
		{cli.LogLevelInfo, cli.LogFormat("xml"), true},
	}
	for i, tc := range tests {
		tc := tc
		t.Run(fmt.Sprintf("%d_%s_%s", i, tc.level, tc.format), func(t *testing.T) {
			t.Parallel()
			logger, err := cli.NewLoggerFactory().CreateLogger(tc.level, tc.format)
			if tc.expectError {
				require.Error(t, err)
				require.Nil(t, logger)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, logger)
			require.Equal(t, tc.level == cli.LogLevelDebug, logger.Core().Enabled(-1))
		})
	}
}
