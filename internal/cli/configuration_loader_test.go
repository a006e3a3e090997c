// SPDX-License-Identifier: MIT
package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/osprey/internal/cli"
)

type loaderFixture struct {
	LogLevel   string         `mapstructure:"log_level"`
	Validation map[string]any `mapstructure:"validation"`
}

// TestConfigurationLoader covers defaults, explicit files, search directories
// and environment overrides.
// Not parallel: it sets environment variables.
func TestConfigurationLoader(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "osprey.yaml", "log_level: warn\nvalidation:\n  copy: true\n")
	explicit := writeFile(t, dir, "explicit.yaml", "log_level: debug\n")
	defaults := map[string]any{"log_level": "info"}

	loader := cli.NewConfigurationLoader("osprey", "yaml", "OSPREYTEST", []string{filepath.Join(dir, "nowhere")})

	var fromDefaults loaderFixture
	loaded, err := loader.LoadConfiguration("", defaults, &fromDefaults)
	require.NoError(t, err)
	require.Equal(t, "info", fromDefaults.LogLevel)
	require.Empty(t, loaded.ConfigFileUsed)

	var fromSearch loaderFixture
	loaded, err = loader.LoadConfigurationFrom(dir, "", defaults, &fromSearch)
	require.NoError(t, err)
	require.Equal(t, "warn", fromSearch.LogLevel)
	require.Equal(t, map[string]any{"copy": true}, fromSearch.Validation)
	require.Equal(t, "osprey.yaml", filepath.Base(loaded.ConfigFileUsed))

	var fromFile loaderFixture
	_, err = loader.LoadConfiguration(explicit, defaults, &fromFile)
	require.NoError(t, err)
	require.Equal(t, "debug", fromFile.LogLevel)

	t.Setenv("OSPREYTEST_LOG_LEVEL", "error")
	var fromEnv loaderFixture
	_, err = loader.LoadConfigurationFrom(dir, "", defaults, &fromEnv)
	require.NoError(t, err)
	require.Equal(t, "error", fromEnv.LogLevel)

	broken := writeFile(t, dir, "broken.yaml", "log_level: [\n")
	_, err = loader.LoadConfiguration(broken, defaults, &fromFile)
	require.Error(t, err)
}
