// SPDX-License-Identifier: MIT
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/katalvlaran/osprey/utils"
)

// ConfigurationLoader wraps Viper to load a configuration file with
// environment overrides.
type ConfigurationLoader struct {
	name        string
	fileType    string
	envPrefix   string
	searchPaths []string
	envReplacer *strings.Replacer
}

// LoadedConfiguration surfaces metadata about the resolved configuration.
type LoadedConfiguration struct {
	ConfigFileUsed string
}

// NewConfigurationLoader searches searchPaths for "<name>.<fileType>" and
// reads environment variables under envPrefix ("a.b" becomes PREFIX_A_B).
func NewConfigurationLoader(name, fileType, envPrefix string, searchPaths []string) *ConfigurationLoader {
	return &ConfigurationLoader{
		name:        name,
		fileType:    fileType,
		envPrefix:   envPrefix,
		searchPaths: append([]string(nil), searchPaths...),
		envReplacer: strings.NewReplacer(".", "_"),
	}
}

// LoadConfiguration populates target from defaults, the configuration file
// and the environment, in increasing precedence. An explicit path must exist;
// a missing file in the search paths is not an error.
func (l *ConfigurationLoader) LoadConfiguration(path string, defaults map[string]any, target any) (LoadedConfiguration, error) {
	return l.load(l.searchPaths, path, defaults, target)
}

// LoadConfigurationFrom is LoadConfiguration with dir searched before the
// loader's own search paths.
func (l *ConfigurationLoader) LoadConfigurationFrom(dir, path string, defaults map[string]any, target any) (LoadedConfiguration, error) {
	if strings.TrimSpace(dir) == "" {
		return l.LoadConfiguration(path, defaults, target)
	}

	paths := append([]string(nil), l.searchPaths...)
	var loaded LoadedConfiguration
	err := utils.PrependSearchPath(&paths, dir, func() error {
		var loadErr error
		loaded, loadErr = l.load(paths, path, defaults, target)
		return loadErr
	})

	return loaded, err
}

func (l *ConfigurationLoader) load(searchPaths []string, path string, defaults map[string]any, target any) (LoadedConfiguration, error) {
	v := viper.New()
	v.SetConfigName(l.name)
	v.SetConfigType(l.fileType)
	for _, p := range searchPaths {
		v.AddConfigPath(utils.ExpandPath(p, ""))
	}

	v.SetEnvPrefix(l.envPrefix)
	v.SetEnvKeyReplacer(l.envReplacer)
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(utils.ExpandPath(path, ""))
	}

	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return LoadedConfiguration{}, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	if err := v.Unmarshal(target); err != nil {
		return LoadedConfiguration{}, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return LoadedConfiguration{ConfigFileUsed: v.ConfigFileUsed()}, nil
}
