// SPDX-License-Identifier: MIT
// Package cli wires the osprey-check command: Cobra flags, Viper
// configuration, a Zap logger, and the array validator.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/katalvlaran/osprey/arraycheck"
	"github.com/katalvlaran/osprey/internal/arrayio"
	"github.com/katalvlaran/osprey/utils"
)

const (
	applicationName             = "osprey-check"
	applicationShortDescription = "Validate an array document before it is fed to an estimator"
	applicationLongDescription  = "osprey-check loads a YAML or JSON array document, checks that every array has the same number of samples, normalizes sparse layouts, element types and memory order, and prints a YAML report."

	configurationName       = "osprey"
	configurationType       = "yaml"
	environmentPrefix       = "OSPREY"
	defaultSearchPath       = "."
	userConfigurationSearch = "~/.osprey"

	logLevelKey  = "log_level"
	logFormatKey = "log_format"

	configFlag           = "config"
	logLevelFlag         = "log-level"
	logFormatFlag        = "log-format"
	sparseFormatFlag     = "sparse-format"
	copyFlag             = "copy"
	checkCContiguousFlag = "check-ccontiguous"
	dtypeFlag            = "dtype"
	allowListsFlag       = "allow-lists"
	allowNaNsFlag        = "allow-nans"
	workdirFlag          = "workdir"
)

// flagKeys maps validation flags to their configuration keys.
var flagKeys = map[string]string{
	sparseFormatFlag:     arraycheck.KeySparseFormat,
	copyFlag:             arraycheck.KeyCopy,
	checkCContiguousFlag: arraycheck.KeyCheckCContiguous,
	dtypeFlag:            arraycheck.KeyDType,
	allowListsFlag:       arraycheck.KeyAllowLists,
	allowNaNsFlag:        arraycheck.KeyAllowNaNs,
}

// ApplicationConfiguration is the persisted configuration of the CLI.
// Validation holds keyword options for the validator; it is decoded
// strictly so unknown keys fail.
type ApplicationConfiguration struct {
	LogLevel   string         `mapstructure:"log_level"`
	LogFormat  string         `mapstructure:"log_format"`
	Validation map[string]any `mapstructure:"validation"`
}

// Application wires the Cobra command, configuration loader and logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *ConfigurationLoader
	loggerFactory         *LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata LoadedConfiguration
	now                   func() time.Time

	configurationFilePath string
	logLevelValue         string
	logFormatValue        string
	sparseFormats         []string
	copyValue             bool
	cContiguousValue      bool
	dtypeValue            string
	allowListsValue       bool
	allowNaNsValue        bool
	workdir               string
}

// NewApplication assembles a fully wired CLI application.
func NewApplication() *Application {
	app := &Application{
		configurationLoader: NewConfigurationLoader(configurationName, configurationType, environmentPrefix, []string{defaultSearchPath, userConfigurationSearch}),
		loggerFactory:       NewLoggerFactory(),
		logger:              zap.NewNop(),
		now:                 time.Now,
	}

	cmd := &cobra.Command{
		Use:           applicationName + " [flags] FILE",
		Short:         applicationShortDescription,
		Long:          applicationLongDescription,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, _ []string) error {
			return app.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return app.run(command, arguments[0])
		},
	}
	cmd.SetContext(context.Background())

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.configurationFilePath, configFlag, "", "Optional path to a configuration file (YAML or JSON).")
	pf.StringVar(&app.logLevelValue, logLevelFlag, "", "Override the configured log level (debug, info, warn, error).")
	pf.StringVar(&app.logFormatValue, logFormatFlag, "", "Override the configured log format (structured or console).")
	pf.StringVar(&app.workdir, workdirFlag, "", "Resolve FILE and search for the configuration file from this directory.")

	f := cmd.Flags()
	f.StringSliceVar(&app.sparseFormats, sparseFormatFlag, nil, "Accepted sparse layout: csr, csc or dense. Repeat for a list of csr/csc.")
	f.BoolVar(&app.copyValue, copyFlag, arraycheck.DefaultCopy, "Always return copies of the input arrays.")
	f.BoolVar(&app.cContiguousValue, checkCContiguousFlag, arraycheck.DefaultCContiguous, "Force row-major (C) memory layout.")
	f.StringVar(&app.dtypeValue, dtypeFlag, "", "Coerce arrays to this element type (float64, float32, int64, int32, uint8, bool).")
	f.BoolVar(&app.allowListsValue, allowListsFlag, arraycheck.DefaultAllowLists, "Only length-check plain sequences.")
	f.BoolVar(&app.allowNaNsValue, allowNaNsFlag, arraycheck.DefaultAllowNaNs, "Accept NaN and infinite values.")

	app.rootCommand = cmd

	return app
}

// SetArgs overrides the command-line arguments (os.Args[1:] by default).
func (app *Application) SetArgs(arguments []string) {
	app.rootCommand.SetArgs(arguments)
}

// SetOutput redirects the report and error streams.
func (app *Application) SetOutput(out, errOut io.Writer) {
	app.rootCommand.SetOut(out)
	app.rootCommand.SetErr(errOut)
}

// Execute runs the command and flushes the logger.
func (app *Application) Execute() error {
	execErr := app.rootCommand.Execute()
	if err := syncLogger(app.logger); err != nil {
		return fmt.Errorf("unable to flush logger: %w", err)
	}

	return execErr
}

// Execute builds a fresh application and runs it.
func Execute() error {
	return NewApplication().Execute()
}

func (app *Application) initializeConfiguration(command *cobra.Command) error {
	defaults := map[string]any{
		logLevelKey:  string(LogLevelInfo),
		logFormatKey: string(LogFormatStructured),
	}

	var searchDir string
	if strings.TrimSpace(app.workdir) != "" {
		searchDir = utils.ExpandPath(app.workdir, "")
	}
	loaded, err := app.configurationLoader.LoadConfigurationFrom(searchDir, app.configurationFilePath, defaults, &app.configuration)
	if err != nil {
		return fmt.Errorf("unable to load configuration: %w", err)
	}
	app.configurationMetadata = loaded

	if flagChanged(command, logLevelFlag) {
		app.configuration.LogLevel = app.logLevelValue
	}
	if flagChanged(command, logFormatFlag) {
		app.configuration.LogFormat = app.logFormatValue
	}

	logger, err := app.loggerFactory.CreateLogger(LogLevel(app.configuration.LogLevel), LogFormat(app.configuration.LogFormat))
	if err != nil {
		return fmt.Errorf("unable to create logger: %w", err)
	}
	app.logger = logger
	app.logger.Debug("configuration initialized",
		zap.String(logLevelKey, app.configuration.LogLevel),
		zap.String(logFormatKey, app.configuration.LogFormat),
		zap.String("config_file", app.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

// validationOptions merges flag overrides on top of the configured
// validation map and decodes the result.
func (app *Application) validationOptions(command *cobra.Command) (arraycheck.Config, []arraycheck.Option, error) {
	merged := utils.DictMerge(app.configuration.Validation, app.flagOverrides(command))
	cfg, err := arraycheck.DecodeConfig(merged)
	if err != nil {
		return arraycheck.Config{}, nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return arraycheck.Config{}, nil, err
	}

	return cfg, opts, nil
}

// flagOverrides returns the validation keys set explicitly on the command line.
func (app *Application) flagOverrides(command *cobra.Command) map[string]any {
	overrides := map[string]any{}
	command.Flags().Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		switch f.Name {
		case sparseFormatFlag:
			overrides[key] = sparseFormatValue(app.sparseFormats)
		case copyFlag:
			overrides[key] = app.copyValue
		case checkCContiguousFlag:
			overrides[key] = app.cContiguousValue
		case dtypeFlag:
			overrides[key] = app.dtypeValue
		case allowListsFlag:
			overrides[key] = app.allowListsValue
		case allowNaNsFlag:
			overrides[key] = app.allowNaNsValue
		}
	})

	return overrides
}

// sparseFormatValue keeps a single flag value scalar ("dense" is only valid
// as a scalar) and turns repeated values into a list.
func sparseFormatValue(values []string) any {
	if len(values) == 1 {
		return values[0]
	}
	list := make([]any, len(values))
	for i, v := range values {
		list[i] = v
	}

	return list
}

func (app *Application) run(command *cobra.Command, documentPath string) error {
	start := app.now()

	cfg, opts, err := app.validationOptions(command)
	if err != nil {
		return err
	}

	var doc arrayio.Document
	load := func() error {
		var loadErr error
		doc, loadErr = arrayio.LoadDocument(documentPath)
		return loadErr
	}
	if strings.TrimSpace(app.workdir) != "" {
		err = utils.InDirectory(utils.ExpandPath(app.workdir, ""), load)
	} else {
		err = load()
	}
	if err != nil {
		return err
	}

	in, err := doc.Items()
	if err != nil {
		return err
	}
	app.logger.Debug("document loaded", zap.String("path", documentPath), zap.Int("arrays", len(in)))

	out, err := arraycheck.Check(in, opts...)
	if err != nil {
		app.logger.Warn("validation failed", zap.String("path", documentPath), zap.Error(err))
		return err
	}
	items, err := arrayio.NewItemReports(doc.Names(), in, out)
	if err != nil {
		return err
	}

	finished := app.now()
	elapsed := finished.Sub(start)
	report := arrayio.Report{
		Generated: utils.CurrentPrettyTime(finished),
		Elapsed:   strings.TrimSpace(utils.ShortFormatTime(elapsed.Seconds())),
		Source:    documentPath,
		Options:   cfg,
		Items:     items,
	}
	if err := arrayio.WriteReport(utils.NewFlushingWriter(command.OutOrStdout()), report); err != nil {
		return err
	}

	fields := []zap.Field{
		zap.String("path", documentPath),
		zap.Int("arrays", len(out)),
		zap.Duration("elapsed", elapsed),
	}
	if human := utils.FormatDuration(elapsed); human != "" {
		fields = append(fields, zap.String("elapsed_human", human))
	}
	app.logger.Info("validation finished", fields...)

	return nil
}

// flagChanged reports whether name was set on the command or any ancestor.
func flagChanged(command *cobra.Command, name string) bool {
	if command == nil {
		return false
	}
	sets := []*pflag.FlagSet{command.Flags(), command.PersistentFlags(), command.InheritedFlags()}
	if root := command.Root(); root != nil {
		sets = append(sets, root.PersistentFlags())
	}
	for _, set := range sets {
		if set != nil && set.Changed(name) {
			return true
		}
	}

	return false
}
