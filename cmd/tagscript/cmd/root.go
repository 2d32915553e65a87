// ============================================================================
// tagscript - Tag Document Toolkit
// ============================================================================
//
// Package:     cmd
// Description: Root command, global flags and shared setup of the CLI
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/tagscript/foundation/core/error"
	"github.com/msto63/tagscript/foundation/core/i18n"
	"github.com/msto63/tagscript/foundation/tag/store"
	"github.com/msto63/tagscript/pkg/core/config"
	"github.com/msto63/tagscript/pkg/core/logging"
)

// errReported marks failures whose diagnostics were already printed
var errReported = errors.New("reported")

// app holds everything the subcommands share
type app struct {
	configFile string
	logLevel   string
	locale     string

	cfg     *config.Config
	logger  *logging.Logger
	catalog *i18n.Manager
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "tagscript",
		Short: "tagscript - Tag Document Toolkit",
		Long: `tagscript validates and inspects tag documents of the form

  [command prop="value" prop2="value2"]

Commands:
  check    - validate documents and print diagnostics
  dump     - print the parsed tags as text, JSON or YAML
  browse   - walk the tags of a document interactively
  watch    - check documents again whenever they change`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: $TAGSCRIPT_CONFIG or ./tagscript.toml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&a.locale, "locale", "", "message locale, e.g. en or de")

	rootCmd.AddCommand(
		newCheckCmd(a),
		newDumpCmd(a),
		newBrowseCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the CLI and returns the process exit code
func Execute() int {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			printError(rootCmd, err)
		}
		return exitCode(err)
	}
	return 0
}

// setup loads the configuration and builds logger and catalog
func (a *app) setup(cmd *cobra.Command, args []string) error {
	var err error
	if a.configFile != "" {
		a.cfg, err = config.Load(a.configFile)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		a.cfg.General.LogLevel = a.logLevel
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.logger = logging.Wrap(logging.NewLogger(logging.LoggerConfig{
		Name:   "tagscript",
		Level:  a.cfg.General.LogLevel,
		Format: a.cfg.General.LogFormat,
		Output: cmd.ErrOrStderr(),
	}), "tagscript")

	a.catalog, err = i18n.New(i18n.Options{LocalesDir: a.cfg.General.LocalesDir})
	if err != nil {
		return err
	}
	locale := a.catalog.DetectLocale(a.locale, a.cfg.General.Locale)
	if err := a.catalog.SetLocale(locale); err != nil {
		return err
	}

	a.logger.Debug("configuration loaded", "locale", locale, "log_level", a.cfg.General.LogLevel)
	return nil
}

// newStore creates a store with the configured limits, logger and catalog
func (a *app) newStore() *store.Store {
	opts := a.cfg.StoreOptions()
	opts.Logger = a.logger.Foundation()
	opts.Translator = a.catalog
	return store.New(opts)
}

// exitCode maps an error to the process exit code of its error code
func exitCode(err error) int {
	var coded mdwerror.Coded
	if errors.As(err, &coded) {
		return coded.Code().ExitCode()
	}
	return 1
}

func printError(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
}
