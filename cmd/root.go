/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/internal/iofs"
	"github.com/gnames/gntag/internal/iologger"
	app "github.com/gnames/gntag/pkg"
	"github.com/gnames/gntag/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	backend   string
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gntag",
		Short:   "GNtag finds and cleans duplicate and orphaned tags",
		Long: `GNtag curates a two-level tag taxonomy (parents with children)
attached to documents.

The tool provides:
  - Detection: exact duplicates, similar parents and similar children
  - Clusters: similar parent names grouped for batch review
  - Orphans: children whose parent does not exist
  - Curation: merge, delete, adopt and reject decisions
  - Audit: every decision is appended to the curation log
  - Taxonomy: export and import in JSON or YAML

Tags live in PostgreSQL or in a local SQLite file.

Configuration precedence (highest to lowest):
  1. CLI flags (--backend)
  2. Environment variables (GNTAG_*)
  3. Config file (~/.config/gntag/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (database.host -> GNTAG_DATABASE_HOST).

  Examples:
    GNTAG_DATABASE_BACKEND          postgres or sqlite
    GNTAG_DATABASE_HOST             PostgreSQL host
    GNTAG_DETECT_PARENT_THRESHOLD   Lowest parent similarity, percent
    GNTAG_CURATE_DEFAULT_SCOPE      Scope of learned merge rules
    GNTAG_LOG_LEVEL                 Log level (debug/info/warn/error)`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gntag version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/gntag/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&backend, "backend", "b", "",
		"tag store backend: postgres or sqlite")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gntag")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getOptimizeCmd(),
		getDuplicatesCmd(),
		getClustersCmd(),
		getOrphansCmd(),
		getMergeCmd(),
		getDeleteCmd(),
		getRejectCmd(),
		getExportCmd(),
		getImportCmd(),
		getRulesCmd(),
		getEventsCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = initLogging(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfgPath := cfgFile
	if cfgPath == "" {
		if err = iofs.EnsureConfigFile(homeDir); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		cfgPath = config.ConfigFilePath(homeDir)
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(cfgPath); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	cfg.Update(cfgViper.ToOptions())

	// Set HomeDir after config is loaded
	opts := []config.Option{config.OptHomeDir(homeDir)}
	if cmd.Flags().Changed("backend") {
		opts = append(opts, config.OptDatabaseBackend(backend))
	}
	cfg.Update(opts)

	// Reconfigure logging with user's settings
	if err = initLogging(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", cfgPath,
		"backend", cfg.Database.Backend,
	)
	return nil
}

// initLogging replaces the default logger, closing the log file of the
// previous one.
func initLogging(logDir string, logCfg config.LogConfig) error {
	closer, err := iologger.Init(logDir, logCfg)
	if err != nil {
		return err
	}
	closeLog()
	logCloser = closer
	return nil
}

func closeLog() {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(cfgPath string) (*config.Config, error) {
	var err error
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Environment variables are bound one by one, so it is clear which
	// of them are allowed. They match the fields of config.ToOptions().
	v.SetEnvPrefix("GNTAG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.backend", "GNTAG_DATABASE_BACKEND")
	v.BindEnv("database.host", "GNTAG_DATABASE_HOST")
	v.BindEnv("database.port", "GNTAG_DATABASE_PORT")
	v.BindEnv("database.user", "GNTAG_DATABASE_USER")
	v.BindEnv("database.password", "GNTAG_DATABASE_PASSWORD")
	v.BindEnv("database.database", "GNTAG_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "GNTAG_DATABASE_SSL_MODE")
	v.BindEnv("database.sqlite_path", "GNTAG_DATABASE_SQLITE_PATH")

	// Detection configuration
	v.BindEnv("detect.parent_threshold", "GNTAG_DETECT_PARENT_THRESHOLD")
	v.BindEnv("detect.child_threshold", "GNTAG_DETECT_CHILD_THRESHOLD")
	v.BindEnv("detect.max_parent_names", "GNTAG_DETECT_MAX_PARENT_NAMES")
	v.BindEnv("detect.min_children", "GNTAG_DETECT_MIN_CHILDREN")
	v.BindEnv("detect.max_children", "GNTAG_DETECT_MAX_CHILDREN")
	v.BindEnv("detect.max_child_pairs", "GNTAG_DETECT_MAX_CHILD_PAIRS")

	// Curation configuration
	v.BindEnv("curate.default_scope", "GNTAG_CURATE_DEFAULT_SCOPE")
	v.BindEnv("curate.creator", "GNTAG_CURATE_CREATOR")

	// Log configuration
	v.BindEnv("log.level", "GNTAG_LOG_LEVEL")
	v.BindEnv("log.format", "GNTAG_LOG_FORMAT")
	v.BindEnv("log.destination", "GNTAG_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "GNTAG_JOBS_NUMBER")

	v.AutomaticEnv()
}
