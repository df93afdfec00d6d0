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
	"github.com/gnames/gngb/internal/iofs"
	"github.com/gnames/gngb/internal/iologger"
	"github.com/gnames/gngb/internal/ioprocess"
	app "github.com/gnames/gngb/pkg"
	"github.com/gnames/gngb/pkg/config"
	"github.com/gnames/gngb/pkg/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir   string
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd returns the root command. A new instance is created on
// every call, so tests do not share flag state.
func getRootCmd() *cobra.Command {
	var flags translateFlags

	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gngb",
		Short:   "GNgb translates coding features of GenBank files",
		Long: `GNgb reads GenBank flat files, extracts coding features (CDS by
default) and translates their nucleotide sequences into amino acid
sequences using the standard genetic code.

Usage:
  gngb [flags] [file]

If file is not given, 'nc_005816.gb' from the current directory is used.
Files ending with '.gz' are decompressed on the fly.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNGB_*)
  3. Config file (~/.config/gngb/config.yaml)
  4. Built-in defaults

Environment Variables:
  GNGB_TRANSLATE_ONE_LETTER       one letter amino acid codes (true/false)
  GNGB_TRANSLATE_FEATURE_KINDS    comma separated feature kinds
  GNGB_TRANSLATE_FORMAT           text, json, pretty, csv, tsv, yaml
  GNGB_TRANSLATE_NOM_CODE         nomenclatural code of organism names
  GNGB_TRANSLATE_WITH_CACHE       persistent translation cache
  GNGB_LOG_LEVEL                  debug, info, warn, error
  GNGB_LOG_FORMAT                 json, text, tint
  GNGB_LOG_DESTINATION            file, stderr, stdout
  GNGB_JOBS_NUMBER                number of concurrent workers

Examples:
  # Translate CDS features with three letter codes
  gngb NC_005816.gb

  # One letter codes as JSON
  gngb -1 -f json NC_005816.gb

  # Translate only some features
  gngb -s YP_pPCP01,YP_pPCP02 NC_005816.gb

  # List all features without translation
  gngb list NC_005816.gb`,
		Args:               cobra.MaximumNArgs(1),
		PersistentPreRunE:  bootstrap,
		PersistentPostRunE: closeLog,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRoot(cmd, args, &flags)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "gngb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gngb")
	rootCmd.PersistentFlags().String("config", "",
		"config file (default ~/.config/gngb/config.yaml)")
	flags.register(rootCmd)

	rootCmd.AddCommand(getListCmd())
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
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
	if logCloser, err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
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
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings, the file started with
	// defaults is continued.
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", cfgPath)
	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	closer, err := iologger.Init(logDir, cfg.Log, true)
	if err != nil {
		return err
	}
	if logCloser != nil {
		logCloser.Close()
	}
	logCloser = closer
	return nil
}

func closeLog(cmd *cobra.Command, args []string) error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}

func runRoot(
	cmd *cobra.Command,
	args []string,
	flags *translateFlags,
) error {
	opts := flags.options(cmd)
	if len(args) > 0 {
		opts = append(opts, config.OptInput(args[0]))
	}
	cfg.Update(opts)

	format, err := report.NewFormat(cfg.Translate.Format)
	if err != nil {
		return err
	}

	p, err := ioprocess.New(cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	if flags.cleanCache {
		if err = p.CleanCache(); err != nil {
			return err
		}
		// only cleaning was asked for
		if len(args) == 0 {
			return nil
		}
	}

	res, err := p.Process(cmd.Context(), cfg.Input)
	if err != nil {
		return err
	}

	warnDiagnostics(res, format)
	return res.Write(cmd.OutOrStdout(), format)
}

// warnDiagnostics shows diagnostics on STDERR for formats that have no
// place for them. Text reports list them in their Warnings section.
func warnDiagnostics(res *report.Report, f report.Format) {
	if f == report.Text {
		return
	}
	for _, d := range res.Diagnostics {
		gn.Warn("<warn>%s</warn>", d.Message)
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
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
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("GNGB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Translation configuration
	v.BindEnv("translate.one_letter", "GNGB_TRANSLATE_ONE_LETTER")
	v.BindEnv("translate.feature_kinds", "GNGB_TRANSLATE_FEATURE_KINDS")
	v.BindEnv("translate.format", "GNGB_TRANSLATE_FORMAT")
	v.BindEnv("translate.nom_code", "GNGB_TRANSLATE_NOM_CODE")
	v.BindEnv("translate.with_cache", "GNGB_TRANSLATE_WITH_CACHE")

	// Log configuration
	v.BindEnv("log.level", "GNGB_LOG_LEVEL")
	v.BindEnv("log.format", "GNGB_LOG_FORMAT")
	v.BindEnv("log.destination", "GNGB_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "GNGB_JOBS_NUMBER")

	v.AutomaticEnv()
}
