// Package main provides the ats_ui command: the screening UI server and its
// terminal counterparts.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-ui/internal/backend"
	"github.com/jonathan/ats-ui/internal/config"
	"github.com/jonathan/ats-ui/internal/observability"
	"github.com/jonathan/ats-ui/internal/schemas"
)

// app is the state shared by every command: flags, resolved config and logger.
type app struct {
	// Global flags
	configPath string
	backendURL string
	outputDir  string
	verbose    bool
	jsonOutput bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "ats_ui",
		Short: "ATS resume screening UI and CLI",
		Long: `ats_ui serves the ATS resume screening UI and runs the same flows from a terminal.

Resumes and job descriptions are scored by the ATS backend; ats_ui validates
uploads, forwards them, and renders or saves the results.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a YAML config file (default $ATS_CONFIG)")
	flags.StringVar(&a.backendURL, "backend-url", "", "ATS backend base URL (overrides config)")
	flags.StringVarP(&a.outputDir, "output-dir", "o", "", "Directory for downloaded files (overrides config)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&a.jsonOutput, "json", false, "Print results as JSON")

	rootCmd.AddCommand(
		newServeCmd(a),
		newAnalyzeCmd(a),
		newMatchCmd(a),
		newBulkCmd(a),
		newMatchesCmd(a),
		newRenameCmd(a),
		newExcelCmd(a),
		newValidateCmd(a),
		newHealthCmd(a),
	)
	return rootCmd
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.backendURL != "" {
		cfg.BackendURL = a.backendURL
	}
	if a.outputDir != "" {
		cfg.OutputDir = a.outputDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := observability.NewLogger(cfg.LogLevel, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// client returns a backend client for the configured backend. Metrics are
// optional and only wired by serve.
func (a *app) client(recorder backend.Recorder) (*backend.Client, error) {
	opts := &backend.Options{
		Timeout:  a.cfg.RequestTimeout,
		Logger:   a.logger,
		Recorder: recorder,
	}
	if a.cfg.ValidateResponses {
		opts.Validator = schemas.NewValidator(nil)
	}
	return backend.New(a.cfg.BackendURL, opts)
}

func (a *app) printer(w io.Writer) *observability.Printer {
	return observability.NewPrinter(w)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
