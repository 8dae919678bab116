// Package commands implements the CLI commands for tadata.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	buildinfo "github.com/tadata-org/tadata-sdk-go/cmd"
	"github.com/tadata-org/tadata-sdk-go/errors"
	"github.com/tadata-org/tadata-sdk-go/internal/config"
	"github.com/tadata-org/tadata-sdk-go/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// cfg holds the loaded configuration.
var cfg *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	// Add persistent flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	// Add version flag
	rootCmd.Version = buildinfo.Version
	rootCmd.SetVersionTemplate("tadata version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	// Capture load errors for later reporting
	cfg, configLoadErr = config.Load("")
}

// loadedConfig returns the configuration loaded at startup, or defaults when
// loading failed.
func loadedConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

var rootCmd = &cobra.Command{
	Use:   "tadata",
	Short: "Deploy MCP servers from OpenAPI specifications",
	Long: `tadata deploys hosted MCP (Model Context Protocol) servers from OpenAPI
specifications. Point it at a spec file or URL and it validates the
document, uploads it to the Tadata deployment service, and reports the
resulting MCP server.

Credentials come from 'tadata auth login', the TADATA_API_KEY environment
variable, or the --api-key flag.`,
	Example: `  # Deploy a local spec
  tadata deploy -f openapi.yaml

  # Deploy a spec served over HTTP, with a name
  tadata deploy -u https://example.com/openapi.json --name orders-api

  # Validate specs without deploying
  tadata validate api/*.yaml

  # Store an API key
  tadata auth login`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logging first
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("TADATA_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig surfaces configuration load errors before any command runs.
func checkConfig(cmd *cobra.Command) error {
	// Skip for help and version, which must work with a broken config
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}

	if configLoadErr != nil {
		return NewUserError(configLoadErr, "Fix or remove the config file and retry.")
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
