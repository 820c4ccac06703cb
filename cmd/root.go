// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for langflow-session.
// It wires configuration, the credential store and the identity client into an
// auth.Session and exposes login, logout, refresh and status commands on top of it.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/zkfarmoor/langflow/internal/config"
	apperrors "github.com/zkfarmoor/langflow/internal/errors"
	"github.com/zkfarmoor/langflow/internal/logger"
	"github.com/zkfarmoor/langflow/internal/logging"
)

var (
	configFilenameFromFlag string
	verbose                bool
	ephemeral              bool
	showVersion            bool

	// appConfig is loaded once by initConfig before any command runs.
	appConfig *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "langflow-session",
	Short: "Manage a Langflow authentication session from the terminal",
	Long: `langflow-session keeps a local authentication session for a Langflow backend.
On every run it restores the session: it first tries a silent auto-login, and if the
server refuses, it validates the stored credentials by looking up the current user.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			return printVersion(cmd.Context())
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		logger.ErrorKV(ctx, "Command failed", "kind", apperrors.KindOf(err), "error", logging.Mask(err.Error()))
		fmt.Fprintln(os.Stderr, logging.PresentError("langflow-session", err))
		_ = logger.Logger().Sync()
		os.Exit(1)
	}

	_ = logger.Logger().Sync()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFilenameFromFlag, "config", "c", "",
		fmt.Sprintf("path to the configuration file (default is $XDG_CONFIG_HOME/langflow-session/%s)", config.DefaultConfigFilename))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep credentials in memory for this invocation only; nothing is read from or written to the keychain, so later commands start logged out")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI and backend version information")
}

func initConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFilenameFromFlag)
	if err != nil {
		return err
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	logger.SetLevel(cfg.ParsedLogLevel)
	if verbose {
		logger.SetLevel(zapcore.DebugLevel)
	}
	logger.DebugKV(cmd.Context(), "Configuration loaded", "base_url", cfg.BaseURL, "cookie_path", cfg.CookiePath)

	appConfig = cfg
	return nil
}

// printVersion prints the CLI version and the backend version when reachable.
func printVersion(ctx context.Context) error {
	backendVersion, err := newIdentityClient(appConfig).GetVersion(ctx)
	if err != nil {
		logger.Debugf(ctx, "Backend version unavailable: %v", err)
		backendVersion = "unreachable"
	}

	fmt.Printf("langflow-session %s\nbackend %s\n", Version, backendVersion)
	return nil
}
