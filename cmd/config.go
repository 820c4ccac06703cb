// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zkfarmoor/langflow/internal/config"
	"github.com/zkfarmoor/langflow/internal/logger"
)

var (
	initBaseURL    string
	initCookiePath string
	initBackends   []string
	initFileDir    string
	initForce      bool
)

// errConfigExists is returned by config init when it would overwrite a file.
var errConfigExists = errors.New("configuration file already exists (use --force to overwrite)")

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
		Long: `Manage the langflow-session configuration file.

Use 'config init' to write a configuration file with the defaults and
'config path' to see where it is read from.`,
		// Subcommands work on the file itself and must not require it to exist.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, err := configFilename()
			if err != nil {
				return err
			}

			if _, err := os.Stat(filename); err == nil && !initForce {
				return fmt.Errorf("%w: %s", errConfigExists, filename)
			}

			cfg := config.Default()
			if initBaseURL != "" {
				cfg.BaseURL = initBaseURL
			}
			if initCookiePath != "" {
				cfg.CookiePath = initCookiePath
			}
			cfg.Keyring.Backends = initBackends
			cfg.Keyring.FileDir = initFileDir

			if err := config.ValidateConfig(cfg); err != nil {
				return err
			}
			if err := config.Save(cfg, filename); err != nil {
				return err
			}
			logger.Infof(cmd.Context(), "Configuration written to %s", filename)

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Configuration written to %s\n", filename)
			return nil
		},
	}

	configPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, err := configFilename()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), filename)
			return nil
		},
	}
)

// configFilename is --config when given, otherwise the XDG location.
func configFilename() (string, error) {
	if configFilenameFromFlag != "" {
		return configFilenameFromFlag, nil
	}
	return config.Path()
}

func init() {
	configInitCmd.Flags().StringVar(&initBaseURL, "base-url", "", "identity service root URL")
	configInitCmd.Flags().StringVar(&initCookiePath, "cookie-path", "", "scope credentials are stored under")
	configInitCmd.Flags().StringSliceVar(&initBackends, "keyring-backend", nil, "allowed keyring backends (repeatable)")
	configInitCmd.Flags().StringVar(&initFileDir, "keyring-file-dir", "", "directory for the file keyring backend")
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")

	configCmd.AddCommand(configInitCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
