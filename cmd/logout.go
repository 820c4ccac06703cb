// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// logoutWait bounds how long logout waits for a canceled bootstrap to settle.
const logoutWait = 2 * time.Second

// logoutCmd clears the stored credentials.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored credentials",
	Long: `The logout command removes the access and refresh tokens from the credential store.
Running it when already logged out is harmless.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openSession(cmd.Context(), "/login", nil)
		if err != nil {
			return err
		}
		s.Dispose()

		ctx, cancel := context.WithTimeout(cmd.Context(), logoutWait)
		defer cancel()
		_, _ = s.Wait(ctx)

		fmt.Fprintln(cmd.OutOrStdout(), "✅ Credentials removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
