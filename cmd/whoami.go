// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zkfarmoor/langflow/internal/auth"
	"github.com/zkfarmoor/langflow/internal/logging"
	"github.com/zkfarmoor/langflow/internal/notify"
)

// whoamiCmd restores the session and shows who it belongs to.
var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"status", "me"},
	Short:   "Show the current session",
	Long: `The whoami command restores the session the same way every other command does:
it tries a silent auto-login first and, if that is refused, checks the stored
credentials against the identity service. It then prints the resulting state.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		spinner := notify.StartSpinner("Restoring session")
		defer spinner.Stop()

		s, _, err := openSession(ctx, "/", spinner)
		if err != nil {
			return err
		}

		res, err := s.Wait(ctx)
		spinner.Stop()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if res.Outcome == auth.OutcomeFallbackFailed {
			fmt.Fprintln(cmd.ErrOrStderr(), logging.PresentError("⚠️  Stored credentials could not be verified", res.Err))
		}

		if !s.IsAuthenticated() {
			printNotLoggedIn(out)
			return nil
		}

		fmt.Fprintf(out, "👤 Session restored via %s\n", res.Outcome)
		return printSessionTable(out, s.Snapshot(), time.Now())
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
