// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zkfarmoor/langflow/internal/auth"
	apperrors "github.com/zkfarmoor/langflow/internal/errors"
	"github.com/zkfarmoor/langflow/internal/httperrors"
	"github.com/zkfarmoor/langflow/internal/logger"
)

var (
	// errNoRefreshToken is returned when there is nothing to refresh with.
	errNoRefreshToken = errors.New("no refresh token stored; run 'langflow-session login'")
	// errAutoSession is returned for sessions created by auto-login.
	errAutoSession = errors.New("session was created by auto-login and cannot be refreshed")
)

// refreshCmd exchanges the stored refresh token for a new access token.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Exchange the refresh token for a new access token",
	Long: `The refresh command exchanges the stored refresh token for a new access token.
If the identity service refuses, or cannot be reached, the stored credentials are
removed and you need to log in again.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, client, err := openSession(ctx, "/login", nil)
		if err != nil {
			return err
		}
		if _, err := s.Wait(ctx); err != nil {
			return err
		}

		token := s.RefreshToken()
		switch token {
		case "":
			return errNoRefreshToken
		case auth.AutoRefreshToken:
			return errAutoSession
		}

		if err := s.RefreshAccessToken(ctx, token); err != nil {
			if apperrors.IsKind(err, apperrors.RefreshTransport) {
				return httperrors.FormatNetworkError(err, "refreshing the session", appConfig.BaseURL)
			}
			return err
		}

		access := s.AccessToken()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "🔄 Access token refreshed (%s)\n", describeAccessToken(access, time.Now()))

		// The session already looked this profile up right after refreshing.
		if profile, err := client.FetchCurrentUser(ctx, access); err == nil {
			fmt.Fprintf(out, "👤 Signed in as %s\n", displayName(profile))
			logger.InfoKV(ctx, "Session refreshed", "user", displayName(profile))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
