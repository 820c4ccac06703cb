// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zkfarmoor/langflow/internal/auth"
	"github.com/zkfarmoor/langflow/internal/logger"
	"github.com/zkfarmoor/langflow/internal/terminal"
)

var (
	loginAccessToken  string
	loginRefreshToken string
)

// errNoCredentials is returned when login has nothing to store.
var errNoCredentials = errors.New("access and refresh tokens are required (use flags or run in a terminal)")

// loginCmd stores a credential pair, unless the server signs us in automatically.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store credentials for the identity service",
	Long: `The login command stores an access and refresh token pair in the credential store.
If the server has auto-login enabled the session is established without any input.
Otherwise tokens are taken from --access-token and --refresh-token, or prompted for
when running in a terminal.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		// A login page never falls back to stored credentials.
		s, client, err := openSession(ctx, "/login", nil)
		if err != nil {
			return err
		}

		res, err := s.Wait(ctx)
		if err != nil {
			return err
		}
		if res.Outcome == auth.OutcomeAutoLogin {
			fmt.Fprintf(out, "✅ Auto-login is enabled; signed in as %s\n", displayName(s.UserData()))
			return nil
		}
		logger.Debugf(ctx, "Auto-login unavailable: %v", res.AutoLoginErr)

		access, refresh := loginAccessToken, loginRefreshToken
		if access == "" || refresh == "" {
			if !terminal.IsInteractive() {
				return errNoCredentials
			}
			if access, err = promptSecret("Access token: ", access); err != nil {
				return err
			}
			if refresh, err = promptSecret("Refresh token: ", refresh); err != nil {
				return err
			}
		}
		if access == "" || refresh == "" {
			return errNoCredentials
		}

		s.Login(access, refresh)

		profile, err := client.FetchCurrentUser(ctx, access)
		if err != nil {
			logger.Debugf(ctx, "Profile lookup after login failed: %v", err)
			fmt.Fprintln(out, "✅ Credentials saved")
			return nil
		}
		s.SetUserData(profile)
		s.SetIsAdmin(profile.IsSuperuser)
		logger.InfoKV(ctx, "Session stored", "user", displayName(profile), "admin", profile.IsSuperuser)

		fmt.Fprintf(out, "✅ Logged in as %s\n", displayName(profile))
		return nil
	},
}

// promptSecret asks for a value unless current already holds one, then erases the prompt.
func promptSecret(prompt, current string) (string, error) {
	if current != "" {
		return current, nil
	}

	v, err := terminal.ReadSecret(os.Stderr, prompt)
	if err != nil {
		return "", err
	}
	terminal.ClearPreviousLines(os.Stderr, len(prompt))

	return v, nil
}

func init() {
	loginCmd.Flags().StringVar(&loginAccessToken, "access-token", "", "access token to store")
	loginCmd.Flags().StringVar(&loginRefreshToken, "refresh-token", "", "refresh token to store")
	rootCmd.AddCommand(loginCmd)
}
