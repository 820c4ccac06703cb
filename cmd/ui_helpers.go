// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"

	"github.com/zkfarmoor/langflow/internal/auth"
	"github.com/zkfarmoor/langflow/internal/backend"
	"github.com/zkfarmoor/langflow/internal/tokeninfo"
)

// displayName picks the friendliest identifier available for a profile.
func displayName(p *backend.UserProfile) string {
	switch {
	case p == nil:
		return ""
	case p.Username != "":
		return p.Username
	default:
		return p.ID
	}
}

// describeAccessToken renders expiry details for a JWT access credential.
func describeAccessToken(token string, now time.Time) string {
	info, err := tokeninfo.Inspect(token)
	if err != nil {
		return "opaque"
	}
	return info.DescribeExpiry(now)
}

// describeRefreshToken tells a real refresh credential from the auto-login placeholder.
func describeRefreshToken(token string) string {
	switch token {
	case "":
		return "none"
	case auth.AutoRefreshToken:
		return "auto-login (not refreshable)"
	default:
		return "stored"
	}
}

// printNotLoggedIn prints the standard hint for a missing session.
func printNotLoggedIn(w io.Writer) {
	fmt.Fprintln(w, "🔒 You're not logged in yet!")
	fmt.Fprintln(w, "   Run 'langflow-session login' to get started.")
}

// printSessionTable prints a snapshot as a two-column table.
func printSessionTable(w io.Writer, snap auth.Snapshot, now time.Time) error {
	yesNo := func(v bool) string {
		if v {
			return "yes"
		}
		return "no"
	}

	rows := pterm.TableData{
		{"User", displayName(snap.UserData)},
		{"Admin", yesNo(snap.IsAdmin)},
		{"Auto-login", yesNo(snap.AutoLogin)},
		{"Access token", describeAccessToken(snap.AccessToken, now)},
		{"Refresh token", describeRefreshToken(snap.RefreshToken)},
	}

	return pterm.DefaultTable.WithWriter(w).WithData(rows).Render()
}
