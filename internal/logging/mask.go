// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides utilities for secure logging and error presentation.
// It masks credentials in log lines and in errors shown to users, so access and
// refresh tokens never leave the process in clear text.
package logging

import (
	"regexp"
)

var (
	rePassword  = regexp.MustCompile(`(?i)(password=)([^\s;&]+)`)
	reToken     = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._~+/=-]+)`)
	reJSONToken = regexp.MustCompile(`(?i)("(?:access_?token|refresh_?token|token)"\s*:\s*")([^"]*)(")`)
	reURLCreds  = regexp.MustCompile(`(?i)(://)([^:/@\s]+):([^@/\s]+)(@)`)
	reAPIKey    = regexp.MustCompile(`(?i)(apikey=|api_key=|x-api-key:\s*)([^\s;&]+)`)
)

// Mask replaces sensitive values in the input string with "***".
// URL user info is masked entirely.
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reJSONToken.ReplaceAllString(out, "$1***$3")
	out = reURLCreds.ReplaceAllString(out, "$1*:*$4")
	out = reAPIKey.ReplaceAllString(out, "$1***")
	return out
}
