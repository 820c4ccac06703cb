// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

var (
	// Version holds the CLI version information.
	// This value is typically set at build time using -ldflags.
	Version = "0.0.0-dev"
)

// userAgent returns the configured User-Agent or one derived from Version.
func userAgent(configured string) string {
	if configured != "" {
		return configured
	}
	return "langflow-session/" + Version
}
