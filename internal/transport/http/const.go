// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package http

const (
	// DefaultMaxLogLength caps a single dumped request or response.
	DefaultMaxLogLength = 16 * 1024

	userAgentHeader = "User-Agent"
	requestIDHeader = "X-Request-ID"
)
