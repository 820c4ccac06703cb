// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package http provides http.RoundTripper decorators used by the identity client:
// masked request/response logging and standard header injection.
package http
