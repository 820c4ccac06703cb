// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// HeaderInjector is an http.RoundTripper that sets User-Agent and X-Request-ID
// on requests that do not carry them already.
type HeaderInjector struct {
	next      http.RoundTripper
	userAgent string
	newID     func() string
}

// NewHeaderInjector wraps next.
func NewHeaderInjector(next http.RoundTripper, userAgent string) http.RoundTripper {
	return &HeaderInjector{
		next:      next,
		userAgent: userAgent,
		newID:     uuid.NewString,
	}
}

// RoundTrip implements http.RoundTripper. The request is cloned before headers change.
func (t *HeaderInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	needUA := t.userAgent != "" && req.Header.Get(userAgentHeader) == ""
	needID := req.Header.Get(requestIDHeader) == ""

	if needUA || needID {
		req = req.Clone(req.Context())
		if needUA {
			req.Header.Set(userAgentHeader, t.userAgent)
		}
		if needID {
			req.Header.Set(requestIDHeader, t.newID())
		}
	}

	return t.next.RoundTrip(req)
}

// NewClient returns an http.Client with header injection and debug logging.
func NewClient(base http.RoundTripper, userAgent string, timeout time.Duration) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}

	return &http.Client{
		Transport: NewHeaderInjector(NewLogTransport(base, 0), userAgent),
		Timeout:   timeout,
	}
}
