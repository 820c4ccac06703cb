// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package httperrors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Category
	}{
		{name: "deadline", err: fmt.Errorf("refresh: %w", context.DeadlineExceeded), want: CategoryTimeout},
		{name: "dns", err: &net.DNSError{Err: "no such host", Name: "flow.invalid"}, want: CategoryDNS},
		{name: "refused", err: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, want: CategoryRefused},
		{name: "tls", err: errors.New("tls: failed to verify certificate"), want: CategoryTLS},
		{name: "server", err: errors.New("unexpected HTTP status: 503"), want: CategoryServer},
		{name: "other", err: errors.New("EOF"), want: CategoryOther},
		{name: "nil", err: nil, want: CategoryOther},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestFormatNetworkErrorWraps(t *testing.T) {
	pterm.DisableOutput()
	defer pterm.EnableOutput()

	cause := errors.New("connection refused")
	err := FormatNetworkError(cause, "refreshing the session", "http://localhost:7860")
	require.ErrorIs(t, err, cause)

	assert.NoError(t, FormatNetworkError(nil, "x", "y"))
}

func TestExtractHostFromURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "localhost:7860", ExtractHostFromURL("http://localhost:7860/api"))
	assert.Equal(t, "server", ExtractHostFromURL("::not a url"))
}
