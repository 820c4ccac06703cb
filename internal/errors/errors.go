// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages, so callers can branch on the kind of a session failure
// without parsing messages.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// AutoLoginRejected indicates the identity service refused a silent auto-login.
	AutoLoginRejected Kind = "auto_login_rejected"
	// ProfileFetchFailed indicates the current-user lookup failed.
	ProfileFetchFailed Kind = "profile_fetch_failed"
	// RefreshRejected indicates the identity service answered the refresh call with a non-success status.
	RefreshRejected Kind = "refresh_rejected"
	// RefreshTransport indicates the refresh call never produced a response.
	RefreshTransport Kind = "refresh_transport"
	// StoreFailed indicates the credential store could not persist or remove a value.
	StoreFailed Kind = "store_failed"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the kind of the first *E in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
