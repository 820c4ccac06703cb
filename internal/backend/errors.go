// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"errors"
	"fmt"
)

// Static error definitions for better error handling.
var (
	// ErrUnexpectedHTTPStatus indicates a non-success HTTP status code.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrUnauthorized indicates the credential was not accepted (401/403).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMalformedResponse indicates a success status with an unreadable body.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrMissingAccessToken indicates a refresh response without an access credential.
	ErrMissingAccessToken = errors.New("no access token in response")
	// ErrRefreshRejected indicates the service answered a refresh without success.
	ErrRefreshRejected = errors.New("refresh rejected")
)

// StatusError carries a non-success HTTP response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %d", ErrUnexpectedHTTPStatus, e.Code)
	}
	return fmt.Sprintf("%s: %d %s", ErrUnexpectedHTTPStatus, e.Code, e.Body)
}

// Is matches ErrUnexpectedHTTPStatus, and ErrUnauthorized for 401/403.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnexpectedHTTPStatus:
		return true
	case ErrUnauthorized:
		return e.Code == 401 || e.Code == 403
	}
	return false
}

// IsResponseError reports whether err means the service answered, as opposed
// to the request never completing.
func IsResponseError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) ||
		errors.Is(err, ErrMalformedResponse) ||
		errors.Is(err, ErrMissingAccessToken) ||
		errors.Is(err, ErrRefreshRejected)
}
