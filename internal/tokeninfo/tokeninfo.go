// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package tokeninfo decodes access credentials for display. Signatures are
// never verified; the result is informational only and must not gate access.
package tokeninfo

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT indicates the credential is opaque.
var ErrNotJWT = errors.New("credential is not a JWT")

// Info is what can be read from an access credential without the signing key.
type Info struct {
	Subject   string
	Type      string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

type claims struct {
	jwt.RegisteredClaims
	Type string `json:"type,omitempty"`
}

// Inspect decodes the claims of a JWT without verifying it.
func Inspect(token string) (*Info, error) {
	var c claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotJWT, err)
	}

	info := &Info{Subject: c.Subject, Type: c.Type}
	if c.ExpiresAt != nil {
		info.ExpiresAt = c.ExpiresAt.Time
	}
	if c.IssuedAt != nil {
		info.IssuedAt = c.IssuedAt.Time
	}
	return info, nil
}

// Expired reports whether the credential carried an expiry that has passed.
func (i *Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// DescribeExpiry renders the expiry relative to now, e.g. "expires 14 minutes from now".
func (i *Info) DescribeExpiry(now time.Time) string {
	if i.ExpiresAt.IsZero() {
		return "no expiry"
	}
	rel := humanize.RelTime(i.ExpiresAt, now, "ago", "from now")
	if i.Expired(now) {
		return "expired " + rel
	}
	return "expires " + rel
}
