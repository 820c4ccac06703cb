// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend is the HTTP client for the identity service. It performs
// auto-login, current-user lookup, credential refresh and version checks, and
// translates HTTP outcomes into typed errors the session layer can branch on.
package backend

import "context"

// API is the identity service surface used by the CLI.
type API interface {
	// AttemptAutoLogin asks the service for credentials without user input.
	AttemptAutoLogin(ctx context.Context) (*AutoLoginResult, error)
	// FetchCurrentUser returns the profile bound to accessToken.
	FetchCurrentUser(ctx context.Context, accessToken string) (*UserProfile, error)
	// RefreshCredential exchanges a refresh credential for a new access credential.
	// Non-success responses wrap ErrRefreshRejected; other errors are transport failures.
	RefreshCredential(ctx context.Context, refreshToken string) (*RefreshResult, error)
	// GetVersion returns the service version, "unknown" when not reported.
	GetVersion(ctx context.Context) (string, error)
}

// UserProfile is the current-user record.
// Timestamps are kept as the service formats them.
type UserProfile struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	ProfileImage string `json:"profile_image,omitempty"`
	IsActive     bool   `json:"is_active"`
	IsSuperuser  bool   `json:"is_superuser"`
	CreateAt     string `json:"create_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
	LastLoginAt  string `json:"last_login_at,omitempty"`
}

// Clone returns a copy safe to hand to callers.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// AutoLoginResult is a successful auto-login response.
// AccessToken may be empty when the service answered without credentials.
type AutoLoginResult struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	// Profile holds whatever user fields accompanied the credentials.
	Profile *UserProfile
}

// RefreshResult is a successful refresh response.
type RefreshResult struct {
	AccessToken string
	// RefreshToken is set only when the service rotated it.
	RefreshToken string
}
