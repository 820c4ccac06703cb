// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

//go:generate $MOCKGEN -source=deps.go -destination=mocks/deps_mock.go

package auth

import (
	"context"

	"github.com/zkfarmoor/langflow/internal/backend"
	"github.com/zkfarmoor/langflow/internal/keychain"
)

// IdentityClient is the part of the identity service a session needs.
type IdentityClient interface {
	AttemptAutoLogin(ctx context.Context) (*backend.AutoLoginResult, error)
	FetchCurrentUser(ctx context.Context, accessToken string) (*backend.UserProfile, error)
	// RefreshCredential must wrap backend.ErrRefreshRejected when the service answered
	// without success; any other error is treated as a transport failure.
	RefreshCredential(ctx context.Context, refreshToken string) (*backend.RefreshResult, error)
}

// ProfileEvictor is implemented by identity clients that cache profiles per
// access credential. The session evicts a credential once it stops holding it.
type ProfileEvictor interface {
	ForgetUser(accessToken string)
}

// CredentialStore persists credentials between runs.
type CredentialStore interface {
	Get(key string) (string, bool)
	Set(key, value string, scope keychain.Scope) error
	Remove(key string, scope keychain.Scope) error
}
