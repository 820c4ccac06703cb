// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"

	"github.com/zkfarmoor/langflow/internal/backend"
	apperrors "github.com/zkfarmoor/langflow/internal/errors"
	"github.com/zkfarmoor/langflow/internal/keychain"
	"github.com/zkfarmoor/langflow/internal/logger"
)

// Outcome is how the bootstrap settled.
type Outcome int

const (
	// OutcomePending means the bootstrap has not settled yet.
	OutcomePending Outcome = iota
	// OutcomeAutoLogin means auto-login succeeded and the session holds its credential.
	OutcomeAutoLogin
	// OutcomeAutoLoginEmpty means auto-login answered without a credential; nothing changed
	// and loading was not signalled.
	OutcomeAutoLoginEmpty
	// OutcomeFallback means auto-login failed and the stored credentials produced a profile.
	OutcomeFallback
	// OutcomeFallbackFailed means the profile lookup with stored credentials failed.
	// The error is kept for diagnostics only; state is unchanged and loading was not signalled.
	OutcomeFallbackFailed
	// OutcomeSkipped means auto-login failed and there was nothing to fall back to,
	// or the current location is a login page.
	OutcomeSkipped
	// OutcomeCanceled means the session was disposed or its context canceled first.
	OutcomeCanceled
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeAutoLogin:
		return "auto-login"
	case OutcomeAutoLoginEmpty:
		return "auto-login-empty"
	case OutcomeFallback:
		return "stored-credentials"
	case OutcomeFallbackFailed:
		return "stored-credentials-failed"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeCanceled:
		return "canceled"
	}
	return "unknown"
}

// BootstrapResult describes a settled bootstrap.
type BootstrapResult struct {
	Outcome Outcome
	// AutoLoginErr is why auto-login failed, when it did.
	AutoLoginErr error
	// Err is the swallowed profile lookup failure for OutcomeFallbackFailed.
	Err error
}

// Done is closed once the bootstrap has settled.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the bootstrap settles or ctx ends.
func (s *Session) Wait(ctx context.Context) (BootstrapResult, error) {
	select {
	case <-s.done:
		r, _ := s.Result()
		return r, nil
	case <-ctx.Done():
		return BootstrapResult{Outcome: OutcomePending}, ctx.Err()
	}
}

// Result returns the bootstrap result and whether it has settled.
func (s *Session) Result() (BootstrapResult, bool) {
	select {
	case <-s.done:
	default:
		return BootstrapResult{Outcome: OutcomePending}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.result, true
}

// bootstrap runs auto-login and, only after it settles, the stored-credential fallback.
func (s *Session) bootstrap(ctx context.Context) BootstrapResult {
	loginPage := s.isLoginPage()

	res, err := s.client.AttemptAutoLogin(ctx)
	if ctx.Err() != nil {
		return BootstrapResult{Outcome: OutcomeCanceled, AutoLoginErr: err}
	}

	if err == nil {
		if res == nil || res.AccessToken == "" {
			logger.Debug(ctx, "Auto-login returned no credential")
			return BootstrapResult{Outcome: OutcomeAutoLoginEmpty}
		}

		if !s.applyAutoLogin(res.AccessToken, res.Profile) {
			return BootstrapResult{Outcome: OutcomeCanceled}
		}
		s.sink.LoadingFinished()
		logger.Debug(ctx, "Auto-login succeeded")

		return BootstrapResult{Outcome: OutcomeAutoLogin}
	}

	autoErr := apperrors.Wrap(apperrors.AutoLoginRejected, "auto-login failed", err)
	logger.Debugf(ctx, "%v", autoErr)

	s.SetAutoLogin(false)

	if !s.GetAuthentication() || loginPage {
		s.sink.LoadingFinished()
		return BootstrapResult{Outcome: OutcomeSkipped, AutoLoginErr: autoErr}
	}

	access, _ := s.store.Get(keychain.KeyAccessToken)

	profile, err := s.client.FetchCurrentUser(ctx, access)
	if ctx.Err() != nil {
		return BootstrapResult{Outcome: OutcomeCanceled, AutoLoginErr: autoErr}
	}
	if err != nil {
		fetchErr := apperrors.Wrap(apperrors.ProfileFetchFailed, "profile lookup with stored credentials failed", err)
		logger.Debugf(ctx, "%v", fetchErr)

		return BootstrapResult{Outcome: OutcomeFallbackFailed, AutoLoginErr: autoErr, Err: fetchErr}
	}

	if !s.applyProfile(profile) {
		return BootstrapResult{Outcome: OutcomeCanceled, AutoLoginErr: autoErr}
	}
	s.sink.LoadingFinished()

	return BootstrapResult{Outcome: OutcomeFallback, AutoLoginErr: autoErr}
}

// applyAutoLogin records an auto-login unless the session was disposed.
// The admin flag is left untouched.
func (s *Session) applyAutoLogin(accessToken string, profile *backend.UserProfile) bool {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.disposed {
		return false
	}

	s.loginLocked(accessToken, AutoRefreshToken)

	s.mu.Lock()
	s.userData = profile.Clone()
	s.autoLogin = true
	s.mu.Unlock()

	return true
}

// applyProfile records a profile fetched with stored credentials unless the session was disposed.
func (s *Session) applyProfile(profile *backend.UserProfile) bool {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.disposed {
		return false
	}

	s.mu.Lock()
	s.userData = profile.Clone()
	s.isAdmin = profile != nil && profile.IsSuperuser
	s.mu.Unlock()

	return true
}
