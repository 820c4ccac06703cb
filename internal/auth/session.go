// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth manages client-side authentication session state: the access and
// refresh credentials, the authenticated/admin flags, the cached user profile and
// whether the session came from a silent auto-login.
//
// A Session is created with New, which seeds credentials from the store and starts
// a single bootstrap: an auto-login attempt and, if that fails, a profile lookup
// using stored credentials. Login, Logout and RefreshAccessToken mutate the state
// imperatively. Dispose tears the session down and clears the store.
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/zkfarmoor/langflow/internal/backend"
	apperrors "github.com/zkfarmoor/langflow/internal/errors"
	"github.com/zkfarmoor/langflow/internal/keychain"
	"github.com/zkfarmoor/langflow/internal/logger"
	"github.com/zkfarmoor/langflow/internal/notify"
)

// AutoRefreshToken is stored as the refresh credential after an auto-login.
// It is not a real credential and cannot be refreshed.
const AutoRefreshToken = "auto"

// ErrRefreshInProgress is returned by RefreshAccessToken when refresh
// deduplication is enabled and another refresh has not finished.
var ErrRefreshInProgress = errors.New("refresh already in progress")

// AuthFlags exposes both notions of "authenticated". They can disagree: a
// session seeded from the store has a credential but no successful Login yet.
type AuthFlags struct {
	// InternalFlag is set by Login and cleared by Logout.
	InternalFlag bool
	// DerivedFromToken is true whenever an access credential is held.
	DerivedFromToken bool
}

// RefreshState tells whether a refresh call is outstanding.
type RefreshState int

const (
	// RefreshIdle means no refresh is running.
	RefreshIdle RefreshState = iota
	// RefreshInFlight means at least one refresh is running.
	RefreshInFlight
)

func (r RefreshState) String() string {
	if r == RefreshInFlight {
		return "in-flight"
	}
	return "idle"
}

// Snapshot is a consistent copy of the session state.
type Snapshot struct {
	AccessToken     string
	RefreshToken    string
	IsAuthenticated AuthFlags
	IsAdmin         bool
	AutoLogin       bool
	UserData        *backend.UserProfile
}

// Option configures a Session.
type Option func(*Session)

// WithLocation sets the function returning the current location. The
// stored-credential fallback is skipped when it contains "login".
func WithLocation(location func() string) Option {
	return func(s *Session) {
		if location != nil {
			s.location = location
		}
	}
}

// WithScope sets the scope credentials are written under. Defaults to "/".
func WithScope(scope keychain.Scope) Option {
	return func(s *Session) { s.scope = scope }
}

// WithRefreshDedupe rejects a refresh while another one is running.
func WithRefreshDedupe(enabled bool) Option {
	return func(s *Session) { s.dedupeRefresh = enabled }
}

// Session is the authentication state of one client.
type Session struct {
	client        IdentityClient
	store         CredentialStore
	sink          notify.Sink
	scope         keychain.Scope
	location      func() string
	dedupeRefresh bool

	// opMu serializes store writes with the matching in-memory update.
	opMu     sync.Mutex
	disposed bool

	mu              sync.RWMutex
	accessToken     string
	refreshToken    string
	isAuthenticated bool
	isAdmin         bool
	autoLogin       bool
	userData        *backend.UserProfile
	result          BootstrapResult

	refreshing atomic.Int32

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a session, seeds its credentials from store and starts the
// bootstrap in the background. The bootstrap stops early when ctx is canceled
// or the session is disposed. A nil sink is replaced by notify.Nop.
func New(ctx context.Context, client IdentityClient, store CredentialStore, sink notify.Sink, opts ...Option) *Session {
	if sink == nil {
		sink = notify.Nop{}
	}

	s := &Session{
		client:   client,
		store:    store,
		sink:     sink,
		scope:    keychain.RootScope,
		location: func() string { return "/" },
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.accessToken, _ = store.Get(keychain.KeyAccessToken)
	s.refreshToken, _ = store.Get(keychain.KeyRefreshToken)

	bootCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	go func() {
		defer close(s.done)

		res := s.bootstrap(bootCtx)

		s.mu.Lock()
		s.result = res
		s.mu.Unlock()
	}()

	return s
}

// GetAuthentication reports whether the store holds both credentials right now.
func (s *Session) GetAuthentication() bool {
	access, okA := s.store.Get(keychain.KeyAccessToken)
	refresh, okR := s.store.Get(keychain.KeyRefreshToken)
	return okA && okR && access != "" && refresh != ""
}

// Login persists both credentials and marks the session authenticated.
// Store failures are logged; the in-memory state is updated regardless.
func (s *Session) Login(accessToken, refreshToken string) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.loginLocked(accessToken, refreshToken)
}

func (s *Session) loginLocked(accessToken, refreshToken string) {
	s.persist(keychain.KeyAccessToken, accessToken)
	s.persist(keychain.KeyRefreshToken, refreshToken)

	s.mu.Lock()
	previous := s.accessToken
	s.accessToken = accessToken
	s.refreshToken = refreshToken
	s.isAuthenticated = true
	s.mu.Unlock()

	if previous != accessToken {
		s.forgetProfile(previous)
	}
}

// Logout removes both credentials from the store and clears the session.
// The auto-login flag is left as is. Calling Logout twice is harmless.
func (s *Session) Logout() {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.logoutLocked()
}

func (s *Session) logoutLocked() {
	s.remove(keychain.KeyAccessToken)
	s.remove(keychain.KeyRefreshToken)

	s.mu.Lock()
	previous := s.accessToken
	s.isAdmin = false
	s.userData = nil
	s.accessToken = ""
	s.refreshToken = ""
	s.isAuthenticated = false
	s.mu.Unlock()

	s.forgetProfile(previous)
}

// forgetProfile drops whatever the client cached for a credential the session no longer holds.
func (s *Session) forgetProfile(accessToken string) {
	if accessToken == "" {
		return
	}
	if evictor, ok := s.client.(ProfileEvictor); ok {
		evictor.ForgetUser(accessToken)
	}
}

// RefreshAccessToken exchanges refreshToken for a new access credential.
//
// On success the new access credential is stored together with the unchanged
// refresh credential and the current user is fetched; that profile is not
// merged into the session. On any failure the session is logged out, and the
// returned error tells a rejection (errors.RefreshRejected) from a transport
// failure (errors.RefreshTransport). Both leave the same state behind.
func (s *Session) RefreshAccessToken(ctx context.Context, refreshToken string) error {
	if s.dedupeRefresh {
		if !s.refreshing.CompareAndSwap(0, 1) {
			return ErrRefreshInProgress
		}
	} else {
		s.refreshing.Add(1)
	}
	defer s.refreshing.Add(-1)

	res, err := s.client.RefreshCredential(ctx, refreshToken)
	if err == nil && (res == nil || res.AccessToken == "") {
		err = backend.ErrRefreshRejected
	}
	if err != nil {
		s.Logout()

		if errors.Is(err, backend.ErrRefreshRejected) {
			logger.Debugf(ctx, "Refresh rejected, session cleared: %v", err)
			return apperrors.Wrap(apperrors.RefreshRejected, "refresh rejected by identity service", err)
		}
		logger.Debugf(ctx, "Refresh failed, session cleared: %v", err)
		return apperrors.Wrap(apperrors.RefreshTransport, "refresh request failed", err)
	}

	s.Login(res.AccessToken, refreshToken)

	if _, err := s.client.FetchCurrentUser(ctx, res.AccessToken); err != nil {
		logger.Debugf(ctx, "Profile lookup after refresh failed: %v", err)
	}

	return nil
}

// Dispose cancels a running bootstrap and logs out. The session should not
// be used afterwards.
func (s *Session) Dispose() {
	s.cancel()

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.disposed = true
	s.logoutLocked()
}

// IsAuthenticated reports whether an access credential is held.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.accessToken != ""
}

// Authentication returns both authentication flags.
func (s *Session) Authentication() AuthFlags {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.flagsLocked()
}

func (s *Session) flagsLocked() AuthFlags {
	return AuthFlags{InternalFlag: s.isAuthenticated, DerivedFromToken: s.accessToken != ""}
}

// AccessToken returns the access credential, or "" when absent.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.accessToken
}

// RefreshToken returns the refresh credential, or "" when absent.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.refreshToken
}

// IsAdmin reports whether the current user is a superuser.
func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.isAdmin
}

// SetIsAdmin overrides the admin flag.
func (s *Session) SetIsAdmin(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isAdmin = v
}

// UserData returns a copy of the cached profile, or nil.
func (s *Session) UserData() *backend.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.userData.Clone()
}

// SetUserData replaces the cached profile.
func (s *Session) SetUserData(p *backend.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userData = p.Clone()
}

// AutoLogin reports whether the session came from a silent auto-login.
func (s *Session) AutoLogin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.autoLogin
}

// SetAutoLogin overrides the auto-login flag.
func (s *Session) SetAutoLogin(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.autoLogin = v
}

// RefreshState reports whether a refresh is running.
func (s *Session) RefreshState() RefreshState {
	if s.refreshing.Load() > 0 {
		return RefreshInFlight
	}
	return RefreshIdle
}

// Snapshot returns a consistent copy of the whole state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		AccessToken:     s.accessToken,
		RefreshToken:    s.refreshToken,
		IsAuthenticated: s.flagsLocked(),
		IsAdmin:         s.isAdmin,
		AutoLogin:       s.autoLogin,
		UserData:        s.userData.Clone(),
	}
}

func (s *Session) persist(key, value string) {
	if err := s.store.Set(key, value, s.scope); err != nil {
		logger.Warnf(context.Background(), "%v",
			apperrors.Wrap(apperrors.StoreFailed, "could not save "+key, err))
	}
}

func (s *Session) remove(key string) {
	if err := s.store.Remove(key, s.scope); err != nil {
		logger.Warnf(context.Background(), "%v",
			apperrors.Wrap(apperrors.StoreFailed, "could not remove "+key, err))
	}
}

func (s *Session) isLoginPage() bool {
	return strings.Contains(s.location(), "login")
}
