// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_auth "github.com/zkfarmoor/langflow/internal/auth/mocks"
	"github.com/zkfarmoor/langflow/internal/backend"
	apperrors "github.com/zkfarmoor/langflow/internal/errors"
	"github.com/zkfarmoor/langflow/internal/keychain"
	"github.com/zkfarmoor/langflow/internal/notify"
)

var errAutoLoginDisabled = fmt.Errorf("%w: 400", backend.ErrUnexpectedHTTPStatus)

type fixture struct {
	client  *mock_auth.MockIdentityClient
	store   *keychain.MemoryStore
	signals atomic.Int32
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	return &fixture{
		client: mock_auth.NewMockIdentityClient(ctrl),
		store:  keychain.NewMemoryStore("/"),
	}
}

func (f *fixture) seed(t *testing.T, access, refresh string) {
	t.Helper()

	if access != "" {
		require.NoError(t, f.store.Set(keychain.KeyAccessToken, access, keychain.RootScope))
	}
	if refresh != "" {
		require.NoError(t, f.store.Set(keychain.KeyRefreshToken, refresh, keychain.RootScope))
	}
}

func (f *fixture) start(opts ...Option) *Session {
	sink := notify.SinkFunc(func() { f.signals.Add(1) })
	return New(context.Background(), f.client, f.store, sink, opts...)
}

// startSettled starts a session whose auto-login is refused and waits for the bootstrap.
func (f *fixture) startSettled(t *testing.T, opts ...Option) *Session {
	t.Helper()

	f.client.EXPECT().AttemptAutoLogin(gomock.Any()).Return(nil, errAutoLoginDisabled)
	s := f.start(append(opts, WithLocation(func() string { return "/login" }))...)
	waitBootstrap(t, s)
	return s
}

func (f *fixture) stored(key string) string {
	v, _ := f.store.Get(key)
	return v
}

func waitBootstrap(t *testing.T, s *Session) BootstrapResult {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := s.Wait(ctx)
	require.NoError(t, err)
	return res
}

func TestBootstrapAutoLoginSuccess(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.client.EXPECT().AttemptAutoLogin(gomock.Any()).Return(&backend.AutoLoginResult{
		AccessToken: "a1",
		Profile:     &backend.UserProfile{Username: "langflow", IsSuperuser: true},
	}, nil)

	s := f.start()
	res := waitBootstrap(t, s)

	assert.Equal(t, OutcomeAutoLogin, res.Outcome)
	assert.NoError(t, res.AutoLoginErr)

	snap := s.Snapshot()
	assert.Equal(t, "a1", snap.AccessToken)
	assert.Equal(t, AutoRefreshToken, snap.RefreshToken)
	assert.Equal(t, AuthFlags{InternalFlag: true, DerivedFromToken: true}, snap.IsAuthenticated)
	assert.True(t, snap.AutoLogin)
	assert.False(t, snap.IsAdmin, "auto-login does not grant admin")
	require.NotNil(t, snap.UserData)
	assert.Equal(t, "langflow", snap.UserData.Username)

	assert.Equal(t, "a1", f.stored(keychain.KeyAccessToken))
	assert.Equal(t, "auto", f.stored(keychain.KeyRefreshToken))
	assert.Equal(t, int32(1), f.signals.Load())
}

func TestBootstrapAutoLoginWithoutCredential(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.client.EXPECT().AttemptAutoLogin(gomock.Any()).Return(&backend.AutoLoginResult{TokenType: "bearer"}, nil)

	s := f.start()
	res := waitBootstrap(t, s)

	assert.Equal(t, OutcomeAutoLoginEmpty, res.Outcome)
	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.AutoLogin())
	assert.Equal(t, 0, f.store.Len())
	assert.Equal(t, int32(0), f.signals.Load())
}

func TestBootstrapFallbackWithStoredCredentials(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seed(t, "a0", "r0")

	gomock.InOrder(
		f.client.EXPECT().AttemptAutoLogin(gomock.Any()).Return(nil, errAutoLoginDisabled),
		f.client.EXPECT().FetchCurrentUser(gomock.Any(), "a0").
			Return(&backend.UserProfile{ID: "u1", Username: "admin", IsSuperuser: true}, nil),
	)

	s := f.start(WithLocation(func() string { return "/flows" }))
	res := waitBootstrap(t, s)

	assert.Equal(t, OutcomeFallback, res.Outcome)
	assert.True(t, apperrors.IsKind(res.AutoLoginErr, apperrors.AutoLoginRejected))
	assert.NoError(t, res.Err)

	assert.True(t, s.IsAdmin())
	assert.False(t, s.AutoLogin())
	require.NotNil(t, s.UserData())
	assert.Equal(t, "admin", s.UserData().Username)
	assert.Equal(t, "a0", s.AccessToken())
	assert.Equal(t, "r0", s.RefreshToken())
	assert.Equal(t, int32(1), f.signals.Load())

	// Seeded credentials count as authenticated for readers, but Login never ran.
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, AuthFlags{InternalFlag: false, DerivedFromToken: true}, s.Authentication())
}

func TestBootstrapFallbackNonAdmin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seed(t, "a0", "r0")
	f.client.EXPECT().AttemptAutoLogin(gomock.Any()).Return(nil, errAutoLoginDisabled)
	f.client.EXPECT().FetchCurrentUser(gomock.Any(), "a0").Return(&backend.UserProfile{Username: "bob"}, nil)

	s := f.start()
	waitBootstrap(t, s)

	assert.False(t, s.IsAdmin())
	assert.Equal(t, "bob", s.UserData().Username)
}

func TestBootstrapFallbackFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seed(t, "expired", "r0")

	fetchErr := fmt.Errorf("%w: 401", backend.ErrUnauthorized)
	f.client.EXPECT().AttemptAutoLogin(gomock.Any()).Return(nil, errAutoLoginDisabled)
	f.client.EXPECT().FetchCurrentUser(gomock.Any(), "expired").Return(nil, fetchErr)

	s := f.start()
	res := waitBootstrap(t, s)

	assert.Equal(t, OutcomeFallbackFailed, res.Outcome)
	assert.True(t, apperrors.IsKind(res.Err, apperrors.ProfileFetchFailed))
	require.ErrorIs(t, res.Err, backend.ErrUnauthorized)

	assert.Equal(t, int32(0), f.signals.Load(), "no loading signal on swallowed failure")
	assert.Nil(t, s.UserData())
	assert.False(t, s.IsAdmin())
	assert.Equal(t, "expired", s.AccessToken(), "state is left as it was")
	assert.Equal(t, "expired", f.stored(keychain.KeyAccessToken))
}

func TestBootstrapSkipsFallbackOnLoginPage(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seed(t, "a0", "r0")
	f.client.EXPECT().AttemptAutoLogin(gomock.Any()).Return(nil, errAutoLoginDisabled)

	s := f.start(WithLocation(func() string { return "/login" }))
	res := waitBootstrap(t, s)

	assert.Equal(t, OutcomeSkipped, res.Outcome)
	assert.Equal(t, int32(1), f.signals.Load())
	assert.Nil(t, s.UserData())
}

func TestBootstrapSkipsFallbackWithoutBothCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		access  string
		refresh string
	}{
		{name: "nothing stored"},
		{name: "access only", access: "a0"},
		{name: "refresh only", refresh: "r0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			f.seed(t, tt.access, tt.refresh)
			f.client.EXPECT().AttemptAutoLogin(gomock.Any()).Return(nil, errAutoLoginDisabled)

			s := f.start()
			res := waitBootstrap(t, s)

			assert.Equal(t, OutcomeSkipped, res.Outcome)
			assert.Equal(t, int32(1), f.signals.Load())
			assert.Equal(t, tt.access, s.AccessToken(), "seeded from store")
			assert.Equal(t, tt.refresh, s.RefreshToken(), "seeded from store")
		})
	}
}

func TestBootstrapFallbackWaitsForAutoLogin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seed(t, "a0", "r0")

	release := make(chan struct{})
	var autoSettled atomic.Bool

	f.client.EXPECT().AttemptAutoLogin(gomock.Any()).DoAndReturn(
		func(context.Context) (*backend.AutoLoginResult, error) {
			<-release
			autoSettled.Store(true)
			return nil, errAutoLoginDisabled
		})
	f.client.EXPECT().FetchCurrentUser(gomock.Any(), "a0").DoAndReturn(
		func(context.Context, string) (*backend.UserProfile, error) {
			assert.True(t, autoSettled.Load(), "fallback must start after auto-login settles")
			return &backend.UserProfile{Username: "admin"}, nil
		})

	s := f.start()

	_, settled := s.Result()
	assert.False(t, settled)
	select {
	case <-s.Done():
		t.Fatal("bootstrap settled before auto-login answered")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	assert.Equal(t, OutcomeFallback, waitBootstrap(t, s).Outcome)
}

func TestWaitHonoursContext(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	release := make(chan struct{})
	f.client.EXPECT().AttemptAutoLogin(gomock.Any()).DoAndReturn(
		func(context.Context) (*backend.AutoLoginResult, error) {
			<-release
			return nil, errAutoLoginDisabled
		})

	s := f.start()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, OutcomePending, res.Outcome)

	close(release)
	waitBootstrap(t, s)
}

func TestLoginPersistsAndAuthenticates(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	s := f.startSettled(t)

	s.Login("a1", "r1")

	assert.Equal(t, "a1", f.stored(keychain.KeyAccessToken))
	assert.Equal(t, "r1", f.stored(keychain.KeyRefreshToken))
	assert.True(t, s.GetAuthentication())
	assert.Equal(t, AuthFlags{InternalFlag: true, DerivedFromToken: true}, s.Authentication())
	assert.Equal(t, "a1", s.AccessToken())
	assert.Equal(t, "r1", s.RefreshToken())
}

func TestLogoutClearsEverythingAndIsIdempotent(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	s := f.startSettled(t)

	s.Login("a1", "r1")
	s.SetIsAdmin(true)
	s.SetUserData(&backend.UserProfile{Username: "admin"})
	s.SetAutoLogin(true)

	s.Logout()

	want := Snapshot{AutoLogin: true}
	assert.Equal(t, want, s.Snapshot(), "auto-login flag survives logout")
	assert.False(t, s.GetAuthentication())
	assert.Equal(t, 0, f.store.Len())

	s.Logout()
	assert.Equal(t, want, s.Snapshot())
}

func TestGetAuthenticationReadsStoreNotMemory(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	s := f.startSettled(t)

	s.Login("a1", "r1")
	require.NoError(t, f.store.Remove(keychain.KeyRefreshToken, keychain.RootScope))

	assert.False(t, s.GetAuthentication())
	assert.True(t, s.IsAuthenticated())
}

func TestSetters(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	s := f.startSettled(t)

	p := &backend.UserProfile{Username: "carol"}
	s.SetUserData(p)
	p.Username = "changed"
	assert.Equal(t, "carol", s.UserData().Username, "session keeps its own copy")

	s.SetIsAdmin(true)
	assert.True(t, s.IsAdmin())

	s.SetAutoLogin(true)
	assert.True(t, s.AutoLogin())

	s.SetUserData(nil)
	assert.Nil(t, s.UserData())
}

func TestRefreshSuccessKeepsRefreshCredential(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	s := f.startSettled(t)
	s.Login("a0", "r0")

	f.client.EXPECT().RefreshCredential(gomock.Any(), "r0").
		Return(&backend.RefreshResult{AccessToken: "a1", RefreshToken: "rotated"}, nil)
	f.client.EXPECT().FetchCurrentUser(gomock.Any(), "a1").
		Return(&backend.UserProfile{Username: "admin", IsSuperuser: true}, nil)

	require.NoError(t, s.RefreshAccessToken(context.Background(), "r0"))

	assert.Equal(t, "a1", s.AccessToken())
	assert.Equal(t, "r0", s.RefreshToken())
	assert.Equal(t, "a1", f.stored(keychain.KeyAccessToken))
	assert.Equal(t, "r0", f.stored(keychain.KeyRefreshToken))
	assert.True(t, s.Authentication().InternalFlag)

	// The follow-up profile is not merged.
	assert.Nil(t, s.UserData())
	assert.False(t, s.IsAdmin())
	assert.Equal(t, RefreshIdle, s.RefreshState())
}

func TestRefreshSuccessIgnoresProfileFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	s := f.startSettled(t)
	s.Login("a0", "r0")

	f.client.EXPECT().RefreshCredential(gomock.Any(), "r0").Return(&backend.RefreshResult{AccessToken: "a1"}, nil)
	f.client.EXPECT().FetchCurrentUser(gomock.Any(), "a1").Return(nil, errors.New("boom"))

	require.NoError(t, s.RefreshAccessToken(context.Background(), "r0"))
	assert.Equal(t, "a1", s.AccessToken())
}

func TestRefreshFailuresLogOut(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		result   *backend.RefreshResult
		err      error
		wantKind apperrors.Kind
	}{
		{
			name:     "rejected",
			err:      fmt.Errorf("%w: %w", backend.ErrRefreshRejected, &backend.StatusError{Code: 401}),
			wantKind: apperrors.RefreshRejected,
		},
		{
			name:     "transport",
			err:      errors.New("dial tcp 127.0.0.1:7860: connect: connection refused"),
			wantKind: apperrors.RefreshTransport,
		},
		{
			name:     "success without credential",
			result:   &backend.RefreshResult{},
			wantKind: apperrors.RefreshRejected,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			s := f.startSettled(t)
			s.Login("a0", "r0")
			s.SetIsAdmin(true)
			s.SetUserData(&backend.UserProfile{Username: "admin"})

			f.client.EXPECT().RefreshCredential(gomock.Any(), "r0").Return(tt.result, tt.err)

			err := s.RefreshAccessToken(context.Background(), "r0")
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperrors.KindOf(err))

			// Every failure kind leaves the same state behind.
			assert.Equal(t, Snapshot{}, s.Snapshot())
			assert.False(t, s.GetAuthentication())
			assert.Equal(t, 0, f.store.Len())
			assert.Equal(t, RefreshIdle, s.RefreshState())
		})
	}
}

func TestConcurrentRefreshIsNotDeduplicatedByDefault(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	s := f.startSettled(t)
	s.Login("a0", "r0")

	var entered sync.WaitGroup
	entered.Add(2)
	release := make(chan struct{})

	f.client.EXPECT().RefreshCredential(gomock.Any(), "r0").Times(2).DoAndReturn(
		func(context.Context, string) (*backend.RefreshResult, error) {
			entered.Done()
			<-release
			return &backend.RefreshResult{AccessToken: "a1"}, nil
		})
	f.client.EXPECT().FetchCurrentUser(gomock.Any(), "a1").Times(2).Return(&backend.UserProfile{}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.RefreshAccessToken(context.Background(), "r0"))
		}()
	}

	entered.Wait()
	assert.Equal(t, RefreshInFlight, s.RefreshState())

	close(release)
	wg.Wait()

	assert.Equal(t, RefreshIdle, s.RefreshState())
	assert.Equal(t, "a1", s.AccessToken())
}

func TestRefreshDedupeRejectsSecondCall(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	s := f.startSettled(t, WithRefreshDedupe(true))
	s.Login("a0", "r0")

	entered := make(chan struct{})
	release := make(chan struct{})

	f.client.EXPECT().RefreshCredential(gomock.Any(), "r0").Times(1).DoAndReturn(
		func(context.Context, string) (*backend.RefreshResult, error) {
			close(entered)
			<-release
			return &backend.RefreshResult{AccessToken: "a1"}, nil
		})
	f.client.EXPECT().FetchCurrentUser(gomock.Any(), "a1").Return(&backend.UserProfile{}, nil)

	errCh := make(chan error, 1)
	go func() { errCh <- s.RefreshAccessToken(context.Background(), "r0") }()

	<-entered
	require.ErrorIs(t, s.RefreshAccessToken(context.Background(), "r0"), ErrRefreshInProgress)
	assert.Equal(t, "a0", s.AccessToken(), "rejected duplicate has no side effects")

	close(release)
	require.NoError(t, <-errCh)
	assert.Equal(t, "a1", s.AccessToken())
	assert.Equal(t, RefreshIdle, s.RefreshState())
}

func TestDisposeCancelsBootstrapAndClearsStore(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seed(t, "a0", "r0")

	f.client.EXPECT().AttemptAutoLogin(gomock.Any()).DoAndReturn(
		func(ctx context.Context) (*backend.AutoLoginResult, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	s := f.start()
	s.Dispose()

	res := waitBootstrap(t, s)
	assert.Equal(t, OutcomeCanceled, res.Outcome)
	assert.Equal(t, int32(0), f.signals.Load())
	assert.Equal(t, 0, f.store.Len())
	assert.False(t, s.IsAuthenticated())
}

func TestDisposeDiscardsLateAutoLogin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	release := make(chan struct{})

	// The client ignores cancellation and answers after Dispose.
	f.client.EXPECT().AttemptAutoLogin(gomock.Any()).DoAndReturn(
		func(context.Context) (*backend.AutoLoginResult, error) {
			<-release
			return &backend.AutoLoginResult{AccessToken: "late"}, nil
		})

	s := f.start()
	s.Dispose()
	close(release)

	assert.Equal(t, OutcomeCanceled, waitBootstrap(t, s).Outcome)
	assert.Equal(t, 0, f.store.Len())
	assert.Equal(t, int32(0), f.signals.Load())
}

func TestStoreFailuresDoNotBreakLogin(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mock_auth.NewMockIdentityClient(ctrl)
	store := mock_auth.NewMockCredentialStore(ctrl)

	scope := keychain.Scope{Path: "/flows"}

	store.EXPECT().Get(gomock.Any()).Return("", false).AnyTimes()
	client.EXPECT().AttemptAutoLogin(gomock.Any()).Return(nil, errAutoLoginDisabled)

	s := New(context.Background(), client, store, nil, WithScope(scope))
	waitBootstrap(t, s)

	locked := errors.New("keyring locked")
	store.EXPECT().Set(keychain.KeyAccessToken, "a1", scope).Return(locked)
	store.EXPECT().Set(keychain.KeyRefreshToken, "r1", scope).Return(locked)

	s.Login("a1", "r1")
	assert.Equal(t, "a1", s.AccessToken())
	assert.True(t, s.Authentication().InternalFlag)

	store.EXPECT().Remove(keychain.KeyAccessToken, scope).Return(locked)
	store.EXPECT().Remove(keychain.KeyRefreshToken, scope).Return(nil)

	s.Logout()
	assert.False(t, s.IsAuthenticated())
}

func TestOutcomeAndRefreshStateStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "auto-login", OutcomeAutoLogin.String())
	assert.Equal(t, "stored-credentials-failed", OutcomeFallbackFailed.String())
	assert.Equal(t, "unknown", Outcome(99).String())
	assert.Equal(t, "idle", RefreshIdle.String())
	assert.Equal(t, "in-flight", RefreshInFlight.String())
}

// evictingClient records which profiles the session asks to forget.
type evictingClient struct {
	*mock_auth.MockIdentityClient

	mu        sync.Mutex
	forgotten []string
}

func (c *evictingClient) ForgetUser(accessToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.forgotten = append(c.forgotten, accessToken)
}

func (c *evictingClient) evicted() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.forgotten...)
}

func TestSessionEvictsProfilesItStopsHolding(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	client := &evictingClient{MockIdentityClient: f.client}

	f.client.EXPECT().AttemptAutoLogin(gomock.Any()).Return(nil, errAutoLoginDisabled)
	s := New(context.Background(), client, f.store, nil, WithLocation(func() string { return "/login" }))
	waitBootstrap(t, s)

	s.Login("a0", "r0")
	assert.Empty(t, client.evicted(), "nothing was held before")

	s.Login("a0", "r0")
	assert.Empty(t, client.evicted(), "same credential stays cached")

	f.client.EXPECT().RefreshCredential(gomock.Any(), "r0").Return(&backend.RefreshResult{AccessToken: "a1"}, nil)
	f.client.EXPECT().FetchCurrentUser(gomock.Any(), "a1").Return(&backend.UserProfile{Username: "alice"}, nil)
	require.NoError(t, s.RefreshAccessToken(context.Background(), "r0"))
	assert.Equal(t, []string{"a0"}, client.evicted())

	s.Logout()
	s.Logout()
	assert.Equal(t, []string{"a0", "a1"}, client.evicted())
}

func TestNestedScopeVisibleFromItsOwnLocation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.store = keychain.NewMemoryStore("/flows")
	s := f.startSettled(t, WithScope(keychain.Scope{Path: "/flows"}))

	s.Login("a1", "r1")

	assert.True(t, s.GetAuthentication())
	assert.Equal(t, "a1", f.stored(keychain.KeyAccessToken))

	s.Logout()
	assert.False(t, s.GetAuthentication())
	assert.Equal(t, 0, f.store.Len())
}
