// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"path/filepath"

	"github.com/99designs/keyring"

	"github.com/zkfarmoor/langflow/internal/auth"
	"github.com/zkfarmoor/langflow/internal/backend"
	"github.com/zkfarmoor/langflow/internal/config"
	"github.com/zkfarmoor/langflow/internal/keychain"
	"github.com/zkfarmoor/langflow/internal/logger"
	"github.com/zkfarmoor/langflow/internal/notify"
	transporthttp "github.com/zkfarmoor/langflow/internal/transport/http"
	"github.com/zkfarmoor/langflow/internal/xdg"
)

// newIdentityClient builds the HTTP identity client described by cfg.
func newIdentityClient(cfg *config.Config) *backend.HTTP {
	client := transporthttp.NewClient(nil, userAgent(cfg.UserAgent), cfg.RequestTimeout)

	return backend.New(backend.Options{
		BaseURL:          cfg.BaseURL,
		Endpoints:        backend.Endpoints(cfg.Endpoints),
		Client:           client,
		ProfileCacheTTL:  cfg.ProfileCacheTTL,
		ProfileCacheSize: cfg.ProfileCacheSize,
	})
}

// openStore returns the credential store. Reads resolve against the configured
// cookie path, the same scope credentials are written under, so every command
// sees them regardless of its own location.
// With --ephemeral nothing outlives the process.
func openStore(cfg *config.Config) (auth.CredentialStore, error) {
	location := cfg.CookiePath
	if ephemeral {
		return keychain.NewMemoryStore(location), nil
	}

	fileDir := cfg.Keyring.FileDir
	if fileDir == "" {
		stateDir, err := xdg.StateDir()
		if err != nil {
			return nil, err
		}
		fileDir = filepath.Join(stateDir, "keyring")
	}

	backends := make([]keyring.BackendType, 0, len(cfg.Keyring.Backends))
	for _, b := range cfg.Keyring.Backends {
		backends = append(backends, keyring.BackendType(b))
	}

	m, err := keychain.NewManager(keychain.Options{
		ServiceName:  cfg.Keyring.ServiceName,
		Backends:     backends,
		FileDir:      fileDir,
		FilePassword: cfg.Keyring.FilePassword,
		Location:     location,
	})
	if err != nil {
		return nil, err
	}
	logger.Debugf(context.Background(), "Using credential store %s", m.Name())

	return m, nil
}

// openSession starts a session for location using the loaded configuration.
// The returned client is the one the session uses; commands reuse it so profile
// lookups share its cache.
func openSession(ctx context.Context, location string, sink notify.Sink) (*auth.Session, *backend.HTTP, error) {
	store, err := openStore(appConfig)
	if err != nil {
		return nil, nil, err
	}

	client := newIdentityClient(appConfig)
	s := auth.New(ctx, client, store, sink,
		auth.WithLocation(func() string { return location }),
		auth.WithScope(keychain.Scope{Path: appConfig.CookiePath}),
		auth.WithRefreshDedupe(appConfig.DedupeRefresh),
	)

	return s, client, nil
}
