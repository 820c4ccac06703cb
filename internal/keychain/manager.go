// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides the credential store behind a session.
// It manages all interactions with the OS keychain/credential store through
// 99designs/keyring, with a native macOS `security` backend, and offers an
// in-memory store for ephemeral sessions.
//
// Entries are scoped by path: a value written under "/flows" is visible from
// "/flows/123" but not from "/", and reads pick the most specific match.
package keychain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"sync"

	"github.com/99designs/keyring"

	"github.com/zkfarmoor/langflow/internal/logger"
)

// Manager provides thread-safe Store operations on top of the OS keychain.
type Manager struct {
	mu       sync.RWMutex
	ring     keyring.Keyring
	backend  keychainBackend
	location string
	name     string
}

// keychainBackend defines the interface for native keychain operations.
type keychainBackend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// Options configures NewManager.
type Options struct {
	// ServiceName namespaces items in the keychain.
	ServiceName string
	// Backends restricts keyring backends; empty selects the platform default.
	Backends []keyring.BackendType
	// FileDir is used by the file backend.
	FileDir string
	// FilePassword unlocks the file backend; empty prompts on the terminal.
	FilePassword string
	// Location is the path reads resolve against.
	Location string
}

// ErrUnsupportedPlatform is returned when no default backend exists for the OS.
var ErrUnsupportedPlatform = errors.New("no default secure storage on this OS; configure keyring.backends (e.g. file)")

// NewManager opens the configured keychain.
func NewManager(opts Options) (*Manager, error) {
	if opts.ServiceName == "" {
		return nil, errors.New("keychain: empty service name")
	}

	// Try native security backend first on macOS when no backend was forced.
	if runtime.GOOS == "darwin" && len(opts.Backends) == 0 {
		backend, err := newSecurityBackend(opts.ServiceName)
		if err == nil {
			return &Manager{backend: backend, location: cleanPath(opts.Location), name: "macos-security"}, nil
		}
		logger.Debugf(context.Background(), "Native security backend unavailable, falling back to keyring: %v", err)
	}

	ring, err := openRing(opts)
	if err != nil {
		return nil, err
	}

	return NewManagerWithRing(ring, opts.Location), nil
}

// NewManagerWithRing wraps an already opened keyring.
func NewManagerWithRing(ring keyring.Keyring, location string) *Manager {
	return &Manager{ring: ring, location: cleanPath(location), name: "keyring"}
}

// openRing opens the keyring with the allowed backends.
func openRing(opts Options) (keyring.Keyring, error) {
	allowed := opts.Backends
	if len(allowed) == 0 {
		switch runtime.GOOS {
		case "darwin":
			// Pass requires 'pass' utility installed: brew install pass
			allowed = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
		case "windows":
			allowed = []keyring.BackendType{keyring.WinCredBackend}
		case "linux":
			allowed = []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend}
		default:
			return nil, ErrUnsupportedPlatform
		}
	}

	cfg := keyring.Config{
		ServiceName:     opts.ServiceName,
		AllowedBackends: allowed,
		PassPrefix:      opts.ServiceName,
		WinCredPrefix:   opts.ServiceName,
		FileDir:         opts.FileDir,
	}
	if opts.FilePassword != "" {
		cfg.FilePasswordFunc = keyring.FixedStringPrompt(opts.FilePassword)
	} else {
		cfg.FilePasswordFunc = keyring.TerminalPrompt
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if runtime.GOOS == "darwin" {
			return nil, errors.New("macOS Keychain unavailable. On macOS 26.0+, install 'pass': brew install pass gnupg && gpg --generate-key && pass init <gpg-key-id>")
		}
		return nil, fmt.Errorf("open keyring: %w", err)
	}

	return ring, nil
}

// Name describes the backing store.
func (m *Manager) Name() string {
	return m.name
}

// Get returns the most specific value visible from the manager's location.
// Lookup failures other than "not found" are logged and reported as absent.
func (m *Manager) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range visibleScopes(m.location) {
		v, err := m.get(itemKey(key, p))
		if err == nil {
			return v, true
		}
		if !errors.Is(err, keyring.ErrKeyNotFound) && !errors.Is(err, fs.ErrNotExist) {
			logger.Warnf(context.Background(), "Failed to read %s from keychain: %v", key, err)
			return "", false
		}
	}
	return "", false
}

// Set stores value under scope.
func (m *Manager) Set(key, value string, scope Scope) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := itemKey(key, scope.normalize())
	if m.backend != nil {
		return m.backend.Set(k, value)
	}

	return m.ring.Set(keyring.Item{Key: k, Label: k, Data: []byte(value)})
}

// Remove deletes the entry under scope. Missing entries are ignored.
func (m *Manager) Remove(key string, scope Scope) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := itemKey(key, scope.normalize())
	if m.backend != nil {
		return m.backend.Delete(k)
	}

	err := m.ring.Remove(k)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (m *Manager) get(k string) (string, error) {
	if m.backend != nil {
		v, err := m.backend.Get(k)
		if err != nil {
			return "", err
		}
		if v == "" {
			return "", keyring.ErrKeyNotFound
		}
		return v, nil
	}

	it, err := m.ring.Get(k)
	if err != nil {
		return "", err
	}
	if len(it.Data) == 0 {
		return "", keyring.ErrKeyNotFound
	}
	return string(it.Data), nil
}
