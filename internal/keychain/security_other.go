// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

//go:build !darwin

package keychain

import "errors"

var errSecurityUnavailable = errors.New("security backend only available on macOS")

// securityBackend is a stub for non-macOS platforms.
type securityBackend struct{}

func newSecurityBackend(string) (*securityBackend, error) {
	return nil, errSecurityUnavailable
}

func (s *securityBackend) Set(string, string) error { return errSecurityUnavailable }

func (s *securityBackend) Get(string) (string, error) { return "", errSecurityUnavailable }

func (s *securityBackend) Delete(string) error { return errSecurityUnavailable }
