// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import (
	"path"
	"strings"
)

// Scope is the path a credential is written under. A credential is visible
// to every location at or below its path, the same way a browser cookie is.
type Scope struct {
	Path string
}

// RootScope makes a credential visible everywhere.
var RootScope = Scope{Path: "/"}

// Keys used for session credentials.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

// Store is a string key/value credential store with per-operation scope.
// Get resolves against the store's own location.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string, scope Scope) error
	Remove(key string, scope Scope) error
}

// normalize returns a cleaned absolute path; empty means root.
func (s Scope) normalize() string {
	return cleanPath(s.Path)
}

func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// visibleScopes lists the scopes visible from location, most specific first.
func visibleScopes(location string) []string {
	p := cleanPath(location)
	out := []string{p}
	for p != "/" {
		p = path.Dir(p)
		out = append(out, p)
	}
	return out
}

// itemKey is the key an entry is stored under in a flat backend.
func itemKey(key, scopePath string) string {
	return key + "@" + scopePath
}
