// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import "sync"

// MemoryStore is a process-local Store. It is used for --ephemeral sessions and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	items    map[string]string
	location string
}

// NewMemoryStore creates an empty store that reads from location.
func NewMemoryStore(location string) *MemoryStore {
	return &MemoryStore{
		items:    make(map[string]string),
		location: cleanPath(location),
	}
}

// Get returns the most specific value visible from the store's location.
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range visibleScopes(s.location) {
		if v, ok := s.items[itemKey(key, p)]; ok {
			return v, true
		}
	}
	return "", false
}

// Set writes value under scope.
func (s *MemoryStore) Set(key, value string, scope Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[itemKey(key, scope.normalize())] = value
	return nil
}

// Remove deletes the entry under scope. Missing entries are ignored.
func (s *MemoryStore) Remove(key string, scope Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, itemKey(key, scope.normalize()))
	return nil
}

// Len returns the number of stored entries across all scopes.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}
