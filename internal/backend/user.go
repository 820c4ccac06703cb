// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"

	"github.com/zkfarmoor/langflow/internal/logger"
)

// FetchCurrentUser calls the current-user endpoint with a Bearer credential.
// Results are cached per access token when the cache is enabled.
// A rejected credential yields an error matching ErrUnauthorized.
func (h *HTTP) FetchCurrentUser(ctx context.Context, accessToken string) (*UserProfile, error) {
	if h.profiles != nil {
		if p, ok := h.profiles.Get(accessToken); ok {
			logger.Debug(ctx, "Current user served from cache")
			return p.Clone(), nil
		}
	}

	out, err := doJSON[UserProfile](ctx, h, http.MethodGet, h.endpoints.CurrentUser, nil, accessToken)
	if err != nil {
		return nil, err
	}

	if h.profiles != nil {
		h.profiles.Add(accessToken, out.Clone())
	}

	return out, nil
}

// ForgetUser drops a cached profile.
func (h *HTTP) ForgetUser(accessToken string) {
	if h.profiles != nil {
		h.profiles.Remove(accessToken)
	}
}
