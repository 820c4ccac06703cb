// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"fmt"
	"net/http"
)

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshCredential posts the refresh credential and returns the new access credential.
// Any answer other than a 2xx carrying an access credential wraps ErrRefreshRejected;
// errors that do not wrap it mean the request never completed.
func (h *HTTP) RefreshCredential(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	result, err := doJSON[map[string]any](ctx, h, http.MethodPost, h.endpoints.Refresh, refreshRequest{RefreshToken: refreshToken}, "")
	if err != nil {
		if IsResponseError(err) {
			return nil, fmt.Errorf("%w: %w", ErrRefreshRejected, err)
		}
		return nil, err
	}

	access := extractAccessToken(*result)
	if access == "" {
		return nil, fmt.Errorf("%w: %w", ErrRefreshRejected, ErrMissingAccessToken)
	}

	return &RefreshResult{
		AccessToken:  access,
		RefreshToken: extractRefreshToken(*result),
	}, nil
}

// extractAccessToken tries the field names the service family uses.
func extractAccessToken(result map[string]any) string {
	for _, k := range []string{"accessToken", "access_token", "token"} {
		if v, ok := result[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// extractRefreshToken returns a rotated refresh credential, or "" when none was sent.
func extractRefreshToken(result map[string]any) string {
	for _, k := range []string{"refreshToken", "refresh_token"} {
		if v, ok := result[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
