// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
)

// autoLoginPayload is the auto-login response: credentials plus any user fields.
type autoLoginPayload struct {
	UserProfile
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// AttemptAutoLogin calls the auto-login endpoint. A non-success status means the
// service does not allow silent login; the error wraps ErrUnexpectedHTTPStatus.
func (h *HTTP) AttemptAutoLogin(ctx context.Context) (*AutoLoginResult, error) {
	out, err := doJSON[autoLoginPayload](ctx, h, http.MethodGet, h.endpoints.AutoLogin, nil, "")
	if err != nil {
		return nil, err
	}

	return &AutoLoginResult{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		TokenType:    out.TokenType,
		Profile:      out.UserProfile.Clone(),
	}, nil
}
