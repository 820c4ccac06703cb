// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/zkfarmoor/langflow/internal/logging"
)

// Endpoints lists the service paths appended to the base URL.
type Endpoints struct {
	AutoLogin   string
	CurrentUser string
	Refresh     string
	Version     string
}

// Options configures New.
type Options struct {
	BaseURL   string
	Endpoints Endpoints
	// Client performs requests; nil uses a plain client with a 10 second timeout.
	Client *http.Client
	// ProfileCacheTTL enables the current-user cache when positive.
	ProfileCacheTTL time.Duration
	// ProfileCacheSize caps the cache; non-positive means 16.
	ProfileCacheSize int
}

// HTTP implements API over REST endpoints.
// Profiles are cached per access token to avoid repeated lookups within one run.
type HTTP struct {
	// baseURL is the service root without a trailing slash.
	baseURL string
	// endpoints contains the URL paths for the API endpoints.
	endpoints Endpoints
	// client is the underlying HTTP client.
	client *http.Client
	// profiles caches FetchCurrentUser results by access token; nil when disabled.
	profiles *expirable.LRU[string, *UserProfile]
}

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 256

// New creates the identity client.
func New(opts Options) *HTTP {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	h := &HTTP{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		endpoints: opts.Endpoints,
		client:    client,
	}

	if opts.ProfileCacheTTL > 0 {
		size := opts.ProfileCacheSize
		if size <= 0 {
			size = 16
		}
		h.profiles = expirable.NewLRU[string, *UserProfile](size, nil, opts.ProfileCacheTTL)
	}

	return h
}

// GetVersion calls the version endpoint and returns the version string when available.
// No authentication required; this doubles as a connectivity check.
func (h *HTTP) GetVersion(ctx context.Context) (string, error) {
	out, err := doJSON[struct {
		Version string `json:"version"`
	}](ctx, h, http.MethodGet, h.endpoints.Version, nil, "")
	if err != nil {
		if IsResponseError(err) {
			return "unknown", nil
		}
		return "", err
	}
	if out.Version == "" {
		return "unknown", nil
	}
	return out.Version, nil
}

// doJSON performs a request and decodes a 2xx JSON body into T.
// Non-2xx responses yield *StatusError; undecodable bodies yield ErrMalformedResponse.
//
//nolint:revive // Go does not allow generic methods.
func doJSON[T any](ctx context.Context, h *HTTP, method, path string, body any, accessToken string) (*T, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Body: logging.Mask(strings.TrimSpace(string(b)))}
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return &out, nil
}
