// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/parley-im/parley/lib/netutil"
	"github.com/parley-im/parley/lib/secret"
)

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// ServerURL is the base URL of the chat backend (e.g., "http://localhost:8080").
	ServerURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Client is an unauthenticated backend client. It holds the base URL
// and HTTP transport, shared across Sessions.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new unauthenticated backend client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.ServerURL == "" {
		return nil, fmt.Errorf("api: ServerURL is required")
	}
	if _, err := url.Parse(config.ServerURL); err != nil {
		return nil, fmt.Errorf("api: invalid ServerURL %q: %w", config.ServerURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.ServerURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// authResponse is the payload of a successful /login call.
type authResponse struct {
	Token string `json:"token"`
}

// RegisterRequest holds the fields for creating a new account.
type RegisterRequest struct {
	FirstName string
	LastName  string
	Email     string
	Password  *secret.Buffer
}

// Register creates a new account. The password Buffer is read but not
// closed — the caller retains ownership. Registration does not log the
// user in; call Login afterwards.
func (c *Client) Register(ctx context.Context, request RegisterRequest) error {
	if request.Email == "" {
		return fmt.Errorf("api: email is required for registration")
	}
	if request.Password == nil {
		return fmt.Errorf("api: password is required for registration")
	}

	// Password is converted to string at the JSON serialization
	// boundary. The heap copy is short-lived — it exists only during
	// the HTTP call.
	body := map[string]any{
		"firstName": request.FirstName,
		"lastName":  request.LastName,
		"email":     request.Email,
		"password":  request.Password.String(),
	}
	if _, err := c.doRequest(ctx, http.MethodPost, "/register", nil, body); err != nil {
		return fmt.Errorf("api: registration failed: %w", err)
	}

	c.logger.Info("registered account", "email", request.Email)
	return nil
}

// Login authenticates with email and password, returning an
// authenticated Session. The password Buffer is read but not closed —
// the caller retains ownership.
//
// The user's identity is derived from the returned token's subject
// claim; a token without a decodable subject is rejected here rather
// than failing later in message attribution.
func (c *Client) Login(ctx context.Context, email string, password *secret.Buffer) (*Session, error) {
	if email == "" {
		return nil, fmt.Errorf("api: email is required for login")
	}
	if password == nil {
		return nil, fmt.Errorf("api: password is required for login")
	}

	body := map[string]any{
		"email":    email,
		"password": password.String(),
	}
	responseBody, err := c.doRequest(ctx, http.MethodPost, "/login", nil, body)
	if err != nil {
		return nil, fmt.Errorf("api: login failed: %w", err)
	}

	auth, err := decodePayload[authResponse](responseBody)
	if err != nil {
		return nil, fmt.Errorf("api: failed to parse login response: %w", err)
	}
	if auth.Token == "" {
		return nil, fmt.Errorf("api: login response missing token")
	}

	userID, err := IdentityFromToken(auth.Token)
	if err != nil {
		return nil, fmt.Errorf("api: login token: %w", err)
	}

	session, err := c.SessionFromToken(userID, auth.Token)
	if err != nil {
		return nil, err
	}

	c.logger.Info("logged in", "user_id", userID)
	return session, nil
}

// SessionFromToken creates a Session from a previously saved token
// (the "parley login" session file). No network call is made; an
// expired token surfaces as a 401 on the first authenticated request.
func (c *Client) SessionFromToken(userID, token string) (*Session, error) {
	if userID == "" {
		return nil, fmt.Errorf("api: userID is required")
	}
	buffer, err := secret.NewFromString(token)
	if err != nil {
		return nil, fmt.Errorf("api: storing token: %w", err)
	}
	return &Session{client: c, token: buffer, userID: userID}, nil
}

// CloseIdleConnections closes idle HTTP connections in the underlying
// transport's pool. Call after a network disruption to force fresh TCP
// connections instead of reusing a poisoned pooled connection.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// doRequest performs an HTTP request and returns the response body.
// For non-2xx responses the body is decoded into an *APIError; the
// body is returned alongside the error for callers that need it.
func (c *Client) doRequest(ctx context.Context, method, path string, accessToken *secret.Buffer, requestBody any) ([]byte, error) {
	requestURL := c.baseURL + path

	var bodyReader *bytes.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("api: failed to create request: %w", err)
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if accessToken != nil {
		request.Header.Set("Authorization", "Bearer "+accessToken.String())
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("api: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("api: failed to read response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	apiErr := &APIError{StatusCode: response.StatusCode}
	var errorBody struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if jsonErr := json.Unmarshal(responseBody, &errorBody); jsonErr == nil {
		apiErr.Message = errorBody.Error
		if apiErr.Message == "" {
			apiErr.Message = errorBody.Message
		}
	} else {
		// Non-JSON error body. Keep the raw text for diagnostics.
		apiErr.Message = strings.TrimSpace(string(responseBody))
	}
	return responseBody, apiErr
}
