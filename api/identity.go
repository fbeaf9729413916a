// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityFromToken derives the signed-in user's identity from the
// bearer token's subject claim. The parse is unverified: the client is
// reading its own stored token to learn who it is, not validating a
// third party's credentials — the backend verifies the signature on
// every request.
//
// Re-deriving from the same token always yields the same identity.
func IdentityFromToken(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("api: token is empty")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("api: decoding token: %w", err)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("api: token has no subject claim")
	}
	return subject, nil
}
