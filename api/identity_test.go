// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package api

import "testing"

func TestIdentityFromToken(t *testing.T) {
	t.Run("subject claim", func(t *testing.T) {
		token := testToken(t, "user-42")

		identity, err := IdentityFromToken(token)
		if err != nil {
			t.Fatalf("IdentityFromToken failed: %v", err)
		}
		if identity != "user-42" {
			t.Errorf("identity = %q, want %q", identity, "user-42")
		}

		// Re-derivation from the same token yields the same identity.
		again, err := IdentityFromToken(token)
		if err != nil {
			t.Fatalf("second IdentityFromToken failed: %v", err)
		}
		if again != identity {
			t.Errorf("re-derived identity = %q, want %q", again, identity)
		}
	})

	t.Run("empty token", func(t *testing.T) {
		if _, err := IdentityFromToken(""); err == nil {
			t.Fatal("expected error for empty token")
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		if _, err := IdentityFromToken("not.a.jwt"); err == nil {
			t.Fatal("expected error for malformed token")
		}
	})

	t.Run("missing subject", func(t *testing.T) {
		token := testToken(t, "")
		if _, err := IdentityFromToken(token); err == nil {
			t.Fatal("expected error for token without subject")
		}
	})
}
