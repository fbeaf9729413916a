// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides HTTP I/O helpers for the Parley client.
//
// All response body reads are bounded at MaxResponseSize so a
// misbehaving server cannot exhaust client memory. These helpers are
// for JSON API responses, not streaming transfers.
package netutil

import (
	"io"
)

// MaxResponseSize bounds JSON API response body reads: 16 MB. Chat
// payloads are orders of magnitude smaller; the limit only guards
// against a pathological response.
const MaxResponseSize int64 = 16 << 20

// ReadResponse reads a JSON API response body up to MaxResponseSize
// bytes. Use instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}
