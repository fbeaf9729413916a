// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

// Package api implements the HTTP client for the Parley chat backend.
//
// Client is the unauthenticated entry point (login, registration).
// Session wraps a Client with a bearer token and exposes the
// authenticated surface: friends, groups, and messages.
//
// The backend wraps most payloads in a {"data": ...} envelope, but a
// few endpoints return the payload bare. Both shapes are accepted by
// one decoder at the transport boundary; call sites never inspect the
// envelope themselves.
package api
