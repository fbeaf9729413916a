// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

// Package chat maintains a live view of a conversation.
//
// Normalizer converts wire message records into display records:
// stable identifiers, decoded timestamps, and resolved author names.
// Syncer polls the backend on a fixed interval, replacing the display
// list with each authoritative fetch, and reconciles optimistically
// appended sends against poll results by correlation key so a sent
// message neither duplicates nor disappears while the backend persists
// it.
//
// One Syncer serves both conversation types: the fetch and send
// functions bind the destination (friend or group), and the Normalizer
// carries the matching name-resolution rule.
package chat
