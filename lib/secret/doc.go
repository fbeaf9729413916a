// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds sensitive material — passwords and the bearer
// token — in memory that is locked against swap, excluded from core
// dumps, and zeroed on close.
//
// Buffers are allocated with mmap(MAP_ANONYMOUS) outside the Go heap,
// so the garbage collector never copies or relocates the contents.
// Callers own the Buffer and must Close it when the secret is no
// longer needed.
package secret
