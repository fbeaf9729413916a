// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command framework behind the parley binary:
// a nested command tree with pflag flag parsing, structured help
// output, and typo suggestions for unknown commands and flags.
package cli
