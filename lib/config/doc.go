// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the Parley client.
//
// Configuration is loaded from a single YAML file specified by:
//   - PARLEY_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. When neither is set,
// commands run on Default(), which points at a local development
// backend. The config file may contain environment-specific sections
// (development, staging, production) that override base values when
// the environment matches.
package config
