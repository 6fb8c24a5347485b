// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders frames for the CLI in text, JSON, and YAML forms,
// plus gjson-path extraction over the JSON rendering.
package output
