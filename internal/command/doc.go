// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package command defines the CLI command set for tabres. It wires flags,
// resource spec parsing, and actions for the subcommands.
package command
