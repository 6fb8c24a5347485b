// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// tabresgo is the main package for the tabres command line tool. It wires
// the CLI, delegates to internal packages, and serves as the entry point.
// The reusable pieces live in the frame, resource, cache, and remote
// packages.
package main
