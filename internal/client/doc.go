// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive application runtime.
//
// It wires storage, services and the terminal UI into a single process
// lifecycle: open the store on startup, run the UI, close the store on every
// exit path.
package client
