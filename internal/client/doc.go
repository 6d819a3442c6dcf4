// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It restores the remembered session, runs the terminal UI and closes the
// local storage when the UI exits.
package client
