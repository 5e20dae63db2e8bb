// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the notes dashboard process runtime.
//
// It restores the persisted auth session, runs the session refresh worker
// and hands control to the terminal UI until the user quits.
package client
