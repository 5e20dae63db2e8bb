// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoServersAreCreated = errors.New("no servers are created: notes HTTP handler and address are required")
	errNotListening        = errors.New("HTTP server has no bound listener")
)
