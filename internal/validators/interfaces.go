// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user input before it reaches a service or the
// network.
//
// Validators report rule violations as *ValidationError, which carries
// per-field messages suitable for showing next to a form input and unwraps
// to a sentinel (ErrContentTooShort, ErrInvalidLimit, ...) for callers that
// branch on the failed rule.
package validators

import "context"

// Validator validates the provided input and optionally restricts
// validation to specific named fields.
//
//go:generate mockgen -source=interfaces.go -destination=../mock/validator_mock.go -package=mock
type Validator interface {
	Validate(context.Context, any, ...string) error
}
