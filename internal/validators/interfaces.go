// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds the username and password policy of the account
// store and a generic [Validator] abstraction over it.
//
// All checks are pure: no state, no I/O, same input gives the same result.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may restrict validation to the named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
