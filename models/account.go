// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Credential is the stored, derived representation of a password.
// It is produced by a one-way derivation and never holds the plaintext.
type Credential string

// Account is a single registered identity together with its login telemetry.
// The Credential field must never leave trusted boundaries; use
// [Account.Summary] when handing account data to presentation code.
type Account struct {
	// ID is assigned by the store on creation and never changes.
	ID int64 `json:"id"`

	// Username is unique (case-sensitive) and immutable after creation.
	Username string `json:"username"`

	// Credential is the derived password representation.
	Credential Credential `json:"-"`

	// RegisteredAt is set once by the store, in UTC.
	RegisteredAt time.Time `json:"registered_at"`

	// LastLoginAt is nil until the first successful login.
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	// FailedAttempts counts failed verifications since the last successful login.
	FailedAttempts int `json:"failed_attempts"`

	// IsActive is false for soft-disabled accounts.
	IsActive bool `json:"is_active"`
}

// TableName returns the name of the database table backing Account.
func (a Account) TableName() string {
	return "accounts"
}

// Summary returns the credential-free view of the account.
func (a Account) Summary() AccountSummary {
	return AccountSummary{
		ID:             a.ID,
		Username:       a.Username,
		RegisteredAt:   a.RegisteredAt,
		LastLoginAt:    a.LastLoginAt,
		FailedAttempts: a.FailedAttempts,
		IsActive:       a.IsActive,
	}
}

// AccountSummary is an account without its credential. It is what listings
// and the post-login dashboard work with.
type AccountSummary struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	RegisteredAt   time.Time  `json:"registered_at"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	FailedAttempts int        `json:"failed_attempts"`
	IsActive       bool       `json:"is_active"`
}

// AccountStats holds aggregate counts over all accounts.
type AccountStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`

	// RecentLogins counts accounts whose last login falls inside Window.
	RecentLogins int           `json:"recent_logins"`
	Window       time.Duration `json:"window"`
}
