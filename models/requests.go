// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegisterRequest carries the plaintext input of a registration attempt.
// Password and PasswordConfirmation are discarded once the credential is derived.
type RegisterRequest struct {
	Username             string `json:"username"`
	Password             string `json:"-"`
	PasswordConfirmation string `json:"-"`
}

// LoginRequest carries the plaintext input of a login attempt.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"-"`
}
