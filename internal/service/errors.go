package service

import "errors"

var (
	// Registration input errors. Each one wraps the matching validators error.
	ErrInvalidUsername  = errors.New("invalid username")
	ErrWeakPassword     = errors.New("weak password")
	ErrPasswordMismatch = errors.New("password confirmation mismatch")

	// ErrUsernameTaken is returned by Register when another account already
	// uses the username. It always wraps store.ErrDuplicateUsername.
	ErrUsernameTaken = errors.New("username already taken")

	ErrUnknownUser        = errors.New("unknown user")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
