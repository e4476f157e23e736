package crypto

import "errors"

var (
	// ErrMalformedCredential is returned by Verify when the stored credential
	// is not a recognised argon2id encoding.
	ErrMalformedCredential = errors.New("malformed credential")

	// ErrInvalidParams is returned when Argon2 parameters are out of range.
	ErrInvalidParams = errors.New("invalid argon2 parameters")
)
