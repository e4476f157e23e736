package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidUsername is returned when a username is not 3-20 characters
	// of ASCII letters, digits or underscore.
	ErrInvalidUsername = errors.New("invalid username format")

	// ErrWeakPassword is returned when a password is shorter than 8
	// characters or misses a letter, a digit or a punctuation/symbol character.
	ErrWeakPassword = errors.New("password does not meet strength requirements")

	// ErrPasswordMismatch is returned when the password confirmation differs
	// from the password.
	ErrPasswordMismatch = errors.New("passwords do not match")
)
