// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"unicode"
	"unicode/utf8"
)

const (
	// MinUsernameLength is the shortest accepted username.
	MinUsernameLength = 3
	// MaxUsernameLength is the longest accepted username.
	MaxUsernameLength = 20
	// MinPasswordLength is the shortest accepted password, in characters.
	MinPasswordLength = 8
)

// ValidateUsername returns [ErrInvalidUsername] unless candidate has
// 3 to 20 characters, each an ASCII letter, digit or underscore.
func ValidateUsername(candidate string) error {
	if len(candidate) < MinUsernameLength || len(candidate) > MaxUsernameLength {
		return ErrInvalidUsername
	}

	for i := 0; i < len(candidate); i++ {
		if !isUsernameByte(candidate[i]) {
			return ErrInvalidUsername
		}
	}

	return nil
}

// ValidatePassword returns [ErrWeakPassword] unless candidate is at least
// 8 characters long and contains at least one letter, one decimal digit and
// one punctuation or symbol character. There is no upper bound on length.
func ValidatePassword(candidate string) error {
	if utf8.RuneCountInString(candidate) < MinPasswordLength {
		return ErrWeakPassword
	}

	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range candidate {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case isSpecial(r):
			hasSpecial = true
		}
	}

	if !hasLetter || !hasDigit || !hasSpecial {
		return ErrWeakPassword
	}

	return nil
}

func isUsernameByte(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '_'
}

// isSpecial reports whether r is printable, not whitespace and not alphanumeric.
func isSpecial(r rune) bool {
	return unicode.IsPrint(r) &&
		!unicode.IsSpace(r) &&
		!unicode.IsLetter(r) &&
		!unicode.IsDigit(r)
}
