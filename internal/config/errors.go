package config

import "errors"

// ErrInvalidConfig is returned by [GetStructuredConfig] when the merged
// configuration violates a validation rule (unknown driver, empty DSN,
// non-positive timeout, too-weak argon2 parameters, ...).
var ErrInvalidConfig = errors.New("invalid configuration")
