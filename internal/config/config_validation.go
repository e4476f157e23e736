// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// validate checks that the final merged [StructuredConfig] satisfies the
// `validate` struct tags before it is used at startup.
//
// Every violated rule is reported, joined into a single error wrapping
// [ErrInvalidConfig].
func (cfg *StructuredConfig) validate() error {
	err := structValidator.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}

	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}
