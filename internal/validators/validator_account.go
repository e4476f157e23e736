package validators

import (
	"context"

	"github.com/MKhiriev/go-auth-keeper/models"
)

// Field names accepted by [AccountValidator.Validate] to restrict
// validation to a subset of a registration request.
const (
	FieldUsername             = "username"
	FieldPassword             = "password"
	FieldPasswordConfirmation = "password_confirmation"
)

// defaultRegisterFields is the order in which a registration request is
// checked when no fields are named: username first, then the confirmation,
// then password strength.
var defaultRegisterFields = []string{
	FieldUsername,
	FieldPasswordConfirmation,
	FieldPassword,
}

// AccountValidator implements [Validator] for registration input.
type AccountValidator struct{}

// NewAccountValidator constructs an [AccountValidator].
func NewAccountValidator() Validator {
	return &AccountValidator{}
}

// Validate checks obj and returns the first violation found.
//
// Supported types:
//   - models.RegisterRequest / *models.RegisterRequest
//
// Returns ErrUnsupportedType for anything else and ErrUnknownField for an
// unrecognised field name.
func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validateRegisterRequest(_ context.Context, req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = defaultRegisterFields
	}

	for _, field := range fields {
		var err error
		switch field {
		case FieldUsername:
			err = ValidateUsername(req.Username)
		case FieldPassword:
			err = ValidatePassword(req.Password)
		case FieldPasswordConfirmation:
			if req.Password != req.PasswordConfirmation {
				err = ErrPasswordMismatch
			}
		default:
			return ErrUnknownField
		}

		if err != nil {
			return err
		}
	}

	return nil
}
