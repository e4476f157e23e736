// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-auth-keeper/internal/app"
	"github.com/MKhiriev/go-auth-keeper/internal/service"
	"github.com/MKhiriev/go-auth-keeper/internal/store"
)

// humanizeError turns a service error into the message shown on screen.
// Unknown users and wrong passwords share one message. Failures without a
// dedicated message carry the trace id of the action so they can be found
// in the log file.
func humanizeError(err error, traceID string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrInvalidUsername):
		return app.MsgInvalidUsername
	case errors.Is(err, service.ErrPasswordMismatch):
		return app.MsgPasswordMismatch
	case errors.Is(err, service.ErrWeakPassword):
		return app.MsgWeakPassword
	case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, store.ErrDuplicateUsername):
		return app.MsgUsernameTaken
	case errors.Is(err, service.ErrUnknownUser), errors.Is(err, service.ErrInvalidCredentials):
		return app.MsgInvalidLoginPassword
	case errors.Is(err, service.ErrAccountDisabled):
		return app.MsgAccountDisabled
	case errors.Is(err, store.ErrStoreUnavailable):
		return app.MsgStoreUnavailable
	case errors.Is(err, store.ErrCorrupt):
		return app.MsgStoreCorrupt
	}

	if traceID == "" {
		return app.MsgUnexpectedError
	}
	return fmt.Sprintf("%s (trace id %s)", app.MsgUnexpectedError, traceID)
}

// humanizeAdminError is [humanizeError] for actions on an account picked
// from the listing, where a missing username is not a login failure.
func humanizeAdminError(err error, traceID string) string {
	if errors.Is(err, service.ErrUnknownUser) {
		return app.MsgUnknownAccount
	}
	return humanizeError(err, traceID)
}
