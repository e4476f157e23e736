// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-auth-keeper presentation layer.
//
// All Msg* constants are human-readable message strings shown to the user
// to describe the outcome of an operation. Keeping them in one place ensures
// consistent wording throughout the terminal UI.
package app

const (
	// MsgInvalidUsername is shown when a username is not 3-20 characters of
	// letters, digits or underscores.
	MsgInvalidUsername = "Invalid username format. Username must be 3-20 characters long and contain only letters, numbers, and underscores."

	// MsgWeakPassword is shown when a password misses a strength rule.
	MsgWeakPassword = "Password does not meet requirements. It must be at least 8 characters long with at least one letter, one number, and one special character."

	// MsgPasswordMismatch is shown when the confirmation differs from the password.
	MsgPasswordMismatch = "Passwords do not match. Please re-enter both."

	// MsgUsernameTaken is shown when registration hits an existing username.
	MsgUsernameTaken = "Username already exists. Please choose a different username."

	// MsgInvalidLoginPassword is shown for both an unknown username and a
	// wrong password, so the screen does not reveal which usernames exist.
	MsgInvalidLoginPassword = "Invalid username or password."

	// MsgAccountDisabled is shown when logging into a soft-disabled account.
	MsgAccountDisabled = "This account is disabled."

	// MsgUnknownAccount is shown when an administrative action names a
	// username that does not exist.
	MsgUnknownAccount = "No such account."

	// MsgStoreUnavailable is shown when the database is busy, unreachable
	// or did not answer in time. Retrying later may succeed.
	MsgStoreUnavailable = "Storage is temporarily unavailable. Please try again."

	// MsgStoreCorrupt is shown when stored account data cannot be read back.
	MsgStoreCorrupt = "Stored account data is damaged."

	// MsgUnexpectedError is shown for any other failure. It is followed by
	// the trace id under which the details were logged.
	MsgUnexpectedError = "Unexpected error"

	// MsgFieldsRequired is shown when a form is submitted with empty fields.
	MsgFieldsRequired = "All fields are required."

	// MsgRegistrationSucceeded is shown on the menu after a registration.
	MsgRegistrationSucceeded = "registered successfully! You can now login with your credentials."

	// MsgNeverLoggedIn replaces an unset last login time.
	MsgNeverLoggedIn = "Never"

	// MsgNoAccounts is shown by an empty account listing.
	MsgNoAccounts = "No users registered yet."
)
