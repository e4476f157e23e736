package crypto

import "github.com/MKhiriev/go-auth-keeper/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/credential_codec_mock.go -package=mock

// CredentialCodec turns plaintext passwords into stored credentials and
// checks plaintext passwords against them. It knows nothing about accounts
// or storage.
//
//	stored := Derive(password)          // salted, one-way
//	ok     := Verify(password, stored)  // re-derive with stored salt, constant-time compare
type CredentialCodec interface {
	// Derive produces a storable credential from plaintext. Every call uses a
	// fresh random salt, so deriving twice yields different credentials that
	// both verify.
	Derive(plaintext string) (models.Credential, error)

	// Verify reports whether plaintext re-derives to stored. The comparison
	// takes the same time wherever the first mismatching byte is.
	// A stored value that cannot be decoded yields ErrMalformedCredential.
	Verify(plaintext string, stored models.Credential) (bool, error)

	// Decoy returns a well-formed credential that no caller knows the
	// password of. Verifying against it costs the same as a real check.
	Decoy() models.Credential
}
