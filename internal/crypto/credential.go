// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/models"
	"golang.org/x/crypto/argon2"
)

const (
	argon2Variant = "argon2id"
	argon2Version = "v=19"
)

// Upper cost bounds. A stored credential above them is rejected before
// argon2 runs, so a damaged row cannot exhaust memory or stall a login.
const (
	maxMemory    = 1 << 20 // KiB, 1 GiB
	maxTime      = 10
	maxKeyLength = 1024
	maxSalt      = 1024
)

// argon2Codec is the argon2id implementation of [CredentialCodec].
//
// Stored format:
//
//	argon2id$v=19$m=<memory KiB>,t=<time>,p=<threads>$<salt b64>$<key b64>
//
// Parameters are embedded in every credential, so raising the cost later
// does not invalidate existing accounts.
type argon2Codec struct {
	params config.Argon2
	decoy  models.Credential
	rand   io.Reader
}

// NewArgon2Codec constructs a [CredentialCodec] with the given Argon2id
// parameters. Recommended defaults (OWASP, 2024) are in [config.DefaultArgon2]:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - salt:        16 bytes
//   - key length:  32 bytes
func NewArgon2Codec(params config.Argon2) (CredentialCodec, error) {
	return newArgon2Codec(params, rand.Reader)
}

func newArgon2Codec(params config.Argon2, random io.Reader) (*argon2Codec, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	c := &argon2Codec{params: params, rand: random}

	secret := make([]byte, 32)
	if _, err := io.ReadFull(random, secret); err != nil {
		return nil, fmt.Errorf("generate decoy secret: %w", err)
	}
	decoy, err := c.Derive(base64.RawStdEncoding.EncodeToString(secret))
	if err != nil {
		return nil, fmt.Errorf("derive decoy credential: %w", err)
	}
	c.decoy = decoy

	return c, nil
}

// Derive implements [CredentialCodec].
func (c *argon2Codec) Derive(plaintext string) (models.Credential, error) {
	salt := make([]byte, c.params.SaltLength)
	if _, err := io.ReadFull(c.rand, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, c.params.Time, c.params.Memory, c.params.Threads, c.params.KeyLength)

	return encode(c.params, salt, key), nil
}

// Verify implements [CredentialCodec].
func (c *argon2Codec) Verify(plaintext string, stored models.Credential) (bool, error) {
	params, salt, expected, err := decode(stored)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(plaintext), salt, params.Time, params.Memory, params.Threads, uint32(len(expected)))

	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}

// Decoy implements [CredentialCodec].
func (c *argon2Codec) Decoy() models.Credential {
	return c.decoy
}

func encode(params config.Argon2, salt, key []byte) models.Credential {
	return models.Credential(strings.Join([]string{
		argon2Variant,
		argon2Version,
		fmt.Sprintf("m=%d,t=%d,p=%d", params.Memory, params.Time, params.Threads),
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	}, "$"))
}

func decode(stored models.Credential) (config.Argon2, []byte, []byte, error) {
	parts := strings.Split(string(stored), "$")
	if len(parts) != 5 {
		return config.Argon2{}, nil, nil, ErrMalformedCredential
	}

	if parts[0] != argon2Variant {
		return config.Argon2{}, nil, nil, fmt.Errorf("%w: unexpected variant %q", ErrMalformedCredential, parts[0])
	}
	if parts[1] != argon2Version {
		return config.Argon2{}, nil, nil, fmt.Errorf("%w: unsupported version %q", ErrMalformedCredential, parts[1])
	}

	params, err := parseParams(parts[2])
	if err != nil {
		return config.Argon2{}, nil, nil, err
	}

	if base64.RawStdEncoding.DecodedLen(len(parts[3])) > maxSalt {
		return config.Argon2{}, nil, nil, fmt.Errorf("%w: salt longer than %d bytes", ErrMalformedCredential, maxSalt)
	}
	if base64.RawStdEncoding.DecodedLen(len(parts[4])) > maxKeyLength {
		return config.Argon2{}, nil, nil, fmt.Errorf("%w: key longer than %d bytes", ErrMalformedCredential, maxKeyLength)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return config.Argon2{}, nil, nil, fmt.Errorf("%w: decode salt: %w", ErrMalformedCredential, err)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return config.Argon2{}, nil, nil, fmt.Errorf("%w: decode key: %w", ErrMalformedCredential, err)
	}

	params.SaltLength = uint32(len(salt))
	params.KeyLength = uint32(len(key))
	if err := validateParams(params); err != nil {
		return config.Argon2{}, nil, nil, fmt.Errorf("%w: %w", ErrMalformedCredential, err)
	}

	return params, salt, key, nil
}

func parseParams(segment string) (config.Argon2, error) {
	entries := strings.Split(segment, ",")
	if len(entries) != 3 {
		return config.Argon2{}, ErrMalformedCredential
	}

	var params config.Argon2
	for _, entry := range entries {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			return config.Argon2{}, ErrMalformedCredential
		}

		var bits int
		switch name {
		case "m", "t":
			bits = 32
		case "p":
			bits = 8
		default:
			return config.Argon2{}, ErrMalformedCredential
		}

		v, err := strconv.ParseUint(value, 10, bits)
		if err != nil {
			return config.Argon2{}, fmt.Errorf("%w: parse %s: %w", ErrMalformedCredential, name, err)
		}

		switch name {
		case "m":
			params.Memory = uint32(v)
		case "t":
			params.Time = uint32(v)
		case "p":
			params.Threads = uint8(v)
		}
	}

	return params, nil
}

func validateParams(p config.Argon2) error {
	switch {
	case p.Memory < 8*1024:
		return fmt.Errorf("%w: memory must be at least 8192 KiB", ErrInvalidParams)
	case p.Memory > maxMemory:
		return fmt.Errorf("%w: memory must be at most %d KiB", ErrInvalidParams, maxMemory)
	case p.Time == 0:
		return fmt.Errorf("%w: time must be greater than zero", ErrInvalidParams)
	case p.Time > maxTime:
		return fmt.Errorf("%w: time must be at most %d", ErrInvalidParams, maxTime)
	case p.Threads == 0:
		return fmt.Errorf("%w: threads must be greater than zero", ErrInvalidParams)
	case p.SaltLength < 8:
		return fmt.Errorf("%w: salt length must be at least 8 bytes", ErrInvalidParams)
	case p.KeyLength < 16:
		return fmt.Errorf("%w: key length must be at least 16 bytes", ErrInvalidParams)
	case p.SaltLength > maxSalt:
		return fmt.Errorf("%w: salt length must be at most %d bytes", ErrInvalidParams, maxSalt)
	case p.KeyLength > maxKeyLength:
		return fmt.Errorf("%w: key length must be at most %d bytes", ErrInvalidParams, maxKeyLength)
	}
	return nil
}
