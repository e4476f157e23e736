package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  error
	}{
		{name: "minimum length", username: "abc"},
		{name: "maximum length", username: strings.Repeat("a", 20)},
		{name: "letters digits underscore", username: "alice_01"},
		{name: "only underscores", username: "___"},
		{name: "too short", username: "ab", wantErr: ErrInvalidUsername},
		{name: "empty", username: "", wantErr: ErrInvalidUsername},
		{name: "too long", username: strings.Repeat("a", 21), wantErr: ErrInvalidUsername},
		{name: "space", username: "alice 01", wantErr: ErrInvalidUsername},
		{name: "dash", username: "alice-01", wantErr: ErrInvalidUsername},
		{name: "dot", username: "alice.01", wantErr: ErrInvalidUsername},
		{name: "non ascii letter", username: "alicé01", wantErr: ErrInvalidUsername},
		{name: "cyrillic", username: "алиса", wantErr: ErrInvalidUsername},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "scenario password", password: "Str0ng!Pw"},
		{name: "exactly eight", password: "abcd12!x"},
		{name: "long password", password: strings.Repeat("a1!", 100)},
		{name: "unicode letter counts", password: "пароль1!"},
		{name: "symbol class", password: "abc123+=x"},
		{name: "too short", password: "Ab1!", wantErr: ErrWeakPassword},
		{name: "seven chars", password: "abc12!x", wantErr: ErrWeakPassword},
		{name: "no digit no symbol", password: "weakpass", wantErr: ErrWeakPassword},
		{name: "no symbol", password: "weakpass1", wantErr: ErrWeakPassword},
		{name: "no digit", password: "weakpass!", wantErr: ErrWeakPassword},
		{name: "no letter", password: "12345678!", wantErr: ErrWeakPassword},
		{name: "whitespace is not a symbol", password: "weak pass1", wantErr: ErrWeakPassword},
		{name: "empty", password: "", wantErr: ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateUsername_Property_OutOfRangeLength(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		short := rapid.StringMatching(`[A-Za-z0-9_]{0,2}`).Draw(t, "short")
		long := rapid.StringMatching(`[A-Za-z0-9_]{21,40}`).Draw(t, "long")

		if ValidateUsername(short) == nil {
			t.Fatalf("expected %q to be rejected", short)
		}
		if ValidateUsername(long) == nil {
			t.Fatalf("expected %q to be rejected", long)
		}
	})
}

func TestValidateUsername_Property_ForbiddenCharacter(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prefix := rapid.StringMatching(`[A-Za-z0-9_]{1,9}`).Draw(t, "prefix")
		suffix := rapid.StringMatching(`[A-Za-z0-9_]{1,9}`).Draw(t, "suffix")
		bad := rapid.SampledFrom([]string{"-", ".", " ", "@", "!", "é", "\t", "/"}).Draw(t, "bad")

		candidate := prefix + bad + suffix
		if ValidateUsername(candidate) == nil {
			t.Fatalf("expected %q to be rejected", candidate)
		}
	})
}

func TestValidateUsername_Property_AllowedAlphabet(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		candidate := rapid.StringMatching(`[A-Za-z0-9_]{3,20}`).Draw(t, "username")
		if err := ValidateUsername(candidate); err != nil {
			t.Fatalf("expected %q to be accepted, got %v", candidate, err)
		}
	})
}

func TestValidatePassword_Property_MissingClass(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		noDigit := rapid.StringMatching(`[A-Za-z!@#$%^&*]{8,30}`).Draw(t, "noDigit")
		noLetter := rapid.StringMatching(`[0-9!@#$%^&*]{8,30}`).Draw(t, "noLetter")
		noSymbol := rapid.StringMatching(`[A-Za-z0-9]{8,30}`).Draw(t, "noSymbol")

		for _, candidate := range []string{noDigit, noLetter, noSymbol} {
			if ValidatePassword(candidate) == nil {
				t.Fatalf("expected %q to be rejected", candidate)
			}
		}
	})
}

func TestValidatePassword_Property_TooShort(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		candidate := rapid.StringMatching(`[a-z][0-9][!?][A-Za-z0-9!?]{0,4}`).Draw(t, "short")
		if ValidatePassword(candidate) == nil {
			t.Fatalf("expected %q to be rejected", candidate)
		}
	})
}

func TestValidatePassword_Property_AllClassesAccepted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		candidate := rapid.StringMatching(`[A-Za-z]{1,5}[0-9]{1,5}[!-/:-@]{1,5}[A-Za-z0-9]{5,10}`).Draw(t, "strong")
		require.NoError(t, ValidatePassword(candidate), candidate)
	})
}
