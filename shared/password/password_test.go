package password_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tripplanner/shared/password"
)

func TestConstants(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, password.DefaultCost)
}

func TestHash(t *testing.T) {
	hashed, err := password.Hash("pw1")
	require.NoError(t, err)

	assert.NotEqual(t, "pw1", hashed)
	assert.True(t, password.IsHash(hashed))

	_, err = password.Hash("")
	assert.ErrorIs(t, err, password.ErrEmptyPassword)
}

func TestHash_LongPassword(t *testing.T) {
	long := strings.Repeat("a", 73)

	hashed, err := password.Hash(long)
	require.NoError(t, err)

	assert.NoError(t, password.Verify(long, hashed))
	assert.ErrorIs(t, password.Verify(strings.Repeat("a", 74), hashed), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify(long[:72], hashed), password.ErrInvalidPassword, "bytes past 72 still count")
}

func TestIsHash(t *testing.T) {
	assert.True(t, password.IsHash("$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"))
	assert.False(t, password.IsHash("hunter22"))
	assert.False(t, password.IsHash(""))
}

func TestVerify(t *testing.T) {
	hashed, err := password.Hash("correct horse")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		stored   string
		wantErr  error
	}{
		{name: "hash matches", password: "correct horse", stored: hashed},
		{name: "hash mismatch", password: "battery staple", stored: hashed, wantErr: password.ErrInvalidPassword},
		{name: "legacy clear text matches exactly", password: "pw1", stored: "pw1"},
		{name: "legacy clear text is case sensitive", password: "PW1", stored: "pw1", wantErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", stored: hashed, wantErr: password.ErrInvalidPassword},
		{name: "empty stored value", password: "pw1", stored: "", wantErr: password.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.stored)

			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
		})
	}
}
