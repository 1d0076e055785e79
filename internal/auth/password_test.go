package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "battery staple"))
	assert.False(t, CheckPassword("not-a-hash", "correct horse"))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "ok", password: "correct horse"},
		{name: "too short", password: "short", wantErr: ErrPasswordTooShort},
		{name: "eight multibyte characters", password: strings.Repeat("é", 8)},
		{name: "72 ascii bytes", password: strings.Repeat("a", 72)},
		{name: "73 ascii bytes", password: strings.Repeat("a", 73), wantErr: ErrPasswordTooLong},
		// 40 символов проходят проверку max=72, но занимают 80 байт
		{name: "40 multibyte characters", password: strings.Repeat("é", 40), wantErr: ErrPasswordTooLong},
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

func TestHashPassword_MultibyteTooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("é", 40))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}
