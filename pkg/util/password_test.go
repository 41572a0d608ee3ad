package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	BcryptCost = bcrypt.MinCost
	m.Run()
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"Short but valid", "clave1", nil},
		{"With symbols", "una-clave-muy-larga-con-símbolos!@#$%^&*()", nil},
		{"Exactly 72 bytes", strings.Repeat("a", MaxPasswordLength), nil},
		{"Empty", "", ErrPasswordTooShort},
		{"Too short", "abc", ErrPasswordTooShort},
		{"Too long", strings.Repeat("a", MaxPasswordLength+1), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)
			assert.Contains(t, hash, "$2a$")
		})
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)

	tests := []struct {
		name           string
		hashedPassword string
		password       string
		want           bool
	}{
		{"Correct password", hash, "admin123", true},
		{"Incorrect password", hash, "admin124", false},
		{"Empty password", hash, "", false},
		{"Invalid hash", "not-a-bcrypt-hash", "admin123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.hashedPassword, tt.password))
		})
	}
}

func TestHashPassword_Salted(t *testing.T) {
	hash1, err := HashPassword("lojanita")
	require.NoError(t, err)
	hash2, err := HashPassword("lojanita")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
	assert.True(t, VerifyPassword(hash1, "lojanita"))
	assert.True(t, VerifyPassword(hash2, "lojanita"))
}

func TestNeedsRehash(t *testing.T) {
	current, err := HashPassword("caminata")
	require.NoError(t, err)
	stronger, err := bcrypt.GenerateFromPassword([]byte("caminata"), bcrypt.MinCost+1)
	require.NoError(t, err)

	assert.False(t, NeedsRehash(current))
	assert.True(t, NeedsRehash(string(stronger)))
	assert.True(t, NeedsRehash("not-a-bcrypt-hash"))
}
