package service

import (
	"context"
	"testing"
	"time"

	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Register(t *testing.T) {
	s := setupServices(t)

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{
			name:  "valid registration",
			input: RegisterInput{Username: "viajero", Email: "Viajero@Example.com", Password: "password123"},
		},
		{
			name:    "duplicate email",
			input:   RegisterInput{Username: "otro", Email: "viajero@example.com", Password: "password123"},
			wantErr: ErrEmailAlreadyExists,
		},
		{
			name:    "duplicate username",
			input:   RegisterInput{Username: "viajero", Email: "nuevo@example.com", Password: "password123"},
			wantErr: ErrUsernameAlreadyExists,
		},
		{
			name:    "password too short",
			input:   RegisterInput{Username: "breve", Email: "breve@example.com", Password: "123"},
			wantErr: ErrInvalidPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := s.auth.Register(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Nil(t, tokens)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "viajero@example.com", user.Email)
			assert.Equal(t, "viajero", user.DisplayName)
			assert.NotEqual(t, tt.input.Password, user.PasswordHash)
			require.NotNil(t, tokens)

			claims, err := util.ValidateToken(tokens.AccessToken, "test-jwt-secret")
			require.NoError(t, err)
			assert.Equal(t, user.ID, claims.UserID)
			assert.Equal(t, util.TokenTypeAccess, claims.TokenType)
			assert.Equal(t, string(model.RoleUser), claims.Role)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	s := setupServices(t)
	registered, _, err := s.auth.Register(RegisterInput{Username: "andina", Email: "andina@example.com", Password: "secreto123"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		identifier string
		password   string
		wantErr    error
	}{
		{name: "by username", identifier: "andina", password: "secreto123"},
		{name: "by email", identifier: "andina@example.com", password: "secreto123"},
		{name: "wrong password", identifier: "andina", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "unknown user", identifier: "nadie", password: "secreto123", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := s.auth.Login(tt.identifier, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.ID, user.ID)
			assert.NotEmpty(t, tokens.RefreshToken)
		})
	}
}

func TestAuthService_LoginUpgradesHash(t *testing.T) {
	s := setupServices(t)
	legacy, err := bcrypt.GenerateFromPassword([]byte("secreto123"), util.BcryptCost+1)
	require.NoError(t, err)
	user := &model.User{Username: "antigua", Email: "antigua@example.com", PasswordHash: string(legacy)}
	require.NoError(t, s.db.Create(user).Error)

	_, _, err = s.auth.Login("antigua", "secreto123")
	require.NoError(t, err)

	var stored model.User
	require.NoError(t, s.db.First(&stored, user.ID).Error)
	assert.NotEqual(t, string(legacy), stored.PasswordHash)
	assert.False(t, util.NeedsRehash(stored.PasswordHash))
	assert.True(t, util.VerifyPassword(stored.PasswordHash, "secreto123"))
}

func TestAuthService_UsersAndLogout(t *testing.T) {
	s := setupServices(t)
	user := s.user(t, "ignacio")

	found, err := s.auth.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ignacio", found.Username)

	_, err = s.auth.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = s.auth.GetUserStats(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	s.route(t, user, "Mía", 0)
	stats, err := s.auth.GetUserStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Routes)

	// without Redis the blacklist is a no-op
	assert.NoError(t, s.auth.Logout(context.Background(), "token", time.Now().Add(time.Minute)))
}

func TestAuthService_SetRole(t *testing.T) {
	s := setupServices(t)
	_, _, err := s.auth.Register(RegisterInput{Username: "curadora", Email: "curadora@example.com", Password: "password123"})
	require.NoError(t, err)

	user, err := s.auth.SetRole("curadora@example.com", model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)

	_, tokens, err := s.auth.Login("curadora", "password123")
	require.NoError(t, err)
	claims, err := util.ValidateToken(tokens.AccessToken, "test-jwt-secret")
	require.NoError(t, err)
	assert.Equal(t, string(model.RoleAdmin), claims.Role)

	_, err = s.auth.SetRole("curadora", "superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)
	_, err = s.auth.SetRole("nadie", model.RoleAdmin)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
