package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmatrack/internal/repository"
)

func TestAuth_LoginAndParse(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(repository.NewMemoryStore().Users)
	auth := NewAuthService(users, "k", time.Hour)
	u, err := users.Create(ctx, UserInput{Name: "Asha", Email: "asha@kavya.com", Password: "secret1", Role: "ADMIN"})
	require.NoError(t, err)

	token, got, err := auth.Login(ctx, "asha@kavya.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "Asha", claims.Name)
	assert.Equal(t, "1", claims.Subject)

	other := NewAuthService(users, "another-key", time.Hour)
	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuth_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(repository.NewMemoryStore().Users)
	auth := NewAuthService(users, "k", time.Minute)
	_, err := users.Create(ctx, UserInput{Name: "A", Email: "a@kavya.com", Password: "secret1"})
	require.NoError(t, err)

	token, _, err := auth.Login(ctx, "a@kavya.com", "secret1")
	require.NoError(t, err)

	auth.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = auth.ParseToken(token)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Invalid or expired token", err.Error())
}

func TestAuth_InactiveAccount(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(repository.NewMemoryStore().Users)
	auth := NewAuthService(users, "k", time.Hour)
	_, err := users.Create(ctx, UserInput{Name: "A", Email: "a@kavya.com", Password: "secret1", Status: "INACTIVE"})
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "a@kavya.com", "secret1")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Account is inactive", err.Error())
}
