package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bazaar/app/domain"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/auth"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(repositories.NewUserRepository(db), nopSink{})

	user, token, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret-password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "s3cret-password", user.Password) // stored hashed

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, token, err = svc.Login(context.Background(), "alice@example.com", "s3cret-password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(repositories.NewUserRepository(db), nopSink{})

	_, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret-password")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "Imposter", "alice@example.com", "other-password")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(repositories.NewUserRepository(db), nopSink{})

	_, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret-password")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "s3cret-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
