package service

import (
	"context"
	"testing"
	"time"

	"secquest_backend/internal/config"
	"secquest_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour}}
	svc := NewAuthService(f.users, cfg)

	user, err := svc.Register(ctx, "Ada", " Ada@Example.com ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "correct horse", user.Password)

	rec := f.reload(t, user.ID)
	assert.Zero(t, rec.User.Points)
	assert.Equal(t, 1, rec.User.Level)
	assert.Nil(t, rec.User.LastStreakDate)

	_, err = svc.Register(ctx, "Ada", "ada@example.com", "another password")
	assert.Equal(t, util.KindConflict, util.KindOf(err))

	_, err = svc.Register(ctx, "Bob", "bob@example.com", "short")
	assert.Equal(t, util.KindValidation, util.KindOf(err))

	token, logged, err := svc.Login(ctx, "ADA@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	claims, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, _, err = svc.Login(ctx, "ada@example.com", "wrong password")
	assert.ErrorIs(t, err, util.ErrInvalidPassword)
}

func TestUserService_SetPremium(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewUserService(f.users, f.progress, f.settings)
	user := f.newUser(t, "pay@example.com")

	_, err := f.svc.CompleteLabStrict(ctx, user.ID, f.lab.ID, 100)
	require.NoError(t, err)

	updated, err := svc.SetPremium(ctx, user.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsPremium)
	require.NotNil(t, updated.PremiumSince)

	rec := f.reload(t, user.ID)
	assert.True(t, rec.User.IsPremium)
	assert.Equal(t, 100, rec.User.Points, "premium change keeps progress intact")
	version := rec.User.Version

	_, err = svc.SetPremium(ctx, user.ID, true)
	require.NoError(t, err)
	assert.Equal(t, version, f.reload(t, user.ID).User.Version)

	_, err = svc.SetPremium(ctx, 777, true)
	assert.Equal(t, util.KindNotFound, util.KindOf(err))
}
