package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/arivai/internal/auth"
	"github.com/vanshika/arivai/internal/repository/repotest"
)

func newAuthService(t *testing.T) (*AuthService, *auth.TokenManager) {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", time.Hour, 24*time.Hour)
	svc := NewAuthService(repotest.New(t), testHasher(), tokens)
	svc.WithClock(fixedClock)
	return svc, tokens
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, tokens := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{
		Email:     "  Asha@Example.com ",
		Password:  "secret-pass",
		FirstName: "  Asha  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", res.User.Email)
	assert.Equal(t, "Asha", res.User.FirstName)
	assert.Equal(t, 28, res.User.AvgCycleLength)
	assert.Equal(t, 5, res.User.AvgPeriodLength)

	sub, err := tokens.Parse(res.Tokens.AccessToken, auth.KindAccess)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, sub)

	logged, err := svc.Login(ctx, "asha@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, logged.User.ID)

	_, err = svc.Login(ctx, "asha@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.Login(ctx, "nobody@example.com", "secret-pass")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, RegisterInput{Email: "not-an-email", Password: "secret-pass"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, RegisterInput{Email: "a@example.com", Password: "secret-pass", AvgCycleLength: ptr(0)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, RegisterInput{Email: "a@example.com", Password: "secret-pass", AvgCycleLength: ptr(31)})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "A@example.com", Password: "secret-pass"})
	require.ErrorIs(t, err, ErrConflict)
	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "Email already registered", svcErr.Msg)
}

func TestAuthService_Refresh(t *testing.T) {
	svc, tokens := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{Email: "r@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	access, err := svc.Refresh(ctx, res.Tokens.RefreshToken)
	require.NoError(t, err)
	sub, err := tokens.Parse(access, auth.KindAccess)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, sub)

	_, err = svc.Refresh(ctx, res.Tokens.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	orphan, err := tokens.Issue("missing-user", auth.KindRefresh)
	require.NoError(t, err)
	_, err = svc.Refresh(ctx, orphan)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
