package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/arivai/internal/repository/repotest"
)

func TestTelegramLinkService(t *testing.T) {
	repo := repotest.New(t)
	seedUser(t, repo, "u1")
	svc := NewTelegramLinkService(repo, "@arivai_bot")
	svc.WithClock(fixedClock)
	ctx := context.Background()

	link, err := svc.CreateLink(ctx, "u1")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "https://t.me/arivai_bot?start="))
	token := strings.TrimPrefix(link, "https://t.me/arivai_bot?start=")

	userID, err := svc.Redeem(ctx, token, 4242)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	user, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, user.TelegramChatID)
	assert.Equal(t, int64(4242), *user.TelegramChatID)

	_, err = svc.Redeem(ctx, token, 4242)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Redeem(ctx, "", 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTelegramLinkServiceUnconfigured(t *testing.T) {
	svc := NewTelegramLinkService(repotest.New(t), "")
	_, err := svc.CreateLink(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrUnavailable)
}
