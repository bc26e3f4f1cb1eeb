package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vanshika/arivai/internal/domain"
)

// TelegramLinkStore persists one-time chat link tokens.
type TelegramLinkStore interface {
	CreateTelegramLink(ctx context.Context, link domain.TelegramLink) error
	ConsumeTelegramLink(ctx context.Context, token string, chatID int64, at time.Time) (string, error)
}

// TelegramLinkService connects user accounts to Telegram chats for reminders.
type TelegramLinkService struct {
	store       TelegramLinkStore
	botUsername string
	nowFn       func() time.Time
}

// NewTelegramLinkService constructs a TelegramLinkService.
func NewTelegramLinkService(store TelegramLinkStore, botUsername string) *TelegramLinkService {
	return &TelegramLinkService{
		store:       store,
		botUsername: strings.TrimPrefix(strings.TrimSpace(botUsername), "@"),
		nowFn:       time.Now,
	}
}

// WithClock overrides the time provider (used primarily in tests).
func (s *TelegramLinkService) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// CreateLink issues a token and returns the bot deep link that redeems it.
func (s *TelegramLinkService) CreateLink(ctx context.Context, userID string) (string, error) {
	if s.botUsername == "" {
		return "", &Error{Kind: ErrUnavailable, Msg: "Telegram reminders are not configured"}
	}
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := s.store.CreateTelegramLink(ctx, domain.TelegramLink{
		Token:     token,
		UserID:    userID,
		CreatedAt: s.nowFn().UTC(),
	}); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://t.me/%s?start=%s", s.botUsername, token), nil
}

// Redeem binds chatID to the account that issued token.
func (s *TelegramLinkService) Redeem(ctx context.Context, token string, chatID int64) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", invalidf("link token is required")
	}
	userID, err := s.store.ConsumeTelegramLink(ctx, token, chatID, s.nowFn().UTC())
	if err != nil {
		if errors.Is(storeErr(err, ""), ErrNotFound) {
			return "", notFoundf("This link has expired or was already used")
		}
		return "", err
	}
	return userID, nil
}
