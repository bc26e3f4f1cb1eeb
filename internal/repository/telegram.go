package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vanshika/arivai/internal/domain"
)

// CreateTelegramLink stores a one-time link token.
func (r *Repository) CreateTelegramLink(ctx context.Context, link domain.TelegramLink) error {
	_, err := r.conn(ctx).ExecContext(ctx, insertTelegramLinkSQL, link.Token, link.UserID, link.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert telegram link: %w", err)
	}
	return nil
}

// ConsumeTelegramLink redeems token for chatID and returns the linked user id.
// Unknown or already used tokens return ErrNotFound.
func (r *Repository) ConsumeTelegramLink(ctx context.Context, token string, chatID int64, at time.Time) (string, error) {
	var userID string
	err := r.WithTx(ctx, func(ctx context.Context) error {
		tx := r.conn(ctx)
		var consumed nullTime
		if err := tx.QueryRowContext(ctx, selectTelegramLinkSQL, token).Scan(&userID, &consumed); err != nil {
			return notFound(err)
		}
		if consumed.Valid {
			return ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, linkTelegramChatSQL, chatID, at.UTC(), userID); err != nil {
			return fmt.Errorf("link telegram chat for %s: %w", userID, err)
		}
		if _, err := tx.ExecContext(ctx, consumeTelegramLinkSQL, at.UTC(), token); err != nil {
			return fmt.Errorf("consume telegram link: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return userID, nil
}

const insertTelegramLinkSQL = `
INSERT INTO telegram_links (token, user_id, created_at) VALUES ($1, $2, $3)`

const selectTelegramLinkSQL = `
SELECT user_id, consumed_at FROM telegram_links WHERE token = $1`

const linkTelegramChatSQL = `
UPDATE users SET telegram_chat_id = $1, updated_at = $2 WHERE id = $3`

const consumeTelegramLinkSQL = `
UPDATE telegram_links SET consumed_at = $1 WHERE token = $2`
