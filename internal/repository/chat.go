package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/vanshika/arivai/internal/domain"
)

// ListChatMessages returns a user's conversation in chronological order.
func (r *Repository) ListChatMessages(ctx context.Context, userID string) ([]domain.ChatMessage, error) {
	return r.queryChat(ctx, selectChatSQL+` ORDER BY `+chatOrderAsc, userID)
}

// RecentChatMessages returns the last limit messages in chronological order.
func (r *Repository) RecentChatMessages(ctx context.Context, userID string, limit int) ([]domain.ChatMessage, error) {
	msgs, err := r.queryChat(ctx, selectChatSQL+` ORDER BY `+chatOrderDesc+` LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	slices.Reverse(msgs)
	return msgs, nil
}

// CreateChatMessage appends a message to history.
func (r *Repository) CreateChatMessage(ctx context.Context, m domain.ChatMessage) error {
	if m.ID == "" || m.UserID == "" {
		return errors.New("chat message id and user id are required")
	}
	_, err := r.conn(ctx).ExecContext(ctx, insertChatSQL, m.ID, m.UserID, m.Role, m.Content, m.CyclePhase, m.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert chat message %s: %w", m.ID, err)
	}
	return nil
}

// IncrementChatUsage records one model request for the day (YYYY-MM-DD) and
// returns the running total.
func (r *Repository) IncrementChatUsage(ctx context.Context, userID, day string) (int, error) {
	if _, err := r.conn(ctx).ExecContext(ctx, incrementChatUsageSQL, userID, day); err != nil {
		return 0, fmt.Errorf("increment chat usage for %s: %w", userID, err)
	}
	return r.ChatUsage(ctx, userID, day)
}

// ChatUsage reports how many model requests the user made on day.
func (r *Repository) ChatUsage(ctx context.Context, userID, day string) (int, error) {
	var n int
	err := r.conn(ctx).QueryRowContext(ctx, selectChatUsageSQL, userID, day).Scan(&n)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("read chat usage for %s: %w", userID, err)
	}
	return n, nil
}

func (r *Repository) queryChat(ctx context.Context, query string, args ...any) ([]domain.ChatMessage, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query chat history: %w", err)
	}
	defer rows.Close()

	msgs := []domain.ChatMessage{}
	for rows.Next() {
		var (
			m         domain.ChatMessage
			createdAt nullTime
		)
		if err := rows.Scan(&m.ID, &m.UserID, &m.Role, &m.Content, &m.CyclePhase, &createdAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		m.CreatedAt = createdAt.Time
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// a user message and its reply can share a timestamp; the prompt sorts first
const (
	chatOrderAsc  = `created_at ASC, CASE role WHEN 'user' THEN 0 ELSE 1 END ASC`
	chatOrderDesc = `created_at DESC, CASE role WHEN 'user' THEN 0 ELSE 1 END DESC`
)

const selectChatSQL = `
SELECT id, user_id, role, content, cycle_phase, created_at
FROM chat_history
WHERE user_id = $1`

const insertChatSQL = `
INSERT INTO chat_history (id, user_id, role, content, cycle_phase, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

const incrementChatUsageSQL = `
INSERT INTO chat_usage (user_id, day, requests) VALUES ($1, $2, 1)
ON CONFLICT (user_id, day) DO UPDATE SET requests = chat_usage.requests + 1`

const selectChatUsageSQL = `
SELECT requests FROM chat_usage WHERE user_id = $1 AND day = $2`
