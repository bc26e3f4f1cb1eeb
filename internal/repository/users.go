package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vanshika/arivai/internal/domain"
)

// CreateUser inserts a new account. Emails are unique.
func (r *Repository) CreateUser(ctx context.Context, user domain.User) error {
	if user.ID == "" {
		return errors.New("user id is required")
	}
	_, err := r.conn(ctx).ExecContext(ctx, insertUserSQL,
		user.ID,
		strings.ToLower(user.Email),
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.ProfileImageURL,
		dateParam(user.DateOfBirth),
		user.AvgCycleLength,
		user.AvgPeriodLength,
		chatIDParam(user.TelegramChatID),
		user.CreatedAt.UTC(),
		user.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user %s: %w", user.ID, err)
	}
	return nil
}

// GetUser loads a user by id.
func (r *Repository) GetUser(ctx context.Context, id string) (domain.User, error) {
	user, err := scanUser(r.conn(ctx).QueryRowContext(ctx, selectUserSQL+` WHERE id = $1`, id))
	if err != nil {
		return domain.User{}, notFound(err)
	}
	return user, nil
}

// GetUserByEmail loads a user by case-insensitive email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	user, err := scanUser(r.conn(ctx).QueryRowContext(ctx, selectUserSQL+` WHERE email = $1`, strings.ToLower(email)))
	if err != nil {
		return domain.User{}, notFound(err)
	}
	return user, nil
}

// UpdateUser writes the mutable profile fields.
func (r *Repository) UpdateUser(ctx context.Context, user domain.User) error {
	res, err := r.conn(ctx).ExecContext(ctx, updateUserSQL,
		user.ID,
		user.FirstName,
		user.LastName,
		user.ProfileImageURL,
		dateParam(user.DateOfBirth),
		user.AvgCycleLength,
		user.AvgPeriodLength,
		chatIDParam(user.TelegramChatID),
		user.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("update user %s: %w", user.ID, err)
	}
	return expectAffected(res)
}

// ListUsers returns every account ordered by creation time.
func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, selectUserSQL+` ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ListReminderTargets returns Telegram-linked users with their latest cycle start.
func (r *Repository) ListReminderTargets(ctx context.Context) ([]domain.ReminderTarget, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, reminderTargetsSQL)
	if err != nil {
		return nil, fmt.Errorf("list reminder targets: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	var targets []domain.ReminderTarget
	for rows.Next() {
		var (
			t     domain.ReminderTarget
			start nullTime
		)
		if err := rows.Scan(&t.UserID, &t.FirstName, &t.ChatID, &t.AvgCycleLength, &start); err != nil {
			return nil, fmt.Errorf("scan reminder target: %w", err)
		}
		if _, dup := seen[t.UserID]; dup || !start.Valid {
			continue
		}
		seen[t.UserID] = struct{}{}
		t.LastStart = dateOnly(start.Time)
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u         domain.User
		dob       nullTime
		chatID    sql.NullInt64
		createdAt nullTime
		updatedAt nullTime
	)
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.ProfileImageURL,
		&dob,
		&u.AvgCycleLength,
		&u.AvgPeriodLength,
		&chatID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.DateOfBirth = dob.dateOnlyPtr()
	if chatID.Valid {
		id := chatID.Int64
		u.TelegramChatID = &id
	}
	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time
	return u, nil
}

func chatIDParam(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

const selectUserSQL = `
SELECT id, email, password_hash, first_name, last_name, profile_image_url,
       date_of_birth, avg_cycle_length, avg_period_length, telegram_chat_id,
       created_at, updated_at
FROM users`

const insertUserSQL = `
INSERT INTO users (
	id, email, password_hash, first_name, last_name, profile_image_url,
	date_of_birth, avg_cycle_length, avg_period_length, telegram_chat_id,
	created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

const updateUserSQL = `
UPDATE users SET
	first_name = $2,
	last_name = $3,
	profile_image_url = $4,
	date_of_birth = $5,
	avg_cycle_length = $6,
	avg_period_length = $7,
	telegram_chat_id = $8,
	updated_at = $9
WHERE id = $1`

const reminderTargetsSQL = `
SELECT u.id, u.first_name, u.telegram_chat_id, u.avg_cycle_length, c.start_date
FROM users u
JOIN cycles c ON c.user_id = u.id
WHERE u.telegram_chat_id IS NOT NULL
  AND c.start_date = (SELECT MAX(c2.start_date) FROM cycles c2 WHERE c2.user_id = u.id)
ORDER BY u.id`
