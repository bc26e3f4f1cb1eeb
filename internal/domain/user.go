package domain

import "time"

// User is an account together with the profile fields the cycle engine reads.
type User struct {
	ID              string
	Email           string
	PasswordHash    string
	FirstName       string
	LastName        string
	ProfileImageURL string
	DateOfBirth     *time.Time
	AvgCycleLength  int
	AvgPeriodLength int
	TelegramChatID  *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ReminderTarget pairs a Telegram-linked user with their latest cycle start.
type ReminderTarget struct {
	UserID         string
	FirstName      string
	ChatID         int64
	AvgCycleLength int
	LastStart      time.Time
}

// TelegramLink is a one-time token a user redeems with the bot to connect chats.
type TelegramLink struct {
	Token      string
	UserID     string
	CreatedAt  time.Time
	ConsumedAt *time.Time
}
