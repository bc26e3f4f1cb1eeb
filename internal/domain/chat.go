package domain

import "time"

// Chat roles persisted in history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a user's conversation with the companion.
type ChatMessage struct {
	ID         string
	UserID     string
	Role       string
	Content    string
	CyclePhase string
	CreatedAt  time.Time
}
