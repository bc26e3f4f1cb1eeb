package reminder

import "strings"

// Update is the subset of a Telegram webhook update the bot reads.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

// Message is an incoming chat message.
type Message struct {
	Text string `json:"text"`
	Chat struct {
		ID int64 `json:"id"`
	} `json:"chat"`
}

// Bot replies sent while linking accounts.
const (
	LinkedReply  = "Connected ✅ Cycle reminders are on."
	InvalidReply = "That link is invalid or was already used. Open ARIVAI and create a new one."
	UsageReply   = "Use the Connect Telegram button in ARIVAI to link this chat."
)

// StartToken extracts the link token from a "/start <token>" command.
func StartToken(text string) (string, bool) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return "", false
	}
	cmd := fields[0]
	if i := strings.IndexByte(cmd, '@'); i >= 0 {
		cmd = cmd[:i]
	}
	if cmd != "/start" {
		return "", false
	}
	return fields[1], true
}
