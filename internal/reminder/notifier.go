package reminder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Notifier delivers a text message to a chat.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

const (
	defaultTelegramAPI = "https://api.telegram.org"
	defaultSendTimeout = 10 * time.Second
)

// TelegramNotifier sends messages through the Telegram Bot API.
type TelegramNotifier struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewTelegramNotifier returns a notifier for the bot identified by token.
func NewTelegramNotifier(token string) *TelegramNotifier {
	return &TelegramNotifier{
		token:   token,
		baseURL: defaultTelegramAPI,
		client:  &http.Client{Timeout: defaultSendTimeout},
	}
}

// WithBaseURL points the notifier at another Bot API host.
func (n *TelegramNotifier) WithBaseURL(baseURL string) *TelegramNotifier {
	n.baseURL = strings.TrimRight(baseURL, "/")
	return n
}

type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Notify calls sendMessage with HTML formatting.
func (n *TelegramNotifier) Notify(ctx context.Context, chatID int64, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text, ParseMode: "HTML"})
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return n.redact(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", n.redact(err))
	}
	defer resp.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&out); err != nil && resp.StatusCode < 300 {
		return fmt.Errorf("decode telegram response: %w", err)
	}
	if resp.StatusCode >= 300 || !out.OK {
		if out.Description != "" {
			return fmt.Errorf("telegram sendMessage: %s: %s", resp.Status, out.Description)
		}
		return fmt.Errorf("telegram sendMessage: %s", resp.Status)
	}
	return nil
}

// redact strips the bot token from the URL carried by transport errors.
func (n *TelegramNotifier) redact(err error) error {
	var urlErr *url.Error
	if n.token != "" && errors.As(err, &urlErr) {
		urlErr.URL = strings.ReplaceAll(urlErr.URL, n.token, "<redacted>")
	}
	return err
}

// LogNotifier writes messages to the log instead of sending them.
type LogNotifier struct {
	Logger *slog.Logger
}

// Notify logs the message.
func (n LogNotifier) Notify(ctx context.Context, chatID int64, text string) error {
	n.Logger.InfoContext(ctx, "reminder", "chat_id", chatID, "text", text)
	return nil
}
