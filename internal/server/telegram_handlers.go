package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vanshika/arivai/internal/reminder"
	"github.com/vanshika/arivai/internal/service"
)

const telegramSecretHeader = "X-Telegram-Bot-Api-Secret-Token"

func (h *APIHandlers) createTelegramLink(w http.ResponseWriter, r *http.Request) {
	link, err := h.svc.Telegram.CreateLink(r.Context(), currentUserID(r))
	if err != nil {
		h.fail(w, r, err, "create telegram link")
		return
	}
	respondJSON(w, http.StatusOK, telegramLinkResponse{Deeplink: link})
}

// telegramWebhook links the chat that sent "/start <token>" to the account
// that issued the token. Every well-formed update is acknowledged with 200 so
// Telegram does not redeliver it.
func (h *APIHandlers) telegramWebhook(w http.ResponseWriter, r *http.Request) {
	if secret := h.svc.WebhookSecret; secret != "" {
		got := r.Header.Get(telegramSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			writeError(w, http.StatusUnauthorized, "invalid webhook secret")
			return
		}
	}

	var update reminder.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid update")
		return
	}
	if update.Message == nil {
		respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}
	chatID := update.Message.Chat.ID

	reply := reminder.UsageReply
	if token, ok := reminder.StartToken(update.Message.Text); ok {
		userID, err := h.svc.Telegram.Redeem(r.Context(), token, chatID)
		switch {
		case err == nil:
			h.logger.InfoContext(r.Context(), "telegram chat linked", "user_id", userID)
			reply = reminder.LinkedReply
		case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrInvalidInput):
			reply = reminder.InvalidReply
		default:
			h.fail(w, r, err, "link telegram chat")
			return
		}
	}

	if h.svc.BotReplies != nil {
		if err := h.svc.BotReplies.Notify(r.Context(), chatID, reply); err != nil {
			h.logger.WarnContext(r.Context(), "telegram reply failed", "error", err)
		}
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
