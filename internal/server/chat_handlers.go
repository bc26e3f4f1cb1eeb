package server

import (
	"net/http"

	"github.com/vanshika/arivai/internal/service"
)

func (h *APIHandlers) chatHistory(w http.ResponseWriter, r *http.Request) {
	messages, err := h.svc.Chat.History(r.Context(), currentUserID(r))
	if err != nil {
		h.fail(w, r, err, "load chat history")
		return
	}
	resp := make([]chatMessageResponse, 0, len(messages))
	for _, m := range messages {
		resp = append(resp, chatMessageResponse{
			ID:         m.ID,
			Role:       m.Role,
			Content:    m.Content,
			CyclePhase: m.CyclePhase,
			CreatedAt:  formatTime(m.CreatedAt),
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) sendChat(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	reply, err := h.svc.Chat.Send(r.Context(), currentUserID(r), payload.Message)
	if err != nil {
		h.fail(w, r, err, "send chat message")
		return
	}
	respondJSON(w, http.StatusOK, toChatReply(reply))
}

func (h *APIHandlers) chatGreeting(w http.ResponseWriter, r *http.Request) {
	reply, err := h.svc.Chat.Greeting(r.Context(), currentUserID(r))
	if err != nil {
		h.fail(w, r, err, "load greeting")
		return
	}
	respondJSON(w, http.StatusOK, toChatReply(reply))
}

func toChatReply(reply service.ChatReply) chatReplyResponse {
	return chatReplyResponse{Message: reply.Message, Phase: string(reply.Phase)}
}
