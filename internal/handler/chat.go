package handler

import (
	"log/slog"
	"net/http"

	"blueprint/internal/httputil"
	"blueprint/internal/service/chat"
)

// ChatHandler handles conversation HTTP requests. Handlers only talk to the
// service layer, never to repositories.
type ChatHandler struct {
	chats  *chat.Service
	logger *slog.Logger
}

// NewChatHandler creates a chat handler.
func NewChatHandler(chats *chat.Service, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{chats: chats, logger: logger}
}

// ListChats returns the caller's conversation summaries.
// GET /api/chats
func (h *ChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	claims, err := httputil.RequireIdentity(r)
	if err != nil {
		handleError(w, err)
		return
	}

	result, err := h.chats.List(r.Context(), claims.UserID())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// GetChatMessages returns the ordered messages of one conversation.
// GET /api/chats/{id}/messages
func (h *ChatHandler) GetChatMessages(w http.ResponseWriter, r *http.Request) {
	claims, err := httputil.RequireIdentity(r)
	if err != nil {
		handleError(w, err)
		return
	}

	chatID, ok := PathParam(w, r, "id", "chat ID")
	if !ok {
		return
	}

	result, err := h.chats.Messages(r.Context(), claims.UserID(), chatID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// SendTurn runs one chat turn, creating a conversation when none is named.
// POST /api/chat
func (h *ChatHandler) SendTurn(w http.ResponseWriter, r *http.Request) {
	claims, err := httputil.RequireIdentity(r)
	if err != nil {
		handleError(w, err)
		return
	}

	var req chat.SendRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.chats.Send(r.Context(), claims.UserID(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	httputil.RespondJSON(w, status, result)
}

// CreateChat starts a new empty conversation.
// POST /api/chats/new
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	claims, err := httputil.RequireIdentity(r)
	if err != nil {
		handleError(w, err)
		return
	}

	conv, err := h.chats.Create(r.Context(), claims.UserID())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]string{
		"message": "Chat created successfully",
		"chat_id": conv.ID,
	})
}
