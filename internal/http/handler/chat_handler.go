package handler

import (
	"net/http"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/service"
	"go.uber.org/zap"
)

// ChatHandler serves the caller's chat sessions and messages.
type ChatHandler struct {
	chat   *service.ChatService
	logger *zap.Logger
}

func NewChatHandler(chat *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, logger: logger}
}

// ListSessions godoc
// @Summary List my chat sessions
// @Tags Chat
// @Produce json
// @Success 200 {array} domain.ChatSession
// @Security BearerAuth
// @Router /chat/sessions [get]
func (h *ChatHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.chat.ListSessions(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err, "list chat sessions")
		return
	}
	if sessions == nil {
		sessions = []domain.ChatSession{}
	}
	respondJSON(w, http.StatusOK, sessions)
}

// CreateSession godoc
// @Summary Start a chat session
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body domain.CreateChatSessionRequest false "Title"
// @Success 201 {object} domain.ChatSession
// @Security BearerAuth
// @Router /chat/sessions [post]
func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateChatSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	session, err := h.chat.CreateSession(r.Context(), req.Title)
	if err != nil {
		handleServiceError(w, h.logger, err, "create chat session")
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

// DeleteSession godoc
// @Summary Delete a chat session
// @Tags Chat
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} domain.OKResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /chat/sessions/{id} [delete]
func (h *ChatHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.chat.DeleteSession(r.Context(), id); err != nil {
		handleServiceError(w, h.logger, err, "delete chat session")
		return
	}
	respondJSON(w, http.StatusOK, domain.OKResponse{OK: true})
}

// ListMessages godoc
// @Summary Messages of a chat session
// @Tags Chat
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {array} domain.ChatMessage
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /chat/sessions/{id}/messages [get]
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	messages, err := h.chat.ListMessages(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "list chat messages")
		return
	}
	if messages == nil {
		messages = []domain.ChatMessage{}
	}
	respondJSON(w, http.StatusOK, messages)
}

// PostMessage godoc
// @Summary Send a chat message
// @Description The reply may start with a [NAV:/path] token asking the client to navigate
// @Tags Chat
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Param request body domain.PostChatMessageRequest true "Message"
// @Success 200 {object} domain.ChatReply
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /chat/sessions/{id}/messages [post]
func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req domain.PostChatMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	reply, err := h.chat.PostMessage(r.Context(), id, req.Content)
	if err != nil {
		handleServiceError(w, h.logger, err, "post chat message")
		return
	}
	respondJSON(w, http.StatusOK, reply)
}
