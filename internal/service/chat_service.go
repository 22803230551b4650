package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jwilson7981/job-tracker-sub000/internal/assistant"
	"github.com/jwilson7981/job-tracker-sub000/internal/auth"
	"github.com/jwilson7981/job-tracker-sub000/internal/chatbot"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"go.uber.org/zap"
)

const chatTitleLength = 50

// ChatService stores per-user chat sessions and answers messages with the
// model-driven assistant, falling back to the rule-based engine.
type ChatService struct {
	chatRepo  *repository.ChatRepository
	assistant *assistant.Assistant
	rules     *chatbot.Engine
	logger    *zap.Logger
}

// NewChatService creates a new chat service instance
func NewChatService(
	chatRepo *repository.ChatRepository,
	asst *assistant.Assistant,
	rules *chatbot.Engine,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		chatRepo:  chatRepo,
		assistant: asst,
		rules:     rules,
		logger:    logger,
	}
}

func (s *ChatService) caller(ctx context.Context) (*auth.UserContext, error) {
	user, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}
	return user, nil
}

// ListSessions returns the caller's sessions, newest first.
func (s *ChatService) ListSessions(ctx context.Context) ([]domain.ChatSession, error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.chatRepo.ListSessions(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat sessions: %w", err)
	}
	return sessions, nil
}

// CreateSession opens a session for the caller. An empty title becomes the
// default and is replaced by the first message.
func (s *ChatService) CreateSession(ctx context.Context, title string) (*domain.ChatSession, error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	session := &domain.ChatSession{UserID: user.UserID, Title: strings.TrimSpace(title)}
	if err := s.chatRepo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}
	return session, nil
}

// DeleteSession removes one of the caller's sessions and its messages.
func (s *ChatService) DeleteSession(ctx context.Context, id int64) error {
	user, err := s.caller(ctx)
	if err != nil {
		return err
	}
	if err := s.chatRepo.DeleteSession(ctx, id, user.UserID); err != nil {
		if isNotFound(err) {
			return ErrChatSessionNotFound
		}
		return fmt.Errorf("failed to delete chat session: %w", err)
	}
	return nil
}

func (s *ChatService) ownedSession(ctx context.Context, id int64, user *auth.UserContext) (*domain.ChatSession, error) {
	session, err := s.chatRepo.GetSession(ctx, id, user.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrChatSessionNotFound
		}
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}
	return session, nil
}

// ListMessages returns a session's messages oldest first. Sessions of other
// users are reported as not found.
func (s *ChatService) ListMessages(ctx context.Context, sessionID int64) ([]domain.ChatMessage, error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedSession(ctx, sessionID, user); err != nil {
		return nil, err
	}
	messages, err := s.chatRepo.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	return messages, nil
}

// PostMessage stores the caller's message, answers it and stores the
// answer. The first message of a session becomes its title.
func (s *ChatService) PostMessage(ctx context.Context, sessionID int64, content string) (*domain.ChatReply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedSession(ctx, sessionID, user); err != nil {
		return nil, err
	}

	history, err := s.chatRepo.RecentMessages(ctx, sessionID, assistant.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	if err := s.chatRepo.AddMessage(ctx, &domain.ChatMessage{
		SessionID: sessionID,
		Role:      domain.ChatRoleUser,
		Content:   content,
	}); err != nil {
		return nil, fmt.Errorf("failed to save chat message: %w", err)
	}

	if len(history) == 0 {
		if err := s.chatRepo.UpdateTitle(ctx, sessionID, ChatTitle(content)); err != nil {
			s.logger.Warn("failed to set chat session title",
				zap.Int64("sessionID", sessionID),
				zap.Error(err))
		}
	}

	reply := s.answer(ctx, user, history, content)

	if err := s.chatRepo.AddMessage(ctx, &domain.ChatMessage{
		SessionID: sessionID,
		Role:      domain.ChatRoleAssistant,
		Content:   reply,
	}); err != nil {
		return nil, fmt.Errorf("failed to save chat reply: %w", err)
	}

	return &domain.ChatReply{OK: true, Response: reply}, nil
}

func (s *ChatService) answer(ctx context.Context, user *auth.UserContext, history []domain.ChatMessage, content string) string {
	if s.assistant.Enabled() {
		reply, err := s.assistant.Reply(ctx, user, history, content)
		if err == nil {
			return reply
		}
		if !errors.Is(err, assistant.ErrUnavailable) {
			s.logger.Warn("assistant failed", zap.Int64("userID", user.UserID), zap.Error(err))
		}
	}
	return s.rules.Respond(ctx, user, content)
}

// ChatTitle is the first 50 characters of a message, with an ellipsis when
// it was cut.
func ChatTitle(msg string) string {
	if utf8.RuneCountInString(msg) <= chatTitleLength {
		return msg
	}
	return string([]rune(msg)[:chatTitleLength]) + "..."
}
