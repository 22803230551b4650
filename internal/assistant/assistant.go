// Package assistant answers chat messages through a language model that
// calls read-only, role-gated query tools.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jwilson7981/job-tracker-sub000/internal/auth"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/llm"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"go.uber.org/zap"
)

const (
	// HistoryLimit is how many prior session messages are sent as context.
	HistoryLimit = 20
	// maxToolRounds bounds the tool-use loop.
	maxToolRounds = 5
	maxTokens     = 1024
)

// EmptyReply is returned when the model's final turn has no text.
const EmptyReply = "I wasn't able to generate a response. Please try again."

// ErrUnavailable means the caller should answer with the rule-based engine.
// Every failure Reply returns wraps it.
var ErrUnavailable = errors.New("assistant unavailable")

// Assistant runs the model tool-use loop for one message at a time.
type Assistant struct {
	messenger llm.Messenger
	exec      *executor
	logger    *zap.Logger
}

// New creates an Assistant. A nil messenger yields an assistant whose Reply
// always reports ErrUnavailable.
func New(messenger llm.Messenger, reports *repository.ReportRepository, logger *zap.Logger) *Assistant {
	return &Assistant{
		messenger: messenger,
		exec:      &executor{reports: reports, now: repository.Now},
		logger:    logger.With(zap.String("component", "assistant")),
	}
}

// WithClock returns a copy of a that resolves relative dates against now.
func (a *Assistant) WithClock(now func() time.Time) *Assistant {
	cp := *a
	exec := *a.exec
	exec.now = now
	cp.exec = &exec
	return &cp
}

// Enabled reports whether a language model is configured.
func (a *Assistant) Enabled() bool {
	return a != nil && a.messenger != nil
}

// Reply answers msg for user given the prior session history, oldest first.
// Only the last HistoryLimit messages are sent.
func (a *Assistant) Reply(ctx context.Context, user *auth.UserContext, history []domain.ChatMessage, msg string) (string, error) {
	if !a.Enabled() {
		return "", ErrUnavailable
	}

	if len(history) > HistoryLimit {
		history = history[len(history)-HistoryLimit:]
	}
	messages := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		if m.Role == domain.ChatRoleAssistant {
			messages = append(messages, llm.AssistantText(m.Content))
		} else {
			messages = append(messages, llm.UserText(m.Content))
		}
	}
	messages = append(messages, llm.UserText(msg))

	req := &llm.Request{
		System:    SystemPrompt(user.Role, user.DisplayName),
		Messages:  messages,
		Tools:     ToolsFor(user.Role),
		MaxTokens: maxTokens,
		Purpose:   llm.PurposeAssistant,
	}

	resp, err := a.messenger.CreateMessage(ctx, req)
	if err != nil {
		return "", a.unavailable(user, err)
	}

	for round := 0; round < maxToolRounds && resp.StopReason == llm.StopToolUse; round++ {
		uses := resp.ToolUses()
		results := make([]llm.ContentBlock, 0, len(uses))
		for _, use := range uses {
			out, isErr := a.exec.Execute(ctx, use.Name, use.Input, user)
			if isErr {
				a.logger.Debug("assistant tool returned error",
					zap.String("tool", use.Name),
					zap.Int64("userID", user.UserID),
					zap.String("result", out))
			}
			results = append(results, llm.ToolResultBlock(use.ID, out, isErr))
		}

		req.Messages = append(req.Messages,
			llm.Message{Role: llm.RoleAssistant, Content: resp.Content},
			llm.Message{Role: llm.RoleUser, Content: results},
		)
		resp, err = a.messenger.CreateMessage(ctx, req)
		if err != nil {
			return "", a.unavailable(user, err)
		}
	}

	var parts []string
	for _, block := range resp.Content {
		if block.Type == llm.BlockText {
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		return EmptyReply, nil
	}
	return strings.Join(parts, "\n"), nil
}

func (a *Assistant) unavailable(user *auth.UserContext, err error) error {
	a.logger.Warn("assistant call failed, falling back to rules",
		zap.Int64("userID", user.UserID),
		zap.Error(err))
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
