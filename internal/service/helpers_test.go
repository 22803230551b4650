package service_test

import (
	"context"
	"testing"

	"github.com/jwilson7981/job-tracker-sub000/internal/auth"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/llm"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// scriptedMessenger replays canned text replies and records every request.
type scriptedMessenger struct {
	replies  []string
	err      error
	requests []llm.Request
}

func (m *scriptedMessenger) CreateMessage(_ context.Context, req *llm.Request) (*llm.Response, error) {
	m.requests = append(m.requests, *req)
	if m.err != nil {
		return nil, m.err
	}
	text := "[]"
	if len(m.replies) > 0 {
		text, m.replies = m.replies[0], m.replies[1:]
	}
	return &llm.Response{StopReason: "end_turn", Content: []llm.ContentBlock{llm.TextBlock(text)}}, nil
}

// asUser returns a context carrying user as the signed-in caller.
func asUser(user *domain.User) context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	})
}

func createSupplierConfig(t *testing.T, db *gorm.DB, name string) *domain.SupplierConfig {
	t.Helper()
	cfg := &domain.SupplierConfig{
		SupplierName: name,
		IsActive:     true,
		UseMock:      true,
		CreatedAt:    "2025-01-01 08:00:00",
		UpdatedAt:    "2025-01-01 08:00:00",
	}
	require.NoError(t, db.Create(cfg).Error)
	return cfg
}
