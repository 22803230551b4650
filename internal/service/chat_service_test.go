package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/jwilson7981/job-tracker-sub000/internal/assistant"
	"github.com/jwilson7981/job-tracker-sub000/internal/chatbot"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/llm"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"github.com/jwilson7981/job-tracker-sub000/internal/service"
	"github.com/jwilson7981/job-tracker-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newChatService(t *testing.T, m llm.Messenger) (*service.ChatService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	reports := repository.NewReportRepository(db)
	logger := zap.NewNop()
	svc := service.NewChatService(
		repository.NewChatRepository(db),
		assistant.New(m, reports, logger),
		chatbot.NewEngine(reports, repository.NewUserRepository(db), logger),
		logger,
	)
	return svc, db
}

func TestChatTitle(t *testing.T) {
	assert.Equal(t, "short question", service.ChatTitle("short question"))

	long := strings.Repeat("é", 60)
	title := service.ChatTitle(long)
	assert.Equal(t, strings.Repeat("é", 50)+"...", title)
	assert.Equal(t, strings.Repeat("x", 50), service.ChatTitle(strings.Repeat("x", 50)))
}

func TestChatService_RulesFallback(t *testing.T) {
	svc, db := newChatService(t, nil)
	user := testutil.CreateTestUser(t, db, "pat", domain.RoleProjectManager)
	ctx := asUser(user)

	session, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	reply, err := svc.PostMessage(ctx, session.ID, "  help  ")
	require.NoError(t, err)
	assert.True(t, reply.OK)
	assert.NotEmpty(t, reply.Response)

	messages, err := svc.ListMessages(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, domain.ChatRoleUser, messages[0].Role)
	assert.Equal(t, "help", messages[0].Content)
	assert.Equal(t, domain.ChatRoleAssistant, messages[1].Role)
	assert.Equal(t, reply.Response, messages[1].Content)

	sessions, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "help", sessions[0].Title)

	_, err = svc.PostMessage(ctx, session.ID, "   ")
	assert.ErrorIs(t, err, service.ErrEmptyMessage)
}

func TestChatService_ModelReply(t *testing.T) {
	m := &scriptedMessenger{replies: []string{"First answer", "Second answer"}}
	svc, db := newChatService(t, m)
	user := testutil.CreateTestUser(t, db, "olivia", domain.RoleOwner)
	ctx := asUser(user)

	session, err := svc.CreateSession(ctx, "Budget questions")
	require.NoError(t, err)

	reply, err := svc.PostMessage(ctx, session.ID, "How are we doing?")
	require.NoError(t, err)
	assert.Equal(t, "First answer", reply.Response)

	reply, err = svc.PostMessage(ctx, session.ID, "And last month?")
	require.NoError(t, err)
	assert.Equal(t, "Second answer", reply.Response)

	// the second request carries the first exchange as history
	require.Len(t, m.requests, 2)
	assert.Len(t, m.requests[1].Messages, 3)

	// the first message replaces the session title
	sessions, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, "How are we doing?", sessions[0].Title)
}

func TestChatService_ModelFailureFallsBack(t *testing.T) {
	m := &scriptedMessenger{err: errors.New("rate limited")}
	svc, db := newChatService(t, m)
	user := testutil.CreateTestUser(t, db, "wes", domain.RoleWarehouse)
	ctx := asUser(user)

	session, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)
	reply, err := svc.PostMessage(ctx, session.ID, "help")
	require.NoError(t, err)
	assert.NotEmpty(t, reply.Response)
	assert.Len(t, m.requests, 1)
}

func TestChatService_SessionsAreOwned(t *testing.T) {
	svc, db := newChatService(t, nil)
	alice := testutil.CreateTestUser(t, db, "alice", domain.RoleEmployee)
	bob := testutil.CreateTestUser(t, db, "bob", domain.RoleEmployee)

	session, err := svc.CreateSession(asUser(alice), "mine")
	require.NoError(t, err)

	_, err = svc.ListMessages(asUser(bob), session.ID)
	assert.ErrorIs(t, err, service.ErrChatSessionNotFound)
	_, err = svc.PostMessage(asUser(bob), session.ID, "hello")
	assert.ErrorIs(t, err, service.ErrChatSessionNotFound)
	assert.ErrorIs(t, svc.DeleteSession(asUser(bob), session.ID), service.ErrChatSessionNotFound)

	require.NoError(t, svc.DeleteSession(asUser(alice), session.ID))
	sessions, err := svc.ListSessions(asUser(alice))
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
